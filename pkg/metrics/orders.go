package metrics

import "storefront-metrics/pkg/models"

// FulfillmentRate : pourcentage entier de commandes "completed" ou "delivered".
func FulfillmentRate(buckets []models.OrderStatusBucket, totalOrders int64) float64 {
	if totalOrders == 0 || buckets == nil {
		return 0
	}
	var fulfilled int64
	for _, b := range buckets {
		if b.Status == models.StatusCompleted || b.Status == models.StatusDelivered {
			fulfilled += b.Count
		}
	}
	return PercentageOf(float64(fulfilled), float64(totalOrders), 0)
}

// BucketCount : nombre de commandes du premier bucket ayant ce statut, sinon 0.
func BucketCount(buckets []models.OrderStatusBucket, status string) int64 {
	for _, b := range buckets {
		if b.Status == status {
			return b.Count
		}
	}
	return 0
}
