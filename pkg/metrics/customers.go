package metrics

import "math"

// Poids du score de santé client. Leur somme vaut 0.95 : une base parfaite
// obtient 95.
const (
	retentionWeight = 0.40
	repeatWeight    = 0.35
	frequencyWeight = 0.20

	// 5 commandes par période saturent la composante fréquence
	ordersForFullFrequency = 5
)

// CustomerHealthScore combine rétention (0-100), taux de réachat (0-1) et
// fréquence de commande en un entier 0-100.
func CustomerHealthScore(retentionRate, repeatPurchaseRate, orderFrequency float64) int {
	retention := normalize(retentionRate)
	repeat := normalize(repeatPurchaseRate * 100)
	frequency := normalize(orderFrequency * (100 / ordersForFullFrequency))

	score := retention*retentionWeight + repeat*repeatWeight + frequency*frequencyWeight
	return int(toInt64(math.Min(round(score, 0), 100)))
}

func normalize(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Min(x, 100)
}
