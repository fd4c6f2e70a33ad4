// Package payload décode les agrégats du dashboard renvoyés par le backend
// du storefront. Un champ du mauvais type vaut zéro, une collection qui n'est
// pas un tableau est vide ; seul un JSON invalide est rejeté.
package payload

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"

	"storefront-metrics/pkg/metrics"
	"storefront-metrics/pkg/models"
)

// ErrInvalidPayload : l'entrée n'est pas du JSON valide.
var ErrInvalidPayload = errors.New("payload: invalid JSON")

// Dashboard est une réponse du backend décodée.
type Dashboard struct {
	Period     models.Period
	Aggregates models.Aggregates
}

// Parse décode un payload de dashboard.
func Parse(raw []byte) (Dashboard, error) {
	if !gjson.ValidBytes(raw) {
		return Dashboard{}, ErrInvalidPayload
	}
	doc := gjson.ParseBytes(raw)

	d := Dashboard{Period: models.Period(doc.Get("period").String())}
	a := &d.Aggregates
	a.Revenue = revenue(doc.Get("revenue"))
	a.PreviousRevenue = revenue(doc.Get("previousRevenue"))
	a.StatusBuckets = statusBuckets(doc.Get("ordersByStatus"))
	a.Funnel = funnel(doc.Get("conversionFunnel"))
	a.Customers = models.CustomerBehavior{
		RetentionRate:         num(doc.Get("customerBehavior.retentionRate")),
		RepeatPurchaseRate:    num(doc.Get("customerBehavior.repeatPurchaseRate")),
		AverageOrderFrequency: num(doc.Get("customerBehavior.averageOrderFrequency")),
	}
	a.TopProducts = products(doc.Get("topProducts"))
	a.HistoricalRevenue = num(doc.Get("historicalRevenue"))
	return d, nil
}

// TopPerformerField retourne labelField de l'élément d'un tableau JSON au plus
// grand countField ; false si raw n'est pas un tableau non vide.
func TopPerformerField(raw []byte, countField, labelField string) (string, bool) {
	arr := gjson.ParseBytes(raw)
	if !arr.IsArray() {
		return "", false
	}
	return metrics.TopPerformer(arr.Array(),
		func(r gjson.Result) float64 { return num(r.Get(countField)) },
		func(r gjson.Result) string { return r.Get(labelField).String() },
	)
}

func revenue(r gjson.Result) models.RevenueAggregate {
	return models.RevenueAggregate{
		TotalRevenue:      num(r.Get("totalRevenue")),
		TotalOrders:       count(r.Get("totalOrders")),
		AverageOrderValue: num(r.Get("averageOrderValue")),
	}
}

func statusBuckets(r gjson.Result) []models.OrderStatusBucket {
	if !r.IsArray() {
		return nil
	}
	var out []models.OrderStatusBucket
	r.ForEach(func(_, v gjson.Result) bool {
		status := v.Get("_id")
		if !status.Exists() {
			status = v.Get("status")
		}
		out = append(out, models.OrderStatusBucket{
			Status: status.String(),
			Count:  count(v.Get("count")),
		})
		return true
	})
	return out
}

func funnel(r gjson.Result) models.FunnelSteps {
	if !r.IsObject() {
		return nil
	}
	steps := models.FunnelSteps{}
	r.ForEach(func(k, v gjson.Result) bool {
		steps[k.String()] = models.ConversionStep{
			Count:          count(v.Get("count")),
			ConversionRate: num(v.Get("conversionRate")),
		}
		return true
	})
	return steps
}

func products(r gjson.Result) []models.ProductSales {
	if !r.IsArray() {
		return nil
	}
	var out []models.ProductSales
	for _, v := range r.Array() {
		out = append(out, models.ProductSales{
			ProductID: v.Get("_id").String(),
			Name:      v.Get("name").String(),
			Count:     count(v.Get("count")),
			Revenue:   num(v.Get("revenue")),
		})
	}
	return out
}

// num : 0 pour tout ce qui n'est pas un nombre fini (ex. 1e400 → +Inf)
func num(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	f := r.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// count : compteur positif, saturé à math.MaxInt64
func count(r gjson.Result) int64 {
	f := num(r)
	switch {
	case f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	}
	return r.Int()
}
