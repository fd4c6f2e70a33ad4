package metrics

import (
	"math"

	"storefront-metrics/pkg/models"
)

const (
	// DefaultImprovementPotential : valeur sans données de tunnel.
	DefaultImprovementPotential = 25
	minImprovementPotential     = 10
	maxImprovementPotential     = 50
)

// FunnelEfficiency : moyenne des taux de conversion des étapes présentes,
// une décimale.
func FunnelEfficiency(steps models.FunnelSteps) float64 {
	if len(steps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range steps {
		if !math.IsNaN(s.ConversionRate) {
			sum += s.ConversionRate
		}
	}
	return round(sum/float64(len(steps)), 1)
}

// ImprovementPotential : points de conversion récupérables. 25 sans données
// ou sans vue produit, sinon 100 - taux de commande, borné à [10, 50].
func ImprovementPotential(steps models.FunnelSteps) float64 {
	if steps == nil {
		return DefaultImprovementPotential
	}
	orderRate := steps[models.StepOrderComplete].ConversionRate
	if math.IsNaN(orderRate) {
		orderRate = 0
	}
	if steps[models.StepProductViewed].Count == 0 {
		return DefaultImprovementPotential
	}
	potential := math.Min(100-orderRate, maxImprovementPotential)
	return math.Max(potential, minImprovementPotential)
}
