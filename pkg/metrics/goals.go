package metrics

import (
	"math"

	"storefront-metrics/pkg/models"
)

// GrowthMultiplier : croissance appliquée à la moyenne journalière historique.
const GrowthMultiplier = 1.1

// DefaultGoals : objectifs sans historique de chiffre d'affaires.
var DefaultGoals = models.Goals{
	Daily:   1_000_000,
	Weekly:  7_000_000,
	Monthly: 30_000_000,
}

// DynamicGoals dérive les objectifs du CA historique d'une période de
// periodDays jours, +10%. Les objectifs saturent à math.MaxInt64.
func DynamicGoals(historicalRevenue float64, periodDays int) models.Goals {
	if falsy(historicalRevenue) {
		return DefaultGoals
	}
	if periodDays == 0 {
		periodDays = models.DefaultPeriodDays
	}
	daily := historicalRevenue / float64(periodDays)
	return models.Goals{
		Daily:   goal(daily * GrowthMultiplier),
		Weekly:  goal(daily * 7 * GrowthMultiplier),
		Monthly: goal(daily * 30 * GrowthMultiplier),
	}
}

// arrondi au demi supérieur ; +Inf sature au lieu de retomber à 0
func goal(x float64) int64 {
	return toInt64(math.Floor(x + 0.5))
}
