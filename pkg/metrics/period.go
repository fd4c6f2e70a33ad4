package metrics

import (
	"math"

	"storefront-metrics/pkg/models"
)

// Unit est la granularité utilisée par AveragePerUnit.
type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
)

// PeriodToDays : libellé de période → nombre de jours (30 si inconnu).
func PeriodToDays(label models.Period) int {
	if d, ok := models.PeriodDays[label]; ok {
		return d
	}
	return models.DefaultPeriodDays
}

// AveragePerUnit répartit total sur la période. Semaines et mois sont comptés
// entiers : 30 jours = ceil(30/7) = 5 semaines. Unité inconnue → Day.
func AveragePerUnit(total float64, periodDays int, unit Unit) float64 {
	if falsy(total) || periodDays == 0 {
		return 0
	}
	days := float64(periodDays)
	switch unit {
	case Week:
		return finite(total / math.Ceil(days/7))
	case Month:
		return finite(total / math.Ceil(days/30))
	default:
		return finite(total / days)
	}
}

// WeeklyFromTotal ramène un total de période à la semaine. Moins de 7 jours :
// extrapolation ; sinon division par le nombre de semaines (fractionnaire).
func WeeklyFromTotal(totalRevenue float64, periodDays int) float64 {
	if falsy(totalRevenue) || periodDays == 0 {
		return 0
	}
	days := float64(periodDays)
	if periodDays < 7 {
		return finite(totalRevenue / days * 7)
	}
	return finite(totalRevenue / (days / 7))
}
