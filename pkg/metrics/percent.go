package metrics

import "math"

// DefaultDecimals est la précision utilisée par Percentage.
const DefaultDecimals = 1

// PercentageOf retourne value/total en pourcentage, arrondi à decimals décimales.
// Un total nul ou NaN donne 0.
func PercentageOf(value, total float64, decimals int) float64 {
	if falsy(total) {
		return 0
	}
	return round((value/total)*100, decimals)
}

// Percentage = PercentageOf avec une décimale.
func Percentage(value, total float64) float64 {
	return PercentageOf(value, total, DefaultDecimals)
}

// GoalProgress : part de l'objectif atteinte, plafonnée à 100 (barre de progression).
func GoalProgress(actual, goal float64) float64 {
	return math.Min(PercentageOf(actual, goal, 1), 100)
}

// AverageOrderValue : panier moyen, 0 sans commande.
func AverageOrderValue(revenue float64, orders int64) float64 {
	if orders == 0 {
		return 0
	}
	return finite(revenue / float64(orders))
}

// falsy : nombre "absent" au sens du dashboard
func falsy(x float64) bool {
	return x == 0 || math.IsNaN(x)
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// round arrondit au demi supérieur (vers +Inf).
func round(x float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return finite(math.Floor(x*p+0.5) / p)
}

// toInt64 sature aux bornes de int64 ; NaN donne 0.
func toInt64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt64: // float64(MaxInt64) vaut 2^63
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(x)
	}
}
