package metrics

import (
	"cmp"
	"math"
	"slices"
)

// TopPerformer retourne le libellé de l'élément au plus grand compteur.
// En cas d'égalité, le premier dans l'ordre d'entrée l'emporte. items n'est
// pas réordonné.
func TopPerformer[T any](items []T, count func(T) float64, label func(T) string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(score(count(b)), score(count(a)))
	})
	return label(sorted[0]), true
}

func score(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}
