// Package metrics calcule les indicateurs dérivés du dashboard à partir des
// compteurs agrégés du storefront.
//
// Toutes les fonctions sont pures : pas d'I/O, pas de logs, pas d'horloge,
// aucune modification des arguments. Une entrée manquante ou dégénérée (zéro,
// NaN, collection nil) donne le résultat par défaut documenté plutôt qu'une
// erreur, et aucune fonction ne retourne NaN ni l'infini.
package metrics
