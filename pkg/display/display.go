// Package display contient la table statique de présentation (icône, libellé,
// couleur) des catégories du dashboard, et les petites fonctions qui y
// projettent les métriques.
package display

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Types d'entrées du catalogue.
const (
	KindStatus  = "status"
	KindFunnel  = "funnel"
	KindSegment = "segment"
	KindChannel = "channel"
)

// Entry décrit l'affichage d'une valeur de catégorie.
type Entry struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color" json:"color"`
}

// Fallback est retourné pour les clés inconnues.
var Fallback = Entry{Icon: "•", Color: "#9ca3af"}

// Catalog : type -> clé -> entrée.
type Catalog map[string]map[string]Entry

var defaultCatalog = mustParse(catalogYAML)

// Default retourne le catalogue embarqué.
func Default() Catalog { return defaultCatalog }

// Parse lit un document de catalogue.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

func mustParse(data []byte) Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup retourne l'entrée de key, sinon Fallback avec key comme libellé.
func (c Catalog) Lookup(kind, key string) Entry {
	if e, ok := c[kind][key]; ok {
		return e
	}
	e := Fallback
	e.Label = key
	return e
}

// Segment classe un score de santé client.
func Segment(score int) string {
	switch {
	case score >= 80:
		return "champion"
	case score >= 60:
		return "loyal"
	case score >= 40:
		return "at_risk"
	default:
		return "lost"
	}
}

// ProgressWidth rend un pourcentage en largeur CSS bornée à [0%, 100%].
func ProgressWidth(pct float64) string {
	if math.IsNaN(pct) {
		pct = 0
	}
	pct = math.Max(0, math.Min(pct, 100))
	return fmt.Sprintf("%.1f%%", pct)
}
