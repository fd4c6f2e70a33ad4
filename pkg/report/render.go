// Package report écrit les rapports du dashboard en texte, JSON ou YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"storefront-metrics/pkg/display"
	"storefront-metrics/pkg/metrics"
	"storefront-metrics/pkg/models"
)

// Formats de sortie.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// Render écrit reports dans w au format demandé.
func Render(w io.Writer, reports []models.DashboardReport, format string) error {
	switch format {
	case Text, "":
		return renderText(w, reports)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (text, json, yaml)", format)
	}
}

// Une ligne par période : période ; CA ; commandes ; ... (séparateur " ; ")
func renderText(w io.Writer, reports []models.DashboardReport) error {
	catalog := display.Default()
	for _, r := range reports {
		seg := catalog.Lookup(display.KindSegment, r.CustomerSegment)
		_, err := fmt.Fprintf(w,
			"%s ; revenue=%s ; orders=%d ; aov=%s ; growth=%.1f%% ; weekly=%s ; fulfillment=%.0f%% ; "+
				"funnel=%.1f%% ; potential=%.1f ; health=%d %s ; top=%s ; goal_daily=%s (%s)\n",
			r.Period,
			metrics.FormatCurrencyVND(r.Revenue.TotalRevenue),
			r.Revenue.TotalOrders,
			metrics.FormatCompactVND(r.Revenue.AverageOrderValue),
			r.RevenueGrowth,
			metrics.FormatCompactVND(r.WeeklyRevenue),
			r.FulfillmentRate,
			r.FunnelEfficiency,
			r.ImprovementPotential,
			r.CustomerHealthScore, seg.Icon,
			orDash(r.TopProduct),
			metrics.FormatLargeNumber(float64(r.Goals.Daily)),
			display.ProgressWidth(r.DailyGoalProgress),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Goals écrit les trois objectifs de CA, un par ligne.
func Goals(w io.Writer, g models.Goals) error {
	_, err := fmt.Fprintf(w, "daily ; %s\nweekly ; %s\nmonthly ; %s\n",
		metrics.FormatCurrencyVND(float64(g.Daily)),
		metrics.FormatCurrencyVND(float64(g.Weekly)),
		metrics.FormatCurrencyVND(float64(g.Monthly)))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
