package calculator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"storefront-metrics/pkg/display"
	"storefront-metrics/pkg/metrics"
	"storefront-metrics/pkg/models"
)

// Source fournit les agrégats bruts d'une fenêtre [from, to).
type Source interface {
	Load(ctx context.Context, from, to time.Time) (models.Aggregates, error)
}

// Run calcule un rapport par période demandée, chaque fenêtre se terminant
// au jour d'observation (exclu).
func Run(ctx context.Context, src Source, cfg models.Config, logger *zap.Logger) ([]models.DashboardReport, error) {
	if len(cfg.Periods) == 0 {
		return nil, fmt.Errorf("aucune période demandée")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bar := progressbar.DefaultSilent(int64(len(cfg.Periods)))
	if cfg.Verbose {
		bar = progressbar.Default(int64(len(cfg.Periods)), "periods")
	}

	results := make([]models.DashboardReport, 0, len(cfg.Periods))
	for _, p := range cfg.Periods {
		from, to := window(cfg.Observation, metrics.PeriodToDays(p))

		agg, err := src.Load(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}

		r := Compose(p, agg)
		r.From, r.To = from, to
		results = append(results, r)

		_ = bar.Add(1)
		if cfg.Verbose {
			logger.Info("period computed",
				zap.String("period", string(p)),
				zap.Float64("revenue", r.Revenue.TotalRevenue),
				zap.Float64("fulfillment_rate", r.FulfillmentRate),
				zap.Int("health_score", r.CustomerHealthScore))
		}
	}
	return results, nil
}

// Compose dérive toutes les métriques du dashboard à partir des agrégats.
func Compose(p models.Period, agg models.Aggregates) models.DashboardReport {
	days := metrics.PeriodToDays(p)
	rev := agg.Revenue
	if rev.AverageOrderValue == 0 {
		rev.AverageOrderValue = metrics.AverageOrderValue(rev.TotalRevenue, rev.TotalOrders)
	}

	r := models.DashboardReport{
		Period:  p,
		Days:    days,
		Revenue: rev,
		RevenueGrowth: metrics.PercentageOf(
			rev.TotalRevenue-agg.PreviousRevenue.TotalRevenue, agg.PreviousRevenue.TotalRevenue, 1),
		DailyRevenue:         metrics.AveragePerUnit(rev.TotalRevenue, days, metrics.Day),
		WeeklyRevenue:        metrics.WeeklyFromTotal(rev.TotalRevenue, days),
		MonthlyRevenue:       metrics.AveragePerUnit(rev.TotalRevenue, days, metrics.Month),
		OrdersPerWeek:        metrics.AveragePerUnit(float64(rev.TotalOrders), days, metrics.Week),
		FulfillmentRate:      metrics.FulfillmentRate(agg.StatusBuckets, rev.TotalOrders),
		PendingOrders:        metrics.BucketCount(agg.StatusBuckets, "pending"),
		CancelledOrders:      metrics.BucketCount(agg.StatusBuckets, "cancelled"),
		FunnelEfficiency:     metrics.FunnelEfficiency(agg.Funnel),
		ImprovementPotential: metrics.ImprovementPotential(agg.Funnel),
		CustomerHealthScore: metrics.CustomerHealthScore(
			agg.Customers.RetentionRate, agg.Customers.RepeatPurchaseRate, agg.Customers.AverageOrderFrequency),
		Goals: metrics.DynamicGoals(agg.HistoricalRevenue, days),
	}
	r.CustomerSegment = display.Segment(r.CustomerHealthScore)
	r.TopProduct, _ = metrics.TopPerformer(agg.TopProducts,
		func(p models.ProductSales) float64 { return float64(p.Count) },
		productLabel,
	)
	r.DailyGoalProgress = metrics.GoalProgress(r.DailyRevenue, float64(r.Goals.Daily))
	r.MonthlyGoalProgress = metrics.GoalProgress(r.MonthlyRevenue, float64(r.Goals.Monthly))
	return r
}

// productLabel : nom du produit, sinon son identifiant
func productLabel(p models.ProductSales) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ProductID
}

// ParsePeriods("7days,30days") -> périodes dans l'ordre, sans doublon
func ParsePeriods(s string) ([]models.Period, error) {
	var out []models.Period
	seen := map[models.Period]bool{}
	for _, part := range strings.Split(s, ",") {
		p := models.Period(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if _, ok := models.PeriodDays[p]; !ok {
			return nil, fmt.Errorf("période inconnue %q (attendu: 7days, 30days, 90days, 1year)", p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("aucune période dans %q", s)
	}
	return out, nil
}

// window -> [obs-days, obs) en jours entiers UTC
func window(obs time.Time, days int) (time.Time, time.Time) {
	obs = obs.UTC()
	to := time.Date(obs.Year(), obs.Month(), obs.Day(), 0, 0, 0, 0, time.UTC)
	return to.AddDate(0, 0, -days), to
}
