package cli

import (
	"github.com/spf13/cobra"

	"storefront-metrics/pkg/metrics"
	"storefront-metrics/pkg/models"
	"storefront-metrics/pkg/report"
)

func newGoalsCmd(_ *app) *cobra.Command {
	var (
		revenue float64
		period  string
	)

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Derive daily/weekly/monthly revenue goals from past revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := metrics.DynamicGoals(revenue, metrics.PeriodToDays(models.Period(period)))
			return report.Goals(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().Float64Var(&revenue, "revenue", 0, "Revenue of the historical period")
	cmd.Flags().StringVar(&period, "period", string(models.Period30Days), "Historical period label")
	return cmd
}
