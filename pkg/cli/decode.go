package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storefront-metrics/pkg/calculator"
	"storefront-metrics/pkg/models"
	"storefront-metrics/pkg/payload"
	"storefront-metrics/pkg/report"
)

func newDecodeCmd(a *app) *cobra.Command {
	var file, period, output string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Compute dashboard metrics from a backend JSON payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Output
			}

			var (
				raw []byte
				err error
			)
			if file == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			d, err := payload.Parse(raw)
			if err != nil {
				return err
			}
			p := d.Period
			if period != "" {
				p = models.Period(period)
			}
			r := calculator.Compose(p, d.Aggregates)
			return report.Render(cmd.OutOrStdout(), []models.DashboardReport{r}, output)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Payload file, - for stdin")
	cmd.Flags().StringVar(&period, "period", "", "Override the payload period label")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text|json|yaml")
	return cmd
}
