// Package cli regroupe les commandes de storefront-metrics.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront-metrics/pkg/config"
	"storefront-metrics/pkg/logging"
)

// Version courante de storefront-metrics
var Version = "0.1.0"

// app : état partagé par les sous-commandes une fois la racine exécutée.
type app struct {
	envFile   string
	verbose   bool
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *zap.Logger
}

// Execute lance la commande racine. Appelée par main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "storefront-metrics",
		Short: "Derived dashboard metrics for the storefront back-office",
		Long: `storefront-metrics turns aggregated storefront counters (orders, funnel
events, customers) into the figures shown on the admin dashboard: fulfillment
rate, funnel efficiency, customer health score, dynamic revenue goals...

Aggregates are read from the MariaDB/MySQL back-office database or from a
JSON payload returned by the backend.

Examples:
  storefront-metrics report --dsn mariadb://u:p@db:3306/shop --periods 7days,30days
  storefront-metrics decode --file dashboard.json --output yaml
  storefront-metrics goals --revenue 3000000 --period 30days
  storefront-metrics track --event product_viewed --user u-42`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional .env file with METRICS_* variables")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (progress bar, per-period logs)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (default from LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console|json (default from LOG_FORMAT)")

	root.AddCommand(newReportCmd(a), newDecodeCmd(a), newGoalsCmd(a), newTrackCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		a.logLevel = cfg.LogLevel
	}
	if !cmd.Flags().Changed("log-format") {
		a.logFormat = cfg.LogFormat
	}
	logger, err := logging.New(a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}
