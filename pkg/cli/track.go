package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront-metrics/pkg/database"
	"storefront-metrics/pkg/tracking"
)

func newTrackCmd(a *app) *cobra.Command {
	var (
		dsn, sessionID, userID, event string
		props                         map[string]string
	)

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record a storefront event (logged when no database is configured)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("dsn") {
				dsn = a.cfg.DSN
			}

			var sink tracking.Sink = tracking.LogSink{Logger: a.logger}
			if dsn != "" {
				db, _, err := database.Open(dsn)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer db.Close()
				loader, err := database.NewLoader(db, database.Tables{
					Orders:     a.cfg.OrdersTable,
					OrderItems: a.cfg.OrderItemsTable,
					Events:     a.cfg.EventsTable,
				}, a.logger)
				if err != nil {
					return err
				}
				sink = loader
			}

			session := tracking.NewSession(userID, time.Now())
			if sessionID != "" {
				session.ID = sessionID
			}

			properties := make(map[string]any, len(props))
			for k, v := range props {
				properties[k] = v
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.QueryTimeout)
			defer cancel()

			ev, err := tracking.New(sink, a.logger).Track(ctx, session, event, properties)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ; %s ; session=%s\n", ev.ID, ev.Type, ev.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "MariaDB/MySQL DSN; events are only logged when empty")
	cmd.Flags().StringVar(&sessionID, "session", "", "Existing session id (default: new session)")
	cmd.Flags().StringVar(&userID, "user", "", "Signed-in user id")
	cmd.Flags().StringVar(&event, "event", "", "Event type: page_viewed or a funnel step")
	cmd.Flags().StringToStringVar(&props, "prop", nil, "Event property key=value (repeatable)")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}
