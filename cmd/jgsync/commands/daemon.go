package commands

import (
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/serviceutil"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Runs every sync task on the configured cron schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		plan, err := g.Tasks.Plan()
		if err != nil {
			serviceutil.Fatal("failed to plan tasks", err)
		}
		mustRequire(g, plan...)

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx, g.Tel)

		cron := chrono.NewStandardCron(g.Tel)
		err = cron.Cron(g.Config.Daemon.Schedule, func() {
			err := g.Tasks.Run(ctx, plan...)
			if err != nil {
				g.Tel.ReportBroken("daemon.run", err)
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid cron schedule", err)
		}

		slog.Info("daemon started", "schedule", g.Config.Daemon.Schedule)
		<-ctx.Done()
		cron.Stop()
		slog.Info("daemon stopped")
	},
}
