package commands

import (
	"context"
	"fmt"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/config"
	"juniorguru-sync/internal/tasks"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
}

var rootCmd = &cobra.Command{
	Use:           "jgsync",
	Short:         "jgsync keeps the junior.guru club in sync with Memberful, Discord and Google Sheets.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		otel, err := telemetry.Setup(cmd.Context(), "jgsync", cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		value := &globals.Value{
			Config: cfg,
			Tel:    telemetry.SlogAPI{},
			Time:   chrono.NewStandardTime(),
			Otel:   otel,
		}
		value.Tasks, err = newRegistry(value)
		if err != nil {
			return err
		}
		cmd.SetContext(globals.Set(cmd.Context(), value))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return globals.Get(cmd.Context()).Close(context.Background())
	},
}

// newRegistry registers every sync job with its default options.
func newRegistry(g *globals.Value) (*tasks.Registry, error) {
	registry := tasks.NewRegistry(g.Tel)
	for _, task := range []tasks.Task{
		{
			Name: "subscriptions",
			Run: func(ctx context.Context) error {
				return runSubscriptions(ctx, g, false)
			},
		},
		{
			Name:         "align-company-subscriptions",
			Dependencies: []string{"subscriptions"},
			Run: func(ctx context.Context) error {
				return runAlign(ctx, g)
			},
		},
		{
			Name: "weekly-plans",
			Run: func(ctx context.Context) error {
				return runWeeklyPlans(ctx, g, g.Config.Discord.WeeklyPlansChannelID, g.Time.Now())
			},
		},
		{
			Name: "events-archive",
			Run: func(ctx context.Context) error {
				return runEventsArchive(ctx, g)
			},
		},
		{
			Name: "scrape-jobs",
			Run: func(ctx context.Context) error {
				return runScrapeJobs(ctx, g)
			},
		},
		{
			Name: "build-jobs",
			Run: func(ctx context.Context) error {
				return runBuildJobs(ctx, g, g.Config.Jobs.BoardOutput)
			},
		},
	} {
		err := registry.Register(task)
		if err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
