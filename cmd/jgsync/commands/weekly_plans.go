package commands

import (
	"context"
	"fmt"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/club"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/serviceutil"
	"time"

	"github.com/spf13/cobra"
)

var (
	weeklyPlansChannel string
	weeklyPlansToday   string
)

func init() {
	weeklyPlansCmd.Flags().StringVar(&weeklyPlansChannel, "channel", "", "The forum channel id, defaults to discord.weekly_plans_channel_id.")
	weeklyPlansCmd.Flags().StringVar(&weeklyPlansToday, "today", "", "The date to create the weekly plans for (YYYY-MM-DD), defaults to today.")
	rootCmd.AddCommand(weeklyPlansCmd)
}

var weeklyPlansCmd = &cobra.Command{
	Use:   "weekly-plans [--channel <id>] [--today <YYYY-MM-DD>]",
	Short: "Kicks off the weekly plans forum thread.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		mustRequire(g, "weekly-plans")

		channelID := weeklyPlansChannel
		if channelID == "" {
			channelID = g.Config.Discord.WeeklyPlansChannelID
		}
		today := g.Time.Now()
		if weeklyPlansToday != "" {
			parsed, err := time.ParseInLocation(chrono.DateLayout, weeklyPlansToday, chrono.Prague())
			if err != nil {
				serviceutil.Fatal("invalid --today", err)
			}
			today = parsed
		}

		err := runWeeklyPlans(cmd.Context(), g, channelID, today)
		if err != nil {
			serviceutil.Fatal("failed to kick off weekly plans", err)
		}
	},
}

func runWeeklyPlans(ctx context.Context, g *globals.Value, channelID string, today time.Time) error {
	err := requireChannel("weekly_plans_channel_id", channelID)
	if err != nil {
		return err
	}
	database, err := g.Database(ctx)
	if err != nil {
		return err
	}
	discord, err := newDiscord(g)
	if err != nil {
		return err
	}

	created, err := club.NewWeeklyPlans(db.New(database), discord, g.Tel).Run(ctx, channelID, today)
	if err != nil {
		return err
	}
	if !created {
		g.Tel.ReportDebug(fmt.Sprintf("weekly plans already exist for %s", club.Monday(today).Format(chrono.DateLayout)))
	}
	return nil
}
