package commands

import (
	"context"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/club"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(eventsArchiveCmd)
}

var eventsArchiveCmd = &cobra.Command{
	Use:   "events-archive",
	Short: "Recreates the channel with recordings of past club events.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		mustRequire(g, "events-archive")
		err := runEventsArchive(cmd.Context(), g)
		if err != nil {
			serviceutil.Fatal("failed to recreate events archive", err)
		}
	},
}

func runEventsArchive(ctx context.Context, g *globals.Value) error {
	channelID := g.Config.Discord.EventsArchiveChannelID
	err := requireChannel("events_archive_channel_id", channelID)
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

	archive := club.NewEventsArchive(db.New(database), discord, g.Tel, g.Time, g.Config.ImagesDir)
	_, err = archive.Run(ctx, channelID)
	return err
}
