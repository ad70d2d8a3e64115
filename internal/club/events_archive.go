package club

import (
	"context"
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/db"
	"path/filepath"
	"time"
)

const eventsArchiveIntro = "# Záznamy klubových akcí\n\n" +
	"Tady najdeš všechny přednášky, které se konaly v klubu. " +
	"Videa nejsou „veřejná”, ale pokud chceš odkaz poslat kamarádovi mimo klub, můžeš. "

type EventStore interface {
	ListArchivedEvents(ctx context.Context, before int64) ([]db.Event, error)
}

// EventsArchive recreates the channel listing recordings of past club events.
type EventsArchive struct {
	store     EventStore
	discord   Discord
	tel       telemetry.API
	time      chrono.TimeAPI
	imagesDir string
}

func NewEventsArchive(store EventStore, discord Discord, tel telemetry.API, timeAPI chrono.TimeAPI, imagesDir string) EventsArchive {
	return EventsArchive{
		store:     store,
		discord:   discord,
		tel:       telemetry.NewScopedAPI("club", tel),
		time:      timeAPI,
		imagesDir: imagesDir,
	}
}

// EventMessage renders a single archived event.
func EventMessage(event db.Event, imagesDir string) Message {
	avatar := filepath.Base(event.AvatarPath)
	return Message{
		Embeds: []Embed{{
			Title:         event.Title,
			URL:           event.Url,
			Timestamp:     time.Unix(event.StartAt, 0).In(chrono.Prague()),
			Author:        event.BioName,
			ThumbnailFile: avatar,
		}},
		Files: []File{{
			Name: avatar,
			Path: filepath.Join(imagesDir, event.AvatarPath),
		}},
		Buttons: []LinkButton{{
			Label: "Záznam",
			URL:   event.RecordingUrl.String,
		}},
	}
}

// Run purges the channel and posts every past event, newest first.
func (a EventsArchive) Run(ctx context.Context, channelID string) (int, error) {
	events, err := a.store.ListArchivedEvents(ctx, a.time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("list archived events: %w", err)
	}

	err = a.discord.PurgeChannel(ctx, channelID)
	if err != nil {
		return 0, fmt.Errorf("purge events archive: %w", err)
	}
	err = a.discord.SendMessage(ctx, channelID, Message{
		Content:        eventsArchiveIntro,
		SuppressEmbeds: true,
	})
	if err != nil {
		return 0, fmt.Errorf("send events archive intro: %w", err)
	}

	for i, event := range events {
		a.tel.ReportDebug("posting event", event.Title)
		err = a.discord.SendMessage(ctx, channelID, EventMessage(event, a.imagesDir))
		if err != nil {
			return i, fmt.Errorf("post event %q: %w", event.Title, err)
		}
	}
	a.tel.ReportCount("events-archive.posted", int64(len(events)))
	return len(events), nil
}
