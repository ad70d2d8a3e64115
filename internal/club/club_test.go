package club

import (
	"context"
	"database/sql"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type createdThread struct {
	channelID string
	post      ForumPost
}

type sentMessage struct {
	channelID string
	msg       Message
}

type fakeDiscord struct {
	threads []Thread
	created []createdThread
	purged  []string
	sent    []sentMessage
}

func (d *fakeDiscord) ForumThreads(ctx context.Context, channelID string) ([]Thread, error) {
	return d.threads, nil
}

func (d *fakeDiscord) CreateForumThread(ctx context.Context, channelID string, post ForumPost) error {
	d.created = append(d.created, createdThread{channelID: channelID, post: post})
	return nil
}

func (d *fakeDiscord) PurgeChannel(ctx context.Context, channelID string) error {
	d.purged = append(d.purged, channelID)
	return nil
}

func (d *fakeDiscord) SendMessage(ctx context.Context, channelID string, msg Message) error {
	d.sent = append(d.sent, sentMessage{channelID: channelID, msg: msg})
	return nil
}

func seedWisdoms(t *testing.T, store *db.Queries) {
	t.Helper()
	require.NoError(t, store.CreateWisdom(context.Background(), "Honza", "Nejlepší čas začít byl včera."))
	require.NoError(t, store.CreateWisdom(context.Background(), "Pavlína", "Chyby jsou v pořádku."))
}

func newWeeklyPlans(store WisdomStore, discord Discord, tel telemetry.API) WeeklyPlans {
	w := NewWeeklyPlans(store, discord, tel)
	w.pick = func(n int) int { return n - 1 }
	return w
}

func TestWeeklyPlansCreatesThread(t *testing.T) {
	store := testutil.OpenQueries(t)
	seedWisdoms(t, store)
	discord := &fakeDiscord{threads: []Thread{{ID: "2", Name: "Týden 26.2. - 3.3."}}}

	created, err := newWeeklyPlans(store, discord, &telemetry.Mock{}).
		Run(context.Background(), "123", day(2024, 3, 6))
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, discord.created, 1)

	thread := discord.created[0]
	require.Equal(t, "123", thread.channelID)
	require.Equal(t, "Týden 4.3. - 10.3.", thread.post.Name)
	require.Len(t, thread.post.Message.Embeds, 2)
	require.Equal(t, "„Chyby jsou v pořádku.“", thread.post.Message.Embeds[1].Description)
	require.Equal(t, "— Pavlína", thread.post.Message.Embeds[1].Footer)
}

func TestWeeklyPlansAlreadyExists(t *testing.T) {
	store := testutil.OpenQueries(t)
	seedWisdoms(t, store)
	discord := &fakeDiscord{threads: []Thread{
		{ID: "2", Name: "Týden 4.3. - 10.3."},
		{ID: "1", Name: "Týden 26.2. - 3.3."},
	}}

	created, err := newWeeklyPlans(store, discord, &telemetry.Mock{}).
		Run(context.Background(), "123", day(2024, 3, 10))
	require.NoError(t, err)
	require.False(t, created)
	require.Empty(t, discord.created)
}

func TestWeeklyPlansFirstThread(t *testing.T) {
	store := testutil.OpenQueries(t)
	seedWisdoms(t, store)
	discord := &fakeDiscord{}
	tel := &telemetry.Mock{}

	created, err := newWeeklyPlans(store, discord, tel).Run(context.Background(), "123", day(2024, 3, 4))
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, tel.Has("warning", report_weekly_plans_none))
}

func TestWeeklyPlansUnparseableThread(t *testing.T) {
	store := testutil.OpenQueries(t)
	seedWisdoms(t, store)
	discord := &fakeDiscord{threads: []Thread{{ID: "1", Name: "Pravidla fóra"}}}

	_, err := newWeeklyPlans(store, discord, &telemetry.Mock{}).Run(context.Background(), "123", day(2024, 3, 4))
	require.Error(t, err)
	require.Empty(t, discord.created)
}

func TestWeeklyPlansNoWisdoms(t *testing.T) {
	store := testutil.OpenQueries(t)
	_, err := newWeeklyPlans(store, &fakeDiscord{}, &telemetry.Mock{}).Run(context.Background(), "123", day(2024, 3, 4))
	require.ErrorIs(t, err, ErrNoWisdoms)
}

func TestGuardDisabled(t *testing.T) {
	inner := &fakeDiscord{threads: []Thread{{ID: "1", Name: "Týden 26.2. - 3.3."}}}
	tel := &telemetry.Mock{}
	guard := NewGuard(inner, tel, false)
	ctx := context.Background()

	threads, err := guard.ForumThreads(ctx, "1")
	require.NoError(t, err)
	require.Len(t, threads, 1)

	require.NoError(t, guard.CreateForumThread(ctx, "1", ForumPost{Name: "x"}))
	require.NoError(t, guard.PurgeChannel(ctx, "1"))
	require.NoError(t, guard.SendMessage(ctx, "1", Message{Content: "x"}))
	require.Empty(t, inner.created)
	require.Empty(t, inner.purged)
	require.Empty(t, inner.sent)
	require.True(t, tel.Has("warning", report_discord_mutations))
}

func TestGuardEnabled(t *testing.T) {
	inner := &fakeDiscord{}
	guard := NewGuard(inner, &telemetry.Mock{}, true)
	require.NoError(t, guard.SendMessage(context.Background(), "1", Message{Content: "x"}))
	require.Len(t, inner.sent, 1)
}

func TestEventsArchive(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenQueries(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, chrono.Prague())
	events := []db.CreateEventParams{
		{
			Title:        "Jak na pohovor",
			Url:          "https://junior.guru/events/1/",
			StartAt:      now.AddDate(0, -2, 0).Unix(),
			BioName:      "Honza",
			AvatarPath:   "avatars-participants/honza.png",
			RecordingUrl: sql.NullString{String: "https://youtu.be/1", Valid: true},
		},
		{
			Title:      "Git pro začátečníky",
			Url:        "https://junior.guru/events/2/",
			StartAt:    now.AddDate(0, -1, 0).Unix(),
			BioName:    "Pavlína",
			AvatarPath: "avatars-participants/pavlina.png",
		},
		{
			Title:      "Budoucí akce",
			Url:        "https://junior.guru/events/3/",
			StartAt:    now.AddDate(0, 1, 0).Unix(),
			BioName:    "Nikdo",
			AvatarPath: "avatars-participants/nikdo.png",
		},
	}
	for _, e := range events {
		require.NoError(t, store.CreateEvent(ctx, e))
	}

	discord := &fakeDiscord{}
	archive := NewEventsArchive(store, discord, &telemetry.Mock{}, chrono.FixedTime{At: now}, "images")
	posted, err := archive.Run(ctx, "archive")
	require.NoError(t, err)
	require.Equal(t, 2, posted)

	require.Equal(t, []string{"archive"}, discord.purged)
	require.Len(t, discord.sent, 3)
	require.True(t, discord.sent[0].msg.SuppressEmbeds)

	newest := discord.sent[1].msg
	require.Equal(t, "Git pro začátečníky", newest.Embeds[0].Title)
	require.Equal(t, "pavlina.png", newest.Embeds[0].ThumbnailFile)
	require.Equal(t, filepath.Join("images", "avatars-participants", "pavlina.png"), newest.Files[0].Path)
	require.Equal(t, "", newest.Buttons[0].URL)

	oldest := discord.sent[2].msg
	require.Equal(t, "https://youtu.be/1", oldest.Buttons[0].URL)
	require.Equal(t, events[0].StartAt, oldest.Embeds[0].Timestamp.Unix())
}

func TestToMessageSend(t *testing.T) {
	dir := t.TempDir()
	avatar := filepath.Join(dir, "honza.png")
	require.NoError(t, os.WriteFile(avatar, []byte("png"), 0o644))

	send, cleanup, err := toMessageSend(Message{
		Content: "hello",
		Embeds: []Embed{{
			Title:         "Jak na pohovor",
			Author:        "Honza",
			ThumbnailFile: "honza.png",
			Timestamp:     time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC),
		}},
		Files:          []File{{Name: "honza.png", Path: avatar}},
		Buttons:        []LinkButton{{Label: "Záznam"}, {Label: "Záznam", URL: "https://youtu.be/1"}},
		SuppressEmbeds: true,
	})
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, "hello", send.Content)
	require.Equal(t, "attachment://honza.png", send.Embeds[0].Thumbnail.URL)
	require.Equal(t, "Honza", send.Embeds[0].Author.Name)
	require.Equal(t, "2024-01-02T18:00:00Z", send.Embeds[0].Timestamp)
	require.Nil(t, send.Embeds[0].Footer)
	require.Len(t, send.Files, 1)
	require.Len(t, send.Components, 1)

	_, err = toMessageSend(Message{Files: []File{{Name: "missing.png", Path: filepath.Join(dir, "missing.png")}}})
	require.Error(t, err)
}
