package club

import (
	"context"
	"juniorguru-sync/internal/components/telemetry"
	"time"
)

const report_discord_mutations = "discord.mutations"

// Thread is a forum thread, Discord ids are kept as strings.
type Thread struct {
	ID   string
	Name string
}

type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Footer      string
	Author      string
	// ThumbnailFile names an attached File to use as the thumbnail.
	ThumbnailFile string
	Timestamp     time.Time
}

type File struct {
	Name string
	Path string
}

// LinkButton is a button opening URL, it is rendered disabled without one.
type LinkButton struct {
	Label string
	URL   string
}

type Message struct {
	Content        string
	Embeds         []Embed
	Files          []File
	Buttons        []LinkButton
	SuppressEmbeds bool
}

type ForumPost struct {
	Name    string
	Message Message
	// AutoArchive is rounded by Discord to one of its supported durations.
	AutoArchive time.Duration
}

// Discord is everything the club jobs do with the Discord API.
type Discord interface {
	// ForumThreads lists the threads of a forum channel, newest first.
	ForumThreads(ctx context.Context, channelID string) ([]Thread, error)
	CreateForumThread(ctx context.Context, channelID string, post ForumPost) error
	PurgeChannel(ctx context.Context, channelID string) error
	SendMessage(ctx context.Context, channelID string, msg Message) error
}

// Guard wraps a Discord so that mutations only go through when enabled,
// otherwise they are reported and skipped. Reads always go through.
type Guard struct {
	inner   Discord
	tel     telemetry.API
	enabled bool
}

func NewGuard(inner Discord, tel telemetry.API, enabled bool) Guard {
	return Guard{inner: inner, tel: tel, enabled: enabled}
}

func (g Guard) skip(action, channelID string) bool {
	if g.enabled {
		return false
	}
	g.tel.ReportWarning(report_discord_mutations, "discord mutations not enabled, skipping", action, channelID)
	return true
}

func (g Guard) ForumThreads(ctx context.Context, channelID string) ([]Thread, error) {
	return g.inner.ForumThreads(ctx, channelID)
}

func (g Guard) CreateForumThread(ctx context.Context, channelID string, post ForumPost) error {
	if g.skip("create forum thread", channelID) {
		return nil
	}
	return g.inner.CreateForumThread(ctx, channelID, post)
}

func (g Guard) PurgeChannel(ctx context.Context, channelID string) error {
	if g.skip("purge channel", channelID) {
		return nil
	}
	return g.inner.PurgeChannel(ctx, channelID)
}

func (g Guard) SendMessage(ctx context.Context, channelID string, msg Message) error {
	if g.skip("send message", channelID) {
		return nil
	}
	return g.inner.SendMessage(ctx, channelID, msg)
}
