package club

import (
	"cmp"
	"context"
	"fmt"
	"juniorguru-sync/internal/components/telemetry"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mazen160/go-random"
)

const (
	report_session_purge = "session.purge"
	purgeBatchSize       = 100
	archivedThreadsLimit = 50
)

// Session implements Discord over the REST API of discordgo, it never opens
// the gateway websocket.
type Session struct {
	session *discordgo.Session
	guildID string
	tel     telemetry.API
}

func NewSession(token, guildID string, tel telemetry.API) (Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return Session{}, fmt.Errorf("create discord session: %w", err)
	}
	return Session{
		session: session,
		guildID: guildID,
		tel:     telemetry.NewScopedAPI("discord", tel),
	}, nil
}

func snowflake(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}

func (s Session) ForumThreads(ctx context.Context, channelID string) ([]Thread, error) {
	active, err := s.session.GuildThreadsActive(s.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list active threads: %w", err)
	}
	archived, err := s.session.ThreadsArchived(channelID, nil, archivedThreadsLimit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list archived threads: %w", err)
	}

	var threads []Thread
	for _, list := range []*discordgo.ThreadsList{active, archived} {
		for _, ch := range list.Threads {
			if ch.ParentID != channelID {
				continue
			}
			threads = append(threads, Thread{ID: ch.ID, Name: ch.Name})
		}
	}
	slices.SortFunc(threads, func(a, b Thread) int {
		return cmp.Compare(snowflake(b.ID), snowflake(a.ID))
	})
	return threads, nil
}

func (s Session) CreateForumThread(ctx context.Context, channelID string, post ForumPost) error {
	send, cleanup, err := toMessageSend(post.Message)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = s.session.ForumThreadStartComplex(
		channelID,
		&discordgo.ThreadStart{
			Name:                post.Name,
			AutoArchiveDuration: int(post.AutoArchive / time.Minute),
		},
		send,
		discordgo.WithContext(ctx),
	)
	return err
}

func (s Session) PurgeChannel(ctx context.Context, channelID string) error {
	deleted := 0
	for {
		messages, err := s.session.ChannelMessages(channelID, purgeBatchSize, "", "", "", discordgo.WithContext(ctx))
		if err != nil {
			s.tel.ReportBroken(report_session_purge, err, channelID)
			return fmt.Errorf("list messages: %w", err)
		}
		if len(messages) == 0 {
			break
		}
		for _, msg := range messages {
			err = s.session.ChannelMessageDelete(channelID, msg.ID, discordgo.WithContext(ctx))
			if err != nil {
				s.tel.ReportBroken(report_session_purge, err, channelID, msg.ID)
				return fmt.Errorf("delete message %s: %w", msg.ID, err)
			}
			deleted++
		}
	}
	s.tel.ReportDebug("purged channel", channelID, deleted)
	return nil
}

func (s Session) SendMessage(ctx context.Context, channelID string, msg Message) error {
	send, cleanup, err := toMessageSend(msg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = s.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	return err
}

func toEmbed(e Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if e.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: e.Author}
	}
	if e.ThumbnailFile != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: "attachment://" + e.ThumbnailFile}
	}
	if !e.Timestamp.IsZero() {
		embed.Timestamp = e.Timestamp.Format(time.RFC3339)
	}
	return embed
}

func toButton(b LinkButton) (discordgo.Button, error) {
	if b.URL != "" {
		return discordgo.Button{
			Label: b.Label,
			Style: discordgo.LinkButton,
			URL:   b.URL,
		}, nil
	}
	// non-link buttons need a custom id even when disabled
	customID, err := random.String(16)
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("generate button id: %w", err)
	}
	return discordgo.Button{
		Label:    b.Label,
		Style:    discordgo.SecondaryButton,
		Disabled: true,
		CustomID: customID,
	}, nil
}

// toMessageSend converts a message, cleanup closes the attached files.
func toMessageSend(msg Message) (*discordgo.MessageSend, func(), error) {
	send := &discordgo.MessageSend{Content: msg.Content}
	if msg.SuppressEmbeds {
		send.Flags = discordgo.MessageFlagsSuppressEmbeds
	}
	for _, e := range msg.Embeds {
		send.Embeds = append(send.Embeds, toEmbed(e))
	}

	if len(msg.Buttons) > 0 {
		row := discordgo.ActionsRow{}
		for _, b := range msg.Buttons {
			button, err := toButton(b)
			if err != nil {
				return nil, func() {}, err
			}
			row.Components = append(row.Components, button)
		}
		send.Components = []discordgo.MessageComponent{row}
	}

	var opened []*os.File
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, file := range msg.Files {
		f, err := os.Open(file.Path)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("open attachment: %w", err)
		}
		opened = append(opened, f)
		send.Files = append(send.Files, &discordgo.File{Name: file.Name, Reader: f})
	}
	return send, cleanup, nil
}
