package commands

import (
	"fmt"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/club"
)

func newDiscord(g *globals.Value) (club.Discord, error) {
	session, err := club.NewSession(g.Config.Env.DiscordApiKey, g.Config.Discord.GuildID, g.Tel)
	if err != nil {
		return nil, err
	}
	return club.NewGuard(session, g.Tel, g.Config.Env.DiscordMutationsEnabled), nil
}

func requireChannel(name, channelID string) error {
	if channelID == "" {
		return fmt.Errorf("discord.%s is not configured", name)
	}
	return nil
}
