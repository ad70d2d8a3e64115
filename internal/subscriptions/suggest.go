package subscriptions

import (
	"juniorguru-sync/internal/db"
	"strings"

	"github.com/antzucaro/matchr"
)

const suggestionThreshold = 0.9

// SuggestDiscordName finds the local display name most similar to a member's
// full name. It returns "" when nothing is similar enough.
func SuggestDiscordName(fullName string, users []db.ClubUser) string {
	fullName = strings.ToLower(strings.TrimSpace(fullName))
	if fullName == "" {
		return ""
	}

	best := ""
	bestScore := suggestionThreshold
	for _, user := range users {
		if user.IsBot {
			continue
		}
		name := strings.TrimSpace(user.DisplayName)
		if name == "" {
			continue
		}
		score := matchr.JaroWinkler(fullName, strings.ToLower(name), false)
		if score >= bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}
