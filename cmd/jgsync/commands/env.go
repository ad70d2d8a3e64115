package commands

import (
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/config"
	"juniorguru-sync/internal/serviceutil"
	"slices"
)

// taskSecrets lists the environment variables each task can't run without.
var taskSecrets = map[string][]string{
	"subscriptions":               {config.MemberfulApiKey},
	"align-company-subscriptions": {config.MemberfulApiKey},
	"weekly-plans":                {config.DiscordApiKey},
	"events-archive":              {config.DiscordApiKey},
	"build-jobs":                  {config.GoogleServiceAccount},
}

// mustRequire exits when any secret needed by the given tasks is missing.
func mustRequire(g *globals.Value, taskNames ...string) {
	var keys []string
	for _, name := range taskNames {
		keys = append(keys, taskSecrets[name]...)
	}
	if slices.Contains(taskNames, "subscriptions") && g.Config.Env.GoogleSheetsMutationsEnabled {
		keys = append(keys, config.GoogleServiceAccount)
	}
	slices.Sort(keys)
	err := g.Config.Env.Require(slices.Compact(keys)...)
	if err != nil {
		serviceutil.Fatal("missing credentials", err)
	}
}
