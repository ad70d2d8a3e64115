package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MemberfulApiKey              = "MEMBERFUL_API_KEY"
	DiscordApiKey                = "DISCORD_API_KEY"
	GoogleServiceAccount         = "GOOGLE_SERVICE_ACCOUNT"
	GoogleSheetsMutationsEnabled = "GOOGLE_SHEETS_MUTATIONS_ENABLED"
	MemberfulMutationsEnabled    = "MEMBERFUL_MUTATIONS_ENABLED"
	DiscordMutationsEnabled      = "DISCORD_MUTATIONS_ENABLED"
)

// Env holds the secrets and mutation switches read from the process environment.
// Mutation switches default to off.
type Env struct {
	MemberfulApiKey              string `mapstructure:"MEMBERFUL_API_KEY"`
	DiscordApiKey                string `mapstructure:"DISCORD_API_KEY"`
	GoogleServiceAccount         string `mapstructure:"GOOGLE_SERVICE_ACCOUNT"`
	GoogleSheetsMutationsEnabled bool   `mapstructure:"GOOGLE_SHEETS_MUTATIONS_ENABLED"`
	MemberfulMutationsEnabled    bool   `mapstructure:"MEMBERFUL_MUTATIONS_ENABLED"`
	DiscordMutationsEnabled      bool   `mapstructure:"DISCORD_MUTATIONS_ENABLED"`
}

// LoadEnv reads Env from the environment, a .env file in the working directory
// is loaded first if present (it never overrides variables that are already set).
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(GoogleSheetsMutationsEnabled, false)
	v.SetDefault(MemberfulMutationsEnabled, false)
	v.SetDefault(DiscordMutationsEnabled, false)
	v.AutomaticEnv()

	for _, key := range []string{
		MemberfulApiKey,
		DiscordApiKey,
		GoogleServiceAccount,
		GoogleSheetsMutationsEnabled,
		MemberfulMutationsEnabled,
		DiscordMutationsEnabled,
	} {
		_ = v.BindEnv(key)
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Require returns an error naming every one of the given secrets that is unset.
func (e Env) Require(keys ...string) error {
	values := map[string]string{
		MemberfulApiKey:      e.MemberfulApiKey,
		DiscordApiKey:        e.DiscordApiKey,
		GoogleServiceAccount: e.GoogleServiceAccount,
	}

	var missing []string
	for _, key := range keys {
		if strings.TrimSpace(values[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
