package config

import (
	"errors"
	"fmt"
	"juniorguru-sync/internal/components/telemetry"
	"os"

	"dario.cat/mergo"
)

const FileName = "jgsync.json5"

type Database struct {
	// File is the path of a local sqlite database, used when Url is empty.
	File string `json:"file"`
	// Url is a remote libsql url (ex. libsql://club.turso.io).
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

type Memberful struct {
	// GraphqlUrl of the Memberful API, ex. https://juniorguru.memberful.com/api/graphql/
	GraphqlUrl string `json:"graphql_url"`
}

type Sheets struct {
	DocKey                 string `json:"doc_key"`
	SubscriptionsWorksheet string `json:"subscriptions_worksheet"`
	JobsWorksheet          string `json:"jobs_worksheet"`
}

type Discord struct {
	GuildID                string `json:"guild_id"`
	WeeklyPlansChannelID   string `json:"weekly_plans_channel_id"`
	EventsArchiveChannelID string `json:"events_archive_channel_id"`
}

type Jobs struct {
	ScrapeUrls []string `json:"scrape_urls"`
	// BoardOutput is the path the rendered job board is written to.
	BoardOutput string `json:"board_output"`
	// RequestsPerSecond limits the scraper, defaults to 1 / 1.25s.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

type Daemon struct {
	// Schedule is a cron spec, ex. "0 4 * * *"
	Schedule string `json:"schedule"`
}

// Config holds every structural setting of jgsync, it is built once at process
// start and passed down to the jobs. Secrets live in Env.
type Config struct {
	Database  Database         `json:"database"`
	Memberful Memberful        `json:"memberful"`
	Sheets    Sheets           `json:"sheets"`
	Discord   Discord          `json:"discord"`
	Jobs      Jobs             `json:"jobs"`
	Daemon    Daemon           `json:"daemon"`
	ImagesDir string           `json:"images_dir"`
	Telemetry telemetry.Config `json:"telemetry"`

	Env Env `json:"-"`
}

// Defaults returns the settings used when the config file leaves them out.
func Defaults() Config {
	return Config{
		Database: Database{File: "juniorguru.db"},
		Memberful: Memberful{
			GraphqlUrl: "https://juniorguru.memberful.com/api/graphql/",
		},
		Sheets: Sheets{
			DocKey:                 "1TO5Yzk0-4V_RzRK5Jr9I_pF5knZsEZrNn2HKTXrHgls",
			SubscriptionsWorksheet: "subscriptions",
			JobsWorksheet:          "jobs",
		},
		Jobs: Jobs{
			ScrapeUrls: []string{
				"https://beta.www.jobs.cz/prace/?field%5B%5D=200900013&field%5B%5D=200900012&suitable-for=graduates",
			},
			BoardOutput:       "public/jobs/index.html",
			RequestsPerSecond: 0.8,
		},
		Daemon:    Daemon{Schedule: "0 4 * * *"},
		ImagesDir: "juniorguru/images",
	}
}

// Load reads jgsync.json5 (if any is found up the directory tree) over the
// defaults and then the environment.
func Load() (Config, error) {
	cfg := Defaults()

	file, err := ReadRecursively[Config](FileName)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", FileName, err)
	}
	if err == nil {
		err = mergo.Merge(&cfg, file, mergo.WithOverride)
		if err != nil {
			return cfg, err
		}
	}

	cfg.Env, err = LoadEnv()
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
