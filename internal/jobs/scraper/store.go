package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/db"
	"time"
)

func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, _ := json.Marshal(values)
	return string(encoded)
}

// ToScrapedJob converts a job into its row, seenOn becomes last_seen_on.
func ToScrapedJob(job Job, seenOn time.Time) db.ScrapedJob {
	return db.ScrapedJob{
		Url:                 job.URL,
		Source:              Source,
		Title:               job.Title,
		CompanyName:         job.CompanyName,
		CompanyLogoUrls:     encodeList(job.CompanyLogoURLs),
		LocationsRaw:        encodeList(job.Locations),
		SourceUrls:          encodeList(job.SourceURLs),
		DescriptionMarkdown: job.DescriptionMarkdown,
		FirstSeenOn:         job.FirstSeenOn.Format(chrono.DateLayout),
		LastSeenOn:          seenOn.Format(chrono.DateLayout),
	}
}

// Save upserts the jobs in a single transaction.
func Save(ctx context.Context, makeTx db.MakeTx, jobs []Job, seenOn time.Time) error {
	tx, discard, commit, err := makeTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer discard()

	for _, job := range jobs {
		err = tx.UpsertScrapedJob(ctx, ToScrapedJob(job, seenOn))
		if err != nil {
			return fmt.Errorf("upsert %s: %w", job.URL, err)
		}
	}
	return commit()
}
