package commands

import (
	"context"
	"juniorguru-sync/cmd/jgsync/globals"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/jobs/scraper"
	"juniorguru-sync/internal/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeJobsCmd)
}

var scrapeJobsCmd = &cobra.Command{
	Use:   "scrape-jobs",
	Short: "Scrapes junior job listings from jobs.cz into the database.",
	Run: func(cmd *cobra.Command, args []string) {
		g := globals.Get(cmd.Context())
		err := runScrapeJobs(cmd.Context(), g)
		if err != nil {
			serviceutil.Fatal("failed to scrape jobs", err)
		}
	},
}

func runScrapeJobs(ctx context.Context, g *globals.Value) error {
	database, err := g.Database(ctx)
	if err != nil {
		return err
	}
	spider := scraper.NewJobsCz(scraper.ClientOptions{
		RequestsPerSecond: g.Config.Jobs.RequestsPerSecond,
	}, g.Tel, g.Time)

	var jobs []scraper.Job
	for _, url := range g.Config.Jobs.ScrapeUrls {
		crawled, err := spider.Crawl(ctx, url)
		if err != nil {
			return err
		}
		jobs = append(jobs, crawled...)
	}

	err = scraper.Save(ctx, db.NewMakeTx(database), jobs, chrono.Date(g.Time.Now()))
	if err != nil {
		return err
	}
	g.Tel.ReportCount("scrape-jobs.saved", int64(len(jobs)))
	return nil
}
