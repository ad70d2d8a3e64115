package db

import "context"

const upsertScrapedJob = `-- name: UpsertScrapedJob :exec
insert into scraped_jobs (
    url, source, title, company_name, company_logo_urls, locations_raw,
    source_urls, description_markdown, first_seen_on, last_seen_on
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict (url) do update set
    title = excluded.title,
    company_name = excluded.company_name,
    company_logo_urls = excluded.company_logo_urls,
    locations_raw = excluded.locations_raw,
    source_urls = excluded.source_urls,
    description_markdown = excluded.description_markdown,
    last_seen_on = excluded.last_seen_on
`

// UpsertScrapedJob inserts a job or refreshes an already known one, the
// first_seen_on of a known job is never moved.
func (q *Queries) UpsertScrapedJob(ctx context.Context, arg ScrapedJob) error {
	_, err := q.db.ExecContext(ctx, upsertScrapedJob,
		arg.Url,
		arg.Source,
		arg.Title,
		arg.CompanyName,
		arg.CompanyLogoUrls,
		arg.LocationsRaw,
		arg.SourceUrls,
		arg.DescriptionMarkdown,
		arg.FirstSeenOn,
		arg.LastSeenOn,
	)
	return err
}

const listScrapedJobs = `-- name: ListScrapedJobs :many
select url, source, title, company_name, company_logo_urls, locations_raw,
    source_urls, description_markdown, first_seen_on, last_seen_on
from scraped_jobs
order by first_seen_on desc, url
`

func (q *Queries) ListScrapedJobs(ctx context.Context) ([]ScrapedJob, error) {
	rows, err := q.db.QueryContext(ctx, listScrapedJobs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapedJob
	for rows.Next() {
		var i ScrapedJob
		if err := rows.Scan(
			&i.Url,
			&i.Source,
			&i.Title,
			&i.CompanyName,
			&i.CompanyLogoUrls,
			&i.LocationsRaw,
			&i.SourceUrls,
			&i.DescriptionMarkdown,
			&i.FirstSeenOn,
			&i.LastSeenOn,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
