package db

import (
	"context"
	"database/sql"
)

const createWisdom = `-- name: CreateWisdom :exec
insert into wisdoms (name, text) values (?, ?)
`

func (q *Queries) CreateWisdom(ctx context.Context, name, text string) error {
	_, err := q.db.ExecContext(ctx, createWisdom, name, text)
	return err
}

const listWisdoms = `-- name: ListWisdoms :many
select id, name, text from wisdoms order by id
`

func (q *Queries) ListWisdoms(ctx context.Context) ([]Wisdom, error) {
	rows, err := q.db.QueryContext(ctx, listWisdoms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wisdom
	for rows.Next() {
		var i Wisdom
		if err := rows.Scan(&i.ID, &i.Name, &i.Text); err != nil {
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

const createEvent = `-- name: CreateEvent :exec
insert into events (title, url, start_at, bio_name, avatar_path, recording_url)
values (?, ?, ?, ?, ?, ?)
`

type CreateEventParams struct {
	Title        string
	Url          string
	StartAt      int64
	BioName      string
	AvatarPath   string
	RecordingUrl sql.NullString
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Title,
		arg.Url,
		arg.StartAt,
		arg.BioName,
		arg.AvatarPath,
		arg.RecordingUrl,
	)
	return err
}

const listArchivedEvents = `-- name: ListArchivedEvents :many
select id, title, url, start_at, bio_name, avatar_path, recording_url from events
where start_at < ?
order by start_at desc
`

// ListArchivedEvents lists events which started before the given unix time, newest first.
func (q *Queries) ListArchivedEvents(ctx context.Context, before int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listArchivedEvents, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Event
	for rows.Next() {
		var i Event
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Url,
			&i.StartAt,
			&i.BioName,
			&i.AvatarPath,
			&i.RecordingUrl,
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
