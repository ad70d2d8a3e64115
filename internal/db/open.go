package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Open opens the club database. A remote libsql url takes precedence over the
// local sqlite file. The schema is applied before returning.
func Open(ctx context.Context, file, remoteUrl, authToken string) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	if remoteUrl != "" {
		dsn := remoteUrl
		if authToken != "" {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "authToken=" + url.QueryEscape(authToken)
		}
		database, err = sql.Open("libsql", dsn)
	} else {
		database, err = sql.Open("sqlite", file)
	}
	if err != nil {
		return nil, err
	}

	_, err = database.ExecContext(ctx, Schema)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return database, nil
}
