package globals

import (
	"context"
	"database/sql"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/config"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/tasks"
)

type key struct{}

type Value struct {
	Config config.Config
	Tel    telemetry.API
	Time   chrono.TimeAPI
	Tasks  *tasks.Registry
	Otel   telemetry.Otel

	database *sql.DB
}

// Database opens the club database on first use.
func (v *Value) Database(ctx context.Context) (*sql.DB, error) {
	if v.database != nil {
		return v.database, nil
	}
	cfg := v.Config.Database
	database, err := db.Open(ctx, cfg.File, cfg.Url, cfg.AuthToken)
	if err != nil {
		return nil, err
	}
	v.database = database
	return database, nil
}

func (v *Value) Close(ctx context.Context) error {
	var err error
	if v.database != nil {
		err = v.database.Close()
	}
	if shutdownErr := v.Otel.Shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
