package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// ResetDerived drops and recreates the tables derived from Memberful data.
func (q *Queries) ResetDerived(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, dropDerived)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, derivedSchema)
	return err
}
