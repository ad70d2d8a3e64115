package db

import (
	"context"
	"database/sql"
)

func collectCompanies(rows *sql.Rows) ([]Company, error) {
	defer rows.Close()
	var items []Company
	for rows.Next() {
		var i Company
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.CouponBase,
			&i.StudentCouponBase,
			&i.ExpiresOn,
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

const createCompany = `-- name: CreateCompany :one
insert into companies (name, slug, coupon_base, student_coupon_base, expires_on)
values (?, ?, ?, ?, ?)
returning id
`

type CreateCompanyParams struct {
	Name              string
	Slug              string
	CouponBase        sql.NullString
	StudentCouponBase sql.NullString
	ExpiresOn         sql.NullString
}

func (q *Queries) CreateCompany(ctx context.Context, arg CreateCompanyParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createCompany,
		arg.Name,
		arg.Slug,
		arg.CouponBase,
		arg.StudentCouponBase,
		arg.ExpiresOn,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listSchools = `-- name: ListSchools :many
select id, name, slug, coupon_base, student_coupon_base, expires_on from companies
where student_coupon_base is not null and student_coupon_base != ''
order by name
`

// ListSchools lists companies which sponsor student memberships.
func (q *Queries) ListSchools(ctx context.Context) ([]Company, error) {
	rows, err := q.db.QueryContext(ctx, listSchools)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

const listPayingCompanies = `-- name: ListPayingCompanies :many
select id, name, slug, coupon_base, student_coupon_base, expires_on from companies
where expires_on is not null and coupon_base is not null
order by name
`

// ListPayingCompanies lists companies with a paid-until date for their employees.
func (q *Queries) ListPayingCompanies(ctx context.Context) ([]Company, error) {
	rows, err := q.db.QueryContext(ctx, listPayingCompanies)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}
