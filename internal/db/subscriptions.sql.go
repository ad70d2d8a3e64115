package db

import (
	"context"
	"database/sql"
)

const createSubscribedPeriod = `-- name: CreateSubscribedPeriod :exec
insert into subscribed_periods (start_on, end_on, coupon_base, has_feminine_name)
values (?, ?, ?, ?)
`

type CreateSubscribedPeriodParams struct {
	StartOn         string
	EndOn           string
	CouponBase      sql.NullString
	HasFeminineName bool
}

func (q *Queries) CreateSubscribedPeriod(ctx context.Context, arg CreateSubscribedPeriodParams) error {
	_, err := q.db.ExecContext(ctx, createSubscribedPeriod,
		arg.StartOn,
		arg.EndOn,
		arg.CouponBase,
		arg.HasFeminineName,
	)
	return err
}

const listSubscribedPeriods = `-- name: ListSubscribedPeriods :many
select id, start_on, end_on, coupon_base, has_feminine_name from subscribed_periods
order by id
`

func (q *Queries) ListSubscribedPeriods(ctx context.Context) ([]SubscribedPeriod, error) {
	rows, err := q.db.QueryContext(ctx, listSubscribedPeriods)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SubscribedPeriod
	for rows.Next() {
		var i SubscribedPeriod
		if err := rows.Scan(
			&i.ID,
			&i.StartOn,
			&i.EndOn,
			&i.CouponBase,
			&i.HasFeminineName,
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

const createCompanyStudentSubscription = `-- name: CreateCompanyStudentSubscription :exec
insert into company_student_subscriptions (company_id, memberful_id, name, email, started_on, invoiced_on)
values (?, ?, ?, ?, ?, ?)
`

type CreateCompanyStudentSubscriptionParams struct {
	CompanyID   int64
	MemberfulID string
	Name        string
	Email       string
	StartedOn   string
	InvoicedOn  sql.NullString
}

func (q *Queries) CreateCompanyStudentSubscription(ctx context.Context, arg CreateCompanyStudentSubscriptionParams) error {
	_, err := q.db.ExecContext(ctx, createCompanyStudentSubscription,
		arg.CompanyID,
		arg.MemberfulID,
		arg.Name,
		arg.Email,
		arg.StartedOn,
		arg.InvoicedOn,
	)
	return err
}

const listCompanyStudentSubscriptions = `-- name: ListCompanyStudentSubscriptions :many
select id, company_id, memberful_id, name, email, started_on, invoiced_on
from company_student_subscriptions
order by id
`

func (q *Queries) ListCompanyStudentSubscriptions(ctx context.Context) ([]CompanyStudentSubscription, error) {
	rows, err := q.db.QueryContext(ctx, listCompanyStudentSubscriptions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CompanyStudentSubscription
	for rows.Next() {
		var i CompanyStudentSubscription
		if err := rows.Scan(
			&i.ID,
			&i.CompanyID,
			&i.MemberfulID,
			&i.Name,
			&i.Email,
			&i.StartedOn,
			&i.InvoicedOn,
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
