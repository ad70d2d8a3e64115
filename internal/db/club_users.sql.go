package db

import (
	"context"
	"database/sql"
)

const clubUserColumns = `id, display_name, is_member, is_bot, first_seen_on, subscription_id, expires_at, coupon_base, joined_at`

func scanClubUser(row interface{ Scan(...any) error }) (ClubUser, error) {
	var i ClubUser
	err := row.Scan(
		&i.ID,
		&i.DisplayName,
		&i.IsMember,
		&i.IsBot,
		&i.FirstSeenOn,
		&i.SubscriptionID,
		&i.ExpiresAt,
		&i.CouponBase,
		&i.JoinedAt,
	)
	return i, err
}

func collectClubUsers(rows *sql.Rows) ([]ClubUser, error) {
	defer rows.Close()
	var items []ClubUser
	for rows.Next() {
		i, err := scanClubUser(rows)
		if err != nil {
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

const createClubUser = `-- name: CreateClubUser :exec
insert into club_users (id, display_name, is_member, is_bot, first_seen_on, joined_at)
values (?, ?, ?, ?, ?, ?)
`

type CreateClubUserParams struct {
	ID          int64
	DisplayName string
	IsMember    bool
	IsBot       bool
	FirstSeenOn string
	JoinedAt    sql.NullInt64
}

func (q *Queries) CreateClubUser(ctx context.Context, arg CreateClubUserParams) error {
	_, err := q.db.ExecContext(ctx, createClubUser,
		arg.ID,
		arg.DisplayName,
		arg.IsMember,
		arg.IsBot,
		arg.FirstSeenOn,
		arg.JoinedAt,
	)
	return err
}

const getClubUser = `-- name: GetClubUser :one
select ` + clubUserColumns + ` from club_users where id = ?
`

func (q *Queries) GetClubUser(ctx context.Context, id int64) (ClubUser, error) {
	row := q.db.QueryRowContext(ctx, getClubUser, id)
	return scanClubUser(row)
}

const listClubUsers = `-- name: ListClubUsers :many
select ` + clubUserColumns + ` from club_users order by id
`

func (q *Queries) ListClubUsers(ctx context.Context) ([]ClubUser, error) {
	rows, err := q.db.QueryContext(ctx, listClubUsers)
	if err != nil {
		return nil, err
	}
	return collectClubUsers(rows)
}

const listClubUsersByCouponBase = `-- name: ListClubUsersByCouponBase :many
select ` + clubUserColumns + ` from club_users
where coupon_base = ? and subscription_id is not null and expires_at is not null
order by display_name
`

// ListClubUsersByCouponBase lists members with a known subscription whose
// active coupon belongs to the given coupon base, ex. employees of a company.
func (q *Queries) ListClubUsersByCouponBase(ctx context.Context, couponBase string) ([]ClubUser, error) {
	rows, err := q.db.QueryContext(ctx, listClubUsersByCouponBase, couponBase)
	if err != nil {
		return nil, err
	}
	return collectClubUsers(rows)
}

const updateClubUserMembership = `-- name: UpdateClubUserMembership :exec
update club_users
set subscription_id = ?, expires_at = ?, coupon_base = ?, joined_at = ?
where id = ?
`

type UpdateClubUserMembershipParams struct {
	SubscriptionID sql.NullString
	ExpiresAt      sql.NullInt64
	CouponBase     sql.NullString
	JoinedAt       sql.NullInt64
	ID             int64
}

func (q *Queries) UpdateClubUserMembership(ctx context.Context, arg UpdateClubUserMembershipParams) error {
	_, err := q.db.ExecContext(ctx, updateClubUserMembership,
		arg.SubscriptionID,
		arg.ExpiresAt,
		arg.CouponBase,
		arg.JoinedAt,
		arg.ID,
	)
	return err
}

const updateClubUserExpiresAt = `-- name: UpdateClubUserExpiresAt :exec
update club_users set expires_at = ? where id = ?
`

func (q *Queries) UpdateClubUserExpiresAt(ctx context.Context, id int64, expiresAt int64) error {
	_, err := q.db.ExecContext(ctx, updateClubUserExpiresAt, expiresAt, id)
	return err
}
