package align

import (
	"context"
	"database/sql"
	"errors"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mutation struct {
	id        string
	expiresAt int64
}

type fakeMemberful struct {
	mutations []mutation
	err       error
}

func (m *fakeMemberful) ChangeSubscriptionExpiration(ctx context.Context, id string, expiresAt int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mutations = append(m.mutations, mutation{id: id, expiresAt: expiresAt})
	return expiresAt, nil
}

func unix(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

func seed(t *testing.T, store *db.Queries) {
	t.Helper()
	ctx := context.Background()

	_, err := store.CreateCompany(ctx, db.CreateCompanyParams{
		Name:       "Acme",
		Slug:       "acme",
		CouponBase: sql.NullString{String: "ACME", Valid: true},
		ExpiresOn:  sql.NullString{String: "2024-12-31", Valid: true},
	})
	require.NoError(t, err)
	_, err = store.CreateCompany(ctx, db.CreateCompanyParams{
		Name:       "Former",
		Slug:       "former",
		CouponBase: sql.NullString{String: "FORMER", Valid: true},
	})
	require.NoError(t, err)

	employees := []struct {
		id             int64
		subscriptionID string
		coupon         string
		expiresAt      int64
	}{
		{1, "sub1", "ACME", unix(2024, 6, 30)},
		{2, "sub2", "ACME", unix(2025, 1, 31)},
		{3, "sub3", "FORMER", unix(2020, 1, 1)},
	}
	for _, e := range employees {
		require.NoError(t, store.CreateClubUser(ctx, db.CreateClubUserParams{
			ID:          e.id,
			DisplayName: "Employee",
			IsMember:    true,
			FirstSeenOn: "2023-01-01",
		}))
		require.NoError(t, store.UpdateClubUserMembership(ctx, db.UpdateClubUserMembershipParams{
			ID:             e.id,
			SubscriptionID: sql.NullString{String: e.subscriptionID, Valid: true},
			ExpiresAt:      sql.NullInt64{Int64: e.expiresAt, Valid: true},
			CouponBase:     sql.NullString{String: e.coupon, Valid: true},
		}))
	}
}

func TestRunMutationsEnabled(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenQueries(t)
	seed(t, store)

	memberful := &fakeMemberful{}
	tel := &telemetry.Mock{}
	updated, err := NewJob(store, memberful, tel, true).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, updated)
	require.Equal(t, []mutation{{id: "sub1", expiresAt: unix(2024, 12, 31)}}, memberful.mutations)
	require.True(t, tel.Has("warning", report_align_employee_behind))

	employee, err := store.GetClubUser(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, unix(2024, 12, 31), employee.ExpiresAt.Int64)

	untouched, err := store.GetClubUser(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, unix(2025, 1, 31), untouched.ExpiresAt.Int64)
}

func TestRunMutationsDisabled(t *testing.T) {
	ctx := context.Background()
	store := testutil.OpenQueries(t)
	seed(t, store)

	memberful := &fakeMemberful{}
	tel := &telemetry.Mock{}
	updated, err := NewJob(store, memberful, tel, false).Run(ctx)
	require.NoError(t, err)
	require.Zero(t, updated)
	require.Empty(t, memberful.mutations)
	require.True(t, tel.Has("warning", report_align_mutations))

	employee, err := store.GetClubUser(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, unix(2024, 6, 30), employee.ExpiresAt.Int64)
}

func TestRunMutationFails(t *testing.T) {
	store := testutil.OpenQueries(t)
	seed(t, store)

	_, err := NewJob(store, &fakeMemberful{err: errors.New("unauthorized")}, &telemetry.Mock{}, true).Run(context.Background())
	require.ErrorContains(t, err, "unauthorized")
}
