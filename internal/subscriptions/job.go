package subscriptions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/coupon"
	"juniorguru-sync/internal/db"
	"juniorguru-sync/internal/memberful"
	"juniorguru-sync/internal/sheets"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("jgsync.subscriptions")

const (
	report_job_discord_id   = "job.discord-id"
	report_job_invoiced_on  = "job.invoiced-on"
	report_job_upload       = "job.upload"
	report_job_subscription = "job.subscription"
	report_job_unmatched    = "job.unmatched"
)

// Store is the slice of the local database the job reads and writes.
type Store interface {
	ResetDerived(ctx context.Context) error
	GetClubUser(ctx context.Context, id int64) (db.ClubUser, error)
	ListClubUsers(ctx context.Context) ([]db.ClubUser, error)
	UpdateClubUserMembership(ctx context.Context, arg db.UpdateClubUserMembershipParams) error
	ListSchools(ctx context.Context) ([]db.Company, error)
	CreateSubscribedPeriod(ctx context.Context, arg db.CreateSubscribedPeriodParams) error
	CreateCompanyStudentSubscription(ctx context.Context, arg db.CreateCompanyStudentSubscriptionParams) error
}

// Source yields every remote subscription.
type Source interface {
	Subscriptions() *memberful.Iterator[memberful.Subscription]
}

// Sink receives the assembled worksheet.
type Sink interface {
	Replace(ctx context.Context, worksheet string, table sheets.Table) error
}

type Options struct {
	Worksheet string
	// UploadEnabled mirrors GOOGLE_SHEETS_MUTATIONS_ENABLED.
	UploadEnabled bool
}

// Result is what a run produced, regardless of whether it was uploaded.
type Result struct {
	Schools  []School
	Records  []Record
	Periods  int
	Students int
	Uploaded bool
}

// Job reconciles Memberful subscriptions with the local club users.
type Job struct {
	store  Store
	source Source
	sink   Sink
	tel    telemetry.API
	opts   Options
}

func NewJob(store Store, source Source, sink Sink, tel telemetry.API, opts Options) Job {
	return Job{
		store:  store,
		source: source,
		sink:   sink,
		tel:    telemetry.NewScopedAPI("subscriptions", tel),
		opts:   opts,
	}
}

func toSchools(companies []db.Company) []School {
	schools := make([]School, len(companies))
	for i, c := range companies {
		schools[i] = School{
			ID:                c.ID,
			Name:              c.Name,
			Slug:              c.Slug,
			StudentCouponBase: c.StudentCouponBase.String,
		}
	}
	return schools
}

// Run performs a full reconciliation. Derived tables are rebuilt from scratch,
// so running it twice against the same data leaves the same state behind.
func (j Job) Run(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	err := j.store.ResetDerived(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reset derived tables: %w", err)
	}

	companies, err := j.store.ListSchools(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list schools: %w", err)
	}
	users, err := j.store.ListClubUsers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list club users: %w", err)
	}

	result := Result{Schools: toSchools(companies)}
	seen := make(map[string]struct{})

	subs := j.source.Subscriptions()
	for subs.Next(ctx) {
		page := subs.Page()
		for _, sub := range page.Items {
			record, err := j.reconcile(ctx, sub, result.Schools, users, seen, &result)
			if err != nil {
				j.tel.ReportBroken(report_job_subscription, err, sub.ID)
				return Result{}, err
			}
			result.Records = append(result.Records, record)
		}
	}
	if err := subs.Err(); err != nil {
		return Result{}, fmt.Errorf("fetch subscriptions: %w", err)
	}

	for _, user := range users {
		if user.IsBot {
			continue
		}
		if _, ok := seen[strconv.FormatInt(user.ID, 10)]; ok {
			continue
		}
		result.Records = append(result.Records, unmatchedRecord(user, len(result.Schools)))
	}
	j.tel.ReportCount(report_job_unmatched, int64(len(result.Records)-countMatched(result.Records)))
	span.SetAttributes(
		attribute.Int("records", len(result.Records)),
		attribute.Int("periods", result.Periods),
	)

	if !j.opts.UploadEnabled {
		j.tel.ReportWarning(report_job_upload, "google sheets mutations not enabled, skipping upload")
		return result, nil
	}
	err = j.sink.Replace(ctx, j.opts.Worksheet, Table(result.Schools, result.Records))
	if err != nil {
		return Result{}, fmt.Errorf("upload records: %w", err)
	}
	result.Uploaded = true
	return result, nil
}

func countMatched(records []Record) int {
	n := 0
	for _, r := range records {
		if r.MemberfulID != "" {
			n++
		}
	}
	return n
}

// lookupUser finds the club user linked to a member, nil when there is none.
func (j Job) lookupUser(ctx context.Context, discordID string) (*db.ClubUser, error) {
	if discordID == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(discordID, 10, 64)
	if err != nil {
		j.tel.ReportWarning(report_job_discord_id, "unparseable discord id", discordID)
		return nil, nil
	}
	user, err := j.store.GetClubUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club user %d: %w", id, err)
	}
	return &user, nil
}

func (j Job) reconcile(
	ctx context.Context,
	sub memberful.Subscription,
	schools []School,
	users []db.ClubUser,
	seen map[string]struct{},
	result *Result,
) (Record, error) {
	member := sub.Member
	name := strings.TrimSpace(member.FullName)
	feminine := HasFeminineName(name)
	activeCoupon := ActiveCoupon(sub)
	parts := coupon.Parse(activeCoupon)

	if member.DiscordUserID != "" {
		seen[member.DiscordUserID] = struct{}{}
	}
	user, err := j.lookupUser(ctx, member.DiscordUserID)
	if err != nil {
		return Record{}, err
	}
	if user != nil {
		err = j.updateUser(ctx, *user, sub, parts.CouponBase)
		if err != nil {
			return Record{}, err
		}
	}

	for _, period := range DerivePeriods(sub.ExpiresAt, sub.Orders) {
		err = j.store.CreateSubscribedPeriod(ctx, db.CreateSubscribedPeriodParams{
			StartOn:         period.StartOn.Format(chrono.DateLayout),
			EndOn:           period.EndOn.Format(chrono.DateLayout),
			CouponBase:      nullString(period.CouponBase),
			HasFeminineName: feminine,
		})
		if err != nil {
			return Record{}, fmt.Errorf("create subscribed period: %w", err)
		}
		result.Periods++
	}

	record := Record{
		Name:            name,
		Gender:          Gender(name),
		Email:           member.Email,
		MemberfulID:     member.ID,
		StripeID:        member.StripeCustomerID,
		DiscordID:       member.DiscordUserID,
		InvoiceID:       parts.InvoiceID,
		MemberfulActive: sub.Active,
		MemberfulSince:  chrono.FromUnixDate(sub.CreatedAt),
		MemberfulEnd:    chrono.FromUnixDate(sub.ExpiresAt),
		Coupon:          activeCoupon,
		CouponBase:      parts.CouponBase,
		PastDue:         sub.PastDue,
		Students:        make([]StudentFields, len(schools)),
	}
	if user != nil {
		record.DiscordName = strings.TrimSpace(user.DisplayName)
		record.DiscordMember = user.IsMember
		record.DiscordSince = parseDate(user.FirstSeenOn)
	}
	if member.DiscordUserID == "" {
		record.DiscordNameSuggestion = SuggestDiscordName(name, users)
	}

	for i, school := range schools {
		startedOn := StudentStartedOn(sub, school.StudentCouponBase)
		invoiced := member.MetadataString(school.Slug + "InvoicedOn")
		record.Students[i] = StudentFields{
			Since:    startedOn,
			Months:   StudentMonths(sub, school.StudentCouponBase),
			Invoiced: invoiced,
		}
		if startedOn.IsZero() {
			continue
		}

		var invoicedOn sql.NullString
		if invoiced != "" {
			date, err := time.Parse(chrono.DateLayout, invoiced)
			if err != nil {
				j.tel.ReportWarning(report_job_invoiced_on, "invalid invoiced date", member.ID, invoiced)
			} else {
				invoicedOn = nullString(date.Format(chrono.DateLayout))
			}
		}
		err = j.store.CreateCompanyStudentSubscription(ctx, db.CreateCompanyStudentSubscriptionParams{
			CompanyID:   school.ID,
			MemberfulID: member.ID,
			Name:        name,
			Email:       member.Email,
			StartedOn:   startedOn.Format(chrono.DateLayout),
			InvoicedOn:  invoicedOn,
		})
		if err != nil {
			return Record{}, fmt.Errorf("create company student subscription: %w", err)
		}
		result.Students++
	}

	return record, nil
}

func (j Job) updateUser(ctx context.Context, user db.ClubUser, sub memberful.Subscription, couponBase string) error {
	params := db.UpdateClubUserMembershipParams{
		SubscriptionID: user.SubscriptionID,
		ExpiresAt:      user.ExpiresAt,
		CouponBase:     user.CouponBase,
		JoinedAt:       user.JoinedAt,
		ID:             user.ID,
	}
	if sub.Active {
		params.SubscriptionID = nullString(sub.ID)
		params.ExpiresAt = sql.NullInt64{Int64: sub.ExpiresAt, Valid: true}
		params.CouponBase = nullString(couponBase)
	}
	if !user.JoinedAt.Valid || sub.CreatedAt < user.JoinedAt.Int64 {
		params.JoinedAt = sql.NullInt64{Int64: sub.CreatedAt, Valid: true}
	}

	err := j.store.UpdateClubUserMembership(ctx, params)
	if err != nil {
		return fmt.Errorf("update club user %d: %w", user.ID, err)
	}
	return nil
}

func unmatchedRecord(user db.ClubUser, schools int) Record {
	return Record{
		DiscordName:   strings.TrimSpace(user.DisplayName),
		DiscordID:     strconv.FormatInt(user.ID, 10),
		DiscordMember: user.IsMember,
		DiscordSince:  parseDate(user.FirstSeenOn),
		Students:      make([]StudentFields, schools),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(chrono.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
