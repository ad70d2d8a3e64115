package align

import (
	"context"
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/db"
	"time"
)

const (
	report_align_company_expires  = "align.company-expires-on"
	report_align_employee_behind  = "align.employee-behind"
	report_align_mutations        = "align.mutations"
	report_align_employee_updated = "align.employee-updated"
)

type Store interface {
	ListPayingCompanies(ctx context.Context) ([]db.Company, error)
	ListClubUsersByCouponBase(ctx context.Context, couponBase string) ([]db.ClubUser, error)
	UpdateClubUserExpiresAt(ctx context.Context, id int64, expiresAt int64) error
}

// Memberful changes the expiration of a remote subscription.
type Memberful interface {
	ChangeSubscriptionExpiration(ctx context.Context, id string, expiresAt int64) (int64, error)
}

// Job extends the subscriptions of company employees so they don't expire
// before the company's own subscription does.
type Job struct {
	store            Store
	memberful        Memberful
	tel              telemetry.API
	mutationsEnabled bool
}

func NewJob(store Store, memberful Memberful, tel telemetry.API, mutationsEnabled bool) Job {
	return Job{
		store:            store,
		memberful:        memberful,
		tel:              telemetry.NewScopedAPI("align", tel),
		mutationsEnabled: mutationsEnabled,
	}
}

// Run returns the number of subscriptions that were extended.
func (j Job) Run(ctx context.Context) (int, error) {
	companies, err := j.store.ListPayingCompanies(ctx)
	if err != nil {
		return 0, fmt.Errorf("list paying companies: %w", err)
	}

	updated := 0
	for _, company := range companies {
		expiresOn, err := time.Parse(chrono.DateLayout, company.ExpiresOn.String)
		if err != nil {
			j.tel.ReportWarning(report_align_company_expires, "invalid date", company.Name, company.ExpiresOn.String)
			continue
		}
		j.tel.ReportDebug("company subscription expires", company.Name, company.ExpiresOn.String)

		employees, err := j.store.ListClubUsersByCouponBase(ctx, company.CouponBase.String)
		if err != nil {
			return updated, fmt.Errorf("list employees of %s: %w", company.Name, err)
		}
		for _, employee := range employees {
			n, err := j.alignEmployee(ctx, company, expiresOn, employee)
			if err != nil {
				return updated, err
			}
			updated += n
		}
	}
	return updated, nil
}

func (j Job) alignEmployee(ctx context.Context, company db.Company, expiresOn time.Time, employee db.ClubUser) (int, error) {
	employeeExpiresOn := chrono.FromUnixDate(employee.ExpiresAt.Int64)
	if !employeeExpiresOn.Before(expiresOn) {
		j.tel.ReportDebug("employee is aligned", company.Name, employee.DisplayName)
		return 0, nil
	}

	j.tel.ReportWarning(
		report_align_employee_behind,
		company.Name, employee.DisplayName,
		employeeExpiresOn.Format(chrono.DateLayout),
		expiresOn.Format(chrono.DateLayout),
	)
	if !j.mutationsEnabled {
		j.tel.ReportWarning(report_align_mutations, "memberful mutations not enabled")
		return 0, nil
	}

	_, err := j.memberful.ChangeSubscriptionExpiration(ctx, employee.SubscriptionID.String, expiresOn.Unix())
	if err != nil {
		return 0, fmt.Errorf("change expiration of %s: %w", employee.SubscriptionID.String, err)
	}
	err = j.store.UpdateClubUserExpiresAt(ctx, employee.ID, expiresOn.Unix())
	if err != nil {
		return 0, fmt.Errorf("update club user %d: %w", employee.ID, err)
	}
	j.tel.ReportDebug(report_align_employee_updated, employee.DisplayName, expiresOn.Format(chrono.DateLayout))
	return 1, nil
}
