package subscriptions

import (
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/sheets"
	"strings"
	"time"
)

// StudentFields are the per-school columns of a record.
type StudentFields struct {
	// Since is zero when the member never paid with the school's coupon.
	Since    time.Time
	Months   []string
	Invoiced string
}

// Record is one row of the subscriptions worksheet. Empty strings and zero
// times render as blank cells.
type Record struct {
	Name                  string
	DiscordName           string
	Gender                string
	Email                 string
	MemberfulID           string
	StripeID              string
	DiscordID             string
	DiscordNameSuggestion string
	InvoiceID             string
	MemberfulActive       bool
	MemberfulSince        time.Time
	MemberfulEnd          time.Time
	Coupon                string
	CouponBase            string
	DiscordMember         bool
	DiscordSince          time.Time
	PastDue               bool
	// Students has one entry per school, in the order of Header's schools.
	Students []StudentFields
}

// School is the minimal view of a company offering student coupons.
type School struct {
	ID                int64
	Name              string
	Slug              string
	StudentCouponBase string
}

var baseHeader = []string{
	"Name",
	"Discord Name",
	"Gender",
	"E-mail",
	"Memberful ID",
	"Stripe ID",
	"Discord ID",
	"Discord Name Suggestion",
	"Invoice ID",
	"Memberful Active?",
	"Memberful Since",
	"Memberful End",
	"Memberful Coupon",
	"Memberful Coupon Base",
	"Discord Member?",
	"Discord Since",
	"Memberful Past Due?",
}

// Header returns the worksheet header for the given schools.
func Header(schools []School) []string {
	header := append([]string{}, baseHeader...)
	for _, school := range schools {
		header = append(header,
			school.Name+" Student Since",
			school.Name+" Student Months",
			school.Name+" Student Invoiced?",
		)
	}
	return header
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(chrono.DateLayout)
}

// Row renders the record in the column order of Header.
func (r Record) Row() []any {
	row := []any{
		r.Name,
		r.DiscordName,
		r.Gender,
		r.Email,
		r.MemberfulID,
		r.StripeID,
		r.DiscordID,
		r.DiscordNameSuggestion,
		r.InvoiceID,
		r.MemberfulActive,
		formatDate(r.MemberfulSince),
		formatDate(r.MemberfulEnd),
		r.Coupon,
		r.CouponBase,
		r.DiscordMember,
		formatDate(r.DiscordSince),
		r.PastDue,
	}
	for _, student := range r.Students {
		row = append(row,
			formatDate(student.Since),
			strings.Join(student.Months, ", "),
			student.Invoiced,
		)
	}
	return row
}

// Table assembles the worksheet out of records.
func Table(schools []School, records []Record) sheets.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return sheets.Table{Header: Header(schools), Rows: rows}
}
