package board

import (
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"slices"
	"strings"
	"time"
)

var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	chrono.DateLayout,
}

// Listing is a job posted through the job board form.
type Listing struct {
	Timestamp   time.Time
	Title       string
	CompanyName string
	CompanyLink string
	Link        string
	Email       string
	Location    string
	// ApprovedOn is zero until the listing is approved.
	ApprovedOn time.Time
}

func (l Listing) IsApproved() bool {
	return !l.ApprovedOn.IsZero()
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, value, chrono.Prague())
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format %q", value)
}

// CoerceRecord converts a worksheet row into a listing.
func CoerceRecord(record map[string]string) (Listing, error) {
	get := func(key string) string {
		return strings.TrimSpace(record[key])
	}

	timestamp, err := parseTimestamp(get("Timestamp"))
	if err != nil {
		return Listing{}, err
	}
	listing := Listing{
		Timestamp:   timestamp,
		Title:       get("Job Title"),
		CompanyName: get("Company Name"),
		CompanyLink: get("Company Link"),
		Link:        get("Job Link"),
		Email:       get("Email"),
		Location:    get("Location"),
	}
	if approved := get("Approved"); approved != "" {
		listing.ApprovedOn, err = parseTimestamp(approved)
		if err != nil {
			return Listing{}, fmt.Errorf("approved: %w", err)
		}
	}
	return listing, nil
}

// Select keeps the approved listings, oldest first.
func Select(listings []Listing) []Listing {
	var selected []Listing
	for _, l := range listings {
		if l.IsApproved() {
			selected = append(selected, l)
		}
	}
	slices.SortStableFunc(selected, func(a, b Listing) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return selected
}
