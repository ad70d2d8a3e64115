package chrono

import (
	"time"
	_ "time/tzdata"
)

// prague loads from the embedded tzdata when the host has no zoneinfo.
var prague *time.Location

func init() {
	var err error
	prague, err = time.LoadLocation("Europe/Prague")
	if err != nil {
		panic(err)
	}
}

// Prague returns a [*time.Location] for Europe/Prague, where the club lives.
func Prague() *time.Location {
	return prague
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in Europe/Prague.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now().In(prague)
}

// FixedTime always returns the same instant, useful for `--today` style overrides and tests.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At
}

// Date truncates t to a calendar date at midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FromUnixDate converts a unix timestamp into its calendar date in UTC.
func FromUnixDate(ts int64) time.Time {
	return Date(time.Unix(ts, 0).UTC())
}

const DateLayout = "2006-01-02"
