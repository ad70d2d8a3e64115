package club

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// weekRe matches forum thread names such as "Týden 4.3. - 10.3." or
// "Týden 26.2. - 3.3.24".
var weekRe = regexp.MustCompile(`^Týden` +
	`\s*` +
	`0?(?P<start_day>\d+)` +
	`(\s*.\s*)?` +
	`0?(?P<start_month>\d+)?` +
	`(\s*.\s*)?` +
	`\s*-\s*` +
	`0?(?P<end_day>\d+)` +
	`(\s*.\s*)?` +
	`0?(?P<end_month>\d+)` +
	`(\s*.\s*)?` +
	`(?P<year>(20)?\d{2})?`)

// Monday returns the Monday of the week t falls into, at midnight UTC.
func Monday(t time.Time) time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// ParseWeek returns the Monday of the week a weekly plans thread is named
// after. Names without a year are assumed to be in the given year.
func ParseWeek(name string, year int) (time.Time, error) {
	match := weekRe.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, fmt.Errorf("unable to parse week from %q", name)
	}
	group := func(name string) string {
		return match[weekRe.SubexpIndex(name)]
	}

	day, err := strconv.Atoi(group("start_day"))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week %q: %w", name, err)
	}
	rawMonth := group("start_month")
	if rawMonth == "" {
		rawMonth = group("end_month")
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week %q: %w", name, err)
	}
	if rawYear := group("year"); rawYear != "" {
		year, err = strconv.Atoi(rawYear)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse week %q: %w", name, err)
		}
		if year < 100 {
			year += 2000
		}
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if start.Day() != day || int(start.Month()) != month {
		return time.Time{}, fmt.Errorf("parse week %q: %d.%d.%d is not a date", name, day, month, year)
	}
	return Monday(start), nil
}

// WeekName formats the thread name for the week starting on monday.
func WeekName(monday time.Time) string {
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf(
		"Týden %d.%d. - %d.%d.",
		monday.Day(), monday.Month(),
		sunday.Day(), sunday.Month(),
	)
}
