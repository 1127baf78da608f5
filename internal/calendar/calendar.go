// Package calendar holds the published Ramadan fasting calendar, the district
// offset table, and the pure functions that derive a district's effective
// calendar and pick the record for a given day.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PublicationYear is the year the built-in calendar was published for.
// Date labels carry no year; they are matched against this one.
const PublicationYear = 2026

// DayRecord is one row of the published calendar.
// Start is the end of the pre-dawn meal (saharlik), End is the fast-breaking
// time (iftor).
type DayRecord struct {
	Day   int       `json:"day"`
	Date  string    `json:"date"` // e.g. "19-Fevral"
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Calendar is an ordered sequence of day records, sorted by Day ascending.
type Calendar []DayRecord

// monthNames are the Uzbek (Latin) month names used in date labels.
var monthNames = map[string]time.Month{
	"Yanvar":  time.January,
	"Fevral":  time.February,
	"Mart":    time.March,
	"Aprel":   time.April,
	"May":     time.May,
	"Iyun":    time.June,
	"Iyul":    time.July,
	"Avgust":  time.August,
	"Sentabr": time.September,
	"Oktabr":  time.October,
	"Noyabr":  time.November,
	"Dekabr":  time.December,
}

// ParseDateLabel splits a label like "1-Mart" into its month and day.
func ParseDateLabel(label string) (time.Month, int, error) {
	dayStr, monthStr, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid date label %q", label)
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid day in date label %q", label)
	}

	month, ok := monthNames[monthStr]
	if !ok {
		return 0, 0, fmt.Errorf("unknown month %q in date label %q", monthStr, label)
	}

	return month, day, nil
}

// DateIn returns the record's calendar date in the publication year, at
// midnight in loc.
func (d DayRecord) DateIn(loc *time.Location) (time.Time, error) {
	month, day, err := ParseDateLabel(d.Date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(PublicationYear, month, day, 0, 0, 0, 0, loc), nil
}

// ByDay returns the record with the given day index.
func (c Calendar) ByDay(day int) (DayRecord, bool) {
	for _, d := range c {
		if d.Day == day {
			return d, true
		}
	}
	return DayRecord{}, false
}

// Next returns the record immediately following day, if any.
func (c Calendar) Next(day int) (DayRecord, bool) {
	for i, d := range c {
		if d.Day == day {
			if i+1 < len(c) {
				return c[i+1], true
			}
			return DayRecord{}, false
		}
	}
	return DayRecord{}, false
}

// Validate checks the published-calendar invariants: every label parses,
// Start < End on each day, and days ascend by one with no gaps.
func (c Calendar) Validate() error {
	if len(c) == 0 {
		return errors.New("calendar is empty")
	}
	for i, d := range c {
		if d.Day < 1 {
			return fmt.Errorf("day %d: index must be >= 1", d.Day)
		}
		if i > 0 && d.Day != c[i-1].Day+1 {
			return fmt.Errorf("day %d follows day %d: days must ascend without gaps", d.Day, c[i-1].Day)
		}
		if _, _, err := ParseDateLabel(d.Date); err != nil {
			return fmt.Errorf("day %d: %w", d.Day, err)
		}
		if d.Start >= d.End {
			return fmt.Errorf("day %d: start %s is not before end %s", d.Day, d.Start, d.End)
		}
	}
	return nil
}
