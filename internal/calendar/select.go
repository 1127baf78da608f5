package calendar

import "time"

// Range places a date relative to the published calendar.
type Range int

const (
	InRange Range = iota
	BeforeRange
	AfterRange
)

// String returns a short identifier used in JSON output.
func (r Range) String() string {
	switch r {
	case BeforeRange:
		return "before"
	case AfterRange:
		return "after"
	default:
		return "in"
	}
}

// SelectDay returns the record whose date label matches now's month and day.
// If none matches it returns the first record and false. An empty calendar
// yields a zero record and false.
func SelectDay(c Calendar, now time.Time) (DayRecord, bool) {
	for _, d := range c {
		month, day, err := ParseDateLabel(d.Date)
		if err != nil {
			continue
		}
		if month == now.Month() && day == now.Day() {
			return d, true
		}
	}
	if len(c) == 0 {
		return DayRecord{}, false
	}
	return c[0], false
}

// RangeOf reports whether now's month and day fall before, inside, or after
// the calendar's span in the publication year.
func RangeOf(c Calendar, now time.Time) Range {
	if len(c) == 0 {
		return AfterRange
	}

	loc := now.Location()
	first, err := c[0].DateIn(loc)
	if err != nil {
		return InRange
	}
	last, err := c[len(c)-1].DateIn(loc)
	if err != nil {
		return InRange
	}

	today := time.Date(PublicationYear, now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch {
	case today.Before(first):
		return BeforeRange
	case today.After(last):
		return AfterRange
	default:
		return InRange
	}
}
