// Package export writes the effective calendar as iCalendar, CSV or JSON so
// it can be imported into other calendar apps.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

// ProductID identifies the generator in iCalendar output.
const ProductID = "-//ramazon//Ramazon 2026//UZ"

// Format names accepted by Write.
const (
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Options controls what an export contains.
type Options struct {
	District calendar.DistrictOffset
	Location *time.Location
	// LeadMinutes adds a VALARM this many minutes before each event. Zero
	// disables alarms.
	LeadMinutes int
	// Stamp is written as DTSTAMP. Zero uses the current time.
	Stamp time.Time
}

// Write exports cal in the named format.
func Write(w io.Writer, format string, cal calendar.Calendar, opts Options) error {
	switch strings.ToLower(format) {
	case FormatICS, "":
		return WriteICS(w, cal, opts)
	case FormatCSV:
		return WriteCSV(w, cal, opts)
	case FormatJSON:
		return WriteJSON(w, cal, opts)
	default:
		return fmt.Errorf("unknown export format %q; valid: ics, csv, json", format)
	}
}

// icsWriter accumulates CRLF-terminated lines and keeps the first error.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format+"\r\n", args...)
}

// WriteICS writes one timed event per anchor per day.
func WriteICS(w io.Writer, cal calendar.Calendar, opts Options) error {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	district := opts.District.Name

	iw := &icsWriter{w: w}
	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ProductID)
	iw.line("X-WR-CALNAME:%s", escapeText("Ramazon 2026 - "+district))
	iw.line("X-WR-TIMEZONE:%s", loc.String())
	iw.line("CALSCALE:GREGORIAN")

	for _, d := range cal {
		date, err := d.DateIn(loc)
		if err != nil {
			continue
		}
		writeEvent(iw, eventSpec{
			uid:      fmt.Sprintf("%s-sahar-%d@ramazon", slug(district), d.Day),
			at:       d.Start.On(date),
			summary:  "Saharlik",
			desc:     fmt.Sprintf("Ramazon %d-kun, %s: saharlik tugashi %s", d.Day, district, d.Start),
			alarm:    "Saharlik yaqinlashmoqda!",
			location: district,
		}, stamp, opts.LeadMinutes)
		writeEvent(iw, eventSpec{
			uid:      fmt.Sprintf("%s-iftor-%d@ramazon", slug(district), d.Day),
			at:       d.End.On(date),
			summary:  "Iftorlik",
			desc:     fmt.Sprintf("Ramazon %d-kun, %s: iftorlik %s", d.Day, district, d.End),
			alarm:    "Iftorlik yaqinlashmoqda!",
			location: district,
		}, stamp, opts.LeadMinutes)
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

type eventSpec struct {
	uid, summary, desc, alarm, location string
	at                                  time.Time
}

func writeEvent(iw *icsWriter, e eventSpec, stamp time.Time, lead int) {
	const utc = "20060102T150405Z"

	iw.line("BEGIN:VEVENT")
	iw.line("UID:%s", e.uid)
	iw.line("DTSTAMP:%s", stamp.UTC().Format(utc))
	iw.line("DTSTART:%s", e.at.UTC().Format(utc))
	iw.line("DTEND:%s", e.at.Add(15*time.Minute).UTC().Format(utc))
	iw.line("SUMMARY:%s", escapeText(e.summary))
	iw.line("DESCRIPTION:%s", escapeText(e.desc))
	iw.line("LOCATION:%s", escapeText(e.location))
	if lead > 0 {
		iw.line("BEGIN:VALARM")
		iw.line("ACTION:DISPLAY")
		iw.line("DESCRIPTION:%s", escapeText(e.alarm))
		iw.line("TRIGGER:-PT%dM", lead)
		iw.line("END:VALARM")
	}
	iw.line("END:VEVENT")
}

// escapeText escapes iCalendar TEXT values.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ReplaceAll(s, "'", "")
}

// WriteCSV writes a header and one row per day.
func WriteCSV(w io.Writer, cal calendar.Calendar, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Kun", "Sana", "Tuman", "Saharlik", "Iftorlik"}); err != nil {
		return err
	}
	for _, d := range cal {
		row := []string{strconv.Itoa(d.Day), d.Date, opts.District.Name, d.Start.String(), d.End.String()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the district and its effective calendar.
func WriteJSON(w io.Writer, cal calendar.Calendar, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		District calendar.DistrictOffset `json:"district"`
		Year     int                     `json:"year"`
		Days     calendar.Calendar       `json:"days"`
	}{opts.District, calendar.PublicationYear, cal})
}
