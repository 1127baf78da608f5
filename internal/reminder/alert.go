// Package reminder fires the saharlik and iftorlik reminders a configurable
// number of minutes before each anchor and hands them to notification sinks.
package reminder

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

// Anchor names one of the day's two fixed times.
type Anchor int

const (
	// Start is the end of saharlik.
	Start Anchor = iota
	// End is iftorlik.
	End
)

func (a Anchor) String() string {
	if a == End {
		return "iftor"
	}
	return "sahar"
}

// Alert is one reminder ready for delivery.
type Alert struct {
	Anchor  Anchor
	Title   string
	Body    string
	Target  calendar.TimeOfDay // the anchor the alert warns about
	Lead    int                // minutes before Target
	FiredAt time.Time
}

// NewAlert builds the alert text for an anchor.
func NewAlert(a Anchor, target calendar.TimeOfDay, lead int, at time.Time) Alert {
	alert := Alert{Anchor: a, Target: target, Lead: lead, FiredAt: at}
	switch a {
	case End:
		alert.Title = "Iftorlik yaqinlashmoqda!"
		alert.Body = fmt.Sprintf("Iftorlik vaqtiga %d daqiqa qoldi. Alloh qabul qilsin!", lead)
	default:
		alert.Title = "Saharlik yaqinlashmoqda!"
		alert.Body = fmt.Sprintf("Saharlik vaqtiga %d daqiqa qoldi. Bugungi niyatni unutmang!", lead)
	}
	return alert
}

// Text joins title and body for sinks that take a single message.
func (a Alert) Text() string {
	return a.Title + "\n" + a.Body
}
