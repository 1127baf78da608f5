package reminder

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Desktop shows alerts as native desktop notifications.
type Desktop struct {
	// Icon is a path to an image shown with the notification. May be empty.
	Icon string

	send func(title, body, icon string) error
}

// NewDesktop returns a desktop sink.
func NewDesktop(icon string) *Desktop {
	return &Desktop{
		Icon: icon,
		send: func(title, body, icon string) error {
			return beeep.Notify(title, body, icon)
		},
	}
}

// Notify implements Notifier.
func (d *Desktop) Notify(_ context.Context, a Alert) error {
	return d.send(a.Title, a.Body, d.Icon)
}
