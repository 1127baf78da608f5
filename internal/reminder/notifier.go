package reminder

import (
	"context"
	"errors"
	"log"
)

// Notifier delivers an alert somewhere the user will see it.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, a Alert) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, a Alert) error { return f(ctx, a) }

// MultiNotifier fans an alert out to every sink. A failing sink does not
// stop the others.
type MultiNotifier struct {
	sinks  []Notifier
	logger *log.Logger
}

// NewMultiNotifier combines sinks. A nil logger discards.
func NewMultiNotifier(logger *log.Logger, sinks ...Notifier) *MultiNotifier {
	if logger == nil {
		logger = discardLogger
	}
	return &MultiNotifier{sinks: sinks, logger: logger}
}

// Add appends a sink.
func (m *MultiNotifier) Add(n Notifier) {
	m.sinks = append(m.sinks, n)
}

// Len reports the number of sinks.
func (m *MultiNotifier) Len() int { return len(m.sinks) }

// Notify delivers to every sink and returns the joined sink errors.
func (m *MultiNotifier) Notify(ctx context.Context, a Alert) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, a); err != nil {
			m.logger.Printf("reminder: %s sink failed: %v", a.Anchor, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
