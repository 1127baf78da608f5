package reminder

import (
	"context"
	"fmt"
	"sync"
)

// Permission is the user's answer to "may we show notifications".
type Permission string

const (
	Unknown Permission = "unknown"
	Granted Permission = "granted"
	Denied  Permission = "denied"
)

// ParsePermission accepts the persisted spelling. Anything else is Unknown.
func ParsePermission(s string) Permission {
	switch Permission(s) {
	case Granted:
		return Granted
	case Denied:
		return Denied
	default:
		return Unknown
	}
}

// Asker prompts the user for notification permission.
type Asker interface {
	Ask(ctx context.Context) (bool, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context) (bool, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context) (bool, error) { return f(ctx) }

// Gate tracks the permission state for one session.
type Gate struct {
	mu    sync.Mutex
	state Permission
	asked bool
}

// NewGate starts a gate from a persisted state.
func NewGate(initial Permission) *Gate {
	return &Gate{state: ParsePermission(string(initial))}
}

// State returns the current permission.
func (g *Gate) State() Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Request asks for permission unless the answer is already known or the
// user was asked earlier in this session. An asker error leaves the state
// Unknown and is returned.
func (g *Gate) Request(ctx context.Context, asker Asker) (Permission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unknown || g.asked {
		return g.state, nil
	}
	g.asked = true

	ok, err := asker.Ask(ctx)
	if err != nil {
		return Unknown, fmt.Errorf("asking for notification permission: %w", err)
	}
	if ok {
		g.state = Granted
	} else {
		g.state = Denied
	}
	return g.state, nil
}

// Sync adopts a persisted permission unless the user answered during this
// session. It reports whether p was adopted.
func (g *Gate) Sync(p Permission) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.asked {
		return false
	}
	g.state = ParsePermission(string(p))
	return true
}
