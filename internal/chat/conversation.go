package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrBusy is returned when a send is already in flight.
var ErrBusy = errors.New("chat: a message is already being sent")

// Conversation holds the ordered turns and guards against overlapping sends.
type Conversation struct {
	mu     sync.Mutex
	turns  []Turn
	busy   bool
	bridge *Bridge
}

// NewConversation starts an empty conversation that replies through b.
func NewConversation(b *Bridge) *Conversation {
	return &Conversation{bridge: b}
}

// Turns returns a copy of the history.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Busy reports whether a send is in flight.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Send appends the user's text, waits for the reply, and appends exactly one
// model turn. Blank text is ignored and returns an empty reply.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	history := append([]Turn(nil), c.turns...)
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: text})
	c.mu.Unlock()

	reply := c.bridge.Send(ctx, history, text)

	c.mu.Lock()
	c.turns = append(c.turns, Turn{Role: RoleModel, Text: reply})
	c.busy = false
	c.mu.Unlock()

	return reply, nil
}

// Reset clears the history.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}
