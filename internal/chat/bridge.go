package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
)

// Fixed replies shown instead of an error.
const (
	MissingKeyReply = "Xatolik yuz berdi. Iltimos, qayta urinib ko'ring."
	FallbackReply   = "Kechirasiz, hozirda ulanishda muammo bor. Iltimos, birozdan so'ng qayta urinib ko'ring."
)

// Generator produces a reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, history []Turn, text string) (string, error)
}

// Bridge turns generator failures into fixed user-facing replies.
type Bridge struct {
	gen    Generator
	logger *log.Logger
}

// NewBridge wraps gen. A nil gen behaves like a client without a key.
func NewBridge(gen Generator, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Bridge{gen: gen, logger: logger}
}

// Send returns the model's reply, MissingKeyReply when no credential is
// configured, or FallbackReply on any other failure. It never errors.
func (b *Bridge) Send(ctx context.Context, history []Turn, text string) string {
	if b.gen == nil {
		b.logger.Printf("chat: %v", ErrNoAPIKey)
		return MissingKeyReply
	}

	reply, err := b.gen.Generate(ctx, history, text)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		b.logger.Printf("chat: %v", err)
		return MissingKeyReply
	case err != nil:
		b.logger.Printf("chat: %v", err)
		return FallbackReply
	case strings.TrimSpace(reply) == "":
		b.logger.Printf("chat: empty reply")
		return FallbackReply
	}
	return reply
}
