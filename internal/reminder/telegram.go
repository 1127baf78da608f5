package reminder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultTelegramURL = "https://api.telegram.org"

// Telegram sends alerts through the Bot API sendMessage method.
type Telegram struct {
	httpClient *http.Client
	// BaseURL is the Bot API base URL. Exported for testing with httptest.
	BaseURL string
	Token   string
	// ChatID is a numeric chat id or an @channel username.
	ChatID string
}

// NewTelegram returns a sink for the given bot token and chat.
func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultTelegramURL,
		Token:      token,
		ChatID:     chatID,
	}
}

// contextClient binds outgoing bot requests to ctx.
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}

// Notify implements Notifier.
func (t *Telegram) Notify(ctx context.Context, a Alert) error {
	if t.Token == "" || t.ChatID == "" {
		return errors.New("telegram: bot token and chat id are required")
	}

	msg, err := t.message(a.Text())
	if err != nil {
		return err
	}

	bot := &tgbotapi.BotAPI{Token: t.Token, Client: contextClient{ctx: ctx, client: t.httpClient}}
	bot.SetAPIEndpoint(strings.TrimRight(t.BaseURL, "/") + "/bot%s/%s")

	if _, err := bot.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("telegram error %d: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("telegram request failed: %s", t.redact(err))
	}
	return nil
}

func (t *Telegram) message(text string) (tgbotapi.MessageConfig, error) {
	if strings.HasPrefix(t.ChatID, "@") {
		return tgbotapi.NewMessageToChannel(t.ChatID, text), nil
	}
	id, err := strconv.ParseInt(t.ChatID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("telegram: invalid chat id %q", t.ChatID)
	}
	return tgbotapi.NewMessage(id, text), nil
}

// redact strips the bot token, which is part of every request URL.
func (t *Telegram) redact(err error) string {
	return strings.ReplaceAll(err.Error(), t.Token, "<token>")
}
