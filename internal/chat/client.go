// Package chat forwards user questions to a hosted generative model and
// keeps the resulting conversation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/"
	apiVersion     = "v1beta"
	// DefaultModel is used when the client has no model configured.
	DefaultModel = "gemini-1.5-flash"
	// RequestTimeout bounds a single generateContent call.
	RequestTimeout = 60 * time.Second
)

// ErrNoAPIKey is returned when the client has no credential.
var ErrNoAPIKey = errors.New("chat: no API key configured")

// Sampling parameters sent with every request.
const (
	Temperature     float32 = 0.7
	TopP            float32 = 0.95
	TopK            float32 = 40
	MaxOutputTokens int32   = 1024
)

// SystemInstruction frames the assistant for every request.
const SystemInstruction = "Siz Ramazon 2026 yordamchisiz. Foydalanuvchilarga Ramazon oyi, ro'za qoidalari, duolar, Islomiy odoblar va ma'naviy masalalar bo'yicha yordam berasiz.\n" +
	"Sizning javoblaringiz doimo xushmuomala, iliq va dalda beruvchi bo'lishi kerak.\n" +
	"Agar foydalanuvchi Xorazm viloyati taqvimi haqida so'rasa, ilovadagi taqvimga tayanishini ayting.\n" +
	"Javoblaringizni o'zbek tilida (lotin alifbosida) bering."

// Client communicates with the Gemini generateContent API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Exported for testing with httptest.
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient creates a client with sensible defaults. An empty model selects
// DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Model:   model,
	}
}

// GenerationConfig returns the fixed request configuration.
func GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(Temperature),
		TopP:              genai.Ptr(TopP),
		TopK:              genai.Ptr(TopK),
		MaxOutputTokens:   MaxOutputTokens,
	}
}

// BuildContents converts history followed by text into request contents.
func BuildContents(history []Turn, text string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		contents = append(contents, genai.NewContentFromText(t.Text, genai.Role(t.Role)))
	}
	return append(contents, genai.NewContentFromText(text, genai.RoleUser))
}

// Generate sends one request and returns the reply text. There is no retry.
func (c *Client) Generate(ctx context.Context, history []Turn, text string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.Model, BuildContents(history, text), GenerationConfig())
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat API error: code=%d status=%s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
		}
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", errors.New("chat API returned an empty reply")
	}
	return reply, nil
}
