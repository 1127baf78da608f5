package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

const sampleReply = `{"candidates":[{"content":{"role":"model","parts":[{"text":"Ro'zangiz qabul bo'lsin!"}]},"finishReason":"STOP"}]}`

func TestNewClient(t *testing.T) {
	c := NewClient("key", "")
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
	if c.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", c.Model, DefaultModel)
	}
	if c.httpClient.Timeout != RequestTimeout {
		t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, RequestTimeout)
	}
}

func TestBuildContents(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Text: "Salom"},
		{Role: RoleModel, Text: "Va alaykum assalom"},
	}
	contents := BuildContents(history, "Saharlik qachon?")

	if len(contents) != 3 {
		t.Fatalf("len(contents) = %d, want 3", len(contents))
	}
	if contents[1].Role != genai.RoleModel || contents[2].Role != genai.RoleUser {
		t.Errorf("roles = %q, %q", contents[1].Role, contents[2].Role)
	}
	if contents[2].Parts[0].Text != "Saharlik qachon?" {
		t.Errorf("last text = %q", contents[2].Parts[0].Text)
	}
}

func TestGenerationConfig(t *testing.T) {
	cfg := GenerationConfig()

	if cfg.SystemInstruction == nil || !strings.HasPrefix(cfg.SystemInstruction.Parts[0].Text, "Siz Ramazon 2026 yordamchisiz.") {
		t.Error("system instruction missing")
	}
	if *cfg.Temperature != 0.7 || *cfg.TopP != 0.95 || *cfg.TopK != 40 {
		t.Errorf("sampling = %v/%v/%v", *cfg.Temperature, *cfg.TopP, *cfg.TopK)
	}
	if cfg.MaxOutputTokens != 1024 {
		t.Errorf("MaxOutputTokens = %d, want 1024", cfg.MaxOutputTokens)
	}
}

// ---

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "secret" {
			t.Errorf("api key header = %q", got)
		}

		var req struct {
			Contents          []map[string]any `json:"contents"`
			SystemInstruction map[string]any   `json:"systemInstruction"`
			GenerationConfig  struct {
				TopK            float64 `json:"topK"`
				MaxOutputTokens int     `json:"maxOutputTokens"`
			} `json:"generationConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) != 1 || req.SystemInstruction == nil {
			t.Errorf("contents = %d, system instruction = %v", len(req.Contents), req.SystemInstruction)
		}
		if req.GenerationConfig.TopK != 40 || req.GenerationConfig.MaxOutputTokens != 1024 {
			t.Errorf("generation config = %+v", req.GenerationConfig)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleReply))
	}))
	defer server.Close()

	c := NewClient("secret", "")
	c.BaseURL = server.URL

	got, err := c.Generate(context.Background(), nil, "Salom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ro'zangiz qabul bo'lsin!" {
		t.Errorf("reply = %q", got)
	}
}

func TestGenerate_NoKey(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.Generate(context.Background(), nil, "Salom"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`, "code=429"},
		{"api error object", http.StatusBadRequest, `{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad"}}`, "INVALID_ARGUMENT"},
		{"invalid json", http.StatusOK, "not json", "chat request failed"},
		{"empty candidates", http.StatusOK, `{"candidates":[]}`, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient("k", "")
			c.BaseURL = server.URL

			_, err := c.Generate(context.Background(), nil, "Salom")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient("k", "")
	c.BaseURL = url
	if _, err := c.Generate(context.Background(), nil, "Salom"); err == nil {
		t.Error("expected transport error")
	}
}
