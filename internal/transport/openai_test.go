package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAISendUsesChatCompletions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != "gpt-test" || len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "Hello" {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"gpt-test",
  "choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Hi there"}}]}`)
	}))
	defer srv.Close()

	c, err := NewOpenAI(Options{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	got, err := c.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != "Hi there" {
		t.Fatalf("reply = %q", got)
	}
}

func TestOpenAISendErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantPfx string
	}{
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id":"c1","object":"chat.completion","created":0,"model":"m","choices":[]}`,
			wantIs: ErrNoCandidates,
		},
		{
			name:    "http 401",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"bad key","type":"invalid_request_error"}}`,
			wantPfx: "API request failed: http_401",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()
			c, err := NewOpenAI(Options{APIKey: "sk-test", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("NewOpenAI: %v", err)
			}
			_, err = c.Send(context.Background(), "Hello")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Fatalf("err = %v, want %v", err, tc.wantIs)
			}
			if tc.wantPfx != "" && !strings.HasPrefix(err.Error(), tc.wantPfx) {
				t.Fatalf("err = %q, want prefix %q", err.Error(), tc.wantPfx)
			}
		})
	}
}

func TestOpenAIBaseURL(t *testing.T) {
	cases := map[string]string{
		"":                            "",
		"https://api.example.com":     "https://api.example.com/v1",
		"https://api.example.com/v1/": "https://api.example.com/v1",
		"https://api.example.com/v1/chat/completions": "https://api.example.com/v1",
		"http://localhost:8080/proxy":                 "http://localhost:8080/proxy/v1",
	}
	for in, want := range cases {
		if got := openAIBaseURL(in); got != want {
			t.Fatalf("openAIBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
