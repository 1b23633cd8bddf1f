package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"gemini-chat/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		provider string
		key      string
		wantErr  bool
	}{
		{provider: "echo"},
		{provider: "ECHO"},
		{provider: "gemini", key: "k"},
		{provider: "", key: "k"},
		{provider: "openai", key: "k"},
		{provider: "anthropic", key: "k"},
		{provider: "gemini", wantErr: true},
		{provider: "unknown", key: "k", wantErr: true},
	}
	for _, tc := range cases {
		tr, err := New(ctx, Options{Provider: tc.provider, APIKey: tc.key})
		if tc.wantErr {
			if err == nil {
				t.Fatalf("provider %q: expected error", tc.provider)
			}
			continue
		}
		if err != nil || tr == nil {
			t.Fatalf("provider %q: New = %v, %v", tc.provider, tr, err)
		}
	}
}

func TestEchoSend(t *testing.T) {
	got, err := Echo{}.Send(context.Background(), "Hello")
	if err != nil || got != "Echo: Hello" {
		t.Fatalf("Echo = %q, %v", got, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Echo{}).Send(ctx, "Hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled echo err = %v", err)
	}
}

type blockingTransport struct{}

func (blockingTransport) Send(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestWithTimeoutBoundsSend(t *testing.T) {
	tr := WithTimeout(blockingTransport{}, 20*time.Millisecond)
	start := time.Now()
	_, err := tr.Send(context.Background(), "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not applied")
	}
}

func TestOptionsFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.BaseURL = "http://localhost"
	opts := OptionsFromSettings(s, "key")
	if opts.Provider != config.ProviderGemini || opts.Model != s.Model || opts.APIKey != "key" ||
		opts.BaseURL != "http://localhost" || opts.Timeout != s.RequestTimeout() {
		t.Fatalf("opts = %+v", opts)
	}
}
