package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gemini-chat/internal/config"
	"gemini-chat/internal/logger"
)

var log = logger.Named("transport")

// Transport 将一条用户消息发送到远端并返回回复文本。
// 实现必须可以在独立 goroutine 中调用。
type Transport interface {
	Send(ctx context.Context, message string) (string, error)
}

var (
	ErrNoCandidates = errors.New("no candidates found in response")
	ErrNoParts      = errors.New("no response parts found")
	ErrMissingKey   = errors.New("missing api key")
)

// Options 描述创建 Transport 所需的参数。
type Options struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OptionsFromSettings 由配置构造 Options。
func OptionsFromSettings(s config.Settings, apiKey string) Options {
	return Options{
		Provider: s.Provider,
		APIKey:   apiKey,
		Model:    s.Model,
		BaseURL:  s.BaseURL,
		Timeout:  s.RequestTimeout(),
	}
}

// New 按 provider 创建 Transport，并在 Timeout > 0 时附加单次请求超时。
func New(ctx context.Context, opts Options) (Transport, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	var (
		t   Transport
		err error
	)
	switch provider {
	case "", config.ProviderGemini:
		t, err = NewGemini(ctx, opts)
	case config.ProviderOpenAI:
		t, err = NewOpenAI(opts)
	case config.ProviderAnthropic:
		t, err = NewAnthropic(opts)
	case config.ProviderEcho:
		t = Echo{}
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(logger.Fields{
		"provider": providerOrDefault(provider),
		"model":    opts.Model,
		"timeout":  opts.Timeout,
	}).Info("transport ready")
	if opts.Timeout > 0 {
		t = WithTimeout(t, opts.Timeout)
	}
	return t, nil
}

func providerOrDefault(p string) string {
	if p == "" {
		return config.ProviderGemini
	}
	return p
}

type timeoutTransport struct {
	next    Transport
	timeout time.Duration
}

// WithTimeout 为每次 Send 附加超时。
func WithTimeout(t Transport, d time.Duration) Transport {
	return timeoutTransport{next: t, timeout: d}
}

func (t timeoutTransport) Send(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Send(ctx, message)
}

func requestFailed(err error) error {
	return fmt.Errorf("API request failed: %w", err)
}
