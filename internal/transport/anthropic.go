package transport

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	anthropicMaxTokens    = 1024
)

// Anthropic 使用 messages 接口。
type Anthropic struct {
	api   *anthropic.Client
	model string
}

var _ Transport = (*Anthropic)(nil)

func NewAnthropic(opts Options) (*Anthropic, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, ErrMissingKey
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if base := anthropicBaseURL(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	client := anthropic.NewClient(reqOpts...)
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{api: &client, model: model}, nil
}

func (c *Anthropic) Send(ctx context.Context, message string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	}
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", requestFailed(err)
	}
	if len(msg.Content) == 0 {
		return "", ErrNoCandidates
	}
	text := extractText(msg.Content)
	if text == "" {
		return "", ErrNoParts
	}
	return text, nil
}

func extractText(blocks []anthropic.ContentBlockUnion) string {
	var sb strings.Builder
	for _, block := range blocks {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(v.Text)
		}
	}
	return sb.String()
}
