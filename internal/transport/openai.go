package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI 使用 chat completions 接口。
type OpenAI struct {
	api   *openai.Client
	model string
}

var _ Transport = (*OpenAI)(nil)

func NewOpenAI(opts Options) (*OpenAI, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, ErrMissingKey
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if base := openAIBaseURL(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	client := openai.NewClient(reqOpts...)
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{api: &client, model: model}, nil
}

func (c *OpenAI) Send(ctx context.Context, message string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(message),
		},
	}
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", requestFailed(wrapOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoCandidates
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", ErrNoParts
	}
	return text, nil
}

func wrapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		if raw := strings.TrimSpace(apiErr.RawJSON()); raw != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, raw)
		}
		return fmt.Errorf("http_%d: %w", apiErr.StatusCode, err)
	}
	return err
}
