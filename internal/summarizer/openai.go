package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	maxOutputTokens int64   = 4096
	temperature     float64 = 0.3
)

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint.
// The base URL is configurable so Groq's compatible API works unchanged.
type OpenAICompleter struct {
	client openai.Client
}

// NewOpenAICompleter builds a new completer instance.
func NewOpenAICompleter(apiKey string, baseURL string) (*OpenAICompleter, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAICompleter{
		client: openai.NewClient(opts...),
	}, nil
}

// Complete issues exactly one completion request. No retries.
func (c *OpenAICompleter) Complete(
	ctx context.Context,
	model string,
	prompt string,
) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt is empty")
	}

	if !IsSupportedModel(model) {
		return "", fmt.Errorf("unsupported model: %s", model)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(maxOutputTokens),
		Temperature:         openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf(
			"output text is missing (finish reason = %s)",
			resp.Choices[0].FinishReason,
		)
	}

	return text, nil
}
