// internal/insight/openai.go
package insight

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	custom_errors "gitmind-explorer/internal/errors"
)

// OpenAICompleter calls any OpenAI-compatible chat completion endpoint.
// Its API key is fixed at construction.
type OpenAICompleter struct {
	client *openai.Client
	hasKey bool
}

func NewOpenAICompleter(baseURL, apiKey string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		hasKey: apiKey != "",
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	if !c.hasKey {
		return "", custom_errors.ErrMissingCredential
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
