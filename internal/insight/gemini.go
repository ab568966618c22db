// internal/insight/gemini.go
package insight

import (
	"context"
	"fmt"
	"net/http"
	"time"

	genai "google.golang.org/genai"

	custom_errors "gitmind-explorer/internal/errors"
)

// GeminiCompleter calls the Gemini API through the official genai client.
// A client is built per call so the credential is read when the request is made.
type GeminiCompleter struct {
	apiKey  func() string
	baseURL string
	timeout time.Duration
}

// NewGeminiCompleter creates a completer that reads its API key from apiKey on every call.
// baseURL overrides the API endpoint and may be empty.
func NewGeminiCompleter(apiKey func() string, baseURL string, timeout time.Duration) *GeminiCompleter {
	return &GeminiCompleter{apiKey: apiKey, baseURL: baseURL, timeout: timeout}
}

func (g *GeminiCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	key := ""
	if g.apiKey != nil {
		key = g.apiKey()
	}
	if key == "" {
		return "", custom_errors.ErrMissingCredential
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: g.timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	resp, err := cli.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
