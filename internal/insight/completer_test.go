// internal/insight/completer_test.go
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "gitmind-explorer/internal/errors"
)

func TestGeminiCompleter_Complete(t *testing.T) {
	t.Run("returns the candidate text", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)

			var body struct {
				Contents []struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"contents"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if assert.Len(t, body.Contents, 1) && assert.Len(t, body.Contents[0].Parts, 1) {
				assert.Equal(t, "hello prompt", body.Contents[0].Parts[0].Text)
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "Resumo gerado."}]}}]}`)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		completer := NewGeminiCompleter(func() string { return "secret" }, server.URL, 5*time.Second)
		text, err := completer.Complete(context.Background(), "gemini-test", "hello prompt")

		require.NoError(t, err)
		assert.Equal(t, "Resumo gerado.", text)
	})

	t.Run("returns empty text when there are no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"candidates": []}`)
		}))
		defer server.Close()

		completer := NewGeminiCompleter(func() string { return "secret" }, server.URL, 5*time.Second)
		text, err := completer.Complete(context.Background(), "gemini-test", "hello prompt")

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("fails on a quota error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintln(w, `{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`)
		}))
		defer server.Close()

		completer := NewGeminiCompleter(func() string { return "secret" }, server.URL, 5*time.Second)
		_, err := completer.Complete(context.Background(), "gemini-test", "hello prompt")

		assert.Error(t, err)
	})

	t.Run("fails without a credential and makes no request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		completer := NewGeminiCompleter(func() string { return "" }, server.URL, 5*time.Second)
		_, err := completer.Complete(context.Background(), "gemini-test", "hello prompt")

		assert.ErrorIs(t, err, custom_errors.ErrMissingCredential)
		assert.False(t, called)
	})
}

func TestOpenAICompleter_Complete(t *testing.T) {
	t.Run("returns the first choice", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

			var body struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "gpt-test", body.Model)
			if assert.Len(t, body.Messages, 1) {
				assert.Equal(t, "user", body.Messages[0].Role)
				assert.Equal(t, "hello prompt", body.Messages[0].Content)
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"id": "1", "object": "chat.completion", "choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Resumo gerado."}, "finish_reason": "stop"}
			]}`)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		text, err := NewOpenAICompleter(server.URL, "secret").Complete(context.Background(), "gpt-test", "hello prompt")

		require.NoError(t, err)
		assert.Equal(t, "Resumo gerado.", text)
	})

	t.Run("returns empty text when there are no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"id": "1", "object": "chat.completion", "choices": []}`)
		}))
		defer server.Close()

		text, err := NewOpenAICompleter(server.URL, "secret").Complete(context.Background(), "gpt-test", "hello prompt")

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("fails without a credential", func(t *testing.T) {
		_, err := NewOpenAICompleter("http://127.0.0.1:1", "").Complete(context.Background(), "gpt-test", "hello prompt")

		assert.ErrorIs(t, err, custom_errors.ErrMissingCredential)
	})
}
