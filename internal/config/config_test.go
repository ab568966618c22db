// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults without any credential", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("API_KEY", "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, ProviderGemini, cfg.AIProvider)
		assert.Equal(t, "gemini-3-flash-preview", cfg.AIModel())
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Empty(t, cfg.GeminiAPIKey)
	})

	t.Run("accepts API_KEY as the Gemini credential", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("API_KEY", "legacy-key")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
	})

	t.Run("reads the Gemini credential again after loading", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("API_KEY", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.CurrentGeminiAPIKey())

		t.Setenv("GEMINI_API_KEY", "late-key")
		assert.Equal(t, "late-key", cfg.CurrentGeminiAPIKey())
		assert.Empty(t, cfg.GeminiAPIKey)
	})

	t.Run("falls back to the loaded Gemini credential for a hand-built config", func(t *testing.T) {
		cfg := &Config{GeminiAPIKey: "static-key"}

		assert.Equal(t, "static-key", cfg.CurrentGeminiAPIKey())
	})

	t.Run("selects the OpenAI model for the openai provider", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "OpenAI")
		t.Setenv("OPENAI_MODEL", "gpt-test")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, cfg.AIProvider)
		assert.Equal(t, "gpt-test", cfg.AIModel())
	})

	t.Run("rejects an unknown provider", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "carrier-pigeon")

		_, err := LoadConfig()

		assert.ErrorContains(t, err, "AI_PROVIDER")
	})

	t.Run("rejects a non-positive session capacity", func(t *testing.T) {
		t.Setenv("SESSION_CAPACITY", "0")

		_, err := LoadConfig()

		assert.ErrorContains(t, err, "SESSION_CAPACITY")
	})
}
