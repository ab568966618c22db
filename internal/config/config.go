// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	GithubAPIURL    string        `mapstructure:"GITHUB_API_URL"`
	AIProvider      string        `mapstructure:"AI_PROVIDER"`
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string        `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey    string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel     string        `mapstructure:"OPENAI_MODEL"`
	SessionCapacity int           `mapstructure:"SESSION_CAPACITY"`
	DBURL           string        `mapstructure:"DB_URL"`

	v *viper.Viper
}

// LoadConfig reads configuration from file and/or environment variables.
// A missing AI credential is not an error: the insight step degrades instead.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("GITHUB_API_URL", "")
	v.SetDefault("AI_PROVIDER", ProviderGemini)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-3-flash-preview")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("SESSION_CAPACITY", 1024)
	v.SetDefault("DB_URL", "")

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// API_KEY is the name the browser build used for the Gemini key.
	if err := v.BindEnv("GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	cfg.v = v

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.AIProvider)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be a positive duration")
	}
	if c.SessionCapacity <= 0 {
		return errors.New("SESSION_CAPACITY must be greater than zero")
	}
	return nil
}

// AIModel returns the model identifier for the configured provider.
func (c *Config) AIModel() string {
	if c.AIProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// CurrentGeminiAPIKey reads the Gemini key from the environment again, so a key
// exported after startup is picked up. It falls back to the loaded value.
func (c *Config) CurrentGeminiAPIKey() string {
	if c.v == nil {
		return c.GeminiAPIKey
	}
	return c.v.GetString("GEMINI_API_KEY")
}
