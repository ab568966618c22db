// internal/insight/generator.go
package insight

import (
	"context"
	"fmt"
	"log/slog"

	custom_errors "gitmind-explorer/internal/errors"
	"gitmind-explorer/internal/model"
)

const (
	// PlaceholderText is shown when the AI service answers with no text.
	PlaceholderText = "Analysis complete."
	// FallbackText is shown when the AI call fails for any reason.
	FallbackText = "The AI could not analyze this profile right now."
)

// Completer sends a single prompt to a text-generation model and returns its text.
// An empty string with a nil error means the service answered without text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Status tells how an Outcome was produced.
type Status int

const (
	StatusGenerated Status = iota
	StatusPlaceholder
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusGenerated:
		return "generated"
	case StatusPlaceholder:
		return "placeholder"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of one insight request. Text is always displayable;
// Err is set only when Status is StatusUnavailable.
type Outcome struct {
	Status Status
	Text   string
	Err    error
}

// Degraded reports whether the text is the failure fallback.
func (o Outcome) Degraded() bool { return o.Status == StatusUnavailable }

// Generator produces the personality summary for an account.
type Generator struct {
	completer Completer
	model     string
	logger    *slog.Logger
}

// NewGenerator creates a Generator that asks model through completer.
func NewGenerator(completer Completer, model string, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		model:     model,
		logger:    logger,
	}
}

// Generate never fails: service errors become a StatusUnavailable outcome carrying FallbackText.
func (g *Generator) Generate(ctx context.Context, account *model.Account, repos []model.RepositorySummary) Outcome {
	prompt := BuildPrompt(account, repos)
	logger := g.logger.With("handle", account.Login, "model", g.model)
	logger.Debug("Requesting insight", "prompt_bytes", len(prompt), "repositories", len(repos))

	text, err := g.complete(ctx, prompt)
	if err != nil {
		logger.Warn("Insight generation failed", "error", err)
		return Outcome{
			Status: StatusUnavailable,
			Text:   FallbackText,
			Err:    fmt.Errorf("%w: %v", custom_errors.ErrInsightUnavailable, err),
		}
	}

	if text == "" {
		logger.Info("Insight service returned no text")
		return Outcome{Status: StatusPlaceholder, Text: PlaceholderText}
	}
	return Outcome{Status: StatusGenerated, Text: text}
}

// complete turns a completer panic into an error.
func (g *Generator) complete(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("completer panic: %v", r)
		}
	}()
	if g.completer == nil {
		return "", custom_errors.ErrMissingCredential
	}
	return g.completer.Complete(ctx, g.model, prompt)
}
