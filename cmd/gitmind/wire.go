// cmd/gitmind/wire.go
package main

import (
	"log/slog"

	"gitmind-explorer/internal/config"
	"gitmind-explorer/internal/github"
	"gitmind-explorer/internal/insight"
	"gitmind-explorer/internal/search"
)

// components are the long-lived collaborators shared by every orchestrator.
type components struct {
	github    *github.Client
	generator *insight.Generator
}

func newComponents(cfg *config.Config, logger *slog.Logger) (*components, error) {
	ghClient, err := github.NewClient(cfg.GithubAPIURL, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, err
	}
	return &components{
		github:    ghClient,
		generator: insight.NewGenerator(newCompleter(cfg), cfg.AIModel(), logger),
	}, nil
}

func newCompleter(cfg *config.Config) insight.Completer {
	if cfg.AIProvider == config.ProviderOpenAI {
		return insight.NewOpenAICompleter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)
	}
	return insight.NewGeminiCompleter(cfg.CurrentGeminiAPIKey, "", cfg.HTTPTimeout)
}

func (c *components) newOrchestrator(logger *slog.Logger, opts ...search.Option) *search.Orchestrator {
	return search.NewOrchestrator(c.github, c.github, c.generator, logger, opts...)
}
