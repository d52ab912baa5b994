// Package ai provides single-shot text completion clients for the hosted
// language models used by transaction categorization and report generation.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Client is a single-shot text completion client. There is no streaming and
// no structured-output guarantee; callers must parse responses defensively.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for an AI client.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewClient creates an AI client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return newGeminiClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
