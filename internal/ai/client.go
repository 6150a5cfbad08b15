package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotInstalled reports that the backend process could not be launched
// because the binary is missing. Callers turn this into a user-visible
// diagnostic rather than an error.
var ErrNotInstalled = errors.New("backend not installed")

// Client is the generative backend boundary: one prompt in, one plain-text
// answer out. Implementations must be safe to replace with a stub in tests.
type Client interface {
	Answer(ctx context.Context, prompt string) (string, error)
	GetName() string
	Close() error
}

type ClientConfig struct {
	Provider string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// NewClient AI 客户端工厂
func NewClient(cfg ClientConfig) (Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	switch cfg.Provider {
	case "ollama", "":
		return NewOllamaClient(OllamaConfig{
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil

	case "local-llm":
		return NewLocalLLMClient(LocalLLMConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: ollama, local-llm)", cfg.Provider)
	}
}

func ValidateProvider(provider string) error {
	validProviders := map[string]bool{
		"":          true,
		"ollama":    true,
		"local-llm": true,
	}

	if !validProviders[provider] {
		return fmt.Errorf("invalid provider '%s', must be one of: ollama, local-llm", provider)
	}

	return nil
}
