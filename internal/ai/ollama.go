package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// OllamaClient runs the model as an external process: the prompt goes to
// standard input, the answer comes back on standard output. A missing binary
// or a non-zero exit is the failure signal.
type OllamaClient struct {
	binary  string
	model   string
	timeout time.Duration
}

type OllamaConfig struct {
	Binary  string
	Model   string
	Timeout time.Duration
}

func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.Binary == "" {
		cfg.Binary = "ollama"
	}
	if cfg.Model == "" {
		cfg.Model = "phi3"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &OllamaClient{
		binary:  cfg.Binary,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

func (c *OllamaClient) Answer(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, "run", c.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotInstalled, c.binary)
		}
		return "", fmt.Errorf("ollama run failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (c *OllamaClient) GetName() string {
	return fmt.Sprintf("ollama (%s)", c.model)
}

func (c *OllamaClient) Close() error {
	return nil
}
