package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFactory(t *testing.T) {
	c, err := NewClient(ClientConfig{Provider: "ollama", Model: "phi3"})
	require.NoError(t, err)
	assert.Equal(t, "ollama (phi3)", c.GetName())

	c, err = NewClient(ClientConfig{Provider: "local-llm", Model: "phi3"})
	require.NoError(t, err)
	assert.Equal(t, "local-llm (phi3)", c.GetName())

	_, err = NewClient(ClientConfig{Provider: "skynet"})
	assert.Error(t, err)
}

func TestValidateProvider(t *testing.T) {
	assert.NoError(t, ValidateProvider(""))
	assert.NoError(t, ValidateProvider("ollama"))
	assert.NoError(t, ValidateProvider("local-llm"))
	assert.Error(t, ValidateProvider("gpt4"))
}

func TestOllamaMissingBinary(t *testing.T) {
	c := NewOllamaClient(OllamaConfig{
		Binary:  "definitely-not-a-real-binary-solscope",
		Timeout: 5 * time.Second,
	})

	_, err := c.Answer(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestLocalLLMAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Write([]byte(`{"model":"phi3","response":"  Not enough information  ","done":true}`))
	}))
	defer server.Close()

	c, err := NewLocalLLMClient(LocalLLMConfig{BaseURL: server.URL, Model: "phi3"})
	require.NoError(t, err)

	answer, err := c.Answer(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Not enough information", answer)
}

func TestLocalLLMServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model 'phi3' not found"}`))
	}))
	defer server.Close()

	c, err := NewLocalLLMClient(LocalLLMConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Answer(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model 'phi3' not found")
}

func TestLocalLLMUnreachable(t *testing.T) {
	c, err := NewLocalLLMClient(LocalLLMConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})
	require.NoError(t, err)

	_, err = c.Answer(context.Background(), "prompt")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotInstalled))
}
