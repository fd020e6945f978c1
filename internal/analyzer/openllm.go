package analyzer

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenLLM queries a self-hosted OpenAI-compatible chat completion endpoint
type OpenLLM struct {
	client *openai.Client
	model  string
}

// NewOpenLLM creates the self-hosted backend. An empty key falls back to the
// "local" placeholder unauthenticated servers accept. The URL may be given
// with or without the /chat/completions suffix.
func NewOpenLLM(url, key, model string) *OpenLLM {
	if key == "" {
		key = "local"
	}

	config := openai.DefaultConfig(key)
	config.BaseURL = normalizeBaseURL(url)
	config.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &OpenLLM{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// normalizeBaseURL strips the suffixes the client library appends itself
func normalizeBaseURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, "/chat/completions")
	return strings.TrimSuffix(url, "/")
}

// Name returns the backend name used in logs and failure summaries
func (o *OpenLLM) Name() string {
	return "OpenLLM"
}

// Complete sends one chat completion request and returns the answer text
func (o *OpenLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return complete(ctx, o.client, o.model, prompt)
}
