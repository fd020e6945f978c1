package analyzer

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// requestTimeout bounds every backend call; failed calls are not retried
const requestTimeout = 30 * time.Second

// OpenAI queries the hosted OpenAI chat completion API
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates the hosted backend
func NewOpenAI(key, model string) *OpenAI {
	config := openai.DefaultConfig(key)
	config.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Name returns the backend name used in logs and failure summaries
func (o *OpenAI) Name() string {
	return "OpenAI"
}

// Complete sends one chat completion request and returns the answer text
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	return complete(ctx, o.client, o.model, prompt)
}

// complete issues a single chat completion call. Temperature carries the
// smallest nonzero float because the client library drops a literal zero
// from the request body.
func complete(ctx context.Context, client *openai.Client, model, prompt string) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
