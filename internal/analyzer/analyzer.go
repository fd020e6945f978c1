package analyzer

import (
	"context"
	"fmt"

	"github.com/aptaudit/aptaudit/internal/models"
	"github.com/sirupsen/logrus"
)

// Backend answers a single analysis prompt within a bounded time
type Backend interface {
	// Name identifies the backend in logs and failure summaries
	Name() string

	// Complete sends one prompt and returns the model's text answer
	Complete(ctx context.Context, prompt string) (string, error)
}

// New creates the backend selected in the configuration
func New(config models.AuditConfig) (Backend, error) {
	switch config.Backend {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, &models.AuditError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("openai backend requires an API key (--openai-key or OPENAI_API_KEY)"),
			}
		}
		return NewOpenAI(config.OpenAIKey, config.Model), nil
	case "openllm":
		return NewOpenLLM(config.OpenLLMURL, config.OpenLLMKey, config.Model), nil
	default:
		return nil, &models.AuditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown backend: %s (supported: openai, openllm)", config.Backend),
		}
	}
}

// Analyze runs one package upgrade through the backend and classifies the
// answer. It never returns an error: a failed query becomes the result's
// summary and the package is reported as not safe.
func Analyze(ctx context.Context, backend Backend, req Request) models.AuditResult {
	result := models.AuditResult{
		Name:             req.Name,
		CurrentVersion:   req.CurrentVersion,
		CandidateVersion: req.CandidateVersion,
		ConfigPath:       req.ConfigPath,
	}

	logrus.Debugf("Querying %s about %s", backend.Name(), req.Name)

	answer, err := backend.Complete(ctx, BuildPrompt(req))
	if err != nil {
		logrus.Warnf("Analysis of %s failed: %v", req.Name, err)
		result.Summary = fmt.Sprintf("%s request failed: %v", backend.Name(), err)
		return result
	}

	result.Summary = answer
	result.Safe, result.Breaking = Classify(answer)

	return result
}
