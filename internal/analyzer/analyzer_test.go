package analyzer

import (
	"context"
	"errors"
	"testing"
)

type stubBackend struct {
	answer string
	err    error
	prompt string
}

func (s *stubBackend) Name() string { return "Stub" }

func (s *stubBackend) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func TestAnalyzeSafeUpgrade(t *testing.T) {
	backend := &stubBackend{answer: "No compatibility issues found. safe"}

	result := Analyze(context.Background(), backend, Request{
		Name:             "foo",
		CurrentVersion:   "1.0",
		CandidateVersion: "2.0",
		Changelog:        "foo (2.0) unstable",
	})

	if result.Name != "foo" || result.CurrentVersion != "1.0" || result.CandidateVersion != "2.0" {
		t.Errorf("Result lost the package identity: %+v", result)
	}
	if !result.Safe {
		t.Error("Expected a safe verdict")
	}
	if result.Breaking {
		t.Error("Expected no breaking change")
	}
	if result.Summary != "No compatibility issues found. safe" {
		t.Errorf("Expected the raw answer as summary, got %q", result.Summary)
	}
	if backend.prompt == "" {
		t.Error("Backend never received a prompt")
	}
}

func TestAnalyzeBreakingUpgrade(t *testing.T) {
	backend := &stubBackend{answer: "Le format de configuration change, breaking change. not safe"}

	result := Analyze(context.Background(), backend, Request{
		Name:             "bar",
		CurrentVersion:   "1.0",
		CandidateVersion: "2.0",
		ConfigPath:       "/etc/bar.conf",
	})

	if result.Safe {
		t.Error("Expected not safe")
	}
	if !result.Breaking {
		t.Error("Expected a breaking change")
	}
	if result.ConfigPath != "/etc/bar.conf" {
		t.Errorf("Result lost the configuration path: %q", result.ConfigPath)
	}
}

func TestAnalyzeBackendFailure(t *testing.T) {
	backend := &stubBackend{err: errors.New("timeout")}

	result := Analyze(context.Background(), backend, Request{
		Name:             "foo",
		CurrentVersion:   "1.0",
		CandidateVersion: "2.0",
	})

	// The failure degrades into the summary, never into a dropped result
	if result.Summary != "Stub request failed: timeout" {
		t.Errorf("Expected the synthetic failure summary, got %q", result.Summary)
	}
	if result.Safe {
		t.Error("A failed analysis must not be safe")
	}
	if result.Breaking {
		t.Error("A failed analysis must not flag a breaking change")
	}
}
