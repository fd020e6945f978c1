package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aptaudit/aptaudit/internal/models"
)

type fakeLister struct {
	installed  string
	upgradable string
}

func (f *fakeLister) ListInstalled(ctx context.Context) string  { return f.installed }
func (f *fakeLister) ListUpgradable(ctx context.Context) string { return f.upgradable }

type fakeLocator struct {
	paths map[string]string
}

func (f *fakeLocator) Locate(name string) (string, bool) {
	path, ok := f.paths[name]
	return path, ok
}

type fakeChangelogs struct {
	texts map[string]string
}

func (f *fakeChangelogs) Fetch(ctx context.Context, pkg string) string { return f.texts[pkg] }

// fakeBackend answers by the package named in the prompt
type fakeBackend struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	delays  map[string]time.Duration
	calls   int
}

func (f *fakeBackend) Name() string { return "Fake" }

func (f *fakeBackend) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	for name, answer := range f.answers {
		if !strings.Contains(prompt, "paquet "+name+" ") {
			continue
		}
		if d := f.delays[name]; d > 0 {
			time.Sleep(d)
		}
		if err := f.errs[name]; err != nil {
			return "", err
		}
		return answer, nil
	}

	return "", fmt.Errorf("unexpected prompt: %s", prompt)
}

func TestRunAuditsEveryUpgradablePackage(t *testing.T) {
	lister := &fakeLister{
		installed: `Listing... Done
foo/stable 1.0 amd64 [installed]
bar/stable 3.1 amd64 [installed]
`,
		upgradable: `Listing... Done
foo/stable 2.0 amd64 [upgradable from: 1.0]
bar/stable 4.0 amd64 [upgradable from: 3.1]
`,
	}
	backend := &fakeBackend{
		answers: map[string]string{
			"foo": "No compatibility issues found. safe",
			"bar": "Le format change, breaking change. not safe",
		},
	}

	auditor := New(models.AuditConfig{},
		lister,
		&fakeLocator{paths: map[string]string{"bar": "/etc/bar.conf"}},
		&fakeChangelogs{texts: map[string]string{"foo": "foo (2.0)", "bar": "bar (4.0)"}},
		backend,
	)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	foo := results[0]
	if foo.Name != "foo" || foo.CurrentVersion != "1.0" || foo.CandidateVersion != "2.0" {
		t.Errorf("Unexpected foo result: %+v", foo)
	}
	if !foo.Safe || foo.Breaking {
		t.Errorf("Expected foo to be safe and non-breaking: %+v", foo)
	}
	if foo.ConfigPath != "" {
		t.Errorf("foo has no configuration file, got %q", foo.ConfigPath)
	}

	bar := results[1]
	if bar.Safe || !bar.Breaking {
		t.Errorf("Expected bar to be breaking and not safe: %+v", bar)
	}
	if bar.ConfigPath != "/etc/bar.conf" {
		t.Errorf("bar lost its configuration path: %q", bar.ConfigPath)
	}
}

func TestRunFailedAnalysisKeepsPackage(t *testing.T) {
	lister := &fakeLister{
		upgradable: "foo/stable 2.0 amd64\nbar/stable 4.0 amd64\n",
	}
	backend := &fakeBackend{
		answers: map[string]string{"foo": "safe", "bar": "whatever"},
		errs:    map[string]error{"bar": errors.New("timeout")},
	}

	auditor := New(models.AuditConfig{}, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("A failed analysis dropped a package: got %d results", len(results))
	}

	bar := results[1]
	if bar.Summary != "Fake request failed: timeout" {
		t.Errorf("Expected the synthetic failure summary, got %q", bar.Summary)
	}
	if bar.Safe || bar.Breaking {
		t.Errorf("A failed analysis must be neither safe nor breaking: %+v", bar)
	}
}

func TestRunMissingInstalledVersion(t *testing.T) {
	lister := &fakeLister{
		installed:  "other/stable 1.0 amd64\n",
		upgradable: "foo/stable 2.0 amd64\n",
	}
	backend := &fakeBackend{answers: map[string]string{"foo": "safe"}}

	auditor := New(models.AuditConfig{}, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].CurrentVersion != "" {
		t.Errorf("Expected an empty current version, got %q", results[0].CurrentVersion)
	}
	if results[0].CandidateVersion != "2.0" {
		t.Errorf("Expected candidate 2.0, got %q", results[0].CandidateVersion)
	}
}

func TestRunKeepsListingOrderWithConcurrency(t *testing.T) {
	names := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	var upgradable strings.Builder
	answers := make(map[string]string)
	delays := make(map[string]time.Duration)
	for i, name := range names {
		fmt.Fprintf(&upgradable, "%s/stable %d.0 amd64\n", name, i+1)
		answers[name] = "safe"
		// Earlier packages answer slower, late answers must not reorder
		delays[name] = time.Duration(len(names)-i) * 10 * time.Millisecond
	}

	backend := &fakeBackend{answers: answers, delays: delays}
	lister := &fakeLister{upgradable: upgradable.String()}

	auditor := New(models.AuditConfig{Concurrency: 4}, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var got []string
	for _, r := range results {
		got = append(got, r.Name)
	}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("Expected listing order %v, got %v", names, got)
	}

	if backend.calls != len(names) {
		t.Errorf("Expected %d backend calls, got %d", len(names), backend.calls)
	}
}

func TestRunNotNewerCandidateStillAudited(t *testing.T) {
	lister := &fakeLister{
		installed:  "foo/stable 2.0-1 amd64\n",
		upgradable: "foo/stable 2.0-1 amd64\n",
	}
	backend := &fakeBackend{answers: map[string]string{"foo": "safe"}}

	auditor := New(models.AuditConfig{}, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("A held package was dropped from the audit: %d results", len(results))
	}
}

func TestRunReadsListingFiles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "aptaudit-audit-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	installedPath := filepath.Join(tmpDir, "installed.txt")
	os.WriteFile(installedPath, []byte("foo/stable 1.0 amd64\n"), 0644)
	upgradablePath := filepath.Join(tmpDir, "upgradable.txt")
	os.WriteFile(upgradablePath, []byte("foo/stable 2.0 amd64\n"), 0644)

	config := models.AuditConfig{
		InstalledFile:  installedPath,
		UpgradableFile: upgradablePath,
	}

	// The lister must not be consulted when files are given
	lister := &fakeLister{installed: "wrong/x 9 amd64\n", upgradable: "wrong/x 9 amd64\n"}
	backend := &fakeBackend{answers: map[string]string{"foo": "safe"}}

	auditor := New(config, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	results, err := auditor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 || results[0].Name != "foo" {
		t.Fatalf("Expected the file-based inventory, got %+v", results)
	}
	if results[0].CurrentVersion != "1.0" {
		t.Errorf("Expected current version 1.0 from the file, got %q", results[0].CurrentVersion)
	}
}

func TestRunUnreadableListingFileFails(t *testing.T) {
	config := models.AuditConfig{
		InstalledFile: filepath.Join(os.TempDir(), "aptaudit-no-such-listing"),
	}

	auditor := New(config, &fakeLister{}, &fakeLocator{}, &fakeChangelogs{}, &fakeBackend{})

	_, err := auditor.Run(context.Background())
	if err == nil {
		t.Fatal("Expected an error for an unreadable listing file")
	}

	var auditErr *models.AuditError
	if !errors.As(err, &auditErr) || auditErr.Type != models.ErrInputSource {
		t.Errorf("Expected an InputSource error, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lister := &fakeLister{upgradable: "foo/stable 2.0 amd64\n"}
	backend := &fakeBackend{answers: map[string]string{"foo": "safe"}}

	auditor := New(models.AuditConfig{}, lister, &fakeLocator{}, &fakeChangelogs{}, backend)

	if _, err := auditor.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected a canceled run to fail with the context error, got %v", err)
	}
}
