package apt

import (
	"context"
	"errors"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Runner executes an external command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client invokes the system apt tools to list packages and fetch changelogs.
// Every method degrades failure to an empty string: a host without apt, an
// offline mirror or a missing changelog must not abort an audit run.
type Client struct {
	runner Runner
}

// NewClient creates a Client running real commands
func NewClient() *Client {
	return &Client{runner: run}
}

// NewClientWithRunner creates a Client with a custom command runner
func NewClientWithRunner(runner Runner) *Client {
	return &Client{runner: runner}
}

// ListInstalled returns the raw `apt list --installed` output
func (c *Client) ListInstalled(ctx context.Context) string {
	return c.capture(ctx, "apt", "list", "--installed")
}

// ListUpgradable returns the raw `apt list --upgradable` output
func (c *Client) ListUpgradable(ctx context.Context) string {
	return c.capture(ctx, "apt", "list", "--upgradable")
}

// Changelog returns the changelog apt-get downloads for the candidate
// version of a package
func (c *Client) Changelog(ctx context.Context, pkg string) string {
	return c.capture(ctx, "apt-get", "changelog", pkg)
}

func (c *Client) capture(ctx context.Context, name string, args ...string) string {
	out, err := c.runner(ctx, name, args...)
	if err != nil {
		logrus.Warnf("Command %s failed: %v", name, err)
		return ""
	}
	return string(out)
}

// run executes a command, keeping stdout even when the command exits
// non-zero. stderr is discarded; apt uses it for CLI stability warnings.
func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}

	return out, err
}
