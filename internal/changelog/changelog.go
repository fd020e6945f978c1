package changelog

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Source provides release notes for a package. An empty string means the
// source has nothing for this package; sources never fail an audit.
type Source interface {
	// Fetch returns the changelog text for a package, or ""
	Fetch(ctx context.Context, pkg string) string
}

// Chain tries sources in order and returns the first non-empty changelog
type Chain struct {
	sources []Source
}

// NewChain creates a Chain over the given sources
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Fetch returns the first non-empty answer from the chained sources
func (c *Chain) Fetch(ctx context.Context, pkg string) string {
	for _, s := range c.sources {
		if text := s.Fetch(ctx, pkg); text != "" {
			return text
		}
	}

	logrus.Debugf("No changelog found for %s", pkg)
	return ""
}
