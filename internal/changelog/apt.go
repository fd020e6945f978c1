package changelog

import (
	"context"

	"github.com/aptaudit/aptaudit/internal/apt"
)

// AptSource downloads the candidate version's changelog through apt-get
type AptSource struct {
	client *apt.Client
}

// NewAptSource creates a Source backed by the apt client
func NewAptSource(client *apt.Client) *AptSource {
	return &AptSource{client: client}
}

// Fetch returns the downloaded changelog, or "" when the host is offline or
// the mirror has none
func (s *AptSource) Fetch(ctx context.Context, pkg string) string {
	return s.client.Changelog(ctx, pkg)
}
