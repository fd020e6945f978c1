package changelog

import (
	"context"
	"path/filepath"

	"github.com/aptaudit/aptaudit/internal/utils"
)

// changelogNames lists the file names dpkg conventionally installs under
// /usr/share/doc/<pkg>, most specific first
var changelogNames = []string{
	"changelog.Debian.gz",
	"changelog.Debian.xz",
	"changelog.gz",
	"changelog.xz",
	"changelog",
}

// DocDirSource reads the changelog installed with the current version of a
// package. It covers hosts that cannot reach a mirror; the text trails the
// candidate version but still names recent incompatibilities.
type DocDirSource struct {
	root string
}

// NewDocDirSource creates a Source over /usr/share/doc
func NewDocDirSource() *DocDirSource {
	return &DocDirSource{root: "/usr/share/doc"}
}

// NewDocDirSourceAt creates a Source over an alternate doc tree
func NewDocDirSourceAt(root string) *DocDirSource {
	return &DocDirSource{root: root}
}

// Fetch returns the first readable changelog file for the package
func (s *DocDirSource) Fetch(ctx context.Context, pkg string) string {
	for _, name := range changelogNames {
		data, err := utils.ReadFileAuto(filepath.Join(s.root, pkg, name))
		if err != nil {
			continue
		}
		return string(data)
	}
	return ""
}
