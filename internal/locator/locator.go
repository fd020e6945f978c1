package locator

import (
	"os"
	"path/filepath"
	"strings"
)

// Locator discovers the likely configuration file of a package under the
// conventional system configuration directories.
type Locator struct {
	roots []string
}

// New creates a Locator probing the standard configuration roots
func New() *Locator {
	return &Locator{roots: []string{"/etc", "/usr/local/etc"}}
}

// NewWithRoots creates a Locator probing the given directories
func NewWithRoots(roots ...string) *Locator {
	return &Locator{roots: roots}
}

// Locate returns a plausible configuration path for a package. It probes
// <root>/<name> and <root>/<name>.conf in each root, then falls back to a
// shallow scan of each root for entries containing the package name. The
// boolean is false when nothing was found. Any directory entry counts; the
// result is a hint for the analysis, not a guarantee.
func (l *Locator) Locate(name string) (string, bool) {
	for _, root := range l.roots {
		for _, candidate := range []string{
			filepath.Join(root, name),
			filepath.Join(root, name+".conf"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}
	}

	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), name) {
				return filepath.Join(root, entry.Name()), true
			}
		}
	}

	return "", false
}
