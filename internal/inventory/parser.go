package inventory

import (
	"bufio"
	"strings"

	"github.com/aptaudit/aptaudit/internal/utils"
)

// Parse extracts package names and versions from apt list output.
//
// Listing lines look like:
//
//	bash/stable,now 5.2.15-2+b2 amd64 [installed]
//
// The name is the first field up to its first "/", the version is the second
// field. Lines without a "/" (the "Listing..." banner, warnings) are skipped.
func Parse(text string) *Inventory {
	inv := New()

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "/") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name, _, _ := strings.Cut(fields[0], "/")
		if name == "" {
			continue
		}

		version := ""
		if len(fields) > 1 {
			version = fields[1]
		}

		inv.Set(name, version)
	}

	return inv
}

// LoadFile parses a listing file, transparently decompressing it
func LoadFile(path string) (*Inventory, error) {
	data, err := utils.ReadFileAuto(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}
