package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File holds the optional defaults an operator keeps on disk instead of
// repeating flags on every run. Zero values mean "not set".
type File struct {
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	Backend     string `yaml:"llm"`
	OpenLLMURL  string `yaml:"openllm-url"`
	Recipient   string `yaml:"recipient"`
	Model       string `yaml:"model"`
	Concurrency int    `yaml:"concurrency"`
	NoEmail     bool   `yaml:"no-email"`
}

// DefaultPath returns the conventional location of the defaults file
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "aptaudit", "config.yaml")
}

// Load reads a defaults file. The file must exist and parse.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &f, nil
}

// LoadDefault reads the defaults file at the conventional path, returning an
// empty File when there is none
func LoadDefault() (*File, error) {
	path := DefaultPath()
	if path == "" {
		return &File{}, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &File{}, nil
	}

	return Load(path)
}
