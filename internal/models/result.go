package models

// AuditResult represents the audit outcome for a single upgradable package
type AuditResult struct {
	// Package identity
	Name             string
	CurrentVersion   string
	CandidateVersion string

	// Configuration file discovered on the host, empty when none was found
	ConfigPath string

	// Analysis outcome
	Breaking bool
	Safe     bool
	Summary  string
}
