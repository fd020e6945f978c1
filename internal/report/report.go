package report

import "github.com/aptaudit/aptaudit/internal/models"

// Builder renders audit results into a report document
type Builder interface {
	// Build generates the report for the given results
	Build(results []models.AuditResult) string
}

// Get returns the builder for the requested format
func Get(format models.Format) Builder {
	switch format {
	case models.FormatHTML:
		return &HTMLBuilder{}
	default:
		return &MarkdownBuilder{}
	}
}

// breakingLabel renders the breaking-change verdict with the French labels
// consumers of the report expect
func breakingLabel(breaking bool) string {
	if breaking {
		return "Oui"
	}
	return "Non"
}

// statusLabel renders the safety verdict
func statusLabel(safe bool) string {
	if safe {
		return "safe"
	}
	return "not safe"
}
