package report

import (
	"fmt"
	"strings"

	"github.com/aptaudit/aptaudit/internal/models"
)

// HTMLBuilder renders the report as a single HTML table
type HTMLBuilder struct{}

// Build generates the HTML report. Values are embedded verbatim, without
// HTML escaping, to keep the document shape existing consumers parse; a
// hostile model answer can therefore inject markup into the page.
func (b *HTMLBuilder) Build(results []models.AuditResult) string {
	lines := []string{
		"<html><body>",
		"<h1>Audit de mise à jour</h1>",
		"<table border='1'>",
		"<tr><th>Paquet</th><th>Actuelle</th><th>Disponible</th><th>Breaking</th><th>Statut</th><th>Configuration</th><th>Analyse</th></tr>",
	}

	for _, r := range results {
		lines = append(lines, fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			r.Name, r.CurrentVersion, r.CandidateVersion,
			breakingLabel(r.Breaking), statusLabel(r.Safe),
			r.ConfigPath, r.Summary,
		))
	}

	lines = append(lines, "</table>", "</body></html>")

	return strings.Join(lines, "\n")
}
