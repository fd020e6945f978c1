package report

import (
	"fmt"
	"strings"

	"github.com/aptaudit/aptaudit/internal/models"
)

// MarkdownBuilder renders the report as Markdown, one section per package
type MarkdownBuilder struct{}

// Build generates the Markdown report
func (b *MarkdownBuilder) Build(results []models.AuditResult) string {
	lines := []string{"# Audit de mise à jour\n"}

	for _, r := range results {
		lines = append(lines,
			fmt.Sprintf("## %s", r.Name),
			fmt.Sprintf("- Version actuelle : %s", r.CurrentVersion),
			fmt.Sprintf("- Version disponible : %s", r.CandidateVersion),
			fmt.Sprintf("- Breaking change : %s", breakingLabel(r.Breaking)),
			fmt.Sprintf("- Statut : %s", statusLabel(r.Safe)),
		)
		if r.ConfigPath != "" {
			lines = append(lines, fmt.Sprintf("- Fichier de configuration : `%s`", r.ConfigPath))
		}
		lines = append(lines, fmt.Sprintf("- Analyse : %s\n", r.Summary))
	}

	return strings.Join(lines, "\n")
}
