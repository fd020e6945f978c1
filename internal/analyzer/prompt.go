package analyzer

import (
	"fmt"
	"os"
	"strings"
)

// Request carries everything needed to assess one package upgrade
type Request struct {
	Name             string
	CurrentVersion   string
	CandidateVersion string
	ConfigPath       string
	Changelog        string
}

// BuildPrompt renders the French analysis prompt. The configuration question
// is only asked when a configuration path is known, and the file content is
// inlined when the path is a readable regular file.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Nous envisageons de mettre à jour le paquet %s de la version %s vers %s. ",
		req.Name, req.CurrentVersion, req.CandidateVersion)
	fmt.Fprintf(&b, "Voici le changelog ou les notes de version de la nouvelle version:\n\n%s\n\n",
		req.Changelog)
	b.WriteString("Indique s'il existe des breaking changes.")
	if req.ConfigPath != "" {
		fmt.Fprintf(&b, " Si oui, analyse la compatibilité du fichier de configuration actuel situé à l'emplacement suivant : %s.",
			req.ConfigPath)
	}
	b.WriteString(" Résume en quelques lignes en français et conclus par 'safe' ou 'not safe'.")

	if content, ok := readConfigFile(req.ConfigPath); ok {
		fmt.Fprintf(&b, "\n\nConfiguration actuelle:\n```\n%s\n```", content)
	}

	return b.String()
}

// readConfigFile reads the configuration content when the path points to a
// regular file. Unreadable files are silently skipped; the prompt still
// names the path.
func readConfigFile(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return string(data), true
}
