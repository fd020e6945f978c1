package models

// Format identifies a report output format
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ContentType returns the MIME content type used when the report is mailed
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// AuditConfig contains configuration for an upgrade audit run
type AuditConfig struct {
	// Input sources (set to read listings from files instead of calling apt)
	InstalledFile  string
	UpgradableFile string

	// Analysis backend
	Backend     string // "openai" or "openllm"
	OpenAIKey   string
	OpenLLMURL  string
	OpenLLMKey  string
	Model       string
	Concurrency int

	// Report
	Format Format
	Output string

	// Delivery
	NoEmail   bool
	Recipient string

	// Signing
	GPGKeyPath    string
	GPGPassphrase string

	// Defaults file
	ConfigFile string
}
