package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aptaudit/aptaudit/internal/analyzer"
	"github.com/aptaudit/aptaudit/internal/apt"
	"github.com/aptaudit/aptaudit/internal/audit"
	"github.com/aptaudit/aptaudit/internal/changelog"
	cfgfile "github.com/aptaudit/aptaudit/internal/config"
	"github.com/aptaudit/aptaudit/internal/locator"
	"github.com/aptaudit/aptaudit/internal/mailer"
	"github.com/aptaudit/aptaudit/internal/models"
	"github.com/aptaudit/aptaudit/internal/report"
	"github.com/aptaudit/aptaudit/internal/signer"
	"github.com/aptaudit/aptaudit/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var config models.AuditConfig
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Audit the pending package upgrades",
		Long: `Collects the host's upgradable packages, asks the configured language
model whether each upgrade carries breaking changes, and produces a report
that is mailed to the recipient or written to disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Format = models.Format(format)

			if err := applyDefaultsFile(cmd, &config); err != nil {
				return err
			}

			resolveCredentials(&config)

			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting upgrade audit...")
			logrus.Debugf("Configuration: %+v", config)

			// Run the audit
			return runAudit(cmd.Context(), &config)
		},
	}

	// Input sources
	cmd.Flags().StringVar(&config.InstalledFile, "installed-file", "", "Read installed packages from a listing file instead of apt")
	cmd.Flags().StringVar(&config.UpgradableFile, "upgradable-file", "", "Read upgradable packages from a listing file instead of apt")

	// Analysis backend
	cmd.Flags().StringVar(&config.Backend, "llm", "openai", "LLM provider (openai, openllm)")
	cmd.Flags().StringVar(&config.OpenAIKey, "openai-key", "", "OpenAI API key (or OPENAI_API_KEY)")
	cmd.Flags().StringVar(&config.OpenLLMURL, "openllm-url", "http://localhost:3000/v1", "OpenLLM server URL")
	cmd.Flags().StringVar(&config.OpenLLMKey, "openllm-key", "", "OpenLLM API key (or OPENLLM_API_KEY)")
	cmd.Flags().StringVar(&config.Model, "model", "gpt-3.5-turbo", "Model queried for the analysis")
	cmd.Flags().IntVar(&config.Concurrency, "concurrency", 1, "Number of packages analyzed in parallel")

	// Report
	cmd.Flags().StringVar(&format, "format", "md", "Report format (md, html)")
	cmd.Flags().StringVarP(&config.Output, "output", "o", "upgrade_report.md", "Report path, used with --no-email")

	// Delivery
	cmd.Flags().BoolVar(&config.NoEmail, "no-email", false, "Write the report to --output instead of mailing it")
	cmd.Flags().StringVar(&config.Recipient, "recipient", "root", "Mail recipient")

	// Report signing
	cmd.Flags().StringVar(&config.GPGKeyPath, "sign-key", "", "Path to a GPG private key used to sign the written report")
	cmd.Flags().StringVar(&config.GPGPassphrase, "sign-passphrase", "", "GPG key passphrase")

	// Defaults file
	cmd.Flags().StringVar(&config.ConfigFile, "config", "", "YAML defaults file")

	return cmd
}

// applyDefaultsFile fills options the user did not set from the YAML
// defaults file. Flags always win over the file.
func applyDefaultsFile(cmd *cobra.Command, config *models.AuditConfig) error {
	var file *cfgfile.File
	var err error

	if config.ConfigFile != "" {
		file, err = cfgfile.Load(config.ConfigFile)
	} else {
		file, err = cfgfile.LoadDefault()
	}
	if err != nil {
		return &models.AuditError{Type: models.ErrInvalidConfig, Err: err}
	}

	flags := cmd.Flags()
	if !flags.Changed("format") && file.Format != "" {
		config.Format = models.Format(file.Format)
	}
	if !flags.Changed("output") && file.Output != "" {
		config.Output = file.Output
	}
	if !flags.Changed("llm") && file.Backend != "" {
		config.Backend = file.Backend
	}
	if !flags.Changed("openllm-url") && file.OpenLLMURL != "" {
		config.OpenLLMURL = file.OpenLLMURL
	}
	if !flags.Changed("recipient") && file.Recipient != "" {
		config.Recipient = file.Recipient
	}
	if !flags.Changed("model") && file.Model != "" {
		config.Model = file.Model
	}
	if !flags.Changed("concurrency") && file.Concurrency > 0 {
		config.Concurrency = file.Concurrency
	}
	if !flags.Changed("no-email") && file.NoEmail {
		config.NoEmail = true
	}

	return nil
}

// resolveCredentials falls back to the environment for keys not given as flags
func resolveCredentials(config *models.AuditConfig) {
	if config.OpenAIKey == "" {
		config.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.OpenLLMKey == "" {
		config.OpenLLMKey = os.Getenv("OPENLLM_API_KEY")
	}
}

func validateConfig(config *models.AuditConfig) error {
	if config.Format != models.FormatMarkdown && config.Format != models.FormatHTML {
		return &models.AuditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown format: %s (supported: md, html)", config.Format),
		}
	}

	if config.GPGKeyPath != "" && !config.NoEmail {
		return &models.AuditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("--sign-key only applies to written reports, add --no-email"),
		}
	}

	return nil
}

func runAudit(ctx context.Context, config *models.AuditConfig) error {
	// Step 1: Build the analysis backend, the key check happens here before
	// anything touches the system
	backend, err := analyzer.New(*config)
	if err != nil {
		return err
	}

	// Step 2: Assemble the collaborators
	aptClient := apt.NewClient()
	sources := changelog.NewChain(
		changelog.NewAptSource(aptClient),
		changelog.NewDocDirSource(),
	)

	// Step 3: Audit every upgradable package
	auditor := audit.New(*config, aptClient, locator.New(), sources, backend)
	results, err := auditor.Run(ctx)
	if err != nil {
		return err
	}

	// Step 4: Render the report
	logrus.Info("Generating report...")
	body := report.Get(config.Format).Build(results)

	// Step 5: Deliver
	if config.NoEmail {
		return writeReport(config, body)
	}
	return sendReport(config, body)
}

func writeReport(config *models.AuditConfig, body string) error {
	if err := utils.WriteFile(config.Output, []byte(body), 0644); err != nil {
		return &models.AuditError{
			Type: models.ErrReportWrite,
			Err:  fmt.Errorf("failed to write report: %w", err),
		}
	}
	logrus.Infof("Report written to %s", config.Output)

	if config.GPGKeyPath != "" {
		return signReport(config, body)
	}
	return nil
}

func signReport(config *models.AuditConfig, body string) error {
	gpgSigner, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
	if err != nil {
		return &models.AuditError{
			Type: models.ErrSigning,
			Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
		}
	}

	sig, err := gpgSigner.SignDetached([]byte(body))
	if err != nil {
		return &models.AuditError{Type: models.ErrSigning, Err: err}
	}

	sigPath := config.Output + ".asc"
	if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
		return &models.AuditError{
			Type: models.ErrSigning,
			Err:  fmt.Errorf("failed to write signature: %w", err),
		}
	}
	logrus.Infof("Signature written to %s", sigPath)

	return nil
}

func sendReport(config *models.AuditConfig, body string) error {
	msg := mailer.Build(body, config.Format, config.Recipient)

	if err := mailer.NewSendmail().Send(msg); err != nil {
		return &models.AuditError{Type: models.ErrDelivery, Err: err}
	}
	logrus.Infof("Report mailed to %s", config.Recipient)

	return nil
}
