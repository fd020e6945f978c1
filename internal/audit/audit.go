package audit

import (
	"context"
	"fmt"

	"github.com/aptaudit/aptaudit/internal/analyzer"
	"github.com/aptaudit/aptaudit/internal/inventory"
	"github.com/aptaudit/aptaudit/internal/models"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Lister provides the package listings of the host
type Lister interface {
	ListInstalled(ctx context.Context) string
	ListUpgradable(ctx context.Context) string
}

// ConfigLocator finds the likely configuration file of a package
type ConfigLocator interface {
	Locate(name string) (string, bool)
}

// ChangelogSource provides release notes for a package
type ChangelogSource interface {
	Fetch(ctx context.Context, pkg string) string
}

// Auditor runs the audit pipeline over every upgradable package
type Auditor struct {
	config     models.AuditConfig
	lister     Lister
	locator    ConfigLocator
	changelogs ChangelogSource
	backend    analyzer.Backend
}

// New creates an Auditor
func New(config models.AuditConfig, lister Lister, locator ConfigLocator, changelogs ChangelogSource, backend analyzer.Backend) *Auditor {
	return &Auditor{
		config:     config,
		lister:     lister,
		locator:    locator,
		changelogs: changelogs,
		backend:    backend,
	}
}

// Run audits every upgradable package and returns one result per package, in
// listing order. Individual analysis failures degrade into the result's
// summary; only an unreadable listing file or cancellation aborts the run.
func (a *Auditor) Run(ctx context.Context) ([]models.AuditResult, error) {
	logrus.Info("Collecting installed packages...")
	installed, err := a.loadInventory(ctx, a.config.InstalledFile, a.lister.ListInstalled)
	if err != nil {
		return nil, err
	}
	logrus.Infof("%d installed packages found", installed.Len())

	logrus.Info("Collecting upgradable packages...")
	upgradable, err := a.loadInventory(ctx, a.config.UpgradableFile, a.lister.ListUpgradable)
	if err != nil {
		return nil, err
	}
	logrus.Infof("%d upgrades available", upgradable.Len())

	concurrency := a.config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	names := upgradable.Names()
	results := make([]models.AuditResult, len(names))

	// Workers write to their own index so the report keeps listing order
	// whatever the concurrency.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.auditPackage(ctx, name, installed, upgradable)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// loadInventory reads a listing from a file when one is configured,
// otherwise from the lister
func (a *Auditor) loadInventory(ctx context.Context, path string, list func(context.Context) string) (*inventory.Inventory, error) {
	if path != "" {
		inv, err := inventory.LoadFile(path)
		if err != nil {
			return nil, &models.AuditError{
				Type: models.ErrInputSource,
				Err:  fmt.Errorf("failed to read listing %s: %w", path, err),
			}
		}
		return inv, nil
	}

	return inventory.Parse(list(ctx)), nil
}

// auditPackage assembles and runs the analysis request for one package
func (a *Auditor) auditPackage(ctx context.Context, name string, installed, upgradable *inventory.Inventory) models.AuditResult {
	logrus.Infof("Auditing %s...", name)

	current, _ := installed.Version(name)
	candidate, _ := upgradable.Version(name)

	warnNotNewer(name, current, candidate)

	configPath, found := a.locator.Locate(name)
	if found {
		logrus.Debugf("Configuration for %s: %s", name, configPath)
	}

	text := a.changelogs.Fetch(ctx, name)

	return analyzer.Analyze(ctx, a.backend, analyzer.Request{
		Name:             name,
		CurrentVersion:   current,
		CandidateVersion: candidate,
		ConfigPath:       configPath,
		Changelog:        text,
	})
}

// warnNotNewer logs when the candidate does not sort above the installed
// version, which usually means a pin or repository skew. The package is
// still audited.
func warnNotNewer(name, current, candidate string) {
	if current == "" || candidate == "" {
		return
	}

	cur, err := debversion.NewVersion(current)
	if err != nil {
		return
	}
	cand, err := debversion.NewVersion(candidate)
	if err != nil {
		return
	}

	if !cand.GreaterThan(cur) {
		logrus.Warnf("Candidate %s of %s does not sort above installed %s", candidate, name, current)
	}
}
