// Package internal provides the App struct that wires all components of
// notionctl together and initializes the CLI layer.
package internal

import (
	"fmt"
	"time"

	"github.com/ravenhall-io/notionctl/internal/cli"
	"github.com/ravenhall-io/notionctl/internal/core"
	"github.com/ravenhall-io/notionctl/internal/notion"
	"github.com/ravenhall-io/notionctl/internal/observability"
	"github.com/ravenhall-io/notionctl/pkg/models"
	"go.uber.org/zap"
)

// App holds all service dependencies for notionctl.
type App struct {
	Config *models.Config
	Logger *zap.Logger

	// Notion API client. Nil when no integration secret is configured.
	Client *notion.Client

	// Core services.
	Workspace core.WorkspaceService

	// Observability.
	AuditLog  observability.AuditLog
	UsageCalc observability.UsageCalculator
}

// NewApp loads configuration and wires all components. A missing integration
// secret is not an error here: commands that need the API check for a wired
// workspace and report the missing secret themselves.
func NewApp() (*App, error) {
	loader := core.NewConfigLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	// --- Logging ---
	app.Logger = zap.NewNop()
	if cfg.Debug {
		logger, err := zap.NewDevelopment()
		if err == nil {
			app.Logger = logger
		}
	}

	// --- Observability ---
	if cfg.Audit.Enabled {
		auditLog, err := observability.NewJSONLAuditLog(cfg.Audit.Path)
		if err != nil {
			// Non-fatal: run without auditing if the log can't be created.
			app.Logger.Warn("audit log unavailable", zap.Error(err))
		} else {
			app.AuditLog = auditLog
			app.UsageCalc = observability.NewUsageCalculator(auditLog)
		}
	}

	// --- Notion client and workspace service ---
	if cfg.IntegrationSecret != "" {
		app.Client = notion.NewClient(cfg.IntegrationSecret,
			notion.WithBaseURL(cfg.BaseURL),
			notion.WithAPIVersion(cfg.APIVersion),
			notion.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
			notion.WithLogger(app.Logger),
		)
		app.Workspace = core.NewWorkspaceService(app.Client, app.AuditLog, app.Logger)
	}

	// --- Wire CLI package-level variables ---
	cli.Workspace = app.Workspace
	cli.AuditLog = app.AuditLog
	cli.UsageCalc = app.UsageCalc
	cli.DefaultSearchLimit = cfg.SearchLimit
	cli.DefaultMaxBlocks = cfg.MaxBlocks

	return app, nil
}

// Close releases resources held by the App, such as the audit log file
// handle. Safe to call when the audit log is nil.
func (a *App) Close() error {
	if a.AuditLog != nil {
		return a.AuditLog.Close()
	}
	return nil
}
