package cli

import (
	"fmt"

	"github.com/ravenhall-io/notionctl/internal/core"
	"github.com/ravenhall-io/notionctl/internal/observability"
)

// Service instances, set during app initialization in internal/app.go.
// Workspace stays nil when no integration secret is configured.
var (
	Workspace core.WorkspaceService
	AuditLog  observability.AuditLog
	UsageCalc observability.UsageCalculator

	// Defaults from configuration.
	DefaultSearchLimit = 10
	DefaultMaxBlocks   = 100
)

// requireWorkspace returns an error when no workspace service is wired,
// which happens when the integration secret is missing.
func requireWorkspace() error {
	if Workspace == nil {
		return fmt.Errorf("%s is not set: create an internal integration at https://www.notion.so/profile/integrations and export its secret", core.SecretEnvVar)
	}
	return nil
}
