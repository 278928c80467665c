package models

// Config holds the merged runtime configuration for notionctl, sourced from
// the NOTION_INTEGRATION_SECRET environment variable, an optional
// .notionrc.yaml file, and built-in defaults.
type Config struct {
	// IntegrationSecret is the bearer credential issued by Notion for an
	// internal integration. Never written to config files.
	IntegrationSecret string

	// BaseURL is the Notion API root, e.g. https://api.notion.com/v1.
	BaseURL string

	// APIVersion is sent as the Notion-Version header.
	APIVersion string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int

	// SearchLimit is the default number of search results.
	SearchLimit int

	// MaxBlocks is the default cap on blocks fetched per page read.
	MaxBlocks int

	// Debug enables verbose structured logging to stderr.
	Debug bool

	Audit AuditConfig
}

// AuditConfig controls the JSONL audit log of API operations.
type AuditConfig struct {
	Enabled bool
	// Path of the audit log file. Defaults to .notionctl_audit.jsonl in the
	// user home directory.
	Path string
}
