// Package core contains the business logic for notionctl: configuration
// loading and the workspace service that ties the Notion API client to
// markdown conversion and auditing.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ravenhall-io/notionctl/pkg/models"
	"github.com/spf13/viper"
)

// SecretEnvVar is the environment variable holding the Notion integration
// secret. The secret is only ever read from the environment, never from a
// config file.
const SecretEnvVar = "NOTION_INTEGRATION_SECRET"

// debugEnvVar toggles verbose logging without touching the config file.
const debugEnvVar = "NOTIONCTL_DEBUG"

// validVersionPattern matches Notion-Version date stamps like 2022-06-28.
var validVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ConfigLoader loads and validates the notionctl configuration from the
// environment and an optional .notionrc.yaml file.
type ConfigLoader interface {
	Load() (*models.Config, error)
	Validate(cfg *models.Config) error
}

// viperConfigLoader implements ConfigLoader using Viper for the YAML file.
type viperConfigLoader struct {
	// searchPaths are the directories checked for .notionrc.yaml, in order.
	searchPaths []string
}

// NewConfigLoader creates a ConfigLoader that looks for .notionrc.yaml in
// the given directories. With no arguments it checks the current directory
// and then the user home directory.
func NewConfigLoader(searchPaths ...string) ConfigLoader {
	if len(searchPaths) == 0 {
		searchPaths = append(searchPaths, ".")
		if home, err := os.UserHomeDir(); err == nil {
			searchPaths = append(searchPaths, home)
		}
	}
	return &viperConfigLoader{searchPaths: searchPaths}
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *models.Config {
	auditPath := ".notionctl_audit.jsonl"
	if home, err := os.UserHomeDir(); err == nil {
		auditPath = filepath.Join(home, ".notionctl_audit.jsonl")
	}
	return &models.Config{
		BaseURL:        "https://api.notion.com/v1",
		APIVersion:     "2022-06-28",
		TimeoutSeconds: 30,
		SearchLimit:    10,
		MaxBlocks:      100,
		Audit: models.AuditConfig{
			Enabled: true,
			Path:    auditPath,
		},
	}
}

// Load reads .notionrc.yaml from the search paths, overlays the environment,
// and returns the merged configuration. A missing file yields defaults.
func (cl *viperConfigLoader) Load() (*models.Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".notionrc")
	v.SetConfigType("yaml")
	for _, p := range cl.searchPaths {
		v.AddConfigPath(p)
	}

	v.SetDefault("api.base_url", cfg.BaseURL)
	v.SetDefault("api.version", cfg.APIVersion)
	v.SetDefault("api.timeout_seconds", cfg.TimeoutSeconds)
	v.SetDefault("defaults.search_limit", cfg.SearchLimit)
	v.SetDefault("defaults.max_blocks", cfg.MaxBlocks)
	v.SetDefault("audit.enabled", cfg.Audit.Enabled)
	v.SetDefault("audit.path", cfg.Audit.Path)
	v.SetDefault("log.debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .notionrc.yaml: %w", err)
		}
	}

	cfg.BaseURL = v.GetString("api.base_url")
	cfg.APIVersion = v.GetString("api.version")
	cfg.TimeoutSeconds = v.GetInt("api.timeout_seconds")
	cfg.SearchLimit = v.GetInt("defaults.search_limit")
	cfg.MaxBlocks = v.GetInt("defaults.max_blocks")
	cfg.Audit.Enabled = v.GetBool("audit.enabled")
	cfg.Audit.Path = v.GetString("audit.path")
	cfg.Debug = v.GetBool("log.debug")

	// Environment always wins for the secret and the debug toggle.
	cfg.IntegrationSecret = os.Getenv(SecretEnvVar)
	if os.Getenv(debugEnvVar) != "" {
		cfg.Debug = true
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values and returns a clear
// error naming every problem found.
func (cl *viperConfigLoader) Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.BaseURL == "" {
		errs = append(errs, "api.base_url must not be empty")
	}

	if !validVersionPattern.MatchString(cfg.APIVersion) {
		errs = append(errs, fmt.Sprintf(
			"api.version %q is invalid, must be a date stamp like 2022-06-28",
			cfg.APIVersion,
		))
	}

	if cfg.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf(
			"api.timeout_seconds must be positive, got %d", cfg.TimeoutSeconds))
	}

	if cfg.SearchLimit <= 0 {
		errs = append(errs, fmt.Sprintf(
			"defaults.search_limit must be positive, got %d", cfg.SearchLimit))
	}

	if cfg.MaxBlocks <= 0 {
		errs = append(errs, fmt.Sprintf(
			"defaults.max_blocks must be positive, got %d", cfg.MaxBlocks))
	}

	if cfg.Audit.Enabled && cfg.Audit.Path == "" {
		errs = append(errs, "audit.path must not be empty when audit.enabled is true")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
