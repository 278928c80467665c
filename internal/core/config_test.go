package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ravenhall-io/notionctl/pkg/models"
)

func TestConfigLoaderDefaults(t *testing.T) {
	t.Setenv(SecretEnvVar, "")
	t.Setenv("NOTIONCTL_DEBUG", "")

	loader := NewConfigLoader(t.TempDir())
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.BaseURL != "https://api.notion.com/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIVersion != "2022-06-28" {
		t.Errorf("APIVersion = %q", cfg.APIVersion)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d, want 10", cfg.SearchLimit)
	}
	if cfg.MaxBlocks != 100 {
		t.Errorf("MaxBlocks = %d, want 100", cfg.MaxBlocks)
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled = false, want true")
	}
	if cfg.IntegrationSecret != "" {
		t.Errorf("IntegrationSecret = %q, want empty", cfg.IntegrationSecret)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

func TestConfigLoaderReadsYAMLFile(t *testing.T) {
	t.Setenv(SecretEnvVar, "")

	dir := t.TempDir()
	yaml := `
api:
  version: "2023-03-01"
  timeout_seconds: 5
defaults:
  search_limit: 25
  max_blocks: 40
audit:
  enabled: false
`
	if err := os.WriteFile(filepath.Join(dir, ".notionrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := NewConfigLoader(dir).Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.APIVersion != "2023-03-01" {
		t.Errorf("APIVersion = %q, want 2023-03-01", cfg.APIVersion)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.TimeoutSeconds)
	}
	if cfg.SearchLimit != 25 {
		t.Errorf("SearchLimit = %d, want 25", cfg.SearchLimit)
	}
	if cfg.MaxBlocks != 40 {
		t.Errorf("MaxBlocks = %d, want 40", cfg.MaxBlocks)
	}
	if cfg.Audit.Enabled {
		t.Error("Audit.Enabled = true, want false")
	}
	// Unset keys keep their defaults.
	if cfg.BaseURL != "https://api.notion.com/v1" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestConfigLoaderSecretOnlyFromEnvironment(t *testing.T) {
	t.Setenv(SecretEnvVar, "ntn_env_secret")

	dir := t.TempDir()
	// A secret in the file must be ignored.
	yaml := "integration_secret: ntn_file_secret\n"
	if err := os.WriteFile(filepath.Join(dir, ".notionrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := NewConfigLoader(dir).Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.IntegrationSecret != "ntn_env_secret" {
		t.Errorf("IntegrationSecret = %q, want value from %s", cfg.IntegrationSecret, SecretEnvVar)
	}
}

func TestConfigLoaderDebugEnvOverride(t *testing.T) {
	t.Setenv(SecretEnvVar, "")
	t.Setenv("NOTIONCTL_DEBUG", "1")

	cfg, err := NewConfigLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true when NOTIONCTL_DEBUG is set")
	}
}

func TestConfigLoaderMalformedFile(t *testing.T) {
	t.Setenv(SecretEnvVar, "")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".notionrc.yaml"), []byte("api: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := NewConfigLoader(dir).Load(); err == nil {
		t.Fatal("expected error for malformed yaml, got nil")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	loader := NewConfigLoader(t.TempDir())
	if err := loader.Validate(defaultConfig()); err != nil {
		t.Errorf("Validate(defaults) = %v, want nil", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	loader := NewConfigLoader(t.TempDir())
	cfg := &models.Config{
		BaseURL:        "",
		APIVersion:     "not-a-date",
		TimeoutSeconds: 0,
		SearchLimit:    -1,
		MaxBlocks:      0,
		Audit:          models.AuditConfig{Enabled: true, Path: ""},
	}

	err := loader.Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	msg := err.Error()
	for _, want := range []string{
		"api.base_url",
		"api.version",
		"api.timeout_seconds",
		"defaults.search_limit",
		"defaults.max_blocks",
		"audit.path",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidateNilConfig(t *testing.T) {
	loader := NewConfigLoader(t.TempDir())
	if err := loader.Validate(nil); err == nil {
		t.Fatal("expected error for nil config, got nil")
	}
}
