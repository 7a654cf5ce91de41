// ABOUTME: Tests for configuration loading
// ABOUTME: Covers YAML parsing, env var expansion, duration parsing, and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkstash.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  path: "/tmp/linkstash.db"
fetch:
  page_timeout: 10s
  resource_timeout: 5s
categories:
  defaults:
    - name: News
      color: blue
    - name: Tech
      color: green
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token: got %q", cfg.Telegram.Token)
	}
	if cfg.Fetch.PageTimeout != 10*time.Second {
		t.Errorf("page_timeout: got %v", cfg.Fetch.PageTimeout)
	}
	if cfg.Fetch.ResourceTimeout != 5*time.Second {
		t.Errorf("resource_timeout: got %v", cfg.Fetch.ResourceTimeout)
	}
	if len(cfg.Categories.Defaults) != 2 || cfg.Categories.Defaults[0].Name != "News" {
		t.Errorf("defaults: got %+v", cfg.Categories.Defaults)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("LINKSTASH_TEST_TOKEN", "999:xyz")

	path := writeConfig(t, `
telegram:
  token: "${LINKSTASH_TEST_TOKEN}"
database:
  path: "/tmp/linkstash.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Telegram.Token != "999:xyz" {
		t.Errorf("expected expanded token, got %q", cfg.Telegram.Token)
	}
}

func TestLoad_DefaultCategoriesFallback(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  path: "/tmp/linkstash.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Categories.Defaults) != 5 {
		t.Fatalf("expected 5 fallback defaults, got %d", len(cfg.Categories.Defaults))
	}
	if cfg.Categories.Defaults[0].Name != "News" || cfg.Categories.Defaults[0].Color != "blue" {
		t.Errorf("unexpected first default: %+v", cfg.Categories.Defaults[0])
	}
}

func TestLoad_MissingToken(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "/tmp/linkstash.db"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for missing token")
	}
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for missing database path")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  path: "/tmp/linkstash.db"
fetch:
  page_timeout: "soon"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
