package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitStockroomDirCreatesStructure(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitStockroomDir(projectDir); err != nil {
		t.Fatalf("InitStockroomDir returned error: %v", err)
	}
	for _, rel := range []string{
		"logs",
		"teams",
		"config.yaml",
		"catalog.yaml",
	} {
		if _, err := os.Stat(filepath.Join(projectDir, StockroomDir, rel)); err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
	}
}

func TestInitStockroomDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	stockroomDir := filepath.Join(projectDir, StockroomDir)
	if err := os.MkdirAll(stockroomDir, 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "version: 1\ncatalog: custom.yaml\n"
	if err := os.WriteFile(filepath.Join(stockroomDir, "config.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitStockroomDir(projectDir); err != nil {
		t.Fatalf("InitStockroomDir returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(stockroomDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatalf("init must not overwrite an existing config, got:\n%s", data)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.LowStockThreshold(); got != 5 {
		t.Fatalf("expected default threshold 5, got %d", got)
	}
	if !strings.HasPrefix(c.CatalogPath(), projectDir) {
		t.Fatalf("expected catalog path under project dir, got %s", c.CatalogPath())
	}
	if c.DexBaseURL() != "https://pokeapi.co/api/v2" {
		t.Fatalf("unexpected default dex base url: %s", c.DexBaseURL())
	}
	if c.DexTimeout() != 10*time.Second {
		t.Fatalf("unexpected default dex timeout: %s", c.DexTimeout())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	stockroomDir := filepath.Join(projectDir, StockroomDir)
	if err := os.MkdirAll(stockroomDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
inventory:
  low_stock_threshold: 0
catalog: fixtures/catalog.yaml
dex:
  base_url: https://dex.example.test/api/
  timeout_seconds: 3
`)
	if err := os.WriteFile(filepath.Join(stockroomDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.LowStockThreshold(); got != 0 {
		t.Fatalf("explicit threshold 0 must survive defaulting, got %d", got)
	}
	if want := filepath.Join(projectDir, "fixtures", "catalog.yaml"); c.CatalogPath() != want {
		t.Fatalf("expected catalog path %s, got %s", want, c.CatalogPath())
	}
	if c.DexBaseURL() != "https://dex.example.test/api" {
		t.Fatalf("expected trailing slash trimmed, got %s", c.DexBaseURL())
	}
	if c.DexTimeout() != 3*time.Second {
		t.Fatalf("unexpected dex timeout: %s", c.DexTimeout())
	}
}

func TestNewConfigValidation(t *testing.T) {
	projectDir := t.TempDir()
	stockroomDir := filepath.Join(projectDir, StockroomDir)
	if err := os.MkdirAll(stockroomDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
inventory:
  low_stock_threshold: -2
`)
	if err := os.WriteFile(filepath.Join(stockroomDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected validation error for negative threshold")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv("STOCKROOM_LOW_STOCK_THRESHOLD", "9")
	t.Setenv("STOCKROOM_DEX_BASE_URL", "http://127.0.0.1:9999/api/")
	t.Setenv("STOCKROOM_DEX_TIMEOUT_SECONDS", "2")
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.LowStockThreshold(); got != 9 {
		t.Fatalf("expected env threshold 9, got %d", got)
	}
	if c.DexBaseURL() != "http://127.0.0.1:9999/api" {
		t.Fatalf("expected env dex url, got %s", c.DexBaseURL())
	}
	if c.DexTimeout() != 2*time.Second {
		t.Fatalf("expected env timeout 2s, got %s", c.DexTimeout())
	}
}
