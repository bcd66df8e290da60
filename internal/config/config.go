// internal/config/config.go
//
// This package handles configuration and the .stockroom directory structure.
// Every project that uses stockroom gets a .stockroom/ folder created in its
// root, holding the config file, the seed catalog, session logs and saved
// teams.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// StockroomDir is the name of the directory we create in each project.
	StockroomDir = ".stockroom"

	defaultDexBaseURL = "https://pokeapi.co/api/v2"
	defaultDexTimeout = 10
)

const defaultConfigYAML = `# stockroom project configuration
version: 1

inventory:
  # Products with stock at or below this count show up in the low-stock report.
  low_stock_threshold: 5

# Seed catalog loaded into the in-memory store on startup. Relative paths are
# resolved against the project directory.
catalog: .stockroom/catalog.yaml

dex:
  base_url: https://pokeapi.co/api/v2
  timeout_seconds: 10
`

const defaultCatalogYAML = `# stockroom seed catalog
# Edit freely; invalid entries are skipped with a warning at startup.
products:
  - name: Laptop
    price: 999.99
    category: Electronics
    stock: 12
  - name: Phone
    price: 599.00
    category: Electronics
    stock: 4
  - name: Desk Chair
    price: 149.50
    category: Furniture
    stock: 7
  - name: Notebook
    price: 3.25
    category: Stationery
    stock: 200
  - name: Monitor
    price: 229.00
    category: Electronics
    stock: 2
`

// InventorySettings holds the knobs for the in-memory store. The threshold
// is a pointer so an explicit `low_stock_threshold: 0` survives defaulting.
type InventorySettings struct {
	LowStockThreshold *int `yaml:"low_stock_threshold"`
}

// DexSettings configures the creature-lookup client.
type DexSettings struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ProjectConfig models .stockroom/config.yaml.
type ProjectConfig struct {
	Version   int               `yaml:"version"`
	Inventory InventorySettings `yaml:"inventory"`
	Catalog   string            `yaml:"catalog"`
	Dex       DexSettings       `yaml:"dex"`
}

// envOverrides mirrors the subset of settings that can be overridden from
// the environment, prefixed STOCKROOM_ (e.g. STOCKROOM_LOW_STOCK_THRESHOLD).
type envOverrides struct {
	LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"-1"`
	Catalog           string `envconfig:"CATALOG"`
	DexBaseURL        string `envconfig:"DEX_BASE_URL"`
	DexTimeoutSeconds int    `envconfig:"DEX_TIMEOUT_SECONDS" default:"-1"`
}

// Config holds the runtime configuration for a stockroom session.
type Config struct {
	// ProjectDir is the directory where the user ran `stockroom` from.
	ProjectDir string

	// StockroomProjectDir is ProjectDir/.stockroom.
	StockroomProjectDir string

	Project ProjectConfig
}

// InitStockroomDir creates the .stockroom directory structure in the given
// project directory and materializes the default config and seed catalog
// when they do not exist yet.
//
// Structure created:
// .stockroom/
// ├── config.yaml   <- project settings
// ├── catalog.yaml  <- seed products loaded into the store on startup
// ├── logs/         <- session journal
// └── teams/        <- saved creature teams
func InitStockroomDir(projectDir string) error {
	stockroomDir := filepath.Join(projectDir, StockroomDir)

	dirs := []string{
		filepath.Join(stockroomDir, "logs"),
		filepath.Join(stockroomDir, "teams"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if err := ensureFile(filepath.Join(stockroomDir, "config.yaml"), defaultConfigYAML); err != nil {
		return err
	}
	return ensureFile(filepath.Join(stockroomDir, "catalog.yaml"), defaultCatalogYAML)
}

// NewConfig loads the project configuration, applying file settings first
// and environment overrides second.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:          projectDir,
		StockroomProjectDir: filepath.Join(projectDir, StockroomDir),
		Project:             defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.StockroomProjectDir, "logs")
}

// JournalPath returns the session journal file location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// TeamsDir returns the directory where saved teams live.
func (c *Config) TeamsDir() string {
	return filepath.Join(c.StockroomProjectDir, "teams")
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StockroomProjectDir, "config.yaml")
}

// CatalogPath returns the resolved seed catalog location.
func (c *Config) CatalogPath() string {
	return c.Project.Catalog
}

// LowStockThreshold returns the configured low-stock threshold.
func (c *Config) LowStockThreshold() int {
	if c.Project.Inventory.LowStockThreshold == nil {
		return 5
	}
	return *c.Project.Inventory.LowStockThreshold
}

// DexBaseURL returns the creature-lookup endpoint.
func (c *Config) DexBaseURL() string {
	return c.Project.Dex.BaseURL
}

// DexTimeout returns the creature-lookup request timeout.
func (c *Config) DexTimeout() time.Duration {
	return time.Duration(c.Project.Dex.TimeoutSeconds) * time.Second
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process("stockroom", &env); err != nil {
		return fmt.Errorf("config: environment overrides: %w", err)
	}
	if env.LowStockThreshold >= 0 {
		threshold := env.LowStockThreshold
		c.Project.Inventory.LowStockThreshold = &threshold
	}
	if path := strings.TrimSpace(env.Catalog); path != "" {
		c.Project.Catalog = resolvePath(c.ProjectDir, path)
	}
	if url := strings.TrimSpace(env.DexBaseURL); url != "" {
		c.Project.Dex.BaseURL = strings.TrimRight(url, "/")
	}
	if env.DexTimeoutSeconds > 0 {
		c.Project.Dex.TimeoutSeconds = env.DexTimeoutSeconds
	}
	return c.Project.validate()
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:   1,
		Inventory: InventorySettings{},
		Catalog:   filepath.Join(StockroomDir, "catalog.yaml"),
		Dex: DexSettings{
			BaseURL:        defaultDexBaseURL,
			TimeoutSeconds: defaultDexTimeout,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Catalog) == "" {
		pc.Catalog = filepath.Join(StockroomDir, "catalog.yaml")
	}
	if strings.TrimSpace(pc.Dex.BaseURL) == "" {
		pc.Dex.BaseURL = defaultDexBaseURL
	}
	if pc.Dex.TimeoutSeconds == 0 {
		pc.Dex.TimeoutSeconds = defaultDexTimeout
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Catalog = resolvePath(base, pc.Catalog)
	pc.Dex.BaseURL = strings.TrimRight(strings.TrimSpace(pc.Dex.BaseURL), "/")
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Inventory.LowStockThreshold != nil && *pc.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("inventory.low_stock_threshold cannot be negative")
	}
	if pc.Dex.BaseURL == "" {
		return fmt.Errorf("dex.base_url is required")
	}
	if pc.Dex.TimeoutSeconds <= 0 {
		return fmt.Errorf("dex.timeout_seconds must be positive")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureFile(path, contents string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}
