package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "fily.yml"

// Store backends
const (
	BackendCSV   = "csv"
	BackendRedis = "redis"
)

// FilyConfig represents the top-level fily.yml configuration
type FilyConfig struct {
	Version   string           `yaml:"version"`
	DataDir   string           `yaml:"data_dir,omitempty"` // Directory holding products.csv, available.csv and sold.csv
	Store     *StoreConfig     `yaml:"store,omitempty"`
	Catalogue *CatalogueConfig `yaml:"catalogue,omitempty"`
	Publish   *PublishConfig   `yaml:"publish,omitempty"`
	Log       *LogConfig       `yaml:"log,omitempty"`
}

// StoreConfig selects where the ledger tables live
type StoreConfig struct {
	Backend string       `yaml:"backend"` // "csv" (default) or "redis"
	Redis   *RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig specifies the Redis server used by the redis backend
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// CatalogueConfig specifies how the HTML catalogue is rendered
type CatalogueConfig struct {
	Title         string `yaml:"title,omitempty"`
	Tagline       string `yaml:"tagline,omitempty"`
	ExchangeRate  int64  `yaml:"exchange_rate,omitempty"`  // Local currency units per USD
	LocalCurrency string `yaml:"local_currency,omitempty"` // Code shown next to the converted price
	ImagesDir     string `yaml:"images_dir,omitempty"`
	OutputDir     string `yaml:"output_dir,omitempty"`
}

// PublishConfig specifies the two git destinations of the catalogue
type PublishConfig struct {
	Branch  string        `yaml:"branch,omitempty"`
	Public  *TargetConfig `yaml:"public,omitempty"`
	Private *TargetConfig `yaml:"private,omitempty"`
}

// TargetConfig is one staging directory pushed to one remote
type TargetConfig struct {
	Dir    string `yaml:"dir"`
	Remote string `yaml:"remote"`
}

// LogConfig specifies the structured log sink
type LogConfig struct {
	File  string `yaml:"file,omitempty"` // "stderr" logs to the terminal
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no fily.yml exists
func Default() *FilyConfig {
	c := &FilyConfig{Version: "1.0"}
	// Defaults never fail validation
	_ = c.Validate()
	return c
}

// Validate applies defaults and performs strict validation on the configuration
func (c *FilyConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.DataDir == "" {
		c.DataDir = "."
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Catalogue == nil {
		c.Catalogue = &CatalogueConfig{}
	}
	if err := c.Catalogue.Validate(); err != nil {
		return err
	}

	if c.Publish == nil {
		c.Publish = &PublishConfig{}
	}
	c.Publish.applyDefaults()

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.File == "" {
		c.Log.File = "fily.log"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: invalid level: %s (must be 'debug', 'info', 'warn', or 'error')", c.Log.Level)
	}

	return nil
}

// Validate checks the backend selection and fills Redis defaults
func (s *StoreConfig) Validate() error {
	if s.Backend == "" {
		s.Backend = BackendCSV
	}
	switch s.Backend {
	case BackendCSV:
	case BackendRedis:
		if s.Redis == nil {
			s.Redis = &RedisConfig{}
		}
		if s.Redis.Addr == "" {
			s.Redis.Addr = "localhost:6379"
		}
		if s.Redis.Namespace == "" {
			s.Redis.Namespace = "default"
		}
		if s.Redis.DB < 0 {
			return fmt.Errorf("store.redis.db must be >= 0, got %d", s.Redis.DB)
		}
	default:
		return fmt.Errorf("store: invalid backend: %s (must be 'csv' or 'redis')", s.Backend)
	}
	return nil
}

// Validate fills catalogue defaults and rejects a non-positive exchange rate
func (c *CatalogueConfig) Validate() error {
	if c.Title == "" {
		c.Title = "fily"
	}
	if c.Tagline == "" {
		c.Tagline = "productos de USA a ARG"
	}
	if c.ExchangeRate == 0 {
		c.ExchangeRate = 1100
	}
	if c.ExchangeRate < 0 {
		return fmt.Errorf("catalogue.exchange_rate must be > 0, got %d", c.ExchangeRate)
	}
	if c.LocalCurrency == "" {
		c.LocalCurrency = "ARS"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

func (p *PublishConfig) applyDefaults() {
	if p.Branch == "" {
		p.Branch = "main"
	}
	if p.Public == nil {
		p.Public = &TargetConfig{}
	}
	if p.Public.Dir == "" {
		p.Public.Dir = "fily_public"
	}
	if p.Private == nil {
		p.Private = &TargetConfig{}
	}
	if p.Private.Dir == "" {
		p.Private.Dir = "fily_private"
	}
}

// Ready reports whether both publish remotes are configured
func (p *PublishConfig) Ready() error {
	if p.Public == nil || p.Public.Remote == "" {
		return fmt.Errorf("publish.public.remote is not configured")
	}
	if p.Private == nil || p.Private.Remote == "" {
		return fmt.Errorf("publish.private.remote is not configured")
	}
	return nil
}

// ResolvePaths makes relative directories relative to base (the directory
// holding fily.yml)
func (c *FilyConfig) ResolvePaths(base string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	resolve(&c.DataDir)
	resolve(&c.Catalogue.ImagesDir)
	resolve(&c.Catalogue.OutputDir)
	resolve(&c.Publish.Public.Dir)
	resolve(&c.Publish.Private.Dir)
	if c.Log.File != "stderr" {
		resolve(&c.Log.File)
	}
}

// Load reads and validates fily.yml from the specified path
func Load(path string) (*FilyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config FilyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.ResolvePaths(filepath.Dir(path))
	return &config, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist
func LoadOrDefault(path string) (*FilyConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c := Default()
		c.ResolvePaths(filepath.Dir(path))
		return c, nil
	}
	return Load(path)
}
