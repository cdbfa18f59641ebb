package config

import (
	"fmt"
	"os"
	"time"

	"retail-dashboard/internal/gateway"
	"retail-dashboard/internal/usecase"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceMySQL = "mysql"
	SourceCSV   = "csv"
)

// Config is the dashboard configuration file.
type Config struct {
	Source   SourceConfig         `yaml:"source"`
	Cache    CacheConfig          `yaml:"cache"`
	Insights usecase.InsightRules `yaml:"insights"`
	Export   ExportConfig         `yaml:"export"`
}

// SourceConfig selects and configures the transaction data source.
type SourceConfig struct {
	Kind    string              `yaml:"kind"`
	MySQL   gateway.MySQLConfig `yaml:"mysql"`
	CSVPath string              `yaml:"csv_path"`
}

// CacheConfig controls the lifetime of the loaded snapshot.
type CacheConfig struct {
	// TTL of the loaded snapshot; zero keeps it until a manual refresh.
	TTL time.Duration `yaml:"ttl"`
}

// ExportConfig controls where CSV exports are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and fills in defaults. Callers run
// Validate once environment and flag overrides are applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// ApplyEnv overrides database credentials from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("RETAIL_DB_USER"); v != "" {
		c.Source.MySQL.User = v
	}
	if v := getenv("RETAIL_DB_PASSWORD"); v != "" {
		c.Source.MySQL.Password = v
	}
	if v := getenv("RETAIL_DB_ADDR"); v != "" {
		c.Source.MySQL.Addr = v
	}
}

// Validate reports settings that cannot be used to build a data source.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceMySQL:
		if c.Source.MySQL.Database == "" {
			return fmt.Errorf("source.mysql.database is required")
		}
	case SourceCSV:
		if c.Source.CSVPath == "" {
			return fmt.Errorf("source.csv_path is required for csv sources")
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Insights.LowMarginPct > c.Insights.HighMarginPct {
		return fmt.Errorf("insights.low_margin_pct must not exceed insights.high_margin_pct")
	}
	return nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Source.Kind == "" {
		c.Source.Kind = SourceMySQL
	}
	if c.Source.MySQL.Addr == "" {
		c.Source.MySQL.Addr = "localhost:3306"
	}
	if c.Source.MySQL.User == "" {
		c.Source.MySQL.User = "root"
	}
	if c.Source.MySQL.Database == "" {
		c.Source.MySQL.Database = "retail_sales_db"
	}
	if c.Source.MySQL.Table == "" {
		c.Source.MySQL.Table = gateway.DefaultTable
	}
	defaults := usecase.DefaultInsightRules()
	if c.Insights.LowMarginPct == 0 {
		c.Insights.LowMarginPct = defaults.LowMarginPct
	}
	if c.Insights.HighMarginPct == 0 {
		c.Insights.HighMarginPct = defaults.HighMarginPct
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
}
