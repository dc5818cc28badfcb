package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Branding BrandingConfig `yaml:"branding"`
	Scan     ScanConfig     `yaml:"scan"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// BrandingConfig carries everything the dashboard theme variants used to
// differ in. Theme is plain configuration; no code path branches on it.
type BrandingConfig struct {
	Name     string `yaml:"name"`
	Tagline  string `yaml:"tagline"`
	LogoPath string `yaml:"logo_path"`
	Theme    string `yaml:"theme"`
}

type ScanConfig struct {
	MinTopK        int           `yaml:"min_top_k"`
	MaxTopK        int           `yaml:"max_top_k"`
	DefaultTopK    int           `yaml:"default_top_k"`
	SwatchSize     int           `yaml:"swatch_size"`
	StageDelay     time.Duration `yaml:"stage_delay"`
	AlertThreshold float64       `yaml:"alert_threshold"`
	AlertDepth     int           `yaml:"alert_depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

// Default returns a config with every default applied; used when no file is
// present and by tests.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Branding.Name == "" {
		cfg.Branding.Name = "WeaveScope"
	}
	if cfg.Branding.Tagline == "" {
		cfg.Branding.Tagline = "AI-assisted detection of cultural design misuse in textiles"
	}
	if cfg.Branding.LogoPath == "" {
		cfg.Branding.LogoPath = "assets/logo.png"
	}
	if cfg.Branding.Theme == "" {
		cfg.Branding.Theme = "parchment"
	}
	if cfg.Scan.MinTopK == 0 {
		cfg.Scan.MinTopK = 3
	}
	if cfg.Scan.MaxTopK == 0 {
		cfg.Scan.MaxTopK = 12
	}
	if cfg.Scan.DefaultTopK == 0 {
		cfg.Scan.DefaultTopK = 6
	}
	if cfg.Scan.SwatchSize == 0 {
		cfg.Scan.SwatchSize = 520
	}
	if cfg.Scan.AlertThreshold == 0 {
		cfg.Scan.AlertThreshold = 70
	}
	if cfg.Scan.AlertDepth == 0 {
		cfg.Scan.AlertDepth = 3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WS_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("WS_BRAND_NAME"); v != "" {
		cfg.Branding.Name = v
	}
	if v := os.Getenv("WS_BRAND_TAGLINE"); v != "" {
		cfg.Branding.Tagline = v
	}
	if v := os.Getenv("WS_LOGO_PATH"); v != "" {
		cfg.Branding.LogoPath = v
	}
	if v := os.Getenv("WS_THEME"); v != "" {
		cfg.Branding.Theme = v
	}
	if v := os.Getenv("WS_SWATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.SwatchSize = n
		}
	}
	if v := os.Getenv("WS_STAGE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Scan.StageDelay = d
		}
	}
	if v := os.Getenv("WS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
