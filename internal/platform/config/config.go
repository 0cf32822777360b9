package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 30 * time.Second
)

type Config struct {
	BaseURL     string
	DataDir     string
	DBPath      string
	HTTPTimeout time.Duration
	Debug       bool
}

type fileConfig struct {
	BaseURL     string `yaml:"base_url"`
	DataDir     string `yaml:"data_dir"`
	HTTPTimeout string `yaml:"http_timeout"`
	Debug       bool   `yaml:"debug"`
}

// Load builds the runtime configuration. A missing config file is not an
// error; defaults apply. path may be empty, in which case the default
// location under the user home is consulted.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:     defaultBaseURL,
		HTTPTimeout: defaultHTTPTimeout,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	cfg.DataDir = filepath.Join(home, ".taskdeck")

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.DBPath = filepath.Join(cfg.DataDir, "state.db")
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse http_timeout: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}
	cfg.Debug = fc.Debug
	cfg.DBPath = filepath.Join(cfg.DataDir, "state.db")
	return cfg, nil
}
