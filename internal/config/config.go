// Package config loads ptysh settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultHistoryLimit = 1000

type Config struct {
	// Shell overrides $SHELL when set.
	Shell        string `yaml:"shell"`
	HistoryLimit int    `yaml:"history-limit"`
	LogLevel     string `yaml:"log-level"`
}

func Default() Config {
	return Config{
		HistoryLimit: DefaultHistoryLimit,
		LogLevel:     "info",
	}
}

// Load reads settings from path, merged over defaults. An empty path or a
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return normalize(cfg), nil
}

func normalize(cfg Config) Config {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}
