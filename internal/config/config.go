package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	History   HistoryConfig `yaml:"history"`
	Templates string        `yaml:"templates_path"`
}

type HistoryConfig struct {
	// Driver selects the history backend: "jsonl" (default) or "sqlite".
	Driver string `yaml:"driver"`
	// Path is the JSONL file for the jsonl driver or the database file
	// for the sqlite driver.
	Path string `yaml:"path"`
	// ReadLimit bounds plain history reads; 0 means the default.
	ReadLimit int `yaml:"read_limit"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		History:   HistoryConfig{Driver: "jsonl", Path: "data/decision_history.jsonl"},
		Templates: "data/custom_templates.json",
	}
}

func Load(path string) (Config, error) {
	// #nosec G304 -- path is operator-provided config path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	expanded := os.ExpandEnv(string(raw))
	expanded = strings.ReplaceAll(expanded, "\r\n", "\n")

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.History.Driver {
	case "", "jsonl", "sqlite":
	default:
		return fmt.Errorf("unsupported history driver: %s", c.History.Driver)
	}
	if c.History.Path == "" {
		return fmt.Errorf("history.path is required")
	}
	if c.History.ReadLimit < 0 {
		return fmt.Errorf("history.read_limit must not be negative")
	}
	if c.Templates == "" {
		return fmt.Errorf("templates_path is required")
	}
	return nil
}
