package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/modoterra/headless/pkg/logcapture"
)

// DefaultPath is where the demo looks for its config file when --config is
// not given.
const DefaultPath = "headless.yaml"

// Config is the demo's configuration. Values come from the YAML file, then
// from environment variables, then from command-line flags.
type Config struct {
	Log           string `yaml:"log"            env:"HEADLESS_LOG"`
	FrameRate     int    `yaml:"frame_rate"     env:"HEADLESS_FRAME_RATE"`
	AltScreen     bool   `yaml:"alt_screen"     env:"HEADLESS_ALT_SCREEN"`
	Journal       bool   `yaml:"journal"        env:"HEADLESS_JOURNAL"`
	NotifySystemd bool   `yaml:"notify_systemd" env:"HEADLESS_NOTIFY_SYSTEMD"`
	NoColor       bool   `yaml:"no_color"`
	Workers       int    `yaml:"workers"        env:"HEADLESS_WORKERS"`
	Title         string `yaml:"title"          env:"HEADLESS_TITLE"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log:       logcapture.DefaultFilter,
		FrameRate: 60,
		AltScreen: true,
		Workers:   2,
		Title:     "logs",
	}
}

// Load reads the file at path over the defaults. A missing file at
// DefaultPath is not an error; any other missing file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the variables set in environ, given in
// os.Environ form. NO_COLOR disables colour when set to any non-empty value.
func ApplyEnv(cfg *Config, environ []string) error {
	vars := env.ToMap(environ)
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if vars["NO_COLOR"] != "" {
		cfg.NoColor = true
	}
	return nil
}

// FrameInterval is the time between frames at FrameRate.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
