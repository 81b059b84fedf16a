// Package config loads the optional notebook.yaml configuration.
//
// The compiler is zero-configuration by contract: every field has a default
// and a missing config file yields the defaults unchanged. The file exists to
// move the content root, output path, and watch-mode tuning out of flags when
// a project wants them pinned.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BooleanCube/notebook/internal/errors"
)

// DefaultFile is the configuration file probed when none is specified.
const DefaultFile = "notebook.yaml"

// Config is the root configuration document.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ContentConfig controls content discovery.
type ContentConfig struct {
	// Root is the directory whose subdirectories are the pages.
	Root string `yaml:"root"`
	// LegacyOrder keeps the raw filesystem enumeration order instead of
	// sorting pages by slug. Sorted output is the default so builds are
	// byte-for-byte reproducible across platforms.
	LegacyOrder bool `yaml:"legacy_order"`
}

// OutputConfig controls where the compiled index is written.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig tunes watch mode. Durations are Go duration strings.
type WatchConfig struct {
	Debounce    string `yaml:"debounce"`
	Interval    string `yaml:"interval"` // empty disables scheduled rebuilds
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Content: ContentConfig{Root: "."},
		Output:  OutputConfig{Path: "./directory.json"},
		Watch:   WatchConfig{Debounce: "500ms"},
	}
}

// Load reads a configuration file, expands environment variables in it, and
// applies defaults and validation. A missing file is not an error: the
// defaults are returned so the zero-configuration path keeps working.
func Load(configPath string) (*Config, error) {
	// Load .env files if present; values never override the process env.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.ConfigReadFailed(configPath, err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.ConfigInvalid(configPath, err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills fields an explicit config left empty.
func applyDefaults(cfg *Config) {
	if cfg.Content.Root == "" {
		cfg.Content.Root = "."
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "./directory.json"
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = "500ms"
	}
}

// validate rejects configurations the compiler cannot honor.
func validate(cfg *Config) error {
	if err := validateDuration("watch.debounce", cfg.Watch.Debounce); err != nil {
		return err
	}
	if cfg.Watch.Interval != "" {
		if err := validateDuration("watch.interval", cfg.Watch.Interval); err != nil {
			return err
		}
	}
	return nil
}

func validateDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.ValidationFailed(field, fmt.Sprintf("invalid duration: %v", err))
	}
	if d <= 0 {
		return errors.ValidationFailed(field, "must be positive")
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce window. Validation
// guarantees the stored value parses.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// IntervalDuration returns the scheduled-rebuild interval, or zero when
// scheduled rebuilds are disabled.
func (c *Config) IntervalDuration() time.Duration {
	if c.Watch.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil {
		return 0
	}
	return d
}
