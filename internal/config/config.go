// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"site-quote/core/i18n"
	"site-quote/core/output"
	"site-quote/core/surface"
	"site-quote/core/types"
	"site-quote/internal/errors"
	"site-quote/internal/logging"
)

// FileName is the default configuration file name in the home directory
const FileName = ".site-quote.json"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Quote contains quote defaults
	Quote QuoteConfig `json:"quote"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Surface contains the animated background settings
	Surface SurfaceConfig `json:"surface"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// QuoteConfig contains quote-related settings
type QuoteConfig struct {
	// Currency is the quote currency
	Currency types.Currency `json:"currency"`

	// Language is the display language, empty picks one from LANG
	Language string `json:"language,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format
	Format string `json:"format"`

	// Details shows the selection and unit rates
	Details bool `json:"details"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// SurfaceConfig contains the surface parameters plus host preferences
type SurfaceConfig struct {
	surface.Config

	// ReducedMotion reports a reduced-motion preference to the terminal
	// host, which has no way to query one
	ReducedMotion bool `json:"reduced_motion"`
}

// DefaultPath returns $HOME/.site-quote.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Quote: QuoteConfig{
			Currency: types.CurrencyEUR,
		},
		Output: OutputConfig{
			Format: string(output.FormatCLI),
		},
		Surface: SurfaceConfig{
			Config: surface.DefaultConfig(),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.Quote.Currency != types.CurrencyEUR {
		return errors.Newf(errors.TypeConfig, "unsupported currency %q (the rate table is in EUR)", c.Quote.Currency)
	}
	if c.Quote.Language != "" {
		if _, err := i18n.ParseLang(c.Quote.Language); err != nil {
			return errors.Wrap(errors.TypeConfig, "quote.language", err)
		}
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(errors.TypeConfig, "output.format", err)
	}
	if err := c.Surface.Validate(); err != nil {
		return errors.Wrap(errors.TypeConfig, "surface", err)
	}
	return nil
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("read configuration", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("decode configuration", err).WithContext("path", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("create configuration directory", err).WithContext("path", dir)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("encode configuration", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Config("write configuration", err).WithContext("path", path)
	}
	return nil
}

var (
	mu           sync.RWMutex
	globalConfig = Default()
)

// Get returns the global configuration
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = config
}
