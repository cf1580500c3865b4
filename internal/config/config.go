// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all agenda configuration.
type Config struct {
	Form Form `yaml:"form"`
	UI   UI   `yaml:"ui"`
}

// Form holds validation and form defaults.
type Form struct {
	Locale        string   `yaml:"locale"`         // "es" | "en"
	DateLayouts   []string `yaml:"date_layouts"`   // Accepted date layouts, first is canonical
	DisplayLayout string   `yaml:"display_layout"` // Date layout of the records table
	DefaultName   string   `yaml:"default_name"`   // Prefilled name on a fresh form
}

// UI holds terminal settings.
type UI struct {
	AltScreen  bool   `yaml:"alt_screen"`
	LocalesDir string `yaml:"locales_dir"` // Local catalog overrides, checked before embedded ones
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Form: Form{
			Locale:        "es",
			DateLayouts:   []string{"2006-01-02"},
			DisplayLayout: "02/01/2006",
			DefaultName:   "Juan Perez",
		},
		UI: UI{
			AltScreen:  true,
			LocalesDir: ".agenda/locales",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Form.Locale {
	case "es", "en":
		// valid
	default:
		return fmt.Errorf("config: form.locale must be \"es\" or \"en\", got %q", c.Form.Locale)
	}
	if len(c.Form.DateLayouts) == 0 {
		return errors.New("config: form.date_layouts cannot be empty")
	}
	for i, l := range c.Form.DateLayouts {
		if l == "" {
			return fmt.Errorf("config: form.date_layouts[%d] cannot be empty", i)
		}
	}
	if c.Form.DisplayLayout == "" {
		return errors.New("config: form.display_layout cannot be empty")
	}
	return nil
}

// envOverrides lists the supported environment variables. Unset variables
// leave their pointer nil.
type envOverrides struct {
	Locale        *string  `env:"AGENDA_LOCALE"`
	DateLayouts   []string `env:"AGENDA_DATE_LAYOUTS" envSeparator:";"`
	DisplayLayout *string  `env:"AGENDA_DISPLAY_LAYOUT"`
	DefaultName   *string  `env:"AGENDA_DEFAULT_NAME"`
	AltScreen     *bool    `env:"AGENDA_ALT_SCREEN"`
	LocalesDir    *string  `env:"AGENDA_LOCALES_DIR"`
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: AGENDA_LOCALE, AGENDA_DATE_LAYOUTS (";"-separated),
// AGENDA_DISPLAY_LAYOUT, AGENDA_DEFAULT_NAME, AGENDA_ALT_SCREEN, AGENDA_LOCALES_DIR.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: parsing environment: %w", err)
	}
	if o.Locale != nil {
		c.Form.Locale = *o.Locale
	}
	if len(o.DateLayouts) > 0 {
		c.Form.DateLayouts = o.DateLayouts
	}
	if o.DisplayLayout != nil {
		c.Form.DisplayLayout = *o.DisplayLayout
	}
	if o.DefaultName != nil {
		c.Form.DefaultName = *o.DefaultName
	}
	if o.AltScreen != nil {
		c.UI.AltScreen = *o.AltScreen
	}
	if o.LocalesDir != nil {
		c.UI.LocalesDir = *o.LocalesDir
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Form *rawForm `yaml:"form"`
	UI   *rawUI   `yaml:"ui"`
}

type rawForm struct {
	Locale        *string  `yaml:"locale"`
	DateLayouts   []string `yaml:"date_layouts"`
	DisplayLayout *string  `yaml:"display_layout"`
	DefaultName   *string  `yaml:"default_name"`
}

type rawUI struct {
	AltScreen  *bool   `yaml:"alt_screen"`
	LocalesDir *string `yaml:"locales_dir"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Form != nil {
		if layer.Form.Locale != nil {
			c.Form.Locale = *layer.Form.Locale
		}
		if layer.Form.DateLayouts != nil {
			c.Form.DateLayouts = layer.Form.DateLayouts
		}
		if layer.Form.DisplayLayout != nil {
			c.Form.DisplayLayout = *layer.Form.DisplayLayout
		}
		if layer.Form.DefaultName != nil {
			c.Form.DefaultName = *layer.Form.DefaultName
		}
	}
	if layer.UI != nil {
		if layer.UI.AltScreen != nil {
			c.UI.AltScreen = *layer.UI.AltScreen
		}
		if layer.UI.LocalesDir != nil {
			c.UI.LocalesDir = *layer.UI.LocalesDir
		}
	}
}
