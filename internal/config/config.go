package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "pulsevector.yaml"

// Color modes for wizard terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Config represents the optional pulsevector.yaml configuration.
type Config struct {
	Converter ConverterConfig `yaml:"converter"`
	Wizard    WizardConfig    `yaml:"wizard"`
}

// ConverterConfig controls the hierarchy converter.
type ConverterConfig struct {
	// FallbackCurrency is used when the source root declares no currency.
	FallbackCurrency string `yaml:"fallback_currency"`
	// CurrencyNames extends the built-in code -> full name table.
	CurrencyNames map[string]string `yaml:"currency_names,omitempty"`
}

// WizardConfig controls the profile wizard.
type WizardConfig struct {
	DefaultName string `yaml:"default_name"`
	Output      string `yaml:"output"`
	Color       string `yaml:"color"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Converter.Validate(); err != nil {
		return err
	}
	return c.Wizard.Validate()
}

// Validate validates the converter section.
func (c *ConverterConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.FallbackCurrency, validation.Required, validation.Match(currencyCodeRe)),
	); err != nil {
		return fmt.Errorf("converter: %w", err)
	}
	for code := range c.CurrencyNames {
		if !currencyCodeRe.MatchString(code) {
			return fmt.Errorf("converter: currency_names: invalid code %q", code)
		}
	}
	return nil
}

// Validate validates the wizard section.
func (c *WizardConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DefaultName, validation.Required),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.Color, validation.Required, validation.In(ColorAuto, ColorAlways, ColorNever)),
	); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	return nil
}

// Load reads a config file, expanding ${VAR} references from the
// environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. Any other read or parse failure is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			FallbackCurrency: "EUR",
		},
		Wizard: WizardConfig{
			DefaultName: "Senior Operator",
			Output:      "pulsevector_profile.json",
			Color:       ColorAuto,
		},
	}
}
