// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "ADDRESSBOOK_"

// Display modes for the interactive session.
const (
	DisplayAuto  = "auto"
	DisplayPlain = "plain"
	DisplayTUI   = "tui"
)

// Config holds all addressbook configuration.
type Config struct {
	REPL REPL `yaml:"repl"`
	Log  Log  `yaml:"log"`
}

// REPL holds interactive session settings.
type REPL struct {
	Prompt  string `yaml:"prompt"  env:"PROMPT"`
	Display string `yaml:"display" env:"DISPLAY" validate:"oneof=auto plain tui"`
}

// Log holds diagnostic logging settings.
type Log struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  validate:"oneof=debug info warn error"`
	File   string `yaml:"file"   env:"LOG_FILE"`   // "" discards, "-" is stderr, else a path
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=text json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		REPL: REPL{
			Prompt:  "Enter a command: ",
			Display: DisplayAuto,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
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

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("config: %w", err)
	}
	// Report the first problem only, in the same shape as a hand-written check.
	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Tag() == "oneof" {
		return fmt.Errorf("config: %s must be one of %s, got %q", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	}
	return fmt.Errorf("config: %s failed %q check, got %q", field, fe.Tag(), fe.Value())
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_PROMPT, ADDRESSBOOK_DISPLAY,
// ADDRESSBOOK_LOG_LEVEL, ADDRESSBOOK_LOG_FILE, ADDRESSBOOK_LOG_FORMAT.
// Unset variables leave the current value in place.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parsing environment: %w", err)
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	REPL *rawREPL `yaml:"repl"`
	Log  *rawLog  `yaml:"log"`
}

type rawREPL struct {
	Prompt  *string `yaml:"prompt"`
	Display *string `yaml:"display"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	File   *string `yaml:"file"`
	Format *string `yaml:"format"`
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
	if layer.REPL != nil {
		if layer.REPL.Prompt != nil {
			c.REPL.Prompt = *layer.REPL.Prompt
		}
		if layer.REPL.Display != nil {
			c.REPL.Display = *layer.REPL.Display
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
	}
}
