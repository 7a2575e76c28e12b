// Package config loads display and logging settings from an optional ini
// file, a .env file and STRANDED_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "STRANDED_"

// Config holds the runtime settings.
type Config struct {
	Width        int    `validate:"min=20,max=400"`
	Prompt       string `validate:"max=16"`
	Continuation string `validate:"max=8"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
	LogFile   string
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Width:        80,
		Prompt:       "> ",
		Continuation: "  ",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load builds the configuration. An empty path skips the ini file; a path
// that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	// Load .env file if it exists, but don't fail if it doesn't.
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	display := f.Section("display")
	c.Width = display.Key("width").MustInt(c.Width)
	c.Prompt = display.Key("prompt").MustString(c.Prompt)
	c.Continuation = display.Key("continuation").MustString(c.Continuation)

	log := f.Section("log")
	c.LogLevel = log.Key("level").MustString(c.LogLevel)
	c.LogFormat = log.Key("format").MustString(c.LogFormat)
	c.LogFile = log.Key("file").MustString(c.LogFile)
	return nil
}

// applyEnv overrides settings from STRANDED_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWIDTH value: %w", EnvPrefix, err)
		}
		c.Width = n
	}
	strs := map[string]*string{
		"PROMPT":       &c.Prompt,
		"CONTINUATION": &c.Continuation,
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FORMAT":   &c.LogFormat,
		"LOG_FILE":     &c.LogFile,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	return nil
}

// Validate normalizes the log settings and checks every field.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
