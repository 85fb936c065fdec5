// Package config loads PinMagik's user configuration.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/pinmagik/config.toml,
// falling back to ~/.config/pinmagik/config.toml:
//
//	default_type = "raspi_plus"
//
//	[codegen]
//	period = "20ms"
//	target = "raspi_plus"
//
//	[log]
//	level = "debug"
//
// A missing file yields [Default].
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pinmagik/pinmagik/pkg/codegen"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

const appName = "pinmagik"

// Config is the decoded configuration file.
type Config struct {
	DefaultType string  `toml:"default_type"`
	Codegen     Codegen `toml:"codegen"`
	Log         Log     `toml:"log"`
}

// Codegen holds script generation settings.
type Codegen struct {
	Period Duration `toml:"period"`
	Target string   `toml:"target"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "10ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultType: raspi.TypeRaspi,
		Codegen:     Codegen{Period: Duration(codegen.DefaultPeriod)},
		Log:         Log{Level: "info"},
	}
}

// CodegenOptions returns generator options for these settings.
func (c Config) CodegenOptions() codegen.Options {
	return codegen.Options{
		Target: c.Codegen.Target,
		Period: time.Duration(c.Codegen.Period),
	}
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if _, err := raspi.LookupType(c.DefaultType); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "default_type")
	}
	if c.Codegen.Target != "" {
		if _, err := raspi.LookupType(c.Codegen.Target); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "codegen.target")
		}
	}
	if c.Codegen.Period <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "codegen.period must be positive, got %s", time.Duration(c.Codegen.Period))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be one of %v, got %q", logLevels, c.Log.Level)
	}
	return nil
}

// Parse decodes data over [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the file at path. A missing file yields [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return c, nil
}

// Path returns the default config file location using the XDG standard.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
