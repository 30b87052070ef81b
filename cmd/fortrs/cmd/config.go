// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gitlab.com/fisherprime/fortrs/translate"
)

// Config holds the CLI configuration read from a TOML file.
type Config struct {
	Input       string `toml:"input"`
	Output      string `toml:"output"`
	LogLevel    string `toml:"log_level"`
	Debug       bool   `toml:"debug"`
	Diagnostics bool   `toml:"diagnostics"`
	Workers     int    `toml:"workers"`
	IndentWidth int    `toml:"indent_width"`
}

// Configuration defaults.
const (
	DefConfigFile = "./fortrs.toml"
	DefInput      = "./examples/hello.f90"
	DefOutput     = "./examples/hello.rs"
	DefLogLevel   = "info"
)

// LoadConfig reads the TOML configuration at path.
//
// An empty path reads DefConfigFile when present, falling back to the defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = DefConfigFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cfg.applyDefaults(toml.MetaData{})
			return &cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults(meta)

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration.
//
// Keys meta records as defined keep their decoded value, zero included.
func (c *Config) applyDefaults(meta toml.MetaData) {
	if c.Input == "" {
		c.Input = DefInput
	}
	if c.Output == "" {
		c.Output = DefOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefLogLevel
	}
	if !meta.IsDefined("indent_width") {
		c.IndentWidth = translate.DefIndentWidth
	}
}

// translatorOptions converts the configuration into translate.Options.
func (c *Config) translatorOptions() []translate.Option {
	return []translate.Option{
		translate.WithLogger(logger),
		translate.WithDebug(c.Debug),
		translate.WithDiagnostics(c.Diagnostics),
		translate.WithIndentWidth(c.IndentWidth),
		translate.WithWorkers(c.Workers),
	}
}
