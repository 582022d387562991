// Package config handles loading transform configuration from files.
//
// Configuration can be specified in a JSON file named stripts.json or
// .striptsrc. The config file is searched for in the current directory
// and parent directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"codeberg.org/saruga/stripts/internal/stripper"
)

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// JSX enables JSX parsing for .ts inputs (.tsx inputs always parse JSX)
	JSX *bool `koanf:"jsx"`

	// JSXPragma is the default identifier JSX implicitly references
	JSXPragma *string `koanf:"jsxPragma"`

	// OutDir is where output files are written; empty writes next to the input
	OutDir *string `koanf:"outDir"`

	// Extension is the output file extension (default ".js")
	Extension *string `koanf:"extension"`
}

// ConfigFileNames are the names searched for config files, in order of
// preference.
var ConfigFileNames = []string{
	"stripts.json",
	".striptsrc",
	".striptsrc.json",
}

// Load searches for a config file starting from the given directory and
// walking up to parent directories. Returns nil if no config file is
// found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ToOptions converts a Config to stripper.Options, using defaults for
// unset fields.
func (c *Config) ToOptions() stripper.Options {
	var opts stripper.Options
	if c.JSX != nil {
		opts.JSX = *c.JSX
	}
	if c.JSXPragma != nil {
		opts.JSXPragma = *c.JSXPragma
	}
	return opts
}

// OutputDir returns the configured output directory, or empty for
// next-to-input output.
func (c *Config) OutputDir() string {
	if c.OutDir != nil {
		return *c.OutDir
	}
	return ""
}

// OutputExtension returns the configured output extension.
func (c *Config) OutputExtension() string {
	if c.Extension != nil {
		return *c.Extension
	}
	return ".js"
}

// MergeOptions are CLI flag values; nil means not specified on the
// command line.
type MergeOptions struct {
	JSX       *bool
	JSXPragma *string
	OutDir    *string
	Extension *string
}

// Merge combines config file options with CLI options. CLI options take
// precedence over config file options.
func Merge(cfg *Config, cli MergeOptions) *Config {
	merged := &Config{}
	if cfg != nil {
		*merged = *cfg
	}
	if cli.JSX != nil {
		merged.JSX = cli.JSX
	}
	if cli.JSXPragma != nil {
		merged.JSXPragma = cli.JSXPragma
	}
	if cli.OutDir != nil {
		merged.OutDir = cli.OutDir
	}
	if cli.Extension != nil {
		merged.Extension = cli.Extension
	}
	return merged
}
