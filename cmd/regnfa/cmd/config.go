package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/coregx/regnfa"
	"github.com/coregx/regnfa/syntax"
)

// Config holds defaults read from a config file. Command line flags take
// precedence over it.
//
// Example (TOML):
//
//	flags = "i"
//	line_numbers = true
//	color = "never"
//	max_repeat = 500
type Config struct {
	// Flags are default pattern flags as modifier letters, e.g. "im".
	Flags string `toml:"flags" yaml:"flags"`

	// LineNumbers prefixes grep output with line numbers.
	LineNumbers bool `toml:"line_numbers" yaml:"line_numbers"`

	// Color is "auto", "always" or "never".
	Color string `toml:"color" yaml:"color"`

	// Prefilter enables the literal prefilter. Default: true.
	Prefilter *bool `toml:"prefilter" yaml:"prefilter"`

	// MaxRepeat and MaxStates override the compiler limits when non-zero.
	MaxRepeat int `toml:"max_repeat" yaml:"max_repeat"`
	MaxStates int `toml:"max_states" yaml:"max_states"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{Color: colorAuto}
}

// LoadConfig reads a TOML or YAML config file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: use .toml, .yaml or .yml", ext)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, ok := syntax.ParseFlags(c.Flags); !ok {
		return fmt.Errorf("flags %q: only i, m, s and x are allowed", c.Flags)
	}
	if c.Color == "" {
		c.Color = colorAuto
	}
	switch c.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("color %q: want auto, always or never", c.Color)
	}
	if c.MaxRepeat < 0 || c.MaxStates < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}

// compileConfig merges the config with flags given on the command line.
func (c *Config) compileConfig(extra syntax.Flags) regnfa.Config {
	out := regnfa.DefaultConfig()
	flags, _ := syntax.ParseFlags(c.Flags)
	out.Flags = flags | extra
	if c.Prefilter != nil {
		out.EnablePrefilter = *c.Prefilter
	}
	if c.MaxRepeat > 0 {
		out.Compiler.MaxRepeat = c.MaxRepeat
	}
	if c.MaxStates > 0 {
		out.Compiler.MaxStates = c.MaxStates
	}
	return out
}
