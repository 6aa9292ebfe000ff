// Package config loads the benchmark sweep configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the sweep.
const (
	DefaultFilename = "benchmarks.yaml"
	DefaultRuns     = 1
	DefaultTimeout  = 3600 * time.Second
	DefaultMakefile = "Makefile"
)

// ErrNoTool is returned when a language has no build tool configured.
var ErrNoTool = errors.New("no tool in config")

// Config holds the parsed benchmarks.yaml.
// All fields are optional; zero values represent defaults.
type Config struct {
	General GeneralConfig        `yaml:"general"`
	Tools   map[string]string    `yaml:"tools"`   // language -> build tool, e.g. c: gcc
	Options map[string]string    `yaml:"options"` // language -> build tool flags
	Values  map[string][]float64 `yaml:"values"`  // target -> inputs
	Filters Filters              `yaml:"filters"`
}

// GeneralConfig controls how every program is built and measured.
type GeneralConfig struct {
	RawRuns    int    `yaml:"runs"`
	RawTimeout int    `yaml:"timeout"`  // whole seconds
	Makefile   string `yaml:"makefile"` // makefile with a <program>_run target
	Command    string `yaml:"command"`  // optional text/template, e.g. "{{.Executable}} -n {{.Input}}"
	SkipFailed bool   `yaml:"skip_failed"`
}

// Filters select the programs of a sweep.
type Filters struct {
	Directories []string `yaml:"directories"` // every file directly inside is a program
	Include     []string `yaml:"include"`     // extra program files
	Exclude     []string `yaml:"exclude"`     // program files to drop
	Ignore      []string `yaml:"ignore"`      // file suffixes to drop, e.g. ".md"
}

// Runs returns the configured number of runs per input or the default.
func (c *Config) Runs() int {
	if c.General.RawRuns > 0 {
		return c.General.RawRuns
	}
	return DefaultRuns
}

// Timeout returns the configured per-run timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.General.RawTimeout > 0 {
		return time.Duration(c.General.RawTimeout) * time.Second
	}
	return DefaultTimeout
}

func (c *Config) Makefile() string {
	if c.General.Makefile != "" {
		return c.General.Makefile
	}
	return DefaultMakefile
}

// Tool returns the build tool for language.
func (c *Config) Tool(language string) (string, error) {
	tool := c.Tools[language]
	if tool == "" {
		return "", fmt.Errorf("%w for language %q", ErrNoTool, language)
	}
	return tool, nil
}

// ToolOptions returns the build flags for language; they may be empty.
func (c *Config) ToolOptions(language string) string {
	return c.Options[language]
}

// Inputs returns the input values of a benchmark target.
func (c *Config) Inputs(target string) []float64 {
	return c.Values[target]
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML config document.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.RawRuns < 0 {
		return nil, fmt.Errorf("parsing config: negative runs %d", cfg.General.RawRuns)
	}
	if cfg.General.RawTimeout < 0 {
		return nil, fmt.Errorf("parsing config: negative timeout %d", cfg.General.RawTimeout)
	}
	return cfg, nil
}
