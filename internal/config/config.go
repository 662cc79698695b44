// Package config loads stprint.yaml, the optional on-disk configuration
// for the sanitizer CLI. A missing config file is not an error; defaults
// apply. Values may reference environment variables with ${VAR}, resolved
// against the process environment first and then a .env file next to the
// config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stprint/internal/sanitize"
)

const ConfigFileName = "stprint.yaml"

var logLevels = map[string]bool{
	"": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Profile is a named override of the top-level sanitizer settings.
// Pointer fields distinguish "not set" from an explicit false.
type Profile struct {
	Colors        *bool    `yaml:"colors,omitempty"`
	ExtraColors   *bool    `yaml:"extra_colors,omitempty"`
	ExcludeColors []string `yaml:"exclude_colors,omitempty"`
}

type Config struct {
	Colors        *bool              `yaml:"colors,omitempty"`
	ExtraColors   *bool              `yaml:"extra_colors,omitempty"`
	ExcludeColors []string           `yaml:"exclude_colors,omitempty"`
	LogLevel      string             `yaml:"log_level,omitempty"`
	Profiles      map[string]Profile `yaml:"profiles,omitempty"`
}

// Load reads and validates a config file. Environment references in
// string values are interpolated before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	envMap, err := loadDotEnvIfExists(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.interpolate(envMap)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads ./stprint.yaml when present and returns an empty
// config (all defaults) when it is not.
func LoadDefault() (*Config, error) {
	if !ConfigExists() {
		return &Config{}, nil
	}
	return Load(ConfigFileName)
}

func ConfigExists() bool {
	_, err := os.Stat(ConfigFileName)
	return !os.IsNotExist(err)
}

func GetConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ConfigFileName)
}

// Validate rejects operator errors at load time so the scan itself never
// has to surface configuration problems.
func (c *Config) Validate() error {
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	for name := range c.Profiles {
		if name == "" {
			return fmt.Errorf("profile with empty name")
		}
	}
	return nil
}

// Options resolves the top-level settings against the sanitizer defaults.
func (c *Config) Options() sanitize.Options {
	opts := sanitize.DefaultOptions()
	if c.Colors != nil {
		opts.Colors = *c.Colors
	}
	if c.ExtraColors != nil {
		opts.ExtraColors = *c.ExtraColors
	}
	if len(c.ExcludeColors) > 0 {
		opts.ExcludeColors = append([]string(nil), c.ExcludeColors...)
	}
	return opts
}

// ProfileOptions resolves a named profile on top of the top-level
// settings.
func (c *Config) ProfileOptions(name string) (sanitize.Options, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return sanitize.Options{}, fmt.Errorf("profile %q not found in config", name)
	}
	opts := c.Options()
	if p.Colors != nil {
		opts.Colors = *p.Colors
	}
	if p.ExtraColors != nil {
		opts.ExtraColors = *p.ExtraColors
	}
	if len(p.ExcludeColors) > 0 {
		opts.ExcludeColors = append([]string(nil), p.ExcludeColors...)
	}
	return opts, nil
}

// ProfileNames returns the configured profile names, sorted for stable
// menu display.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) interpolate(envMap map[string]string) {
	c.LogLevel = interpolateEnv(c.LogLevel, envMap)
	for i, v := range c.ExcludeColors {
		c.ExcludeColors[i] = interpolateEnv(v, envMap)
	}
	for name, p := range c.Profiles {
		for i, v := range p.ExcludeColors {
			p.ExcludeColors[i] = interpolateEnv(v, envMap)
		}
		c.Profiles[name] = p
	}
}

// loadDotEnvIfExists reads a .env file from dir, returning an empty map
// when none exists.
func loadDotEnvIfExists(dir string) (map[string]string, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	m, err := godotenv.Read(envPath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", envPath, err)
	}
	return m, nil
}

// interpolateEnv replaces ${VAR} occurrences. Precedence: OS env > .env
// map. Missing variables become empty strings.
func interpolateEnv(input string, envMap map[string]string) string {
	return os.Expand(input, func(name string) string {
		if v := os.Getenv(name); v != "" {
			return v
		}
		return envMap[name]
	})
}
