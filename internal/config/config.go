package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for worktracker, stored in
// ~/.worktracker/config.yaml.
type Config struct {
	// DataDir is where timetracker.dat and temp_day.tmp live. Empty means
	// the built-in ~/.local/bin.
	DataDir string `yaml:"data_dir"`
	// Color selects styled output: auto, always or never.
	Color string `yaml:"color"`
}

// DefaultColor enables styling only on terminals.
const DefaultColor = "auto"

var colorModes = []string{"auto", "always", "never"}

// configTemplate is the annotated config written on first run.
const configTemplate = `# worktracker configuration - ~/.worktracker/config.yaml
#
# All settings are optional; the defaults below are used when a key is
# missing or empty.

# Directory holding the completed store (timetracker.dat) and the
# in-progress day (temp_day.tmp). A leading ~ is expanded to your home.
# Defaults to ~/.local/bin.
# data_dir: ~/.local/bin

# Styled output: auto (only on a terminal), always or never.
color: auto
`

// FilePath returns the path to ~/.worktracker/config.yaml.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".worktracker", "config.yaml"), nil
}

// Load reads the config at path, or at FilePath when path is empty. A
// missing default config is created from the annotated template; a missing
// explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := FilePath()
		if err != nil {
			return defaultConfig(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w\nTip: delete %s to regenerate defaults", err, path)
	}
	return cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero-value fields with built-in defaults.
func (c *Config) applyDefaults() {
	c.DataDir = strings.TrimSpace(c.DataDir)
	if c.Color == "" {
		c.Color = DefaultColor
	}
	c.Color = strings.ToLower(c.Color)
}

func (c *Config) validate() error {
	for _, m := range colorModes {
		if c.Color == m {
			return nil
		}
	}
	return fmt.Errorf("config: color must be one of %s, got %q", strings.Join(colorModes, ", "), c.Color)
}

// ResolveDataDir returns DataDir with a leading ~ expanded, or "" when no
// directory is configured.
func (c *Config) ResolveDataDir() (string, error) {
	return expandHome(c.DataDir)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// writeDefault creates the config directory and writes the annotated
// template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
