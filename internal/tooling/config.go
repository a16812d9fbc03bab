// Package tooling holds the CLI-side configuration: block-name
// aliases, the default data version for new documents, and save-time
// behavior. Engine packages never read config; the CLI resolves it and
// passes plain values down.
package tooling

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DefaultDataVersion stamps documents created by `new` unless a
	// plan or flag overrides it.
	DefaultDataVersion int `yaml:"default_data_version"`

	// Aliases maps shorthand block names to full block names, applied
	// before namespacing ("cobble" -> "cobblestone").
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// PressurizeOnSave fills void positions with air before every save,
	// matching what the game writes from a structure block.
	PressurizeOnSave bool `yaml:"pressurize_on_save"`

	// IndexPath is the default catalog database location.
	IndexPath string `yaml:"index_path"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("structtool.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("structtool.yaml: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		DefaultDataVersion: 3218,
		IndexPath:          "structures.db",
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if c.DefaultDataVersion <= 0 {
		c.DefaultDataVersion = defaults().DefaultDataVersion
	}
	if strings.TrimSpace(c.IndexPath) == "" {
		c.IndexPath = defaults().IndexPath
	}
	for k, v := range c.Aliases {
		nk, nv := strings.TrimSpace(k), strings.TrimSpace(v)
		if nk != k || nv != v {
			delete(c.Aliases, k)
			c.Aliases[nk] = nv
		}
	}
}

func (c Config) Validate() error {
	for k, v := range c.Aliases {
		if k == "" || v == "" {
			return fmt.Errorf("alias with empty side: %q -> %q", k, v)
		}
		if c.Aliases[v] != "" {
			return fmt.Errorf("alias %q points at alias %q; chains are not resolved", k, v)
		}
	}
	return nil
}

// ResolveBlockName applies at most one alias hop.
func (c Config) ResolveBlockName(name string) string {
	if full, ok := c.Aliases[name]; ok {
		return full
	}
	return name
}
