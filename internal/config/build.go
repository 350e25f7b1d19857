// Package config defines the build configuration a simulation accepts:
// the per-category upgrade levels a player has invested in a hunter.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Meta identifies the hunter a build belongs to.
type Meta struct {
	// Hunter is the archetype id ("Borge" or "Ozzy").
	Hunter string `yaml:"hunter"`

	// Level is the account level the build was exported at. Recorded for
	// display and batch history; it does not feed the stat model.
	Level int `yaml:"level"`
}

// BuildConfig is the full category -> named level mapping for one hunter
// build. The simulation core treats a validated BuildConfig as immutable.
type BuildConfig struct {
	Meta         Meta            `yaml:"meta"`
	Stats        map[string]int  `yaml:"stats"`
	Talents      map[string]int  `yaml:"talents"`
	Attributes   map[string]int  `yaml:"attributes"`
	Inscriptions map[string]int  `yaml:"inscriptions"`
	Mods         map[string]bool `yaml:"mods"`
	Relics       map[string]int  `yaml:"relics"`
	Gems         map[string]int  `yaml:"gems"`
}

// Load reads a build config from a YAML file and validates it against the
// dummy build for its archetype.
func Load(path string) (*BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a build config from YAML bytes.
func Parse(data []byte) (*BuildConfig, error) {
	var cfg BuildConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing build config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dump writes the empty build for the given archetype to path, so players
// have a template with every recognized key present.
func Dump(path, archetype string) error {
	dummy, err := DummyBuild(archetype)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(dummy)
	if err != nil {
		return fmt.Errorf("encoding dummy build: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
