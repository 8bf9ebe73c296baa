// Package registrycfg loads the host's provider-registry manifest: a
// YAML file binding namespace names to the plugin binaries that serve
// them (discovery itself is package pluginhost's job; this package only
// parses the binding list, grounded on cue-lang's and holomush's use of
// gopkg.in/yaml.v3 for exactly this shape of config file).
package registrycfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Binding maps one namespace to the plugin binary that implements it.
type Binding struct {
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
	// Args are extra arguments passed to the plugin binary on launch.
	Args []string `yaml:"args,omitempty"`
}

// Manifest is the top-level shape of a registry manifest file.
type Manifest struct {
	Plugins []Binding `yaml:"plugins"`
}

// Load reads and parses a manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registrycfg: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("registrycfg: parse %s: %w", path, err)
	}
	for i, b := range m.Plugins {
		if b.Namespace == "" {
			return nil, fmt.Errorf("registrycfg: %s: entry %d missing namespace", path, i)
		}
		if b.Path == "" {
			return nil, fmt.Errorf("registrycfg: %s: entry %d (namespace %q) missing path", path, i, b.Namespace)
		}
	}
	return &m, nil
}
