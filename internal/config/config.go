package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from applycheck.yml.
// Flags override anything set here.
type ProjectConfig struct {
	Rewrites    string `yaml:"rewrites,omitempty"`    // rewrite table path
	Placements  string `yaml:"placements,omitempty"`  // placement log path
	Report      string `yaml:"report,omitempty"`      // JSON report output path
	SampleLimit int    `yaml:"sampleLimit,omitempty"` // max samples per failing category
	Workers     int    `yaml:"workers,omitempty"`     // reconciliation shards
	Verbose     bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read applycheck.yml or applycheck.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"applycheck.yml", "applycheck.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
