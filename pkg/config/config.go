// Package config handles loading and managing Tierscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/tier"
)

// Config is the top-level configuration for Tierscope.
type Config struct {
	Controller string                      `yaml:"controller"`
	Categories []string                    `yaml:"categories"`
	Thresholds map[string]ThresholdProfile `yaml:"thresholds"` // keyed by category
}

// ThresholdProfile is the YAML shape of one category's threshold
// table: per-metric directions plus cutoffs for each tier above
// bronze.
type ThresholdProfile struct {
	Directions map[string]assess.Direction `yaml:"directions"`
	Silver     map[string]float64          `yaml:"silver"`
	Gold       map[string]float64          `yaml:"gold"`
	Platinum   map[string]float64          `yaml:"platinum"`
}

// Table builds and validates the threshold table for one category.
// A profile that fails validation is a configuration defect the
// operator must fix.
func (p ThresholdProfile) Table() (assess.ThresholdTable, error) {
	table := assess.ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Silver:   p.Silver,
			tier.Gold:     p.Gold,
			tier.Platinum: p.Platinum,
		},
		Directions: p.Directions,
	}
	if err := table.Validate(); err != nil {
		return assess.ThresholdTable{}, err
	}
	return table, nil
}

// Tables builds validated threshold tables for every configured
// category.
func (c *Config) Tables() (map[string]assess.ThresholdTable, error) {
	tables := make(map[string]assess.ThresholdTable, len(c.Thresholds))
	for category, profile := range c.Thresholds {
		table, err := profile.Table()
		if err != nil {
			return nil, fmt.Errorf("thresholds for %s: %w", category, err)
		}
		tables[category] = table
	}
	return tables, nil
}

// DefaultConfig returns a Config with the standard assessment areas
// and their shipped threshold profiles.
func DefaultConfig() *Config {
	return &Config{
		Categories: assess.DefaultCategories(),
		Thresholds: defaultProfiles(),
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .tierscope/config.yaml in the given
// directory and its parents, returning the path if found, or "" if
// not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".tierscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a given controller.
// Uses ~/.cache/tierscope/<slug>/ so runs from different controllers
// never collide.
func CacheDir(controller string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "tierscope", controllerSlug(controller))
}

// RunDir returns the assessment-run storage directory for a
// controller.
func RunDir(controller string) string {
	return filepath.Join(CacheDir(controller), "runs")
}

// ComparisonDir returns the comparison storage directory for a
// controller.
func ComparisonDir(controller string) string {
	return filepath.Join(CacheDir(controller), "comparisons")
}

// controllerSlug creates a filesystem-safe identifier from a
// controller name or URL.
func controllerSlug(controller string) string {
	if controller == "" {
		return "default"
	}
	slug := make([]rune, 0, len(controller))
	for _, r := range controller {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			slug = append(slug, r)
		default:
			slug = append(slug, '_')
		}
	}
	return string(slug)
}
