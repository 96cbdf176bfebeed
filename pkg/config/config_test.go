package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/tier"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Categories) != 11 {
		t.Errorf("expected 11 default categories, got %d", len(cfg.Categories))
	}
	if cfg.Categories[len(cfg.Categories)-1] != assess.CategoryOverall {
		t.Errorf("expected %s as the last category, got %q", assess.CategoryOverall, cfg.Categories[len(cfg.Categories)-1])
	}
	if _, ok := cfg.Thresholds[assess.CategoryOverall]; ok {
		t.Error("the roll-up category must not carry a threshold profile")
	}

	tables, err := cfg.Tables()
	if err != nil {
		t.Fatalf("default profiles must validate: %v", err)
	}
	if len(tables) != 10 {
		t.Errorf("expected 10 threshold tables, got %d", len(tables))
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid YAML overrides defaults",
			yaml: `
controller: "prod.example.com"
categories:
  - Backends
thresholds:
  Backends:
    directions:
      responseTime: decreasing
    silver:
      responseTime: 10
    gold:
      responseTime: 5
    platinum:
      responseTime: 2
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Controller != "prod.example.com" {
					t.Errorf("Controller = %q", cfg.Controller)
				}
				if len(cfg.Categories) != 1 || cfg.Categories[0] != "Backends" {
					t.Errorf("Categories = %v", cfg.Categories)
				}
				table, err := cfg.Thresholds["Backends"].Table()
				if err != nil {
					t.Fatalf("Table: %v", err)
				}
				if table.Cutoffs[tier.Platinum]["responseTime"] != 2 {
					t.Errorf("platinum cutoff = %v, want 2", table.Cutoffs[tier.Platinum]["responseTime"])
				}
				if table.Directions["responseTime"] != assess.DecreasingIsBetter {
					t.Errorf("direction = %q", table.Directions["responseTime"])
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write test config: %v", err)
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Categories) != 11 {
		t.Errorf("expected default categories, got %v", cfg.Categories)
	}
}

func TestTablesRejectMissingDirection(t *testing.T) {
	cfg := &Config{
		Thresholds: map[string]ThresholdProfile{
			"Backends": {
				Gold: map[string]float64{"responseTime": 5},
			},
		},
	}
	if _, err := cfg.Tables(); err == nil {
		t.Fatal("expected error for cutoff with no direction, got nil")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".tierscope")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		if got := FindConfigFile(sub); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}

func TestDirectoryFunctions(t *testing.T) {
	runs := RunDir("prod.example.com:443")
	comparisons := ComparisonDir("prod.example.com:443")

	// The slug keeps readable characters and replaces the rest.
	slug := "prod.example.com_443"
	if !strings.Contains(runs, slug) {
		t.Errorf("RunDir should contain slug %q, got %q", slug, runs)
	}
	if !strings.HasSuffix(runs, filepath.Join(slug, "runs")) {
		t.Errorf("RunDir should end with %q, got %q", filepath.Join(slug, "runs"), runs)
	}
	if !strings.HasSuffix(comparisons, filepath.Join(slug, "comparisons")) {
		t.Errorf("ComparisonDir should end with %q, got %q", filepath.Join(slug, "comparisons"), comparisons)
	}

	if !strings.Contains(RunDir(""), "default") {
		t.Errorf("empty controller should use the default slug, got %q", RunDir(""))
	}
}
