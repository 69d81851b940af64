package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate: %v", err)
	}
	if cfg.Segment.Clusters != 3 {
		t.Errorf("Expected default clusters 3, got %d", cfg.Segment.Clusters)
	}
	if cfg.Segment.SeedMode != "random" {
		t.Errorf("Expected default seed mode random, got %q", cfg.Segment.SeedMode)
	}
	if cfg.Filter.Kind != "none" {
		t.Errorf("Expected default filter none, got %q", cfg.Filter.Kind)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segment.Clusters != 3 {
		t.Errorf("Expected default clusters, got %d", cfg.Segment.Clusters)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Image.MaxPixels != 12000000 {
		t.Errorf("Expected default max pixels, got %d", cfg.Image.MaxPixels)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `segment:
  clusters: 7
  seedMode: content
filter:
  kind: gaussian
  kernelSize: 9
output:
  masksDir: exported
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segment.Clusters != 7 {
		t.Errorf("Expected clusters 7, got %d", cfg.Segment.Clusters)
	}
	if cfg.Segment.SeedMode != "content" {
		t.Errorf("Expected seed mode content, got %q", cfg.Segment.SeedMode)
	}
	if cfg.Filter.Kind != "gaussian" {
		t.Errorf("Expected filter gaussian, got %q", cfg.Filter.Kind)
	}
	if cfg.Filter.KernelSize != 9 {
		t.Errorf("Expected kernel size 9, got %d", cfg.Filter.KernelSize)
	}
	// Values the file omits keep their defaults.
	if cfg.Filter.Sigma != 1.0 {
		t.Errorf("Expected default sigma 1.0, got %g", cfg.Filter.Sigma)
	}
	if cfg.Output.MasksDir != "exported" {
		t.Errorf("Expected masks dir exported, got %q", cfg.Output.MasksDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("segment:\n  clusters: 42\n"), 0o644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for clusters out of range, got nil")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("segment: [unclosed"), 0o644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KMSEG_CLUSTERS", "6")
	t.Setenv("KMSEG_FILTER", "median")
	t.Setenv("KMSEG_VERBOSE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segment.Clusters != 6 {
		t.Errorf("Expected clusters 6 from environment, got %d", cfg.Segment.Clusters)
	}
	if cfg.Filter.Kind != "median" {
		t.Errorf("Expected filter median from environment, got %q", cfg.Filter.Kind)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose true from environment")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("segment:\n  clusters: 3\n"), 0o644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}
	t.Setenv("KMSEG_CLUSTERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segment.Clusters != 8 {
		t.Errorf("Expected environment to beat file, got %d", cfg.Segment.Clusters)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Segment.Clusters = 5
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Segment.Clusters != 5 {
		t.Errorf("Expected clusters 5 after round trip, got %d", loaded.Segment.Clusters)
	}
}
