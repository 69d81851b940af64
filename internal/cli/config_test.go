package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeeshanabi97/kmseg/internal/config"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kmseg.yaml")
	configInitForce = false

	if err := runConfigInit(configInitCmd, []string{path}); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Loading written config failed: %v", err)
	}
	defaults := config.Default()
	if loaded.Segment.Clusters != defaults.Segment.Clusters {
		t.Errorf("Expected clusters %d, got %d", defaults.Segment.Clusters, loaded.Segment.Clusters)
	}
	if loaded.Segment.SeedMode != defaults.Segment.SeedMode {
		t.Errorf("Expected seed mode %q, got %q", defaults.Segment.SeedMode, loaded.Segment.SeedMode)
	}
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kmseg.yaml")
	if err := os.WriteFile(path, []byte("segment:\n  clusters: 5\n"), 0o644); err != nil {
		t.Fatalf("Writing existing file failed: %v", err)
	}
	configInitForce = false

	if err := runConfigInit(configInitCmd, []string{path}); err == nil {
		t.Error("Expected error for existing file, got nil")
	}
}

func TestConfigInitForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kmseg.yaml")
	if err := os.WriteFile(path, []byte("segment:\n  clusters: 5\n"), 0o644); err != nil {
		t.Fatalf("Writing existing file failed: %v", err)
	}
	configInitForce = true
	defer func() { configInitForce = false }()

	if err := runConfigInit(configInitCmd, []string{path}); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Loading written config failed: %v", err)
	}
	if loaded.Segment.Clusters != config.Default().Segment.Clusters {
		t.Errorf("Expected defaults after overwrite, got clusters %d", loaded.Segment.Clusters)
	}
}
