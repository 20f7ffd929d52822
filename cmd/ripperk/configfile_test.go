package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripperk-go/ripperk/internal/config"
)

func TestApplyConfigFile_FillsOnlyUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	contents := "dataset: from-file.csv\nmodel: from-file.bin\nk: 5\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newLearnCmd()
	if err := cmd.Flags().Set("model", "from-flag.bin"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cfg := config.New()
	cfg.Model = "from-flag.bin"

	if err := applyConfigFile(cmd, path, &cfg); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}

	if cfg.Dataset != "from-file.csv" {
		t.Errorf("Dataset = %q, want from-file.csv (unset flag filled from file)", cfg.Dataset)
	}
	if cfg.Model != "from-flag.bin" {
		t.Errorf("Model = %q, want from-flag.bin (explicit flag preserved)", cfg.Model)
	}
	if cfg.K != 5 {
		t.Errorf("K = %d, want 5 (unset flag filled from file)", cfg.K)
	}
}

func TestApplyConfigFile_IgnoresFlagsNotOnThisCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: /tmp/cache\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newLearnCmd() // has no --cache-dir flag
	cfg := config.New()

	if err := applyConfigFile(cmd, path, &cfg); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}
	if cfg.CacheDir != "" {
		t.Errorf("CacheDir = %q, want empty (no such flag on learn)", cfg.CacheDir)
	}
}
