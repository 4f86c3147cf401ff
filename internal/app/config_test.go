package app_test

import (
	"path/filepath"
	"testing"

	"github.com/bakerapp/baker/internal/app"
	"github.com/bakerapp/baker/internal/testutil"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:8484" {
		t.Errorf("listen addr: got %q", cfg.ListenAddr)
	}
	if !cfg.BackupOriginals {
		t.Error("backups should default on")
	}
	if cfg.Scan.MaxDepth != 3 {
		t.Errorf("scan depth: got %d", cfg.Scan.MaxDepth)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("a missing config file should not error: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:8484" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baker.toml")
	testutil.WriteFile(t, path, `
listen_addr = "0.0.0.0:9000"
backup_originals = false

[scan]
max_depth = 5
include_hidden = true
`)

	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("listen addr: got %q", cfg.ListenAddr)
	}
	if cfg.BackupOriginals {
		t.Error("backup override not applied")
	}
	if cfg.Scan.MaxDepth != 5 || !cfg.Scan.IncludeHidden {
		t.Errorf("scan overrides not applied: %+v", cfg.Scan)
	}
	// Untouched fields keep their defaults.
	if cfg.StorageRoot != "~/.config/baker" {
		t.Errorf("storage root should keep its default, got %q", cfg.StorageRoot)
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.toml")
	testutil.WriteFile(t, path, "listen_addr = [broken")

	if _, err := app.LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	got, err := app.ExpandPath("/absolute/path")
	if err != nil || got != "/absolute/path" {
		t.Errorf("absolute path should pass through, got %q, %v", got, err)
	}

	home, err := app.ExpandPath("~/data")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if home == "~/data" || !filepath.IsAbs(home) {
		t.Errorf("tilde should expand to an absolute path, got %q", home)
	}
}
