package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vi-life/config"
)

func TestBoardSizeFitsScreen(t *testing.T) {
	cfg := config.Default().Board

	rows, cols := boardSize(cfg, 80, 25)
	if rows != 24 || cols != 40 {
		t.Errorf("Expected 24x40 for 80x25 with 2x1 tiles, got %dx%d", rows, cols)
	}

	cfg.Rows, cfg.Cols = 10, 12
	if rows, cols := boardSize(cfg, 80, 25); rows != 10 || cols != 12 {
		t.Errorf("Configured size ignored, got %dx%d", rows, cols)
	}

	cfg.Rows, cfg.Cols = 0, 0
	if rows, cols := boardSize(cfg, 1, 1); rows != 1 || cols != 1 {
		t.Errorf("Tiny screens still get one cell, got %dx%d", rows, cols)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := resolveConfigPath("custom.toml"); got != "custom.toml" {
		t.Errorf("Flag should win, got %q", got)
	}

	t.Setenv(config.EnvPath, "/etc/vi-life.toml")
	if got := resolveConfigPath(""); got != "/etc/vi-life.toml" {
		t.Errorf("Env should be used, got %q", got)
	}

	t.Setenv(config.EnvPath, "")
	wd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(wd) })
	dir := t.TempDir()
	os.Chdir(dir)
	if got := resolveConfigPath(""); got != "" {
		t.Errorf("Missing default file should select built-in defaults, got %q", got)
	}
	os.WriteFile(filepath.Join(dir, config.DefaultPath), nil, 0644)
	if got := resolveConfigPath(""); got != config.DefaultPath {
		t.Errorf("Existing default file should be used, got %q", got)
	}
}

func TestNetworkConfigMapping(t *testing.T) {
	cfg := config.Default().Network
	cfg.Enabled = true
	cfg.BindAddress = ":9000"
	cfg.CORSOrigins = []string{"http://a"}

	nc := networkConfig(cfg)
	if !nc.Enabled || nc.Address != ":9000" || len(nc.CORSOrigins) != 1 {
		t.Errorf("Unexpected network config %+v", nc)
	}
	if nc.ShutdownTimeout == 0 {
		t.Error("Defaults not carried over")
	}
}

func TestLoadPatternsBuiltin(t *testing.T) {
	lib, err := loadPatterns("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Get("glider"); err != nil {
		t.Errorf("Builtin glider missing: %v", err)
	}
}
