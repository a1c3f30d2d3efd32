package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRoundtrip(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.APIURL != "" || cfg.TUI != nil {
		t.Fatalf("missing config must load empty, got %+v", cfg)
	}

	cfg.APIURL = "https://tracker.example.com"
	cfg.TUI = &TUIConfig{ItemsPerPage: 20}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.APIURL != "https://tracker.example.com" {
		t.Fatalf("api url = %q", got.APIURL)
	}
	if got.TUI == nil || got.TUI.ItemsPerPage != 20 {
		t.Fatalf("tui prefs = %+v", got.TUI)
	}
}

func TestLoadConfigRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("corrupt config must error")
	}
}

func TestResolveAPIURL(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)
	t.Setenv("TASKDECK_API_URL", "")

	if got := ResolveAPIURL(""); got != "http://localhost:8000" {
		t.Fatalf("default url = %q", got)
	}

	if err := SaveConfig(&GlobalConfig{APIURL: "https://cfg.example.com/"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := ResolveAPIURL(""); got != "https://cfg.example.com" {
		t.Fatalf("config url = %q", got)
	}

	t.Setenv("TASKDECK_API_URL", "https://env.example.com/")
	if got := ResolveAPIURL(""); got != "https://env.example.com" {
		t.Fatalf("env must beat config, got %q", got)
	}

	if got := ResolveAPIURL("https://flag.example.com/"); got != "https://flag.example.com" {
		t.Fatalf("flag must beat everything, got %q", got)
	}
}
