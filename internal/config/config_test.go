package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Game.Low != nil || cfg.Game.NoStats != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[game]
low = -10
high = 10
hint-after = 0
no-stats = true
stats-file = "/tmp/s.json"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Game
	if g.Low == nil || *g.Low != -10 || g.High == nil || *g.High != 10 {
		t.Fatalf("unexpected range: %+v", g)
	}
	if g.Attempts != nil {
		t.Fatalf("attempts should be unset")
	}
	if g.HintAfter == nil || *g.HintAfter != 0 {
		t.Fatalf("expected explicit hint-after 0")
	}
	if g.NoStats == nil || !*g.NoStats {
		t.Fatalf("expected no-stats true")
	}
	if g.StatsFile == nil || *g.StatsFile != "/tmp/s.json" {
		t.Fatalf("unexpected stats-file")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected log level from [log] table, got %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"syntax":      "[game\nlow = 1",
		"type":        "[game]\nlow = \"one\"",
		"unknown key": "[game]\nlimit = 3",
		"game level":  "[game]\nlog-level = \"debug\"",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "guessnum", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultHistoryPath(); !strings.HasPrefix(got, "/data/guessnum") {
		t.Fatalf("unexpected history path %q", got)
	}
}
