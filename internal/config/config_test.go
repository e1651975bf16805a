package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := GetDefault()
	if cfg.MinAgeDays != def.MinAgeDays {
		t.Errorf("MinAgeDays = %d, want %d", cfg.MinAgeDays, def.MinAgeDays)
	}
	if len(cfg.Roots) == 0 {
		t.Error("default config has no roots")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := GetDefault()
	cfg.MinAgeDays = 180
	cfg.MinSize = "25MB"
	cfg.ExcludePaths = []string{"/tmp/keepme"}
	cfg.IgnoreDevPreset = false

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.MinAgeDays != 180 {
		t.Errorf("MinAgeDays = %d, want 180", loaded.MinAgeDays)
	}
	if loaded.MinSize != "25MB" {
		t.Errorf("MinSize = %q, want 25MB", loaded.MinSize)
	}
	if loaded.IgnoreDevPreset {
		t.Error("IgnoreDevPreset should be false")
	}
	if len(loaded.ExcludePaths) != 1 || loaded.ExcludePaths[0] != "/tmp/keepme" {
		t.Errorf("ExcludePaths = %v", loaded.ExcludePaths)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("roots: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default_ok", func(c *Config) {}, false},
		{"negative_age", func(c *Config) { c.MinAgeDays = -1 }, true},
		{"bad_size", func(c *Config) { c.MinSize = "lots" }, true},
		{"empty_size_ok", func(c *Config) { c.MinSize = "" }, false},
		{"relative_exclude", func(c *Config) { c.ExcludePaths = []string{"relative/path"} }, true},
		{"tilde_exclude_ok", func(c *Config) { c.ExcludePaths = []string{"~/Documents/Work"} }, false},
		{"bad_format", func(c *Config) { c.Output.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToScanConfig(t *testing.T) {
	cfg := GetDefault()
	cfg.Roots = []string{"/tmp"}
	cfg.MinSize = "2KB"
	cfg.ExcludePaths = []string{"~/Documents/Work"}

	scanCfg, err := cfg.ToScanConfig()
	if err != nil {
		t.Fatalf("ToScanConfig: %v", err)
	}

	if scanCfg.MinSizeBytes != 2048 {
		t.Errorf("MinSizeBytes = %d, want 2048", scanCfg.MinSizeBytes)
	}
	if len(scanCfg.ExcludePaths) != 1 {
		t.Fatalf("ExcludePaths = %v", scanCfg.ExcludePaths)
	}
	if scanCfg.ExcludePaths[0] == "~/Documents/Work" {
		t.Error("tilde was not expanded")
	}
	if scanCfg.IgnoreDevPreset != cfg.IgnoreDevPreset {
		t.Error("IgnoreDevPreset not carried over")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/Downloads"); got != filepath.Join(home, "Downloads") {
		t.Errorf("ExpandPath(~/Downloads) = %q", got)
	}
	if got := ExpandPath("/absolute"); got != "/absolute" {
		t.Errorf("ExpandPath(/absolute) = %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(~) = %q", got)
	}
}
