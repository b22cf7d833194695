package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		t.Fatalf("Failed to parse embedded config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Embedded config %+v differs from DefaultConfig %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "default_game: freecell\nautoplay:\n  drop: false\nssh:\n  idle_timeout_minutes: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultGame != "freecell" {
		t.Errorf("Expected default_game freecell, got %q", cfg.DefaultGame)
	}
	if cfg.AutoPlay.Drop {
		t.Error("Expected autoplay.drop to be overridden to false")
	}
	if !cfg.AutoPlay.FaceUp {
		t.Error("Expected autoplay.face_up to keep its default")
	}
	if cfg.Demo.MaxMoves != 500 {
		t.Errorf("Expected demo.max_moves 500, got %d", cfg.Demo.MaxMoves)
	}
	if cfg.SSH.IdleTimeout() != 5*time.Minute {
		t.Errorf("Expected 5m idle timeout, got %v", cfg.SSH.IdleTimeout())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("autoplay: [1, 2"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestLoadFallsBackToLocalDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "patience.yaml"), []byte("default_game: lucie\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultGame != "lucie" {
		t.Errorf("Expected default_game lucie, got %q", cfg.DefaultGame)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/saves")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "saves") {
		t.Errorf("Expected %s, got %s", filepath.Join(home, "saves"), got)
	}

	got, _ = ExpandHome("/tmp/x")
	if got != "/tmp/x" {
		t.Errorf("Expected path unchanged, got %s", got)
	}
}
