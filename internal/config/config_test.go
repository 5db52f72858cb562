package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.WorldFile != "world.json" {
		t.Errorf("Expected default world file, got %s", cfg.WorldFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SOUNDSTORE_PORT", "9090")
	t.Setenv("SOUNDSTORE_WORLD_FILE", "/tmp/adventure.json")
	t.Setenv("SOUNDSTORE_EDITOR_SECRET", "hunter2")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.WorldFile != "/tmp/adventure.json" {
		t.Errorf("Expected /tmp/adventure.json, got %s", cfg.WorldFile)
	}
	if cfg.EditorSecret != "hunter2" {
		t.Errorf("Expected editor secret to load, got %s", cfg.EditorSecret)
	}
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("SOUNDSTORE_PORT", "not-a-number")

	if cfg := Load(); cfg.Port != 8080 {
		t.Errorf("Expected fallback port 8080, got %d", cfg.Port)
	}
}
