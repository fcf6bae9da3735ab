package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s != Default() {
		t.Fatalf("got %+v, want defaults", s)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"world": {"width": 128, "height": 96}, "server": {"enabled": true, "port": 9000, "updateIntervalMs": 100}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.World.Width != 128 || s.World.Height != 96 {
		t.Errorf("world = %+v", s.World)
	}
	if !s.Server.Enabled || s.Server.Port != 9000 {
		t.Errorf("server = %+v", s.Server)
	}
	// Untouched sections keep their defaults.
	if s.Data.MaterialsPath != Default().Data.MaterialsPath {
		t.Errorf("data = %+v", s.Data)
	}
}

func TestLoadBadJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unparsable settings must be an error")
	}
}
