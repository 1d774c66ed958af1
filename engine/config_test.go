package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conveyorsim/conveyor/world"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	uc, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultUserConfig()
	if uc != def {
		t.Fatalf("missing file config = %+v, want defaults %+v", uc, def)
	}
}

func TestLoadConfigParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conveyor.toml")
	doc := `
[World]
Width = 16
Height = 12
Seed = "fixture"

[Log]
Level = "debug"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	uc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if uc.World.Width != 16 || uc.World.Height != 12 || uc.World.Seed != "fixture" {
		t.Fatalf("world config = %+v", uc.World)
	}
	if uc.Log.Level != "debug" {
		t.Fatalf("log level = %q, want debug", uc.Log.Level)
	}
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[[[not toml"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("malformed TOML accepted")
	}
}

func TestConfigNewAppliesDefaults(t *testing.T) {
	w, err := Config{Width: 8, Height: 6}.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.GetMap() == nil {
		t.Fatalf("default resource map not attached")
	}
	if w.Seed() == "" {
		t.Fatalf("seed not generated")
	}
	// The default registry must include the core kinds.
	if _, err := w.AddEntity("belt", world.EntityInit{Pos: world.GridCoord{X: 1, Y: 1}}); err != nil {
		t.Fatalf("default registry missing belt: %v", err)
	}
}
