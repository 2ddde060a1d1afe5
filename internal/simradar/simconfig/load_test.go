package simconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverlaysOntoDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"fidelity": "frame", "ray_density": 2.5}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned an error: %v", err)
	}
	if cfg.Fidelity != FidelityFrame {
		t.Errorf("expected fidelity overlay to apply, got %v", cfg.Fidelity)
	}
	if cfg.RayDensity != 2.5 {
		t.Errorf("expected ray density overlay to apply, got %v", cfg.RayDensity)
	}
	if cfg.MaxRaysPerSlot != DefaultConfig().MaxRaysPerSlot {
		t.Errorf("expected unspecified fields to keep their default value")
	}
}

func TestLoadConfigRejectsUnknownFidelity(t *testing.T) {
	path := writeConfigFile(t, `{"fidelity": "bogus"}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for an unknown fidelity string")
	}
}

func TestLoadConfigRejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.txt")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a non-.json extension")
	}
}

func TestMustLoadConfigEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := MustLoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fidelity != DefaultConfig().Fidelity {
		t.Error("expected an empty path to return DefaultConfig()")
	}
}
