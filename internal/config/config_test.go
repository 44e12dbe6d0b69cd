package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultParses(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate != 30 {
		t.Errorf("tick_rate = %d, want 30", cfg.Engine.TickRate)
	}
	if cfg.Engine.CameraThrottle() != 100*time.Millisecond {
		t.Errorf("camera throttle = %v, want 100ms", cfg.Engine.CameraThrottle())
	}
	if _, ok := cfg.Sounds["enter_area"]; !ok {
		t.Error("sound registry missing enter_area")
	}
	if len(cfg.Fleet) != 2 {
		t.Errorf("fleet size = %d, want 2", len(cfg.Fleet))
	}
	if got := cfg.Backoff.Tuning().BaseDelay; got != 100*time.Millisecond {
		t.Errorf("base delay = %v, want 100ms", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petsim.yaml")
	custom := []byte("engine:\n  tick_rate: 60\nsounds:\n  beep:\n    file: beep.ogg\n    context: UI\n    volume: 0.5\n")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate != 60 {
		t.Errorf("tick_rate = %d, want 60", cfg.Engine.TickRate)
	}
	if s, ok := cfg.Sounds["beep"]; !ok || s.DefaultVolume != 0.5 {
		t.Errorf("sounds = %+v, want beep at 0.5", cfg.Sounds)
	}
}

func TestLoadCorruptLocalConfigFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "petsim.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate != 30 {
		t.Errorf("tick_rate = %d, want the embedded default 30", cfg.Engine.TickRate)
	}
}

func TestLoadMissingCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load succeeded on a missing explicit path")
	}
}

func TestFleetConversion(t *testing.T) {
	cfg := Default()
	dev := cfg.Fleet[0].Device()
	if dev.Info.ID != "virtual_collar_001" {
		t.Errorf("device id = %s", dev.Info.ID)
	}
	if !dev.AutoResponses {
		t.Error("converted device should auto-respond")
	}
	if len(dev.Handlers) != 3 {
		t.Errorf("handlers = %d, want 3", len(dev.Handlers))
	}
}
