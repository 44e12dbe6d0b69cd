// Package config provides YAML-based configuration loading for the pet
// simulation: the sound registry, critter templates, the virtual device
// fleet, and service tuning.
package config

import (
	"time"

	"github.com/app4dog/game-play/internal/audio"
	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/protocol"
	"github.com/app4dog/game-play/internal/sim"
)

// Config is the full simulation configuration.
type Config struct {
	Engine   EngineConfig               `yaml:"engine"`
	Sounds   map[string]audio.SoundInfo `yaml:"sounds"`
	Critters []sim.Template             `yaml:"critters"`
	Fleet    []VirtualDeviceConfig      `yaml:"virtual_devices"`
	Backoff  BackoffConfig              `yaml:"backoff"`
}

// BackoffConfig is the YAML form of the retry tuning, in milliseconds.
type BackoffConfig struct {
	BaseDelayMS  int `yaml:"base_delay_ms"`
	MaxRetries   int `yaml:"max_retries"`
	MaxBackoffMS int `yaml:"max_backoff_ms"`
	CapExponent  int `yaml:"cap_exponent"`
}

// Tuning converts the YAML form into the policy's native tuning.
func (b BackoffConfig) Tuning() backoff.Tuning {
	return backoff.Tuning{
		BaseDelay:   time.Duration(b.BaseDelayMS) * time.Millisecond,
		MaxRetries:  b.MaxRetries,
		MaxBackoff:  time.Duration(b.MaxBackoffMS) * time.Millisecond,
		CapExponent: b.CapExponent,
	}
}

// EngineConfig tunes the tick loop and frame handling.
type EngineConfig struct {
	TickRate         int `yaml:"tick_rate"`          // steps per second
	CameraThrottleMS int `yaml:"camera_throttle_ms"` // min spacing between processed frames
}

// CameraThrottle returns the throttle as a duration.
func (e EngineConfig) CameraThrottle() time.Duration {
	return time.Duration(e.CameraThrottleMS) * time.Millisecond
}

// VirtualDeviceConfig describes one fleet member in YAML form.
type VirtualDeviceConfig struct {
	ID       string                    `yaml:"id"`
	Name     string                    `yaml:"name"`
	Type     string                    `yaml:"type"`
	RSSI     int                       `yaml:"rssi"`
	Handlers []protocol.CommandHandler `yaml:"handlers"`
}

// Device converts the YAML form into the wire form.
func (v VirtualDeviceConfig) Device() protocol.VirtualDevice {
	return protocol.VirtualDevice{
		Info: protocol.DeviceInfo{
			ID:   protocol.DeviceID(v.ID),
			Name: v.Name,
			Type: protocol.DeviceType(v.Type),
			RSSI: v.RSSI,
		},
		Handlers:      v.Handlers,
		AutoResponses: true,
	}
}
