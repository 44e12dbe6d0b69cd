package config

import (
	_ "embed"

	"github.com/app4dog/game-play/internal/audio"
	"github.com/app4dog/game-play/internal/protocol"
	"github.com/app4dog/game-play/internal/sim"
)

//go:embed defaults/petsim.yaml
var defaultPetsimYAML []byte

// Default returns the built-in configuration: the stock sound registry,
// both starter critters, and a two-device virtual fleet.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickRate:         30,
			CameraThrottleMS: 100,
		},
		Sounds: map[string]audio.SoundInfo{
			"enter_area": {
				FilePath:      "assets/audio/ui/enter_chime.mp3",
				Context:       protocol.ContextEnter,
				DefaultVolume: 0.8,
			},
			"exit_area": {
				FilePath:      "assets/audio/ui/exit_chime.mp3",
				Context:       protocol.ContextExit,
				DefaultVolume: 0.7,
			},
			"yipee": {
				FilePath:      "assets/audio/positive/yipee.ogg",
				Context:       protocol.ContextCritter,
				DefaultVolume: 0.8,
			},
			"button_click": {
				FilePath:      "assets/audio/ui/click.ogg",
				Context:       protocol.ContextUI,
				DefaultVolume: 0.6,
			},
		},
		Critters: sim.BuiltinTemplates(),
		Fleet: []VirtualDeviceConfig{
			{
				ID:   "virtual_collar_001",
				Name: "Virtual Smart Collar",
				Type: string(protocol.DeviceSmartCollar),
				RSSI: -42,
				Handlers: []protocol.CommandHandler{
					{Pattern: "beep", Response: "BEEP_OK", DelayMS: 50},
					{Pattern: "vibrate", Response: "VIBRATE_OK", DelayMS: 100},
					{Pattern: "battery", Response: "BATTERY:87", DelayMS: 20},
				},
			},
			{
				ID:   "virtual_feeder_001",
				Name: "Virtual Feeding Station",
				Type: string(protocol.DeviceFeedingStation),
				RSSI: -58,
				Handlers: []protocol.CommandHandler{
					{Pattern: "dispense", Response: "DISPENSED:1", DelayMS: 200},
					{Pattern: "status", Response: "HOPPER:full", DelayMS: 30},
				},
			},
		},
		Backoff: BackoffConfig{
			BaseDelayMS:  100,
			MaxRetries:   3,
			MaxBackoffMS: 30000,
			CapExponent:  10,
		},
	}
}
