package protocol

// SharedSettings are the host-owned preferences pushed into the simulation.
type SharedSettings struct {
	MusicEnabled bool    `json:"music_enabled" yaml:"music_enabled"`
	BGMVolume    float64 `json:"bgm_volume" yaml:"bgm_volume"`
	SFXVolume    float64 `json:"sfx_volume" yaml:"sfx_volume"`
}

// DefaultSharedSettings returns the settings used before the host pushes any.
func DefaultSharedSettings() SharedSettings {
	return SharedSettings{
		MusicEnabled: false,
		BGMVolume:    0.6,
		SFXVolume:    0.8,
	}
}

// EngineEvent is a message the simulation sends to the host on the generic
// bridge channel.
type EngineEvent interface {
	engineEvent()
}

// PlayAudio asks the host to play a sound via the generic channel.
type PlayAudio struct {
	RequestID string  `json:"request_id"`
	SoundID   string  `json:"sound_id"`
	Volume    float64 `json:"volume"`
}

func (PlayAudio) engineEvent() {}

// BluetoothScan asks the host to run a device scan on the engine's behalf.
type BluetoothScan struct {
	RequestID    string `json:"request_id"`
	DeviceFilter string `json:"device_filter"`
}

func (BluetoothScan) engineEvent() {}

// TestEvent exercises the generic channel end to end.
type TestEvent struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

func (TestEvent) engineEvent() {}

// HostEvent is a message the host sends to the simulation on the generic
// bridge channel.
type HostEvent interface {
	hostEvent()
}

// AudioCompleted answers a PlayAudio.
type AudioCompleted struct {
	RequestID       string  `json:"request_id"`
	Success         bool    `json:"success"`
	ErrorMessage    string  `json:"error_message,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

func (AudioCompleted) hostEvent() {}

// BluetoothScanCompleted answers a BluetoothScan.
type BluetoothScanCompleted struct {
	RequestID    string   `json:"request_id"`
	Success      bool     `json:"success"`
	DevicesFound []string `json:"devices_found"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

func (BluetoothScanCompleted) hostEvent() {}

// TestEventResponse answers a TestEvent.
type TestEventResponse struct {
	RequestID    string `json:"request_id"`
	ResponseData string `json:"response_data"`
}

func (TestEventResponse) hostEvent() {}

// UserGesture signals that the user interacted with the host surface,
// satisfying the platform's audio-autoplay policy.
type UserGesture struct {
	RequestID string  `json:"request_id"`
	Timestamp float64 `json:"timestamp"`
}

func (UserGesture) hostEvent() {}

// SettingsUpdated pushes new shared settings into the simulation.
type SettingsUpdated struct {
	RequestID string         `json:"request_id"`
	Settings  SharedSettings `json:"settings"`
}

func (SettingsUpdated) hostEvent() {}
