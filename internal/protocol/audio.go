// Package protocol defines the closed message sets exchanged between the
// simulation engine and the host runtime, one sum type per channel, plus the
// tagged-JSON codec that moves them across the boundary.
//
// Each channel follows the same pattern the platform uses elsewhere for
// internal messaging: a marker interface with one struct per variant, so a
// switch over the interface is checked everywhere a variant is consumed.
package protocol

// SoundContext names the game situation a sound belongs to.
type SoundContext string

const (
	ContextEnter   SoundContext = "Enter"
	ContextExit    SoundContext = "Exit"
	ContextUI      SoundContext = "UI"
	ContextCritter SoundContext = "Critter"
	ContextAmbient SoundContext = "Ambient"
	ContextTest    SoundContext = "Test"
)

// AudioRequest is a playback operation the engine sends to the host.
type AudioRequest interface {
	audioRequest()
	// AudioRequestID returns the correlation ID carried by the request.
	AudioRequestID() string
}

// AudioPlay asks the host to play a registered sound.
type AudioPlay struct {
	RequestID string       `json:"request_id"`
	SoundID   string       `json:"sound_id"`
	Context   SoundContext `json:"context"`
	Volume    float64      `json:"volume"`
	Loop      bool         `json:"loop_audio"`
}

func (AudioPlay) audioRequest()            {}
func (r AudioPlay) AudioRequestID() string { return r.RequestID }

// AudioStop stops one sound, or every sound when SoundID is empty.
type AudioStop struct {
	RequestID string `json:"request_id"`
	SoundID   string `json:"sound_id,omitempty"`
}

func (AudioStop) audioRequest()            {}
func (r AudioStop) AudioRequestID() string { return r.RequestID }

// AudioSetVolume changes the host's global playback volume.
type AudioSetVolume struct {
	RequestID string  `json:"request_id"`
	Volume    float64 `json:"volume"`
}

func (AudioSetVolume) audioRequest()            {}
func (r AudioSetVolume) AudioRequestID() string { return r.RequestID }

// AudioTest exercises the host audio path end to end.
type AudioTest struct {
	RequestID string `json:"request_id"`
	TestType  string `json:"test_type"`
}

func (AudioTest) audioRequest()            {}
func (r AudioTest) AudioRequestID() string { return r.RequestID }

// AudioResponse is the host's answer to an earlier AudioRequest.
type AudioResponse interface {
	audioResponse()
	// AudioResponseID returns the correlation ID the response resolves.
	AudioResponseID() string
}

// AudioPlayCompleted reports the outcome of an AudioPlay.
type AudioPlayCompleted struct {
	RequestID       string  `json:"request_id"`
	Success         bool    `json:"success"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	ErrorMessage    string  `json:"error_message,omitempty"`
}

func (AudioPlayCompleted) audioResponse()            {}
func (r AudioPlayCompleted) AudioResponseID() string { return r.RequestID }

// AudioStopped reports the outcome of an AudioStop.
type AudioStopped struct {
	RequestID string `json:"request_id"`
	Success   bool   `json:"success"`
}

func (AudioStopped) audioResponse()            {}
func (r AudioStopped) AudioResponseID() string { return r.RequestID }

// AudioVolumeChanged confirms an AudioSetVolume.
type AudioVolumeChanged struct {
	RequestID string  `json:"request_id"`
	NewVolume float64 `json:"new_volume"`
}

func (AudioVolumeChanged) audioResponse()            {}
func (r AudioVolumeChanged) AudioResponseID() string { return r.RequestID }

// AudioTestCompleted reports the outcome of an AudioTest.
type AudioTestCompleted struct {
	RequestID string `json:"request_id"`
	Result    string `json:"result"`
}

func (AudioTestCompleted) audioResponse()            {}
func (r AudioTestCompleted) AudioResponseID() string { return r.RequestID }
