// Package audio dispatches playback requests to the host runtime and
// correlates their completions. All calls happen in the tick context; the
// only concurrency boundary is the bridge the requests travel through.
package audio

import (
	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

// Service is the name this manager reports failures under.
const Service = "audio"

// SoundInfo describes one registered sound.
type SoundInfo struct {
	FilePath      string                `yaml:"file"`
	Context       protocol.SoundContext `yaml:"context"`
	DefaultVolume float64               `yaml:"volume"`
}

// DefaultVolume is used when a caller does not pick a volume explicitly.
const DefaultVolume = -1

// Manager owns the sound registry, the gesture gate, and the pending table
// for the audio channel.
type Manager struct {
	logger  *log.Logger
	bridge  *bridge.Bridge
	sounds  map[string]SoundInfo
	pending *bridge.PendingTable[protocol.AudioRequest]
	gate    *Gate
	policy  *backoff.Policy
	ids     *bridge.IDSource

	globalVolume float64
}

// NewManager creates an audio manager over the given bridge. The registry
// maps sound IDs to their file and default volume; the policy records
// playback failures.
func NewManager(logger *log.Logger, b *bridge.Bridge, sounds map[string]SoundInfo, policy *backoff.Policy, ids *bridge.IDSource) *Manager {
	return &Manager{
		logger:       logger.WithPrefix("audio"),
		bridge:       b,
		sounds:       sounds,
		pending:      bridge.NewPendingTable[protocol.AudioRequest](),
		gate:         &Gate{},
		policy:       policy,
		ids:          ids,
		globalVolume: 1.0,
	}
}

// Gate exposes the gesture gate, for the engine's gesture handler.
func (m *Manager) Gate() *Gate { return m.gate }

// Pending reports how many playback requests await a host response.
func (m *Manager) Pending() int { return m.pending.Len() }

// GlobalVolume returns the current effective master volume.
func (m *Manager) GlobalVolume() float64 { return m.globalVolume }

// Play dispatches a playback request for a registered sound. Pass
// DefaultVolume to use the sound's registered volume. The returned ID
// identifies the request until its completion arrives.
//
// When the gesture gate is locked the request is rejected with
// PermissionDenied, nothing is queued, and no pending entry is created;
// rejected requests are terminal — the caller must re-issue after the gate
// opens if it still wants the sound.
func (m *Manager) Play(soundID string, volume float64) (string, error) {
	info, ok := m.sounds[soundID]
	if !ok {
		err := protocol.NewError(protocol.ErrNotFound, soundID, "sound not registered")
		m.policy.RecordError(Service, err)
		return "", err
	}

	if !m.gate.Unlocked() {
		err := protocol.NewError(protocol.ErrPermissionDenied, soundID, "user gesture required")
		m.policy.RecordError(Service, err)
		m.logger.Warn("playback blocked, waiting for user gesture", "sound", soundID)
		return "", err
	}

	if volume == DefaultVolume {
		volume = info.DefaultVolume
	}
	req := protocol.AudioPlay{
		RequestID: m.ids.Next("audio"),
		SoundID:   soundID,
		Context:   info.Context,
		Volume:    clampVolume(volume * m.globalVolume),
	}
	m.dispatch(req)
	return req.RequestID, nil
}

// Stop dispatches a stop for one sound, or for all sounds when soundID is
// empty. Like every audio dispatch it requires the gate to be open.
func (m *Manager) Stop(soundID string) (string, error) {
	if !m.gate.Unlocked() {
		err := protocol.NewError(protocol.ErrPermissionDenied, soundID, "user gesture required")
		m.policy.RecordError(Service, err)
		return "", err
	}
	req := protocol.AudioStop{RequestID: m.ids.Next("audio"), SoundID: soundID}
	m.dispatch(req)
	return req.RequestID, nil
}

// SetVolume dispatches a global volume change to the host.
func (m *Manager) SetVolume(volume float64) (string, error) {
	if !m.gate.Unlocked() {
		err := protocol.NewError(protocol.ErrPermissionDenied, "", "user gesture required")
		m.policy.RecordError(Service, err)
		return "", err
	}
	req := protocol.AudioSetVolume{RequestID: m.ids.Next("audio"), Volume: clampVolume(volume)}
	m.dispatch(req)
	return req.RequestID, nil
}

// Test dispatches an audio-path self test.
func (m *Manager) Test(testType string) (string, error) {
	if !m.gate.Unlocked() {
		err := protocol.NewError(protocol.ErrPermissionDenied, testType, "user gesture required")
		m.policy.RecordError(Service, err)
		return "", err
	}
	req := protocol.AudioTest{RequestID: m.ids.Next("audio"), TestType: testType}
	m.dispatch(req)
	return req.RequestID, nil
}

func (m *Manager) dispatch(req protocol.AudioRequest) {
	m.pending.Track(req.AudioRequestID(), req)
	m.bridge.DispatchAudioRequest(req)
}

// HandleResponse resolves a host response against the pending table.
// Responses for unknown IDs are logged and discarded: an unmatched
// completion is a diagnostic signal, not an error.
func (m *Manager) HandleResponse(resp protocol.AudioResponse) {
	switch r := resp.(type) {
	case protocol.AudioPlayCompleted:
		req, ok := m.pending.Resolve(r.RequestID)
		if !ok {
			m.logger.Warn("completion for unknown request", "request_id", r.RequestID)
			return
		}
		if r.Success {
			m.policy.RecordSuccess(Service)
			m.logger.Debug("playback completed",
				"request_id", r.RequestID, "duration_s", r.DurationSeconds)
			return
		}
		err := protocol.NewError(protocol.ErrOperationFailed, soundIDOf(req.Payload), r.ErrorMessage)
		m.policy.RecordError(Service, err)
		m.logger.Warn("playback failed", "request_id", r.RequestID, "err", err)

	case protocol.AudioStopped:
		if _, ok := m.pending.Resolve(r.RequestID); !ok {
			m.logger.Warn("stop ack for unknown request", "request_id", r.RequestID)
		}

	case protocol.AudioVolumeChanged:
		m.pending.Resolve(r.RequestID)
		m.globalVolume = clampVolume(r.NewVolume)

	case protocol.AudioTestCompleted:
		m.pending.Resolve(r.RequestID)
		m.logger.Debug("audio test completed", "request_id", r.RequestID, "result", r.Result)
	}
}

// ApplySettings folds host-pushed shared settings into the manager; the SFX
// slider is the audio channel's master volume.
func (m *Manager) ApplySettings(s protocol.SharedSettings) {
	m.globalVolume = clampVolume(s.SFXVolume)
}

func soundIDOf(req protocol.AudioRequest) string {
	if play, ok := req.(protocol.AudioPlay); ok {
		return play.SoundID
	}
	return ""
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
