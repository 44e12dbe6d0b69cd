package audio

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

func testSounds() map[string]SoundInfo {
	return map[string]SoundInfo{
		"yipee":      {FilePath: "assets/audio/positive/yipee.ogg", Context: protocol.ContextTest, DefaultVolume: 0.8},
		"enter_area": {FilePath: "assets/audio/ui/enter_chime.mp3", Context: protocol.ContextEnter, DefaultVolume: 0.8},
		"exit_area":  {FilePath: "assets/audio/ui/exit_chime.mp3", Context: protocol.ContextExit, DefaultVolume: 0.7},
	}
}

func testManager() (*Manager, *bridge.Bridge, *backoff.Policy) {
	logger := log.New(io.Discard)
	b := bridge.New(logger)
	policy := backoff.New(backoff.DefaultTuning())
	m := NewManager(logger, b, testSounds(), policy, &bridge.IDSource{})
	return m, b, policy
}

func TestPlayRejectedWhileGateLocked(t *testing.T) {
	m, b, _ := testManager()

	_, err := m.Play("yipee", 0.8)
	if err == nil {
		t.Fatal("Play succeeded with gate locked")
	}
	if !protocol.IsKind(err, protocol.ErrPermissionDenied) {
		t.Errorf("error = %v, want PermissionDenied", err)
	}
	if m.Pending() != 0 {
		t.Errorf("pending table has %d entries after rejected play, want 0", m.Pending())
	}
	if frames := b.PollAudioRequests(); len(frames) != 0 {
		t.Errorf("rejected play still dispatched %d requests", len(frames))
	}
}

func TestGateBlocksEveryDispatch(t *testing.T) {
	m, b, _ := testManager()

	// Stop and SetVolume consult the gate like Play and Test do.
	if _, err := m.Stop(""); !protocol.IsKind(err, protocol.ErrPermissionDenied) {
		t.Errorf("Stop error = %v, want PermissionDenied", err)
	}
	if _, err := m.SetVolume(0.3); !protocol.IsKind(err, protocol.ErrPermissionDenied) {
		t.Errorf("SetVolume error = %v, want PermissionDenied", err)
	}
	if _, err := m.Test("latency"); !protocol.IsKind(err, protocol.ErrPermissionDenied) {
		t.Errorf("Test error = %v, want PermissionDenied", err)
	}
	if m.Pending() != 0 {
		t.Errorf("pending table has %d entries with gate locked, want 0", m.Pending())
	}
	if frames := b.PollAudioRequests(); len(frames) != 0 {
		t.Fatalf("gate locked but %d audio requests reached the host", len(frames))
	}

	m.Gate().Unlock()
	if _, err := m.Stop(""); err != nil {
		t.Fatalf("Stop after unlock: %v", err)
	}
	if _, err := m.SetVolume(0.3); err != nil {
		t.Fatalf("SetVolume after unlock: %v", err)
	}
	if frames := b.PollAudioRequests(); len(frames) != 2 {
		t.Errorf("dispatched %d requests after unlock, want 2", len(frames))
	}
}

func TestGateUnlockIsMonotonic(t *testing.T) {
	m, _, _ := testManager()

	m.Gate().Unlock()
	for i := 0; i < 3; i++ {
		if !m.Gate().Unlocked() {
			t.Fatal("gate observed locked after unlock")
		}
		// Responses, settings, and further unlocks must not re-lock.
		m.ApplySettings(protocol.DefaultSharedSettings())
		m.Gate().Unlock()
	}
}

func TestSuccessfulPlayRoundTrip(t *testing.T) {
	m, b, policy := testManager()
	m.Gate().Unlock()

	// Seed a failure so the success reset is observable.
	policy.RecordError(Service, protocol.NewError(protocol.ErrOperationFailed, "yipee", "stalled"))

	id, err := m.Play("enter_area", 0.8)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if m.Pending() != 1 {
		t.Fatalf("pending = %d after dispatch, want 1", m.Pending())
	}

	m.HandleResponse(protocol.AudioPlayCompleted{RequestID: id, Success: true, DurationSeconds: 1.2})

	if m.Pending() != 0 {
		t.Errorf("pending = %d after completion, want 0", m.Pending())
	}
	if n := policy.ErrorCount(Service); n != 0 {
		t.Errorf("error count = %d after success, want 0", n)
	}
	if frames := b.PollAudioRequests(); len(frames) != 1 {
		t.Errorf("host polled %d requests, want 1", len(frames))
	}
}

func TestFailedPlayRecordsError(t *testing.T) {
	m, _, policy := testManager()
	m.Gate().Unlock()

	id, err := m.Play("yipee", DefaultVolume)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	m.HandleResponse(protocol.AudioPlayCompleted{RequestID: id, Success: false, ErrorMessage: "decoder error"})

	if m.Pending() != 0 {
		t.Errorf("failed request still pending")
	}
	if n := policy.ErrorCount(Service); n != 1 {
		t.Errorf("error count = %d, want 1", n)
	}
	if !protocol.IsKind(policy.LastError(Service), protocol.ErrOperationFailed) {
		t.Errorf("last error = %v, want OperationFailed", policy.LastError(Service))
	}
}

func TestUnknownCompletionIsDiscarded(t *testing.T) {
	m, _, policy := testManager()
	m.Gate().Unlock()

	m.HandleResponse(protocol.AudioPlayCompleted{RequestID: "never-sent", Success: true})

	if m.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.Pending())
	}
	if n := policy.ErrorCount(Service); n != 0 {
		t.Errorf("unmatched response counted as service error (count=%d)", n)
	}
}

func TestPlayUnknownSound(t *testing.T) {
	m, _, _ := testManager()
	m.Gate().Unlock()

	_, err := m.Play("nonexistent", DefaultVolume)
	if !protocol.IsKind(err, protocol.ErrNotFound) {
		t.Errorf("error = %v, want NotFound", err)
	}
}

func TestSettingsDriveGlobalVolume(t *testing.T) {
	m, b, _ := testManager()
	m.Gate().Unlock()

	m.ApplySettings(protocol.SharedSettings{SFXVolume: 0.5})
	id, err := m.Play("yipee", 0.8)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	frames := b.PollAudioRequests()
	if len(frames) != 1 {
		t.Fatalf("polled %d frames, want 1", len(frames))
	}
	req, err := protocol.DecodeAudioRequest(frames[0])
	if err != nil {
		t.Fatal(err)
	}
	play := req.(protocol.AudioPlay)
	if play.RequestID != id {
		t.Errorf("request id = %s, want %s", play.RequestID, id)
	}
	if play.Volume != 0.4 { // 0.8 * 0.5 master
		t.Errorf("effective volume = %v, want 0.4", play.Volume)
	}
}
