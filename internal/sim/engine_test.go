package sim

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/audio"
	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

func testEngine() (*Engine, *bridge.Bridge) {
	logger := log.New(io.Discard)
	b := bridge.New(logger)
	e := New(logger, b, Config{
		Sounds: map[string]audio.SoundInfo{
			"enter_area": {Context: protocol.ContextEnter, DefaultVolume: 0.8},
			"exit_area":  {Context: protocol.ContextExit, DefaultVolume: 0.7},
			"yipee":      {Context: protocol.ContextCritter, DefaultVolume: 0.8},
		},
		Backoff: backoff.DefaultTuning(),
	})
	return e, b
}

func step(e *Engine) []Event {
	return e.Step(time.Now())
}

func TestGestureUnlocksAudioForSameTick(t *testing.T) {
	e, b := testEngine()

	// Gesture and load arrive in the same tick; host events drain first,
	// so the enter sound must not be rejected.
	b.SubmitHostEvent(protocol.UserGesture{RequestID: "g-1", Timestamp: 12.5})
	b.SubmitLoadCritter("chirpy")
	step(e)

	if !e.Audio.Gate().Unlocked() {
		t.Fatal("gate still locked after gesture")
	}
	if frames := b.PollAudioRequests(); len(frames) != 1 {
		t.Errorf("dispatched %d audio requests, want 1 (enter_area)", len(frames))
	}
	if e.Current() == nil || e.Current().Template.ID != "chirpy" {
		t.Errorf("current critter = %+v, want chirpy", e.Current())
	}
}

func TestLoadBeforeGestureStillLoads(t *testing.T) {
	e, b := testEngine()

	b.SubmitLoadCritter("chirpy")
	events := step(e)

	if e.Current() == nil {
		t.Fatal("critter not loaded")
	}
	found := false
	for _, ev := range events {
		if _, ok := ev.(CritterLoaded); ok {
			found = true
		}
	}
	if !found {
		t.Error("no CritterLoaded event emitted")
	}
	// The enter sound was rejected by the gate, not queued.
	if frames := b.PollAudioRequests(); len(frames) != 0 {
		t.Errorf("dispatched %d audio requests with gate locked, want 0", len(frames))
	}
}

func TestLockedCritterRejected(t *testing.T) {
	e, b := testEngine()

	b.SubmitLoadCritter("bouncy") // unlock level 2, session starts at 1
	events := step(e)

	if e.Current() != nil {
		t.Fatal("locked critter was loaded")
	}
	rejected := false
	for _, ev := range events {
		if r, ok := ev.(CritterRejected); ok && r.Reason == "locked" {
			rejected = true
		}
	}
	if !rejected {
		t.Error("no CritterRejected(locked) event")
	}
}

func TestInteractionsRaiseScoreAndLevel(t *testing.T) {
	e, b := testEngine()
	b.SubmitHostEvent(protocol.UserGesture{RequestID: "g-1"})
	b.SubmitLoadCritter("chirpy")
	step(e)
	b.PollAudioRequests()

	happinessBefore := e.Current().Happiness
	b.SubmitInteraction(bridge.InteractionTap, 10, 20, 0, 0)
	events := step(e)

	if e.Score() != tapPoints {
		t.Errorf("score = %d, want %d", e.Score(), tapPoints)
	}
	if e.Current().Happiness <= happinessBefore {
		t.Error("tap did not raise happiness")
	}
	var applied *InteractionApplied
	for _, ev := range events {
		if a, ok := ev.(InteractionApplied); ok {
			applied = &a
		}
	}
	if applied == nil || applied.Kind != bridge.InteractionTap {
		t.Fatalf("events = %+v, want InteractionApplied(tap)", events)
	}

	// Grind holds until the level boundary.
	for e.Score() < pointsPerLevel {
		b.SubmitInteraction(bridge.InteractionHold, 0, 0, 0, 0)
		events = step(e)
	}
	if e.Level() != 2 {
		t.Errorf("level = %d after %d points, want 2", e.Level(), e.Score())
	}
	leveled := false
	for _, ev := range events {
		if _, ok := ev.(LevelUp); ok {
			leveled = true
		}
	}
	if !leveled {
		t.Error("no LevelUp event on the boundary tick")
	}

	// Bouncy unlocks at level 2.
	b.SubmitLoadCritter("bouncy")
	step(e)
	if e.Current() == nil || e.Current().Template.ID != "bouncy" {
		t.Errorf("current = %+v, want bouncy after unlock", e.Current())
	}
}

func TestInteractionWithoutCritterIgnored(t *testing.T) {
	e, b := testEngine()
	b.SubmitInteraction(bridge.InteractionTap, 0, 0, 0, 0)
	events := step(e)
	if len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
}

func TestSettingsReachAudioManager(t *testing.T) {
	e, b := testEngine()
	b.SubmitHostEvent(protocol.SettingsUpdated{
		RequestID: "s-1",
		Settings:  protocol.SharedSettings{MusicEnabled: true, BGMVolume: 0.3, SFXVolume: 0.5},
	})
	step(e)

	if !e.Settings().MusicEnabled {
		t.Error("settings not stored")
	}
	if e.Audio.GlobalVolume() != 0.5 {
		t.Errorf("audio global volume = %v, want 0.5", e.Audio.GlobalVolume())
	}
}

func TestVirtualDeviceFlow(t *testing.T) {
	e, _ := testEngine()

	collar := protocol.VirtualDevice{
		Info: protocol.DeviceInfo{ID: "virtual_collar_001", Name: "Collar", Type: protocol.DeviceSmartCollar},
		Handlers: []protocol.CommandHandler{
			{Pattern: "beep", Response: "BEEP_OK", DelayMS: 50},
		},
	}
	e.Bluetooth.Handle(protocol.EnableVirtualNetwork{})
	e.Bluetooth.Handle(protocol.RegisterVirtualDevice{Device: collar})

	// Registration publishes the device; no scan needed.
	if len(e.Bluetooth.Discovered()) != 1 {
		t.Fatalf("discovered %d devices after registration, want 1", len(e.Bluetooth.Discovered()))
	}

	// Connect and command land in the same tick.
	e.Bluetooth.Handle(protocol.Connect{DeviceID: "virtual_collar_001"})
	if st := e.Bluetooth.State("virtual_collar_001"); st != protocol.StateConnected {
		t.Fatalf("state = %s, want connected without a tick boundary", st)
	}
	e.Bluetooth.Handle(protocol.SendCommand{DeviceID: "virtual_collar_001", Command: "beep"})
	step(e)
	logEntries := e.Bluetooth.Simulator().CommandLog()
	if len(logEntries) != 1 || logEntries[0].Response != "BEEP_OK" {
		t.Errorf("command log = %+v, want one BEEP_OK entry", logEntries)
	}
}
