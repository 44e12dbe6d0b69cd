// Package sim runs the fixed-tick pet simulation. Each Step drains the
// bridge queues in a declared order, routes messages to the owning service,
// and applies game progression. Everything in this package executes in the
// single tick context.
package sim

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/audio"
	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/bluetooth"
	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/camera"
	"github.com/app4dog/game-play/internal/protocol"
)

// Points per interaction kind.
const (
	tapPoints   = 1
	swipePoints = 2
	holdPoints  = 3
)

// pointsPerLevel is how much score advances one level.
const pointsPerLevel = 100

// Engine owns the simulation state and the per-tick drain schedule.
type Engine struct {
	logger *log.Logger
	bridge *bridge.Bridge

	Audio     *audio.Manager
	Bluetooth *bluetooth.Manager
	Camera    *camera.Manager

	templates map[string]Template
	order     []Template
	current   *Critter
	settings  protocol.SharedSettings

	score  int
	level  int
	tick   uint64
	events []Event

	interactions uint64
	soundsPlayed uint64
}

// Config carries engine construction inputs.
type Config struct {
	Sounds         map[string]audio.SoundInfo
	Templates      []Template
	Backoff        backoff.Tuning
	CameraThrottle time.Duration
}

// New wires an engine over the given bridge. Empty template and sound sets
// fall back to the builtins.
func New(logger *log.Logger, b *bridge.Bridge, cfg Config) *Engine {
	templates := cfg.Templates
	if len(templates) == 0 {
		templates = BuiltinTemplates()
	}
	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	policy := backoff.New(cfg.Backoff)
	ids := &bridge.IDSource{}
	return &Engine{
		logger:    logger.WithPrefix("sim"),
		bridge:    b,
		Audio:     audio.NewManager(logger, b, cfg.Sounds, policy, ids),
		Bluetooth: bluetooth.NewManager(logger, b, policy),
		Camera:    camera.NewManager(logger, b, cfg.CameraThrottle),
		templates: byID,
		order:     templates,
		settings:  protocol.DefaultSharedSettings(),
		level:     1,
	}
}

// Step runs one tick: host events first (a gesture may open the gate for
// sounds triggered later this tick), then service responses, then game
// input, then the camera, then the timeout sweep.
func (e *Engine) Step(now time.Time) []Event {
	e.tick++
	e.events = e.events[:0]

	e.bridge.DrainHostEvents(e.handleHostEvent)
	e.bridge.DrainAudioResponses(e.Audio.HandleResponse)
	e.bridge.DrainBluetoothResponses(e.Bluetooth.HandleResponse)
	e.bridge.DrainLoadCritter(e.handleLoadCritter)
	e.bridge.DrainInteractions(e.handleInteraction)
	e.Camera.Step(now)
	e.Bluetooth.SweepTimeouts()

	return e.events
}

func (e *Engine) handleHostEvent(ev protocol.HostEvent) {
	switch h := ev.(type) {
	case protocol.UserGesture:
		e.Audio.Gate().Unlock()
		e.logger.Info("user gesture received, audio unlocked", "request_id", h.RequestID)

	case protocol.SettingsUpdated:
		e.settings = h.Settings
		e.Audio.ApplySettings(h.Settings)
		e.logger.Debug("settings updated",
			"music", h.Settings.MusicEnabled, "sfx", h.Settings.SFXVolume)

	case protocol.AudioCompleted:
		// Legacy generic-channel completion; the audio channel carries the
		// authoritative one.

	case protocol.BluetoothScanCompleted:
		e.logger.Debug("host scan finished", "devices", h.DevicesFound)

	case protocol.TestEventResponse:
		e.logger.Debug("test event answered", "response", h.ResponseData)
	}
}

func (e *Engine) handleLoadCritter(req bridge.LoadCritter) {
	t, ok := e.templates[req.CritterID]
	if !ok {
		e.emit(CritterRejected{CritterID: req.CritterID, Reason: "unknown critter"})
		e.logger.Warn("load rejected", "critter", req.CritterID, "reason", "unknown")
		return
	}
	if t.UnlockLevel > e.level {
		e.emit(CritterRejected{CritterID: req.CritterID, Reason: "locked"})
		e.logger.Warn("load rejected", "critter", req.CritterID,
			"unlock_level", t.UnlockLevel, "level", e.level)
		return
	}

	if e.current != nil {
		e.playSound("exit_area")
	}
	e.current = newCritter(t)
	e.emit(CritterLoaded{CritterID: t.ID})
	e.playSound("enter_area")
	e.logger.Info("critter loaded", "critter", t.ID, "species", t.Species)
}

func (e *Engine) handleInteraction(in bridge.Interaction) {
	if e.current == nil {
		e.logger.Debug("interaction ignored, no critter loaded", "kind", in.Kind)
		return
	}
	e.interactions++

	var points int
	switch in.Kind {
	case bridge.InteractionTap:
		points = tapPoints
		e.current.Happiness = clamp01(e.current.Happiness + 0.05)
		e.current.Energy = clamp01(e.current.Energy - 0.01)
	case bridge.InteractionSwipe:
		points = swipePoints
		e.current.Happiness = clamp01(e.current.Happiness + 0.08*e.current.Template.Stats.Playfulness)
		e.current.Energy = clamp01(e.current.Energy - 0.03)
	case bridge.InteractionHold:
		points = holdPoints
		e.current.Happiness = clamp01(e.current.Happiness + 0.10*e.current.Template.Stats.Obedience)
		e.current.Energy = clamp01(e.current.Energy - 0.05)
	default:
		return
	}

	e.emit(InteractionApplied{Kind: in.Kind, Happiness: e.current.Happiness, Energy: e.current.Energy})
	e.addScore(points)
}

func (e *Engine) addScore(delta int) {
	e.score += delta
	e.emit(ScoreChanged{Score: e.score, Delta: delta})

	newLevel := e.score/pointsPerLevel + 1
	if newLevel > e.level {
		e.level = newLevel
		e.emit(LevelUp{Level: newLevel})
		e.playSound("yipee")
		e.logger.Info("level up", "level", newLevel, "score", e.score)
	}
}

// playSound fires and forgets; a locked gate or missing sound is already
// recorded by the audio manager.
func (e *Engine) playSound(soundID string) {
	if _, err := e.Audio.Play(soundID, audio.DefaultVolume); err == nil {
		e.soundsPlayed++
	}
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// Templates lists the registered critter templates in registration order,
// unlocked or not.
func (e *Engine) Templates() []Template {
	out := make([]Template, len(e.order))
	copy(out, e.order)
	return out
}

// Current returns the loaded critter, or nil.
func (e *Engine) Current() *Critter { return e.current }

// Score returns the session score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// Tick returns how many steps have run.
func (e *Engine) Tick() uint64 { return e.tick }

// Settings returns the last host-pushed shared settings.
func (e *Engine) Settings() protocol.SharedSettings { return e.settings }

// SessionStats summarizes a run for persistence.
type SessionStats struct {
	Score        int
	Level        int
	Interactions uint64
	SoundsPlayed uint64
	Ticks        uint64
}

// Stats snapshots the session counters.
func (e *Engine) Stats() SessionStats {
	return SessionStats{
		Score:        e.score,
		Level:        e.level,
		Interactions: e.interactions,
		SoundsPlayed: e.soundsPlayed,
		Ticks:        e.tick,
	}
}
