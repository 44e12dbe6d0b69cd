package sim

import "github.com/app4dog/game-play/internal/bridge"

// Event is something observable that happened during a tick. The engine
// collects events per tick for whoever is watching (the TUI, the session
// recorder); they never cross the host boundary.
type Event interface {
	simEvent()
}

// CritterLoaded fires when a load request resolves to a template.
type CritterLoaded struct {
	CritterID string
}

func (CritterLoaded) simEvent() {}

// CritterRejected fires when a load request names a template that does not
// exist or is still locked.
type CritterRejected struct {
	CritterID string
	Reason    string
}

func (CritterRejected) simEvent() {}

// InteractionApplied fires when a gesture lands on the loaded critter.
type InteractionApplied struct {
	Kind      bridge.InteractionKind
	Happiness float64
	Energy    float64
}

func (InteractionApplied) simEvent() {}

// ScoreChanged fires whenever the session score moves.
type ScoreChanged struct {
	Score int
	Delta int
}

func (ScoreChanged) simEvent() {}

// LevelUp fires when the score crosses a level boundary.
type LevelUp struct {
	Level int
}

func (LevelUp) simEvent() {}
