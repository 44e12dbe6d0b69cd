package audio

// Gate models the platform's audio-autoplay policy: playback is locked
// until the host reports an explicit user gesture. The transition is
// one-way — once unlocked, a gate never locks again for the session.
type Gate struct {
	unlocked bool
}

// Unlock opens the gate. Safe to call more than once.
func (g *Gate) Unlock() {
	g.unlocked = true
}

// Unlocked reports whether a user gesture has been observed.
func (g *Gate) Unlocked() bool {
	return g.unlocked
}
