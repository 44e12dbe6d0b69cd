// Package camera consumes host capture frames and tracks the preview
// overlay. Frames arrive faster than the simulation wants them; processing
// is throttled and the rest are counted as dropped, not queued.
package camera

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

// DefaultThrottle is the minimum spacing between processed frames.
const DefaultThrottle = 100 * time.Millisecond

// statsLogEvery is how many processed frames pass between stats log lines.
const statsLogEvery = 100

// Posture is the classifier's read of the pet in frame. Classification is
// a stub until a real model lands; every processed frame reads unknown.
type Posture string

const (
	PostureUnknown  Posture = "unknown"
	PostureSitting  Posture = "sitting"
	PostureStanding Posture = "standing"
	PostureLying    Posture = "lying"
)

// Stats counts frame traffic since startup.
type Stats struct {
	Received  uint64
	Processed uint64
	Dropped   uint64
}

// Preview mirrors the host overlay state last requested.
type Preview struct {
	Enabled bool
	Scale   float64
	Anchor  protocol.PreviewAnchor
}

// Manager throttles frame processing and holds the preview state.
// Tick-owned: no locking.
type Manager struct {
	logger   *log.Logger
	bridge   *bridge.Bridge
	throttle time.Duration

	lastProcessed time.Time
	lastFrame     protocol.CameraFrame
	posture       Posture
	preview       Preview
	stats         Stats
}

// NewManager creates a camera manager. A zero throttle falls back to
// DefaultThrottle.
func NewManager(logger *log.Logger, b *bridge.Bridge, throttle time.Duration) *Manager {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &Manager{
		logger:   logger.WithPrefix("camera"),
		bridge:   b,
		throttle: throttle,
		posture:  PostureUnknown,
	}
}

// Step drains queued frames and preview requests. At most one frame per
// throttle window is processed; the rest are dropped on the floor.
func (m *Manager) Step(now time.Time) {
	m.bridge.DrainCameraPreview(func(req protocol.PreviewRequest) {
		m.applyPreview(req)
	})
	m.bridge.DrainCameraFrames(func(frame protocol.CameraFrame) {
		m.stats.Received++
		if now.Sub(m.lastProcessed) < m.throttle {
			m.stats.Dropped++
			return
		}
		m.process(frame, now)
	})
}

func (m *Manager) process(frame protocol.CameraFrame, now time.Time) {
	m.lastProcessed = now
	m.lastFrame = frame
	m.stats.Processed++
	m.posture = classify(frame)
	m.logger.Debug("frame processed",
		"width", frame.Width, "height", frame.Height, "posture", m.posture)
	if m.stats.Processed%statsLogEvery == 0 {
		m.logger.Info("frame stats",
			"received", m.stats.Received,
			"processed", m.stats.Processed,
			"dropped", m.stats.Dropped)
	}
}

func (m *Manager) applyPreview(req protocol.PreviewRequest) {
	switch r := req.(type) {
	case protocol.PreviewEnable:
		scale := r.Scale
		if scale <= 0 || scale > 1 {
			scale = 0.25
		}
		anchor := r.Anchor
		if anchor == "" {
			anchor = protocol.AnchorBottomRight
		}
		m.preview = Preview{Enabled: true, Scale: scale, Anchor: anchor}
		m.logger.Info("preview enabled", "scale", scale, "anchor", anchor)
	case protocol.PreviewDisable:
		m.preview.Enabled = false
		m.logger.Info("preview disabled")
	}
}

// classify is the posture stub. It only validates the frame shape.
func classify(frame protocol.CameraFrame) Posture {
	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Data) == 0 {
		return PostureUnknown
	}
	return PostureUnknown
}

// Posture returns the latest classification.
func (m *Manager) Posture() Posture { return m.posture }

// Preview returns the overlay state.
func (m *Manager) Preview() Preview { return m.preview }

// Stats returns frame counters.
func (m *Manager) Stats() Stats { return m.stats }

// LastFrame returns the most recently processed frame.
func (m *Manager) LastFrame() protocol.CameraFrame { return m.lastFrame }
