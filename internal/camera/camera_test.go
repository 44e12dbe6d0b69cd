package camera

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

func testManager(throttle time.Duration) (*Manager, *bridge.Bridge) {
	logger := log.New(io.Discard)
	b := bridge.New(logger)
	return NewManager(logger, b, throttle), b
}

func frame(ts float64) protocol.CameraFrame {
	return protocol.CameraFrame{Width: 320, Height: 240, Data: []byte{1, 2, 3}, Timestamp: ts}
}

func TestThrottleDropsBurstFrames(t *testing.T) {
	m, b := testManager(100 * time.Millisecond)
	now := time.Now()

	for i := 0; i < 5; i++ {
		b.SubmitCameraFrame(frame(float64(i)))
	}
	m.Step(now)

	stats := m.Stats()
	if stats.Received != 5 {
		t.Errorf("received = %d, want 5", stats.Received)
	}
	if stats.Processed != 1 {
		t.Errorf("processed = %d, want 1 (burst inside one throttle window)", stats.Processed)
	}
	if stats.Dropped != 4 {
		t.Errorf("dropped = %d, want 4", stats.Dropped)
	}
	if m.LastFrame().Timestamp != 0 {
		t.Errorf("processed frame ts = %v, want the first of the burst", m.LastFrame().Timestamp)
	}
}

func TestThrottleWindowReopens(t *testing.T) {
	m, b := testManager(100 * time.Millisecond)
	now := time.Now()

	b.SubmitCameraFrame(frame(1))
	m.Step(now)
	b.SubmitCameraFrame(frame(2))
	m.Step(now.Add(150 * time.Millisecond))

	if got := m.Stats().Processed; got != 2 {
		t.Errorf("processed = %d, want 2 after window reopened", got)
	}
	if m.LastFrame().Timestamp != 2 {
		t.Errorf("last frame ts = %v, want 2", m.LastFrame().Timestamp)
	}
}

func TestPostureStubReadsUnknown(t *testing.T) {
	m, b := testManager(0)
	b.SubmitCameraFrame(frame(1))
	m.Step(time.Now())
	if m.Posture() != PostureUnknown {
		t.Errorf("posture = %s, want unknown", m.Posture())
	}
}

func TestPreviewControl(t *testing.T) {
	m, b := testManager(0)

	b.SubmitCameraPreview(protocol.PreviewEnable{Scale: 0.5, Anchor: protocol.AnchorTopLeft})
	m.Step(time.Now())
	p := m.Preview()
	if !p.Enabled || p.Scale != 0.5 || p.Anchor != protocol.AnchorTopLeft {
		t.Errorf("preview = %+v, want enabled 0.5 top-left", p)
	}

	// Out-of-range scale and missing anchor fall back to defaults.
	b.SubmitCameraPreview(protocol.PreviewEnable{Scale: 3})
	m.Step(time.Now())
	p = m.Preview()
	if p.Scale != 0.25 || p.Anchor != protocol.AnchorBottomRight {
		t.Errorf("preview = %+v, want defaults 0.25 bottom-right", p)
	}

	b.SubmitCameraPreview(protocol.PreviewDisable{})
	m.Step(time.Now())
	if m.Preview().Enabled {
		t.Error("preview still enabled after disable")
	}
}
