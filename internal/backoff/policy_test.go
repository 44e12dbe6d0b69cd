package backoff

import (
	"errors"
	"testing"
	"time"
)

func TestBackoffGrowth(t *testing.T) {
	p := New(DefaultTuning())
	failure := errors.New("device unreachable")

	want := []time.Duration{
		200 * time.Millisecond,  // 100ms * 2^1
		400 * time.Millisecond,  // 100ms * 2^2
		800 * time.Millisecond,  // 100ms * 2^3
		1600 * time.Millisecond, // 100ms * 2^4
	}
	prev := time.Duration(0)
	for i, w := range want {
		p.RecordError("bluetooth", failure)
		got := p.Backoff("bluetooth")
		if got != w {
			t.Errorf("after %d errors: backoff = %v, want %v", i+1, got, w)
		}
		if got < prev {
			t.Errorf("backoff decreased: %v after %v", got, prev)
		}
		prev = got
	}
}

func TestBackoffCapAfterNineFailures(t *testing.T) {
	p := New(DefaultTuning())
	failure := errors.New("device unreachable")

	for i := 0; i < 9; i++ {
		p.RecordError("bluetooth", failure)
	}

	// 100ms * 2^9 = 51.2s, clamped to the 30s absolute cap.
	if got := p.Backoff("bluetooth"); got != 30*time.Second {
		t.Errorf("backoff after 9 failures = %v, want 30s", got)
	}
	if p.ShouldRetry("bluetooth") {
		t.Error("ShouldRetry = true after 9 failures")
	}
}

func TestRetryBudgetExhaustsBeforeAbsoluteCap(t *testing.T) {
	p := New(DefaultTuning())
	failure := errors.New("transient")

	p.RecordError("bluetooth", failure)
	p.RecordError("bluetooth", failure)
	if !p.ShouldRetry("bluetooth") {
		t.Fatal("ShouldRetry = false with 2 failures, want true")
	}

	p.RecordError("bluetooth", failure)
	// Backoff is only 800ms, far below the cap, but the per-service retry
	// budget of 3 is spent.
	if p.ShouldRetry("bluetooth") {
		t.Error("ShouldRetry = true with 3 failures, want false")
	}
	if got := p.Backoff("bluetooth"); got >= 30*time.Second {
		t.Errorf("backoff = %v, expected to be below the absolute cap", got)
	}
}

func TestSuccessResetsRecord(t *testing.T) {
	p := New(DefaultTuning())
	failure := errors.New("transient")

	for i := 0; i < 5; i++ {
		p.RecordError("audio", failure)
	}
	p.RecordSuccess("audio")

	if n := p.ErrorCount("audio"); n != 0 {
		t.Errorf("error count after success = %d, want 0", n)
	}
	if p.LastError("audio") != nil {
		t.Error("last error not cleared by success")
	}
	if !p.ShouldRetry("audio") {
		t.Error("ShouldRetry = false after reset")
	}
}

func TestServicesAreIndependent(t *testing.T) {
	p := New(DefaultTuning())
	for i := 0; i < 4; i++ {
		p.RecordError("bluetooth", errors.New("down"))
	}

	if !p.ShouldRetry("audio") {
		t.Error("audio affected by bluetooth failures")
	}
	if p.ShouldRetry("bluetooth") {
		t.Error("bluetooth retry budget not exhausted")
	}
}
