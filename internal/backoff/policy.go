// Package backoff tracks consecutive failures per platform service and
// computes exponential retry backoff. The policy is advisory: callers
// consult it before re-issuing an operation, nothing in here schedules a
// retry on its own.
package backoff

import "time"

// Tuning controls the backoff curve.
type Tuning struct {
	BaseDelay   time.Duration
	MaxRetries  int
	MaxBackoff  time.Duration
	CapExponent int
}

// DefaultTuning matches the numbers the Bluetooth service has always used.
func DefaultTuning() Tuning {
	return Tuning{
		BaseDelay:   100 * time.Millisecond,
		MaxRetries:  3,
		MaxBackoff:  30 * time.Second,
		CapExponent: 10,
	}
}

// Record is the failure state of one service.
type Record struct {
	LastError  error
	ErrorCount int
	Backoff    time.Duration
}

// Policy holds one Record per service. Owned by the tick context; no lock.
type Policy struct {
	tuning  Tuning
	records map[string]*Record
}

// New creates a policy with the given tuning.
func New(tuning Tuning) *Policy {
	if tuning.BaseDelay <= 0 {
		tuning = DefaultTuning()
	}
	return &Policy{tuning: tuning, records: make(map[string]*Record)}
}

// RecordError notes a failure for service: it stores the error, bumps the
// consecutive-failure count, and recomputes the backoff as
// base * 2^min(count, capExponent), clamped to the maximum.
func (p *Policy) RecordError(service string, err error) {
	rec := p.record(service)
	rec.LastError = err
	rec.ErrorCount++

	exp := rec.ErrorCount
	if exp > p.tuning.CapExponent {
		exp = p.tuning.CapExponent
	}
	backoff := p.tuning.BaseDelay << uint(exp)
	if backoff > p.tuning.MaxBackoff || backoff <= 0 {
		backoff = p.tuning.MaxBackoff
	}
	rec.Backoff = backoff
}

// RecordSuccess clears the failure state for service.
func (p *Policy) RecordSuccess(service string) {
	rec := p.record(service)
	rec.LastError = nil
	rec.ErrorCount = 0
	rec.Backoff = 0
}

// ShouldRetry reports whether the caller may re-issue an operation: the
// service must be under its retry budget and under the absolute backoff cap.
func (p *Policy) ShouldRetry(service string) bool {
	rec := p.record(service)
	return rec.ErrorCount < p.tuning.MaxRetries && rec.Backoff < p.tuning.MaxBackoff
}

// Backoff returns the current wait the caller should honor before retrying.
func (p *Policy) Backoff(service string) time.Duration {
	return p.record(service).Backoff
}

// ErrorCount returns the consecutive-failure count for service.
func (p *Policy) ErrorCount(service string) int {
	return p.record(service).ErrorCount
}

// LastError returns the most recent failure for service, or nil.
func (p *Policy) LastError(service string) error {
	return p.record(service).LastError
}

func (p *Policy) record(service string) *Record {
	rec, ok := p.records[service]
	if !ok {
		rec = &Record{}
		p.records[service] = rec
	}
	return rec
}
