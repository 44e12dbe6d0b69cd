package bridge

import "time"

// PendingRequest is one in-flight request awaiting its response.
type PendingRequest[P any] struct {
	ID          string
	Payload     P
	SubmittedAt time.Time
	RetryCount  int
}

// PendingTable correlates outbound requests with their eventual responses.
// An entry is created exactly when a request is dispatched and removed
// exactly when a response carrying the same ID is processed (or the failure
// is unrecoverable). The table is owned by a single service and touched only
// from the tick context, so it carries no lock.
//
// Nothing evicts an entry on its own: a response that never arrives leaves
// its entry behind until a caller sweeps with Expire.
type PendingTable[P any] struct {
	entries map[string]*PendingRequest[P]
}

// NewPendingTable creates an empty table.
func NewPendingTable[P any]() *PendingTable[P] {
	return &PendingTable[P]{entries: make(map[string]*PendingRequest[P])}
}

// Track inserts a request at dispatch time. IDs are unique for the table's
// lifetime; tracking the same ID twice replaces the stale entry so the
// at-most-one invariant holds regardless.
func (t *PendingTable[P]) Track(id string, payload P) {
	t.entries[id] = &PendingRequest[P]{
		ID:          id,
		Payload:     payload,
		SubmittedAt: time.Now(),
	}
}

// Resolve removes and returns the entry for id, if one is live.
func (t *PendingTable[P]) Resolve(id string) (*PendingRequest[P], bool) {
	req, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	return req, ok
}

// Get returns the live entry for id without removing it.
func (t *PendingTable[P]) Get(id string) (*PendingRequest[P], bool) {
	req, ok := t.entries[id]
	return req, ok
}

// MarkRetry increments the retry counter for a live entry and reports
// whether the entry existed.
func (t *PendingTable[P]) MarkRetry(id string) bool {
	req, ok := t.entries[id]
	if ok {
		req.RetryCount++
	}
	return ok
}

// Len reports the number of live entries.
func (t *PendingTable[P]) Len() int { return len(t.entries) }

// Expire removes every entry older than maxAge and returns the removed
// requests. Callers decide if and when to sweep; the table never does.
func (t *PendingTable[P]) Expire(maxAge time.Duration) []*PendingRequest[P] {
	return t.ExpireFunc(func(P) time.Duration { return maxAge })
}

// ExpireFunc is Expire with a per-entry age limit derived from the payload,
// for requests that carry their own timeout.
func (t *PendingTable[P]) ExpireFunc(maxAge func(P) time.Duration) []*PendingRequest[P] {
	now := time.Now()
	var expired []*PendingRequest[P]
	for id, req := range t.entries {
		if now.Sub(req.SubmittedAt) > maxAge(req.Payload) {
			expired = append(expired, req)
			delete(t.entries, id)
		}
	}
	return expired
}
