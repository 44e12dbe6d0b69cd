package bridge

import (
	"strings"
	"testing"
	"time"
)

func TestPendingTableAtMostOneEntry(t *testing.T) {
	table := NewPendingTable[string]()

	table.Track("req-1", "first")
	table.Track("req-1", "second") // stale entry replaced, never duplicated

	if table.Len() != 1 {
		t.Fatalf("table has %d entries for one ID, want 1", table.Len())
	}

	req, ok := table.Resolve("req-1")
	if !ok {
		t.Fatal("Resolve failed for tracked ID")
	}
	if req.Payload != "second" {
		t.Errorf("payload = %q, want %q", req.Payload, "second")
	}

	if _, ok := table.Resolve("req-1"); ok {
		t.Error("second Resolve returned an entry; removal must be exact")
	}
}

func TestPendingTableUnknownID(t *testing.T) {
	table := NewPendingTable[int]()
	if _, ok := table.Resolve("never-dispatched"); ok {
		t.Error("Resolve of unknown ID reported an entry")
	}
}

func TestPendingTableRetryCount(t *testing.T) {
	table := NewPendingTable[string]()
	table.Track("req-1", "payload")

	for i := 0; i < 3; i++ {
		if !table.MarkRetry("req-1") {
			t.Fatal("MarkRetry failed for live entry")
		}
	}
	if table.MarkRetry("missing") {
		t.Error("MarkRetry succeeded for unknown ID")
	}

	req, _ := table.Resolve("req-1")
	if req.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3", req.RetryCount)
	}
}

func TestPendingTableExpire(t *testing.T) {
	table := NewPendingTable[string]()
	table.Track("old", "stale")
	// Backdate the entry; Track always stamps with the current time.
	old, _ := table.Get("old")
	old.SubmittedAt = time.Now().Add(-time.Minute)
	table.Track("fresh", "live")

	expired := table.Expire(30 * time.Second)
	if len(expired) != 1 || expired[0].ID != "old" {
		t.Fatalf("expired = %v, want exactly [old]", expired)
	}
	if table.Len() != 1 {
		t.Errorf("table has %d entries after sweep, want 1", table.Len())
	}
	if _, ok := table.Get("fresh"); !ok {
		t.Error("fresh entry was swept")
	}
}

func TestPendingTableExpireFuncPerEntryDeadline(t *testing.T) {
	table := NewPendingTable[time.Duration]()
	table.Track("slow", time.Minute)
	table.Track("fast", time.Millisecond)
	for _, id := range []string{"slow", "fast"} {
		entry, _ := table.Get(id)
		entry.SubmittedAt = time.Now().Add(-time.Second)
	}

	expired := table.ExpireFunc(func(deadline time.Duration) time.Duration { return deadline })
	if len(expired) != 1 || expired[0].ID != "fast" {
		t.Fatalf("expired = %v, want exactly [fast]", expired)
	}
	if _, ok := table.Get("slow"); !ok {
		t.Error("slow entry swept before its own deadline")
	}
}

func TestIDSourceDistinctAndPrefixed(t *testing.T) {
	var src IDSource
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := src.Next("audio")
		if !strings.HasPrefix(id, "audio-") {
			t.Fatalf("id %q missing category prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
