package bridge

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDSource mints request IDs: category-prefixed, time-derived, with a
// process-wide sequence so two requests in the same millisecond still get
// distinct IDs. Not cryptographic — collision probability across sessions is
// treated as negligible.
type IDSource struct {
	seq atomic.Uint64
}

// Next returns a fresh ID for the given category, e.g. "audio-1712…-42".
func (s *IDSource) Next(category string) string {
	return fmt.Sprintf("%s-%d-%d", category, time.Now().UnixMilli(), s.seq.Add(1))
}
