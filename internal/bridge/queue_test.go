package bridge

import (
	"sync"
	"testing"
)

func TestQueueFIFOOrder(t *testing.T) {
	var q Queue[int]
	const n = 100
	for i := 0; i < n; i++ {
		q.Enqueue(i)
	}

	var got []int
	q.Drain(func(v int) { got = append(got, v) })

	if len(got) != n {
		t.Fatalf("drained %d items, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, want %d (FIFO order violated)", i, v, i)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after drain: %d items left", q.Len())
	}
}

func TestQueueDrainDeliversNothingTwice(t *testing.T) {
	var q Queue[string]
	q.Enqueue("once")

	count := 0
	q.Drain(func(string) { count++ })
	q.Drain(func(string) { count++ })

	if count != 1 {
		t.Errorf("item delivered %d times, want 1", count)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	var q Queue[int]
	const producers = 8
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[int]bool)
	q.Drain(func(v int) { seen[v] = true })

	if len(seen) != producers*perProducer {
		t.Fatalf("drained %d distinct items, want %d (items lost or duplicated)",
			len(seen), producers*perProducer)
	}
}

// Items from one producer must come out in that producer's enqueue order,
// even when drains interleave with production.
func TestQueueSingleProducerOrderAcrossDrains(t *testing.T) {
	var q Queue[int]
	var got []int

	next := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 7; i++ {
			q.Enqueue(next)
			next++
		}
		q.Drain(func(v int) { got = append(got, v) })
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, want %d", i, v, i)
		}
	}
}
