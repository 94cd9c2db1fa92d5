package playback

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// WatchdogTimeout bounds how long the queue waits for a playback-ended
// signal before abandoning a stalled item.
const WatchdogTimeout = 60 * time.Second

// AudioFetcher synthesizes audio for one utterance. A nil/empty result
// or an error means the item is skipped.
type AudioFetcher func(ctx context.Context, text string) ([]byte, error)

// Clock abstracts the watchdog timer so tests can drive it.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type item struct {
	text  string
	fetch AudioFetcher
}

// Queue serializes text-to-speech playback: items play strictly in
// enqueue order, one at a time, each bounded by the watchdog timeout.
// A queue is owned by a single conversation.
type Queue struct {
	mu         sync.Mutex
	items      []item
	running    bool
	lastPlayed string
	sink       Sink

	clock   Clock
	timeout time.Duration
}

// NewQueue builds a queue that plays through sink.
func NewQueue(sink Sink) *Queue {
	return NewQueueWithClock(sink, realClock{}, WatchdogTimeout)
}

// NewQueueWithClock builds a queue with an explicit timing source and
// watchdog bound.
func NewQueueWithClock(sink Sink, clock Clock, timeout time.Duration) *Queue {
	if sink == nil {
		sink = NopSink{}
	}
	return &Queue{sink: sink, clock: clock, timeout: timeout}
}

// SetSink swaps the audio sink. The swap takes effect from the next
// item; an item already playing finishes on the old sink.
func (q *Queue) SetSink(sink Sink) {
	if sink == nil {
		sink = NopSink{}
	}
	q.mu.Lock()
	q.sink = sink
	q.mu.Unlock()
}

// Enqueue appends one utterance for playback. Blank text and text equal
// to the last successfully played utterance are dropped, so an unchanged
// reply is never re-announced.
func (q *Queue) Enqueue(text string, fetch AudioFetcher) {
	if strings.TrimSpace(text) == "" || fetch == nil {
		return
	}

	q.mu.Lock()
	if text == q.lastPlayed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, item{text: text, fetch: fetch})
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	go q.run()
}

// Len reports how many items are waiting, excluding the one playing.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LastPlayed returns the text of the most recently completed item.
func (q *Queue) LastPlayed() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastPlayed
}

// run drains the queue. The running flag in Enqueue guarantees a single
// loop instance per queue.
func (q *Queue) run() {
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		next := q.items[0]
		q.items = q.items[1:]
		sink := q.sink
		q.mu.Unlock()

		q.playItem(next, sink)
	}
}

// playItem fetches and plays one utterance to completion or watchdog
// timeout. Failures are logged and the loop advances.
func (q *Queue) playItem(it item, sink Sink) {
	audio, err := it.fetch(context.Background(), it.text)
	if err != nil {
		log.Printf("[playback] audio fetch failed: %v", err)
		return
	}
	if len(audio) == 0 {
		log.Printf("[playback] empty audio for utterance, skipping")
		return
	}

	// Previous item's resource is released before the next one loads.
	sink.Stop()
	sink.Release()

	done, err := sink.Play(audio)
	if err != nil {
		log.Printf("[playback] failed to start playback: %v", err)
		return
	}

	select {
	case <-done:
	case <-q.clock.After(q.timeout):
		log.Printf("[playback] watchdog timeout after %s, abandoning item", q.timeout)
		sink.Stop()
	}

	sink.Release()

	q.mu.Lock()
	q.lastPlayed = it.text
	q.mu.Unlock()
}
