// Package events fans out scheduler status notifications to subscribers.
package events

import (
	"sync"
	"time"
)

// Event types published by the click scheduler.
const (
	TypeRunStarted  = "run.started"
	TypeClick       = "click"
	TypeClickFailed = "click.failed"
	TypeRunStopped  = "run.stopped"
)

// Event is a single status notification.
type Event struct {
	Type  string `json:"type"`
	Time  int64  `json:"time"`
	RunID string `json:"runId,omitempty"`
	// Clicks is the number of successful clicks in the run so far.
	Clicks int `json:"clicks"`
	// Failures is the number of failed dispatch attempts in the run so far.
	Failures int    `json:"failures"`
	Reason   string `json:"reason,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Publisher accepts status events.
type Publisher interface {
	Publish(ev Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ev Event)

// Publish calls f(ev).
func (f PublisherFunc) Publish(ev Event) {
	f(ev)
}

// Bus keeps a bounded history of events and fans them out to subscribers.
// Slow subscribers drop events rather than block the publisher.
type Bus struct {
	mu     sync.RWMutex
	buf    []Event
	cap    int
	subs   map[chan Event]struct{}
	closed bool
	now    func() time.Time
}

// New returns a bus retaining up to capacity events.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 200
	}
	return &Bus{
		cap:  capacity,
		buf:  make([]Event, 0, capacity),
		subs: make(map[chan Event]struct{}),
		now:  time.Now,
	}
}

// Close closes every subscriber channel and drops history.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.buf = nil
}

// Snapshot returns a copy of the retained history, oldest first.
func (b *Bus) Snapshot() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Event, len(b.buf))
	copy(out, b.buf)
	return out
}

// Subscribe registers a subscriber and returns its channel and a cancel func.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if b.subs != nil {
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish stamps and records ev, then offers it to every subscriber.
func (b *Bus) Publish(ev Event) {
	if ev.Time == 0 {
		ev.Time = b.now().UnixMilli()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if len(b.buf) < b.cap {
		b.buf = append(b.buf, ev)
	} else {
		copy(b.buf, b.buf[1:])
		b.buf[b.cap-1] = ev
	}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
