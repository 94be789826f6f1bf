package events

import (
	"testing"
	"time"
)

// TestBus_FanOut verifies every subscriber receives a published event.
func TestBus_FanOut(t *testing.T) {
	b := New(10)
	a, cancelA := b.Subscribe(4)
	defer cancelA()
	c, cancelC := b.Subscribe(4)
	defer cancelC()

	b.Publish(Event{Type: TypeClick, RunID: "r1", Clicks: 1})

	for i, ch := range []<-chan Event{a, c} {
		select {
		case ev := <-ch:
			if ev.Type != TypeClick || ev.RunID != "r1" || ev.Clicks != 1 {
				t.Fatalf("subscriber %d got %+v", i, ev)
			}
			if ev.Time == 0 {
				t.Fatalf("expected publish to stamp time")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive event", i)
		}
	}
}

// TestBus_RingBufferKeepsNewest verifies history is bounded and keeps the newest events.
func TestBus_RingBufferKeepsNewest(t *testing.T) {
	b := New(2)
	b.Publish(Event{Type: TypeRunStarted})
	b.Publish(Event{Type: TypeClick})
	b.Publish(Event{Type: TypeRunStopped})

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 events, got %d", len(snap))
	}
	if snap[0].Type != TypeClick || snap[1].Type != TypeRunStopped {
		t.Fatalf("unexpected history %+v", snap)
	}
}

// TestBus_SlowSubscriberDoesNotBlock verifies a full subscriber drops events.
func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := New(10)
	ch, cancel := b.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			b.Publish(Event{Type: TypeClick, Clicks: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a full subscriber")
	}
	if ev := <-ch; ev.Clicks != 0 {
		t.Fatalf("expected first event to be retained, got %+v", ev)
	}
}

// TestBus_CancelAndClose verifies cancel and Close close subscriber channels once.
func TestBus_CancelAndClose(t *testing.T) {
	b := New(1)
	ch, cancel := b.Subscribe(1)
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after cancel")
	}

	other, _ := b.Subscribe(1)
	b.Close()
	b.Close()
	if _, ok := <-other; ok {
		t.Fatalf("expected channel closed after Close")
	}

	late, _ := b.Subscribe(1)
	if _, ok := <-late; ok {
		t.Fatalf("expected subscription on closed bus to be closed")
	}
	b.Publish(Event{Type: TypeClick})
}
