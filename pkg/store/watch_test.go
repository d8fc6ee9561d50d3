package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"tableflip.dev/mistakes/pkg/ledger"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsStateChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	s := ledger.New(ledger.Today())
	s.RecordMistake()
	if err := p.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	select {
	case evt := <-ch:
		if evt.Type != EventStateChanged {
			t.Fatalf("expected EventStateChanged, got %v", evt.Type)
		}
	case <-deadline:
		t.Fatal("timed out waiting for state change event")
	}

	cancel()
	for range ch {
		// drain until the watcher closes the channel
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(10 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 4)
	send := func(ev Event) { got <- ev }

	th.Enqueue(Event{Type: EventStateRemoved}, send)
	th.Enqueue(Event{Type: EventStateChanged}, send)
	th.Enqueue(Event{Type: EventStateChanged}, send)

	select {
	case ev := <-got:
		if ev.Type != EventStateChanged {
			t.Fatalf("expected EventStateChanged, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}

	select {
	case ev := <-got:
		t.Fatalf("expected a single event, got extra %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
