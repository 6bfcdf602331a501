package notify

import (
	"sync"
	"testing"
	"time"
)

func TestNotifier_Subscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var received []Event
	n.Subscribe(func(e Event) {
		received = append(received, e)
	})

	n.Notify(Event{Type: EventConfigLoaded, Root: "/proj", Generation: 1})
	n.Notify(Event{Type: EventRelint, Root: "/proj", Generation: 1})

	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
	if received[0].Type != EventConfigLoaded {
		t.Errorf("first event = %v, want config-loaded", received[0].Type)
	}
	if received[1].Type != EventRelint {
		t.Errorf("second event = %v, want relint", received[1].Type)
	}
}

func TestNotifier_SubscribeType(t *testing.T) {
	n := New()
	defer n.Close()

	var errorEvents []Event
	n.SubscribeType(EventConfigError, func(e Event) {
		errorEvents = append(errorEvents, e)
	})

	n.Notify(Event{Type: EventConfigLoaded, Root: "/proj"})
	n.Notify(Event{Type: EventConfigError, Root: "/proj", Message: "bad config"})
	n.Notify(Event{Type: EventRelint, Root: "/proj"})

	if len(errorEvents) != 1 {
		t.Fatalf("received %d error events, want 1", len(errorEvents))
	}
	if errorEvents[0].Message != "bad config" {
		t.Errorf("Message = %q, want 'bad config'", errorEvents[0].Message)
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	count := 0
	sub := n.Subscribe(func(e Event) { count++ })

	n.Notify(Event{Type: EventRelint})
	sub.Unsubscribe()
	n.Notify(Event{Type: EventRelint})

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestNotifier_Async(t *testing.T) {
	n := New(WithAsync(16))

	var mu sync.Mutex
	received := 0
	n.Subscribe(func(e Event) {
		mu.Lock()
		received++
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		n.Notify(Event{Type: EventRelint})
	}

	// Close drains the buffer before returning.
	n.Close()

	mu.Lock()
	got := received
	mu.Unlock()
	if got != 5 {
		t.Errorf("received = %d, want 5", got)
	}
}

func TestNotifier_CloseIdempotent(t *testing.T) {
	n := New(WithAsync(1))
	n.Close()
	n.Close()

	// Notify after close should be a no-op, not a panic.
	done := make(chan struct{})
	go func() {
		n.Notify(Event{Type: EventRelint})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify after Close blocked")
	}
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventConfigLoaded, "config-loaded"},
		{EventConfigError, "config-error"},
		{EventRelint, "relint"},
		{EventPreferenceChanged, "preference-changed"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
