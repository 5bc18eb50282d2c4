package event

import (
	"testing"
	"time"
)

func TestQueueDrainPreservesOrder(t *testing.T) {
	q := NewQueueSize(8)

	q.Notify(Notification{Type: TypeAbilityStarted, AbilityID: "dash"})
	q.Notify(Notification{Type: TypeStateChanged, Previous: "idle", Current: "move"})
	q.Notify(Notification{Type: TypeAbilityEnded, AbilityID: "dash"})

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("Expected 3 notifications, got %d", len(got))
	}
	if got[0].Type != TypeAbilityStarted || got[1].Type != TypeStateChanged || got[2].Type != TypeAbilityEnded {
		t.Errorf("Drain order mismatch: %v, %v, %v", got[0].Type, got[1].Type, got[2].Type)
	}

	if q.Drain() != nil {
		t.Error("Second drain should return nil")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueueSize(2)

	q.Notify(Notification{AbilityID: "a"})
	q.Notify(Notification{AbilityID: "b"})
	q.Notify(Notification{AbilityID: "c"})

	got := q.Drain()
	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications after overflow, got %d", len(got))
	}
	if got[0].AbilityID != "b" || got[1].AbilityID != "c" {
		t.Errorf("Expected oldest dropped, got %s, %s", got[0].AbilityID, got[1].AbilityID)
	}
	if q.Dropped() != 1 {
		t.Errorf("Expected 1 dropped, got %d", q.Dropped())
	}
}

func TestFanout(t *testing.T) {
	var first, second []Notification
	f := Fanout{
		SinkFunc(func(n Notification) { first = append(first, n) }),
		SinkFunc(func(n Notification) { second = append(second, n) }),
	}

	f.Notify(Notification{Type: TypeAbilityStarted, Time: time.Unix(1, 0)})

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected both sinks notified, got %d and %d", len(first), len(second))
	}
}

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		TypeStateChanged:   "state_changed",
		TypeAbilityStarted: "ability_started",
		TypeAbilityEnded:   "ability_ended",
		TypeAbilityFailed:  "ability_failed",
		TypeNone:           "none",
	}
	for typ, want := range cases {
		if typ.String() != want {
			t.Errorf("Type %d: expected %q, got %q", typ, want, typ.String())
		}
	}
}
