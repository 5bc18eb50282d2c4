package ability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Bonehead-Labs/actorkit/core"
)

// persistentAbility carries opaque per-instance state across snapshots
type persistentAbility struct {
	BaseAbility
	state  map[string]any
	loaded int
}

func (p *persistentAbility) SaveState() map[string]any { return p.state }

func (p *persistentAbility) LoadState(state map[string]any) {
	p.state = state
	p.loaded++
}

func TestSnapshotRoundTrip(t *testing.T) {
	build := func() (*Manager, *persistentAbility) {
		m := NewManager(&stubActor{})
		dash := &persistentAbility{state: map[string]any{"charges": 2.0, "cooldown": 0.75}}
		m.Register("dash", dash, false)
		m.Register("crouch", &stubAbility{}, false)
		m.Register("sprint", &stubAbility{}, false)
		return m, dash
	}

	src, _ := build()
	src.Activate("dash")
	src.Activate("sprint")

	blob, err := src.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	dst, dash := build()
	dst.Activate("crouch") // pre-restore state that must be overwritten
	if err := dst.Restore(blob); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	want := []string{"dash", "sprint"}
	got := dst.ActiveIDs()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected active set %v, got %v", want, got)
	}
	if dash.loaded != 1 {
		t.Fatalf("Expected 1 LoadState call, got %d", dash.loaded)
	}
	if dash.state["charges"] != 2.0 || dash.state["cooldown"] != 0.75 {
		t.Errorf("Opaque state mismatch after round trip: %v", dash.state)
	}
}

func TestRestoreRunsLifecycleHooks(t *testing.T) {
	m := NewManager(&stubActor{})
	dash := &stubAbility{}
	crouch := &stubAbility{}
	m.Register("dash", dash, false)
	m.Register("crouch", crouch, true)

	blob, _ := json.Marshal(Snapshot{Active: []string{"dash"}})
	if err := m.Restore(blob); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if dash.activations != 1 {
		t.Errorf("Expected dash activated through lifecycle, got %d", dash.activations)
	}
	if crouch.deactivations != 1 {
		t.Errorf("Expected crouch deactivated through lifecycle, got %d", crouch.deactivations)
	}
}

func TestRestoreSkipsUnregisteredIdentifiers(t *testing.T) {
	m := NewManager(&stubActor{})
	m.Register("dash", &stubAbility{}, false)

	blob, _ := json.Marshal(Snapshot{
		Active:    []string{"dash", "vanished"},
		Abilities: map[string]map[string]any{"vanished": {"x": 1.0}},
	})
	if err := m.Restore(blob); err != nil {
		t.Fatalf("Restore should tolerate unknown identifiers: %v", err)
	}
	if !m.IsActive("dash") {
		t.Error("Known identifiers should still be applied")
	}
}

func TestSnapshotHeaderUsesClock(t *testing.T) {
	clock := core.NewMockTimeProvider(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	m := NewManager(&stubActor{}, WithClock(clock))
	m.Register("dash", &stubAbility{}, true)

	blob, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		t.Fatalf("Snapshot should be valid JSON: %v", err)
	}
	if !snap.CreatedAt.Equal(clock.Now()) {
		t.Errorf("Expected header timestamp %v, got %v", clock.Now(), snap.CreatedAt)
	}
}

func TestRestoreRejectsMalformedBlob(t *testing.T) {
	m := NewManager(&stubActor{})
	if err := m.Restore([]byte("{not json")); err == nil {
		t.Error("Expected error for malformed snapshot")
	}
}
