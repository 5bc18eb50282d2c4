package ability

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the persistence blob exchanged with an external save/load
// collaborator: the active-flag set plus each persistent ability's
// opaque state, keyed by identifier. The header identifies individual
// save files; the core itself only consumes Active and Abilities
type Snapshot struct {
	ID        uuid.UUID                 `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	Active    []string                  `json:"active"`
	Abilities map[string]map[string]any `json:"abilities,omitempty"`
}

// Snapshot serializes the current active set and per-ability state
func (m *Manager) Snapshot() ([]byte, error) {
	snap := Snapshot{
		ID:        uuid.New(),
		CreatedAt: m.clock.Now(),
		Active:    m.ActiveIDs(),
		Abilities: make(map[string]map[string]any),
	}
	for _, e := range m.order {
		if e.persistent == nil {
			continue
		}
		if state := e.persistent.SaveState(); state != nil {
			snap.Abilities[e.id] = state
		}
	}
	if len(snap.Abilities) == 0 {
		snap.Abilities = nil
	}
	return json.Marshal(snap)
}

// Restore applies a previously serialized snapshot: every registered
// ability is activated or deactivated to match the blob's active set
// (through the normal lifecycle path, so hooks run and notifications
// fire), then persistent abilities receive their saved state.
// Identifiers in the blob that are no longer registered are skipped
func (m *Manager) Restore(blob []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return fmt.Errorf("restore ability snapshot: %w", err)
	}

	active := make(map[string]bool, len(snap.Active))
	for _, id := range snap.Active {
		if _, exists := m.index[id]; !exists {
			m.logger.Warn("snapshot references unregistered ability", "ability", id)
			continue
		}
		active[id] = true
	}

	for _, e := range m.order {
		if active[e.id] {
			m.Activate(e.id)
		} else {
			m.Deactivate(e.id)
		}
	}

	for id, state := range snap.Abilities {
		e, exists := m.index[id]
		if !exists || e.persistent == nil {
			continue
		}
		e.persistent.LoadState(state)
	}
	return nil
}
