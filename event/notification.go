package event

import "time"

// Notification is a structured, timestamped lifecycle record.
// Pure data struct with no function pointers or engine dependencies;
// which fields are meaningful depends on Type (see type.go)
type Notification struct {
	Type Type      `json:"type"`
	Time time.Time `json:"time"`

	// State transition fields (TypeStateChanged)
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current,omitempty"`

	// Ability lifecycle fields
	AbilityID string         `json:"ability_id,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// Sink receives notifications from the core. Delivery is fire-and-forget;
// the core never waits on acknowledgment and a nil-safe no-op sink is
// substituted when none is configured
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a plain function to the Sink interface
type SinkFunc func(n Notification)

func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Fanout duplicates every notification to each wrapped sink in order
type Fanout []Sink

func (f Fanout) Notify(n Notification) {
	for _, s := range f {
		s.Notify(n)
	}
}

// Discard is the no-op sink used when a registry has no sink configured
var Discard Sink = SinkFunc(func(Notification) {})
