package fsm

import (
	"log/slog"
	"sort"

	"github.com/Bonehead-Labs/actorkit/blackboard"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/event"
	"github.com/Bonehead-Labs/actorkit/parameter"
)

// registration pairs a factory with its lazily built instance
type registration struct {
	factory  Factory
	instance State
}

// Machine owns a registry of states keyed by identifier and dispatches
// the per-tick phases to the single active state. Everything runs on
// the owning actor's update loop; no locking by construction
type Machine struct {
	states  map[string]*registration
	current string
	active  State

	bb     *blackboard.Blackboard
	sink   event.Sink
	clock  core.TimeProvider
	logger *slog.Logger

	depthLimit    int
	depth         int
	timeInCurrent float64
}

// Option configures a Machine at construction
type Option func(*Machine)

// WithSink sets the notification sink for state_changed events
func WithSink(sink event.Sink) Option {
	return func(m *Machine) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the time provider used to timestamp notifications
func WithClock(clock core.TimeProvider) Option {
	return func(m *Machine) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithTransitionDepthLimit overrides the recursion guard limit
func WithTransitionDepthLimit(limit int) Option {
	return func(m *Machine) {
		if limit > 0 {
			m.depthLimit = limit
		}
	}
}

// NewMachine creates an empty state machine. Before the first
// transition no state is active and the phase hooks are no-ops
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		states:     make(map[string]*registration),
		sink:       event.Discard,
		clock:      core.NewMonotonicTimeProvider(),
		logger:     slog.Default(),
		depthLimit: parameter.TransitionDepthLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a state factory under id. Empty or duplicate identifiers
// are rejected with a logged RegistrationError and the registry is left
// untouched
func (m *Machine) Register(id string, factory Factory) error {
	if id == "" {
		err := &RegistrationError{ID: id, Reason: "empty identifier"}
		m.logger.Warn("state registration rejected", "reason", err.Reason)
		return err
	}
	if _, exists := m.states[id]; exists {
		err := &RegistrationError{ID: id, Reason: "already registered"}
		m.logger.Warn("state registration rejected", "state", id, "reason", err.Reason)
		return err
	}
	if factory == nil {
		err := &RegistrationError{ID: id, Reason: "nil factory"}
		m.logger.Warn("state registration rejected", "state", id, "reason", err.Reason)
		return err
	}
	m.states[id] = &registration{factory: factory}
	return nil
}

// Unregister removes id and discards its instance. If id is the active
// state it is exited first and the active identifier becomes unset
func (m *Machine) Unregister(id string) {
	if _, exists := m.states[id]; !exists {
		return
	}
	if m.current == id {
		m.active.Exit(m)
		m.current = ""
		m.active = nil
		m.timeInCurrent = 0
	}
	delete(m.states, id)
}

// TransitionTo exits the active state (if any), lazily constructs the
// target, enters it with payload, and emits exactly one state_changed
// notification. Transitioning into the already-active identifier re-runs
// exit/enter as an explicit reset.
//
// A depth counter bounds transition chains triggered from within enter,
// exit, or event handlers; exceeding the limit aborts the pending
// transition with a RecursionGuardError and leaves the last successfully
// entered state active
func (m *Machine) TransitionTo(id string, payload any) error {
	reg, ok := m.states[id]
	if !ok {
		return &TransitionError{Target: id}
	}
	if m.depth >= m.depthLimit {
		err := &RecursionGuardError{Limit: m.depthLimit}
		m.logger.Warn("transition aborted", "target", id, "error", err)
		return err
	}

	m.depth++
	defer func() { m.depth-- }()

	previous := m.current
	if m.active != nil {
		m.active.Exit(m)
	}

	if reg.instance == nil {
		reg.instance = reg.factory()
	}

	m.current = id
	m.active = reg.instance
	m.timeInCurrent = 0
	reg.instance.Enter(m, payload)

	m.sink.Notify(event.Notification{
		Type:     event.TypeStateChanged,
		Time:     m.clock.Now(),
		Previous: previous,
		Current:  id,
	})
	return nil
}

// Update dispatches the logic phase to the active state; no-op when
// no state is active. Delta is in seconds
func (m *Machine) Update(delta float64) {
	if m.active == nil {
		return
	}
	m.timeInCurrent += delta
	m.active.Update(m, delta)
}

// PhysicsUpdate dispatches the physics phase to the active state;
// no-op when no state is active. Delta is in seconds
func (m *Machine) PhysicsUpdate(delta float64) {
	if m.active == nil {
		return
	}
	m.active.PhysicsUpdate(m, delta)
}

// DispatchEvent forwards an event to the active state's handler.
// The handler may request transitions, bounded by the recursion guard
func (m *Machine) DispatchEvent(name string, data any) {
	if m.active == nil {
		return
	}
	m.active.HandleEvent(m, name, data)
}

// SetBlackboard replaces the current context snapshot entirely
func (m *Machine) SetBlackboard(bb *blackboard.Blackboard) {
	m.bb = bb
}

// Blackboard returns the current context snapshot, possibly nil
func (m *Machine) Blackboard() *blackboard.Blackboard {
	return m.bb
}

// CurrentState returns the active identifier, empty before the first
// transition
func (m *Machine) CurrentState() string {
	return m.current
}

// Has reports whether id is registered
func (m *Machine) Has(id string) bool {
	_, ok := m.states[id]
	return ok
}

// StateIDs returns all registered identifiers, sorted
func (m *Machine) StateIDs() []string {
	ids := make([]string, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TimeInCurrent returns accumulated logic-phase seconds since the last
// enter, zero when no state is active
func (m *Machine) TimeInCurrent() float64 {
	return m.timeInCurrent
}
