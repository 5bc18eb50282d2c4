package ability

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/event"
	"github.com/Bonehead-Labs/actorkit/input"
	"github.com/Bonehead-Labs/actorkit/parameter"
)

// RegistrationError reports a rejected ability registration. Non-fatal:
// the existing entry is left untouched
type RegistrationError struct {
	ID     string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("ability registration %q: %s", e.ID, e.Reason)
}

// Failure is one advisory record in the bounded failure log
type Failure struct {
	AbilityID string
	Reason    string
	Details   map[string]any
	Time      time.Time
}

// entry is one registration. Capability interfaces are asserted once
// here, at registration, and never probed per call
type entry struct {
	id      string
	ability Ability
	active  bool

	motion     MotionOverrider // nil when the ability never overrides motion
	gater      PhaseGater      // nil when the ability never gates
	persistent Persistent      // nil when the ability carries no saved state
}

// Manager owns the ability registry. Registration order is stable for
// the lifetime of an entry and is the sole tie-break for motion
// arbitration and input broadcast; it is never renumbered on
// unregister, and re-registration appends. Everything runs on the
// owning actor's update loop
type Manager struct {
	owner core.Actor
	order []*entry
	index map[string]*entry

	motionOwner string
	hasMotion   bool

	failures   []Failure
	failureCap int

	sink   event.Sink
	clock  core.TimeProvider
	logger *slog.Logger
}

// Option configures a Manager at construction
type Option func(*Manager)

// WithSink sets the notification sink for ability lifecycle events
func WithSink(sink event.Sink) Option {
	return func(m *Manager) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the time provider used to timestamp notifications and
// failure records
func WithClock(clock core.TimeProvider) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithFailureLogSize overrides the failure log bound
func WithFailureLogSize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.failureCap = n
		}
	}
}

// NewManager creates an ability manager for the given owning actor.
// The manager holds only a non-owning reference back to it
func NewManager(owner core.Actor, opts ...Option) *Manager {
	m := &Manager{
		owner:      owner,
		index:      make(map[string]*entry),
		failureCap: parameter.FailureLogSize,
		sink:       event.Discard,
		clock:      core.NewMonotonicTimeProvider(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds an ability under id, calls Setup(owner, id) once, and
// appends to the registration order. A duplicate id is a non-fatal
// no-op: logged, existing entry untouched
func (m *Manager) Register(id string, inst Ability, autoActivate bool) error {
	if id == "" {
		err := &RegistrationError{ID: id, Reason: "empty identifier"}
		m.logger.Warn("ability registration rejected", "reason", err.Reason)
		return err
	}
	if _, exists := m.index[id]; exists {
		err := &RegistrationError{ID: id, Reason: "already registered"}
		m.logger.Warn("ability registration rejected", "ability", id, "reason", err.Reason)
		return err
	}
	if inst == nil {
		err := &RegistrationError{ID: id, Reason: "nil instance"}
		m.logger.Warn("ability registration rejected", "ability", id, "reason", err.Reason)
		return err
	}

	inst.Setup(m.owner, id)

	e := &entry{id: id, ability: inst}
	e.motion, _ = inst.(MotionOverrider)
	e.gater, _ = inst.(PhaseGater)
	e.persistent, _ = inst.(Persistent)

	m.order = append(m.order, e)
	m.index[id] = e

	if autoActivate {
		m.Activate(id)
	}
	return nil
}

// Unregister deactivates id first (releasing any motion ownership and
// emitting the ended notification), then removes it from both the
// registration order and the active-flag map. Positions of the
// remaining entries are not renumbered
func (m *Manager) Unregister(id string) {
	e, exists := m.index[id]
	if !exists {
		return
	}
	m.Deactivate(id)
	delete(m.index, id)
	for i, cand := range m.order {
		if cand == e {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Activate marks id active and calls its activation hook. Idempotent:
// activating an already-active ability emits no duplicate notification
func (m *Manager) Activate(id string) {
	e, exists := m.index[id]
	if !exists {
		m.logger.Warn("activate unknown ability", "ability", id)
		return
	}
	if e.active {
		return
	}
	e.active = true
	e.ability.Activate()
	m.sink.Notify(event.Notification{
		Type:      event.TypeAbilityStarted,
		Time:      m.clock.Now(),
		AbilityID: id,
	})
}

// Deactivate marks id inactive, calls its deactivation hook, and clears
// any motion ownership it held; the vacancy is reflected by the next
// arbitration pass. Idempotent
func (m *Manager) Deactivate(id string) {
	e, exists := m.index[id]
	if !exists {
		m.logger.Warn("deactivate unknown ability", "ability", id)
		return
	}
	if !e.active {
		return
	}
	e.active = false
	e.ability.Deactivate()
	if m.hasMotion && m.motionOwner == id {
		m.motionOwner = ""
		m.hasMotion = false
	}
	m.sink.Notify(event.Notification{
		Type:      event.TypeAbilityEnded,
		Time:      m.clock.Now(),
		AbilityID: id,
	})
}

// DispatchInputAction broadcasts a discrete input transition to every
// active ability in registration order. There is no first-match
// consumption; multiple abilities may react to the same input
func (m *Manager) DispatchInputAction(a input.Action) {
	for _, e := range m.order {
		if e.active {
			e.ability.HandleAction(a)
		}
	}
}

// DispatchInputAxis broadcasts a continuous input sample to every
// active ability in registration order
func (m *Manager) DispatchInputAxis(a input.Axis) {
	for _, e := range m.order {
		if e.active {
			e.ability.HandleAxis(a)
		}
	}
}

// ProcessLogic runs the logic-phase hook on every active ability in
// registration order, then recomputes motion arbitration
func (m *Manager) ProcessLogic(delta float64) {
	for _, e := range m.order {
		if e.active {
			e.ability.Update(delta)
		}
	}
	m.arbitrate()
}

// ProcessPhysics runs the physics-phase hook on every active ability in
// registration order, then recomputes motion arbitration
func (m *Manager) ProcessPhysics(delta float64) {
	for _, e := range m.order {
		if e.active {
			e.ability.PhysicsUpdate(delta)
		}
	}
	m.arbitrate()
}

// Process runs the update pass for the given phase
func (m *Manager) Process(p core.Phase, delta float64) {
	if p == core.PhasePhysics {
		m.ProcessPhysics(delta)
		return
	}
	m.ProcessLogic(delta)
}

// arbitrate selects the single ability permitted to drive the actor's
// motion: the highest-priority active overrider, ties broken toward the
// first registered. Once a winner is set, later equal-priority
// candidates never replace it
func (m *Manager) arbitrate() {
	var winner *entry
	best := math.MinInt

	for _, e := range m.order {
		if !e.active || e.motion == nil || !e.motion.OverridesMotion() {
			continue
		}
		p := e.motion.MotionPriority()
		if p > best || (p == best && winner == nil) {
			winner = e
			best = p
		}
	}

	if winner == nil {
		m.motionOwner = ""
		m.hasMotion = false
		return
	}
	m.motionOwner = winner.id
	m.hasMotion = true
}

// IsLogicGated reports whether any active ability gates the logic phase
func (m *Manager) IsLogicGated() bool {
	for _, e := range m.order {
		if e.active && e.gater != nil && e.gater.GatesLogic() {
			return true
		}
	}
	return false
}

// IsPhysicsGated reports whether any active ability gates the physics
// phase
func (m *Manager) IsPhysicsGated() bool {
	for _, e := range m.order {
		if e.active && e.gater != nil && e.gater.GatesPhysics() {
			return true
		}
	}
	return false
}

// IsGated reports whether any active ability gates the given phase
func (m *Manager) IsGated(p core.Phase) bool {
	if p == core.PhasePhysics {
		return m.IsPhysicsGated()
	}
	return m.IsLogicGated()
}

// ReportFailure appends an advisory record to the bounded failure log
// and emits an ability_failed notification. It never deactivates the
// ability
func (m *Manager) ReportFailure(id, reason string, details map[string]any) {
	f := Failure{
		AbilityID: id,
		Reason:    reason,
		Details:   details,
		Time:      m.clock.Now(),
	}
	if len(m.failures) == m.failureCap {
		copy(m.failures, m.failures[1:])
		m.failures = m.failures[:m.failureCap-1]
	}
	m.failures = append(m.failures, f)

	m.sink.Notify(event.Notification{
		Type:      event.TypeAbilityFailed,
		Time:      f.Time,
		AbilityID: id,
		Reason:    reason,
		Details:   details,
	})
}

// FailureLog returns a copy of the retained failure records, oldest
// first
func (m *Manager) FailureLog() []Failure {
	out := make([]Failure, len(m.failures))
	copy(out, m.failures)
	return out
}

// IsActive reports whether id is registered and active
func (m *Manager) IsActive(id string) bool {
	e, exists := m.index[id]
	return exists && e.active
}

// Has reports whether id is registered
func (m *Manager) Has(id string) bool {
	_, exists := m.index[id]
	return exists
}

// ActiveIDs returns the active identifiers in registration order
func (m *Manager) ActiveIDs() []string {
	var ids []string
	for _, e := range m.order {
		if e.active {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// MotionOwner returns the identifier owning the motion channel after
// the last arbitration pass
func (m *Manager) MotionOwner() (string, bool) {
	return m.motionOwner, m.hasMotion
}

// HasMotionOwner reports whether any ability owns the motion channel
func (m *Manager) HasMotionOwner() bool {
	return m.hasMotion
}

// MotionVelocity returns the arbitration winner's current velocity.
// The owning actor must apply exactly this value and never merge
// multiple abilities' outputs
func (m *Manager) MotionVelocity() (core.Vec2, bool) {
	if !m.hasMotion {
		return core.Vec2{}, false
	}
	e, exists := m.index[m.motionOwner]
	if !exists || e.motion == nil {
		return core.Vec2{}, false
	}
	return e.motion.MotionVelocity(), true
}
