// Package ability implements the orchestration half of the behavior
// core: a registry of independently activatable behavior modules that
// run concurrently with the active state and with each other. The
// manager drives lifecycle and per-tick updates, arbitrates which
// single ability may drive the actor's motion, and reports phase gating
package ability

import (
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/input"
)

// Ability is the contract every behavior module implements. Capability
// queries (motion override, gating, persistence) live on the optional
// interfaces below, asserted once at registration time and never probed
// per call. Implementations that only need a subset embed BaseAbility
type Ability interface {
	// Setup injects the owning actor and the registered identifier.
	// Called exactly once, at registration
	Setup(owner core.Actor, id string)

	// Activate and Deactivate bracket the ability's running window.
	// The manager guarantees they alternate; an ability never sees
	// two activations without a deactivation between them
	Activate()
	Deactivate()

	// Update runs once per logic phase while active
	Update(delta float64)

	// PhysicsUpdate runs once per physics phase while active
	PhysicsUpdate(delta float64)

	// HandleAction receives every discrete input transition broadcast
	// while active. There is no consumption: all active abilities see
	// every action
	HandleAction(a input.Action)

	// HandleAxis receives every continuous input sample broadcast
	// while active
	HandleAxis(a input.Axis)
}

// MotionOverrider marks an ability that competes for the motion
// channel. At most one overriding ability owns the channel per tick;
// the manager's arbitration pass picks the winner
type MotionOverrider interface {
	// OverridesMotion reports whether the ability currently wants to
	// drive the actor's motion
	OverridesMotion() bool

	// MotionPriority orders competing overriders; higher wins, ties
	// break toward the first registered
	MotionPriority() int

	// MotionVelocity returns the velocity the ability wants applied
	MotionVelocity() core.Vec2
}

// PhaseGater marks an ability that can suspend the owning state
// machine's phases while active (e.g. a cutscene lock)
type PhaseGater interface {
	GatesLogic() bool
	GatesPhysics() bool
}

// Persistent marks an ability with opaque per-instance state included
// in manager snapshots
type Persistent interface {
	// SaveState returns the ability's serializable state
	SaveState() map[string]any

	// LoadState restores a previously saved state
	LoadState(state map[string]any)
}

// BaseAbility is a no-op Ability implementation for embedding. It
// retains the owner and identifier injected at setup
type BaseAbility struct {
	owner core.Actor
	id    string
}

// Setup stores the owning actor and identifier
func (b *BaseAbility) Setup(owner core.Actor, id string) {
	b.owner = owner
	b.id = id
}

// Owner returns the actor injected at setup
func (b *BaseAbility) Owner() core.Actor {
	return b.owner
}

// ID returns the identifier injected at setup
func (b *BaseAbility) ID() string {
	return b.id
}

func (*BaseAbility) Activate() {}
func (*BaseAbility) Deactivate() {}
func (*BaseAbility) Update(float64) {}
func (*BaseAbility) PhysicsUpdate(float64) {}
func (*BaseAbility) HandleAction(input.Action) {}
func (*BaseAbility) HandleAxis(input.Axis) {}
