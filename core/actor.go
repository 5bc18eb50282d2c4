package core

// Actor is the contract the behavior core holds against its owner.
// The core never owns the actor; registries keep a non-owning reference
// injected at setup time. Movement integration (velocity to position)
// stays on the actor side.
type Actor interface {
	// Position returns the actor's current world position
	Position() Vec2

	// ApplyVelocity hands the actor a resolved velocity to apply before
	// its own movement integration. Called with the motion arbitration
	// winner's output, or with the active state's output when no ability
	// owns the motion channel.
	ApplyVelocity(v Vec2)

	// MoveInput returns the actor's current directional input sample,
	// for states and abilities that steer from player intent
	MoveInput() Vec2
}
