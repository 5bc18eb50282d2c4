package actor

import "github.com/Bonehead-Labs/actorkit/core"

// Kinematic is a minimal body for hosts without a physics engine:
// velocity in, Euler integration out
type Kinematic struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Move core.Vec2
}

// Position returns the body's position
func (k *Kinematic) Position() core.Vec2 { return k.Pos }

// ApplyVelocity replaces the body's velocity for this tick
func (k *Kinematic) ApplyVelocity(v core.Vec2) { k.Vel = v }

// MoveInput returns the host-supplied movement intent
func (k *Kinematic) MoveInput() core.Vec2 { return k.Move }

// Integrate advances position by the current velocity
func (k *Kinematic) Integrate(delta float64) {
	k.Pos = k.Pos.Add(k.Vel.Scale(delta))
}
