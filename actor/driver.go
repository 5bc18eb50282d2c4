// Package actor hosts the owning-actor side of the behavior core: the
// Driver that sequences ability and state-machine phases each tick, and
// a minimal kinematic body for hosts that have no physics engine.
package actor

import (
	"log/slog"

	"github.com/Bonehead-Labs/actorkit/ability"
	"github.com/Bonehead-Labs/actorkit/blackboard"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/fsm"
	"github.com/Bonehead-Labs/actorkit/input"
)

// MotionRegister is the channel a state uses to hand its velocity to
// the driver. It sits in the per-tick blackboard under the "motion" key
type MotionRegister struct {
	velocity core.Vec2
	set      bool
}

// Set records the state's velocity for the current tick
func (r *MotionRegister) Set(v core.Vec2) {
	r.velocity = v
	r.set = true
}

// Clear empties the register
func (r *MotionRegister) Clear() {
	r.velocity = core.Vec2{}
	r.set = false
}

// Velocity returns the recorded velocity and whether one was set
func (r *MotionRegister) Velocity() (core.Vec2, bool) {
	return r.velocity, r.set
}

// Assembler produces the actor-supplied portion of the tick blackboard
type Assembler func() map[string]any

// Driver sequences one behavior tick: abilities update and arbitrate
// first, then the phase gate is checked, then the state machine runs.
// During the physics phase the arbitration winner's velocity is applied
// to the body; when the motion channel is vacant the active state's
// registered velocity is applied instead
type Driver struct {
	body     core.Actor
	machine  *fsm.Machine
	manager  *ability.Manager
	register *MotionRegister
	assemble Assembler
	logger   *slog.Logger
}

// DriverOption configures a Driver
type DriverOption func(*Driver)

// WithAssembler supplies extra blackboard entries rebuilt every tick
func WithAssembler(a Assembler) DriverOption {
	return func(d *Driver) { d.assemble = a }
}

// WithLogger sets the driver's logger
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// NewDriver wires a body, its state machine and its ability manager
func NewDriver(body core.Actor, machine *fsm.Machine, manager *ability.Manager, opts ...DriverOption) *Driver {
	d := &Driver{
		body:     body,
		machine:  machine,
		manager:  manager,
		register: &MotionRegister{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TickLogic runs the logic phase. A fresh blackboard replaces the
// previous one wholesale before anything updates
func (d *Driver) TickLogic(delta float64) {
	d.register.Clear()
	values := map[string]any{
		"actor":  d.body,
		"motion": d.register,
	}
	if d.assemble != nil {
		for k, v := range d.assemble() {
			values[k] = v
		}
	}
	d.machine.SetBlackboard(blackboard.New(values, blackboard.WithLogger(d.logger)))

	d.manager.Process(core.PhaseLogic, delta)
	if d.manager.IsGated(core.PhaseLogic) {
		return
	}
	d.machine.Update(delta)
}

// TickPhysics runs the physics phase and applies the winning velocity
func (d *Driver) TickPhysics(delta float64) {
	d.manager.Process(core.PhasePhysics, delta)
	if !d.manager.IsGated(core.PhasePhysics) {
		d.machine.PhysicsUpdate(delta)
	}

	if v, ok := d.manager.MotionVelocity(); ok {
		d.body.ApplyVelocity(v)
		return
	}
	if v, ok := d.register.Velocity(); ok {
		d.body.ApplyVelocity(v)
	}
}

// Tick runs both phases with the same delta, for hosts that do not
// split logic from physics
func (d *Driver) Tick(delta float64) {
	d.TickLogic(delta)
	d.TickPhysics(delta)
}

// HandleAction broadcasts an input action to all active abilities.
// Input is never consumed; every active ability sees every sample
func (d *Driver) HandleAction(a input.Action) {
	d.manager.DispatchInputAction(a)
}

// HandleAxis broadcasts an axis sample to all active abilities
func (d *Driver) HandleAxis(a input.Axis) {
	d.manager.DispatchInputAxis(a)
}

// DispatchEvent forwards a named game event to the active state
func (d *Driver) DispatchEvent(name string, data any) {
	d.machine.DispatchEvent(name, data)
}

// Machine exposes the driven state machine for introspection
func (d *Driver) Machine() *fsm.Machine { return d.machine }

// Manager exposes the driven ability manager for introspection
func (d *Driver) Manager() *ability.Manager { return d.manager }

// Register returns the motion register states write through. It is
// also reachable from the blackboard under the "motion" key
func (d *Driver) Register() *MotionRegister { return d.register }
