package main

import (
	"github.com/Bonehead-Labs/actorkit/ability"
	"github.com/Bonehead-Labs/actorkit/actor"
	"github.com/Bonehead-Labs/actorkit/blackboard"
	"github.com/Bonehead-Labs/actorkit/config"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/fsm"
	"github.com/Bonehead-Labs/actorkit/input"
)

const (
	walkSpeed = 8.0
	dashSpeed = 30.0
	dashTime  = 0.2
	dashCool  = 0.6
)

const defaultProfile = `
initial_state: idle
states:
  - id: idle
  - id: move
abilities:
  - id: dash
    auto_activate: true
  - id: crouch
`

// idleState waits for movement intent and damps residual velocity
type idleState struct {
	fsm.BaseState
}

func (s *idleState) Update(m *fsm.Machine, delta float64) {
	body := blackboard.Value[core.Actor](m.Blackboard(), "actor", nil)
	if body == nil {
		return
	}
	if !body.MoveInput().IsZero() {
		m.TransitionTo("move", nil)
		return
	}
	if reg := blackboard.Value[*actor.MotionRegister](m.Blackboard(), "motion", nil); reg != nil {
		reg.Set(core.Vec2{})
	}
}

// moveState steers the body by the keyboard intent
type moveState struct {
	fsm.BaseState
}

func (s *moveState) Update(m *fsm.Machine, delta float64) {
	body := blackboard.Value[core.Actor](m.Blackboard(), "actor", nil)
	if body == nil {
		return
	}
	mv := body.MoveInput()
	if mv.IsZero() {
		m.TransitionTo("idle", nil)
		return
	}
	if reg := blackboard.Value[*actor.MotionRegister](m.Blackboard(), "motion", nil); reg != nil {
		reg.Set(mv.Normalized().Scale(walkSpeed))
	}
}

// dashAbility bursts along the last movement direction, overriding the
// motion channel while the burst lasts
type dashAbility struct {
	ability.BaseAbility
	timer    float64
	cooldown float64
	dir      core.Vec2
}

func (a *dashAbility) Update(delta float64) {
	if a.timer > 0 {
		a.timer -= delta
	}
	if a.cooldown > 0 {
		a.cooldown -= delta
	}
}

func (a *dashAbility) HandleAction(act input.Action) {
	if act.Name != "dash" || act.Edge != input.EdgePressed {
		return
	}
	if a.cooldown > 0 {
		return
	}
	dir := a.Owner().MoveInput()
	if dir.IsZero() {
		dir = core.Vec2{X: 1}
	}
	a.dir = dir.Normalized()
	a.timer = dashTime
	a.cooldown = dashCool
}

func (a *dashAbility) OverridesMotion() bool { return a.timer > 0 }

func (a *dashAbility) MotionPriority() int { return 10 }

func (a *dashAbility) MotionVelocity() core.Vec2 { return a.dir.Scale(dashSpeed) }

// crouchAbility freezes the state machine's logic phase while active,
// the cutscene-lock pattern
type crouchAbility struct {
	ability.BaseAbility
}

func (a *crouchAbility) GatesLogic() bool { return true }

func (a *crouchAbility) GatesPhysics() bool { return false }

func demoRegistry() config.Registry {
	return config.Registry{
		States: map[string]fsm.Factory{
			"idle": func() fsm.State { return &idleState{} },
			"move": func() fsm.State { return &moveState{} },
		},
		Abilities: map[string]func() ability.Ability{
			"dash":   func() ability.Ability { return &dashAbility{} },
			"crouch": func() ability.Ability { return &crouchAbility{} },
		},
	}
}
