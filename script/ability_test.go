package script

import (
	"testing"

	"github.com/Bonehead-Labs/actorkit/ability"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/input"
)

const dashScript = `
overrides_motion := true
motion_priority := 8
gates_logic := false
gates_physics := false

speed := 60.0

on_activate := func(engine, state) {
	state.activations = state.activations == undefined ? 1 : state.activations + 1
}

on_deactivate := func(engine, state) {
	engine.set_velocity(0, 0)
}

update := func(engine, state, delta) {
	mv := engine.move_input()
	engine.set_velocity(mv[0] * speed, mv[1] * speed)
}

physics_update := func(engine, state, delta) {
	state.sim_time = state.sim_time == undefined ? delta : state.sim_time + delta
}

handle_action := func(engine, state, action, edge) {
	if action == "dash" && edge == "pressed" {
		if state.charges == undefined || state.charges <= 0 {
			engine.fail("no_charges", {wanted: 1})
			return
		}
		state.charges -= 1
	}
}

handle_axis := func(engine, state, axis, value) {
	if axis == "move_x" {
		state.last_x = value
	}
}
`

type scriptOwner struct {
	pos  core.Vec2
	move core.Vec2
}

func (o *scriptOwner) Position() core.Vec2 { return o.pos }

func (o *scriptOwner) ApplyVelocity(core.Vec2) {}

func (o *scriptOwner) MoveInput() core.Vec2 { return o.move }

type recordingReporter struct {
	ids     []string
	reasons []string
	details []map[string]any
}

func (r *recordingReporter) ReportFailure(id, reason string, details map[string]any) {
	r.ids = append(r.ids, id)
	r.reasons = append(r.reasons, reason)
	r.details = append(r.details, details)
}

func TestNewAbilityReadsCapabilityGlobals(t *testing.T) {
	a, err := NewAbility([]byte(dashScript))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	if !a.OverridesMotion() {
		t.Error("Expected overrides_motion from script")
	}
	if a.MotionPriority() != 8 {
		t.Errorf("Expected priority 8, got %d", a.MotionPriority())
	}
	if a.GatesLogic() || a.GatesPhysics() {
		t.Error("Script declares no gating")
	}
}

func TestNewAbilityRejectsIncompleteScript(t *testing.T) {
	if _, err := NewAbility([]byte(`update := func(engine, state, delta) {}`)); err == nil {
		t.Error("Expected compile error when lifecycle hooks are missing")
	}
}

func TestUpdateDrivesVelocityFromOwnerInput(t *testing.T) {
	owner := &scriptOwner{move: core.Vec2{X: 1, Y: -0.5}}
	a, err := NewAbility([]byte(dashScript))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	a.Setup(owner, "dash")

	a.Activate()
	a.Update(0.016)
	if v := a.MotionVelocity(); v.X != 60 || v.Y != -30 {
		t.Errorf("Expected velocity {60 -30}, got %v", v)
	}

	a.Deactivate()
	if v := a.MotionVelocity(); !v.IsZero() {
		t.Errorf("Expected deactivation to zero velocity, got %v", v)
	}
}

func TestActionHookReportsFailure(t *testing.T) {
	rep := &recordingReporter{}
	a, err := NewAbility([]byte(dashScript), WithReporter(rep))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	a.Setup(&scriptOwner{}, "dash")

	a.HandleAction(input.Action{Name: "dash", Edge: input.EdgePressed})
	if len(rep.reasons) != 1 || rep.reasons[0] != "no_charges" {
		t.Fatalf("Expected no_charges failure, got %v", rep.reasons)
	}
	if rep.ids[0] != "dash" {
		t.Errorf("Expected failure attributed to dash, got %q", rep.ids[0])
	}
	if rep.details[0]["wanted"] != 1 {
		t.Errorf("Expected failure details from script, got %v", rep.details[0])
	}
}

func TestStateSurvivesSaveLoad(t *testing.T) {
	a, err := NewAbility([]byte(dashScript))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	a.Setup(&scriptOwner{}, "dash")

	a.Activate()
	a.PhysicsUpdate(0.02)
	a.HandleAxis(input.Axis{Name: "move_x", Value: 0.75})

	saved := a.SaveState()
	if saved == nil {
		t.Fatal("Expected script state to be captured")
	}
	if saved["last_x"] != 0.75 {
		t.Errorf("Expected last_x 0.75, got %v", saved["last_x"])
	}

	b, err := NewAbility([]byte(dashScript))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	b.LoadState(saved)
	b.Activate()
	if got := b.SaveState()["activations"]; got != 2 {
		t.Errorf("Expected restored counter to keep incrementing, got %v", got)
	}
}

func TestScriptedAbilityParticipatesInArbitration(t *testing.T) {
	owner := &scriptOwner{move: core.Vec2{X: 1}}
	m := ability.NewManager(owner)

	a, err := NewAbility([]byte(dashScript), WithReporter(m))
	if err != nil {
		t.Fatalf("NewAbility failed: %v", err)
	}
	m.Register("dash", a, true)

	m.ProcessLogic(0.016)
	winner, ok := m.MotionOwner()
	if !ok || winner != "dash" {
		t.Fatalf("Expected scripted ability to win motion, got %q ok=%v", winner, ok)
	}
	if v, _ := m.MotionVelocity(); v.X != 60 {
		t.Errorf("Expected arbitrated velocity 60, got %v", v)
	}
}
