// Package script adapts tengo scripts into abilities so behavior
// content can be authored without recompiling the host.
package script

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/Bonehead-Labs/actorkit/ability"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/input"
)

// Reporter receives advisory failure reports from scripted abilities.
// ability.Manager satisfies it
type Reporter interface {
	ReportFailure(id, reason string, details map[string]any)
}

// lifecycleDispatchScript is appended to every ability script. The host
// sets __phase before each run and the dispatcher routes to the hook
// functions the script must define
const lifecycleDispatchScript = `
if __phase == "activate" {
	on_activate(__engine, __state)
} else if __phase == "deactivate" {
	on_deactivate(__engine, __state)
} else if __phase == "update" {
	update(__engine, __state, __delta)
} else if __phase == "physics" {
	physics_update(__engine, __state, __delta)
} else if __phase == "action" {
	handle_action(__engine, __state, __action, __edge)
} else if __phase == "axis" {
	handle_axis(__engine, __state, __axis, __value)
}
`

// Ability runs a compiled tengo script through the ability lifecycle.
// Capability answers (overrides_motion, motion_priority, gates_logic,
// gates_physics) are read once from script globals at compile time;
// motion velocity is whatever the script last passed to set_velocity
type Ability struct {
	ability.BaseAbility

	compiled  *tengo.Compiled
	stateData *tengo.Map
	engine    *tengo.ImmutableMap
	logger    *slog.Logger
	reporter  Reporter

	overrides    bool
	priority     int
	gatesLogic   bool
	gatesPhysics bool

	velocity core.Vec2
}

// Option configures a scripted ability
type Option func(*Ability)

// WithLogger routes script runtime errors to the given logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Ability) { a.logger = l }
}

// WithReporter forwards fail() calls from the script to a failure log
func WithReporter(r Reporter) Option {
	return func(a *Ability) { a.reporter = r }
}

// NewAbility compiles src into a runnable ability. The script must
// define on_activate, on_deactivate, update, physics_update,
// handle_action and handle_axis; capability globals are optional and
// default to inert answers
func NewAbility(src []byte, opts ...Option) (*Ability, error) {
	a := &Ability{
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.engine = a.buildEngine()

	full := string(src) + "\n" + lifecycleDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__delta", 0.0)
	_ = script.Add("__action", "")
	_ = script.Add("__edge", "")
	_ = script.Add("__axis", "")
	_ = script.Add("__value", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile ability script: %w", err)
	}
	a.compiled = compiled

	// One inert run so top-level capability globals get evaluated
	if err := a.run("noop", 0, "", "", 0); err != nil {
		return nil, fmt.Errorf("initialize ability script: %w", err)
	}
	if compiled.IsDefined("overrides_motion") {
		a.overrides = compiled.Get("overrides_motion").Bool()
	}
	if compiled.IsDefined("motion_priority") {
		a.priority = compiled.Get("motion_priority").Int()
	}
	if compiled.IsDefined("gates_logic") {
		a.gatesLogic = compiled.Get("gates_logic").Bool()
	}
	if compiled.IsDefined("gates_physics") {
		a.gatesPhysics = compiled.Get("gates_physics").Bool()
	}
	return a, nil
}

func (a *Ability) Activate() { a.dispatch("activate", 0) }

func (a *Ability) Deactivate() { a.dispatch("deactivate", 0) }

func (a *Ability) Update(d float64) { a.dispatch("update", d) }

func (a *Ability) PhysicsUpdate(d float64) { a.dispatch("physics", d) }

func (a *Ability) HandleAction(act input.Action) {
	if err := a.run("action", 0, act.Name, act.Edge.String(), 0); err != nil {
		a.logger.Error("ability script action hook failed", "ability", a.ID(), "error", err)
	}
}

func (a *Ability) HandleAxis(ax input.Axis) {
	if err := a.run("axis", 0, "", "", ax.Value, ax.Name); err != nil {
		a.logger.Error("ability script axis hook failed", "ability", a.ID(), "error", err)
	}
}

func (a *Ability) OverridesMotion() bool { return a.overrides }

func (a *Ability) MotionPriority() int { return a.priority }

func (a *Ability) MotionVelocity() core.Vec2 { return a.velocity }

func (a *Ability) GatesLogic() bool { return a.gatesLogic }

func (a *Ability) GatesPhysics() bool { return a.gatesPhysics }

// SaveState exports the script's persistent state map
func (a *Ability) SaveState() map[string]any {
	if len(a.stateData.Value) == 0 {
		return nil
	}
	out := make(map[string]any, len(a.stateData.Value))
	for k, v := range a.stateData.Value {
		out[k] = objectToAny(v)
	}
	return out
}

// LoadState replaces the script's persistent state map
func (a *Ability) LoadState(state map[string]any) {
	values := make(map[string]tengo.Object, len(state))
	for k, v := range state {
		values[k] = anyToObject(v)
	}
	a.stateData = &tengo.Map{Value: values}
}

func (a *Ability) dispatch(phase string, delta float64) {
	if err := a.run(phase, delta, "", "", 0); err != nil {
		a.logger.Error("ability script hook failed", "ability", a.ID(), "phase", phase, "error", err)
	}
}

func (a *Ability) run(phase string, delta float64, action, edge string, value float64, axis ...string) error {
	if err := a.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := a.compiled.Set("__engine", a.engine); err != nil {
		return err
	}
	if err := a.compiled.Set("__state", a.stateData); err != nil {
		return err
	}
	if err := a.compiled.Set("__delta", delta); err != nil {
		return err
	}
	if err := a.compiled.Set("__action", action); err != nil {
		return err
	}
	if err := a.compiled.Set("__edge", edge); err != nil {
		return err
	}
	axisName := ""
	if len(axis) > 0 {
		axisName = axis[0]
	}
	if err := a.compiled.Set("__axis", axisName); err != nil {
		return err
	}
	if err := a.compiled.Set("__value", value); err != nil {
		return err
	}
	return a.compiled.Run()
}

func (a *Ability) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, xok := tengo.ToFloat64(args[0])
		y, yok := tengo.ToFloat64(args[1])
		if !xok || !yok {
			return tengo.FalseValue, nil
		}
		a.velocity = core.Vec2{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.Owner() == nil {
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}, nil
		}
		p := a.Owner().Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
	}}

	values["move_input"] = &tengo.UserFunction{Name: "move_input", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.Owner() == nil {
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}, nil
		}
		v := a.Owner().MoveInput()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}, nil
	}}

	values["fail"] = &tengo.UserFunction{Name: "fail", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.reporter == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		reason := strings.TrimSpace(objectAsString(args[0]))
		if reason == "" {
			return tengo.FalseValue, nil
		}
		var details map[string]any
		if len(args) > 1 {
			if m, ok := objectToAny(args[1]).(map[string]any); ok {
				details = m
			}
		}
		a.reporter.ReportFailure(a.ID(), reason, details)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined, nil:
		return nil
	default:
		return v.String()
	}
}

func anyToObject(v any) tengo.Object {
	switch t := v.(type) {
	case string:
		return &tengo.String{Value: t}
	case int:
		return &tengo.Int{Value: int64(t)}
	case int64:
		return &tengo.Int{Value: t}
	case float64:
		return &tengo.Float{Value: t}
	case bool:
		if t {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	case []any:
		out := make([]tengo.Object, 0, len(t))
		for _, item := range t {
			out = append(out, anyToObject(item))
		}
		return &tengo.Array{Value: out}
	case map[string]any:
		out := make(map[string]tengo.Object, len(t))
		for k, item := range t {
			out[k] = anyToObject(item)
		}
		return &tengo.Map{Value: out}
	default:
		return tengo.UndefinedValue
	}
}
