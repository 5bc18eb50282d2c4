// Package fsm implements the finite state machine half of the behavior
// core: a registry of mutually-exclusive behavior modes with an
// enter/exit lifecycle, two per-tick update hooks, and event dispatch.
// At most one state is active at any time
package fsm

// State is the contract every behavior mode implements. Hooks receive
// the owning machine so handlers can request transitions and read the
// current blackboard snapshot. Implementations that only need a subset
// of the lifecycle embed BaseState
type State interface {
	// Enter is called when the machine transitions into this state.
	// The payload is whatever the transition caller supplied
	Enter(m *Machine, payload any)

	// Exit is called when the machine transitions away or the state
	// is unregistered while active
	Exit(m *Machine)

	// Update runs once per logic phase while active
	Update(m *Machine, delta float64)

	// PhysicsUpdate runs once per physics phase while active
	PhysicsUpdate(m *Machine, delta float64)

	// HandleEvent receives dispatched events; the handler may itself
	// request a transition, bounded by the machine's recursion guard
	HandleEvent(m *Machine, name string, data any)
}

// Factory constructs a state instance. Invoked lazily on the first
// transition into the registered identifier; the instance then persists
// across re-entries until unregistered
type Factory func() State

// BaseState is a no-op State implementation for embedding
type BaseState struct{}

func (BaseState) Enter(*Machine, any) {}
func (BaseState) Exit(*Machine) {}
func (BaseState) Update(*Machine, float64) {}
func (BaseState) PhysicsUpdate(*Machine, float64) {}
func (BaseState) HandleEvent(*Machine, string, any) {}
