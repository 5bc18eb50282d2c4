package core

// Phase identifies one of the two fixed update phases of a tick.
// Logic runs at a variable rate, physics at a fixed rate; both are invoked
// synchronously from the owning actor's update loop.
type Phase uint8

const (
	PhaseLogic Phase = iota
	PhasePhysics
)

func (p Phase) String() string {
	switch p {
	case PhaseLogic:
		return "logic"
	case PhasePhysics:
		return "physics"
	default:
		return "unknown"
	}
}
