package event

// Type discriminates lifecycle notifications emitted by the behavior core
type Type uint8

const (
	TypeNone Type = iota

	// TypeStateChanged signals a completed state transition.
	// Trigger: fsm.Machine.TransitionTo | Fields: Previous, Current
	TypeStateChanged

	// TypeAbilityStarted signals an ability activation.
	// Trigger: ability.Manager.Activate | Fields: AbilityID
	TypeAbilityStarted

	// TypeAbilityEnded signals an ability deactivation.
	// Trigger: ability.Manager.Deactivate, Unregister | Fields: AbilityID
	TypeAbilityEnded

	// TypeAbilityFailed signals an advisory failure report.
	// Trigger: ability.Manager.ReportFailure | Fields: AbilityID, Reason, Details
	// Purely informational; the ability stays active
	TypeAbilityFailed
)

func (t Type) String() string {
	switch t {
	case TypeStateChanged:
		return "state_changed"
	case TypeAbilityStarted:
		return "ability_started"
	case TypeAbilityEnded:
		return "ability_ended"
	case TypeAbilityFailed:
		return "ability_failed"
	default:
		return "none"
	}
}
