package fsm

import "fmt"

// RegistrationError reports a rejected state registration. Non-fatal:
// the registry is left untouched and the operation is ignored
type RegistrationError struct {
	ID     string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("state registration %q: %s", e.ID, e.Reason)
}

// TransitionError reports a transition request to an unregistered
// target. No state mutation occurs
type TransitionError struct {
	Target string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition to unregistered state %q", e.Target)
}

// RecursionGuardError reports a transition chain that exceeded the
// machine's depth limit. Only the offending chain is aborted; the
// machine remains in its last successfully entered state
type RecursionGuardError struct {
	Limit int
}

func (e *RecursionGuardError) Error() string {
	return fmt.Sprintf("transition depth limit %d exceeded", e.Limit)
}
