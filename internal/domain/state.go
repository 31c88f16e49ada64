package domain

// State represents the lifecycle state of a task.
type State string

const (
	StateActive  State = "active"  // Work in progress on the task branch
	StateApplied State = "applied" // Working tree integrated into main, branch intact
	StateMerged  State = "merged"  // History integrated into main, branch retained for audit
	StateAborted State = "aborted" // Work discarded, branch deleted
	StatePruned  State = "pruned"  // Branch removed after retention, metadata archival only
)

// AllStates returns all valid state values.
func AllStates() []State {
	return []State{
		StateActive,
		StateApplied,
		StateMerged,
		StateAborted,
		StatePruned,
	}
}

// transitions defines the allowed state transitions.
// Flow: active → {applied, merged, aborted} → pruned
// No state is ever revisited.
var transitions = map[State][]State{
	StateActive:  {StateApplied, StateMerged, StateAborted},
	StateApplied: {StateMerged, StatePruned},
	StateMerged:  {StatePruned},
	StateAborted: {StatePruned},
	StatePruned:  {},
}

// CanTransitionTo reports whether the state may transition to target.
func (s State) CanTransitionTo(target State) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state is the terminal archival state.
func (s State) IsTerminal() bool {
	return s == StatePruned
}

// IsClosed reports whether the task has left active development.
// Closed tasks become eligible for pruning after the retention period.
func (s State) IsClosed() bool {
	switch s {
	case StateApplied, StateMerged, StateAborted, StatePruned:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the state.
func (s State) Display() string {
	switch s {
	case StateActive:
		return "Active"
	case StateApplied:
		return "Applied"
	case StateMerged:
		return "Merged"
	case StateAborted:
		return "Aborted"
	case StatePruned:
		return "Pruned"
	default:
		return string(s)
	}
}

// IsValid reports whether the state is a known value.
func (s State) IsValid() bool {
	switch s {
	case StateActive, StateApplied, StateMerged, StateAborted, StatePruned:
		return true
	default:
		return false
	}
}
