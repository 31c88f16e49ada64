package domain

import "testing"

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   State
		to     State
		expect bool
	}{
		// From active
		{"active -> applied", StateActive, StateApplied, true},
		{"active -> merged", StateActive, StateMerged, true},
		{"active -> aborted", StateActive, StateAborted, true},
		{"active -> pruned", StateActive, StatePruned, false},
		{"active -> active", StateActive, StateActive, false},

		// From applied
		{"applied -> merged", StateApplied, StateMerged, true},
		{"applied -> pruned", StateApplied, StatePruned, true},
		{"applied -> active", StateApplied, StateActive, false},
		{"applied -> aborted", StateApplied, StateAborted, false},

		// From merged
		{"merged -> pruned", StateMerged, StatePruned, true},
		{"merged -> active", StateMerged, StateActive, false},
		{"merged -> applied", StateMerged, StateApplied, false},
		{"merged -> aborted", StateMerged, StateAborted, false},

		// From aborted
		{"aborted -> pruned", StateAborted, StatePruned, true},
		{"aborted -> active", StateAborted, StateActive, false},
		{"aborted -> merged", StateAborted, StateMerged, false},

		// From pruned (terminal)
		{"pruned -> active", StatePruned, StateActive, false},
		{"pruned -> applied", StatePruned, StateApplied, false},
		{"pruned -> merged", StatePruned, StateMerged, false},
		{"pruned -> aborted", StatePruned, StateAborted, false},
		{"pruned -> pruned", StatePruned, StatePruned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.CanTransitionTo(tt.to)
			if got != tt.expect {
				t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestState_CanTransitionTo_UnknownState(t *testing.T) {
	unknown := State("unknown")
	if unknown.CanTransitionTo(StateActive) {
		t.Error("unknown state should not transition to any state")
	}
}

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		terminal bool
	}{
		{StateActive, false},
		{StateApplied, false},
		{StateMerged, false},
		{StateAborted, false},
		{StatePruned, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestState_IsClosed(t *testing.T) {
	tests := []struct {
		state  State
		closed bool
	}{
		{StateActive, false},
		{StateApplied, true},
		{StateMerged, true},
		{StateAborted, true},
		{StatePruned, true},
		{State("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsClosed(); got != tt.closed {
				t.Errorf("IsClosed() = %v, want %v", got, tt.closed)
			}
		})
	}
}

func TestState_Display(t *testing.T) {
	tests := []struct {
		state   State
		display string
	}{
		{StateActive, "Active"},
		{StateApplied, "Applied"},
		{StateMerged, "Merged"},
		{StateAborted, "Aborted"},
		{StatePruned, "Pruned"},
		{State("unknown"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.Display(); got != tt.display {
				t.Errorf("Display() = %v, want %v", got, tt.display)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		state State
		valid bool
	}{
		{StateActive, true},
		{StateApplied, true},
		{StateMerged, true},
		{StateAborted, true},
		{StatePruned, true},
		{State("unknown"), false},
		{State(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAllStates(t *testing.T) {
	states := AllStates()
	expected := []State{
		StateActive,
		StateApplied,
		StateMerged,
		StateAborted,
		StatePruned,
	}

	if len(states) != len(expected) {
		t.Errorf("AllStates() returned %d states, want %d", len(states), len(expected))
	}

	for i, s := range expected {
		if states[i] != s {
			t.Errorf("AllStates()[%d] = %v, want %v", i, states[i], s)
		}
	}
}
