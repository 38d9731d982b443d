// Package submission stores user-submitted reviews, salaries and interviews.
//
// Every submission runs through this state graph:
//
//	Received ──► Resolving ──► Validating-Single ──┬──► Committing ──► Success
//	    │                 └──► Validating-Dual ────┤
//	    │                                          └──► Rejected
//	    └──► Duplicate
//
// Success, Rejected and Duplicate are terminal states.
package submission

import (
	"fmt"
	"slices"
)

// State is a step of a submission run.
type State string

const (
	StateReceived         State = "received"
	StateResolving        State = "resolving"
	StateValidatingSingle State = "validating_single"
	StateValidatingDual   State = "validating_dual"
	StateCommitting       State = "committing"
	StateSuccess          State = "success"
	StateRejected         State = "rejected"
	StateDuplicate        State = "duplicate"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateReceived:         {StateResolving, StateDuplicate},
	StateResolving:        {StateValidatingSingle, StateValidatingDual},
	StateValidatingSingle: {StateCommitting, StateRejected},
	StateValidatingDual:   {StateCommitting, StateRejected},
	StateCommitting:       {StateSuccess},
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	return slices.Contains(validTransitions[from], to)
}

// IsTerminal reports whether no transition leaves the state.
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateRejected || s == StateDuplicate
}

// run tracks the states a single submission went through.
type run struct {
	history []State
}

func newRun() *run {
	return &run{history: []State{StateReceived}}
}

func (r *run) current() State {
	return r.history[len(r.history)-1]
}

// moveTo panics on a transition the graph does not allow, since that can only
// come from a bug in Submit.
func (r *run) moveTo(to State) {
	from := r.current()
	if !IsTransitionAllowed(from, to) {
		panic(fmt.Sprintf("submission: illegal transition %s -> %s", from, to))
	}
	r.history = append(r.history, to)
}
