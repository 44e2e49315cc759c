// Package nfa compiles syntax trees into edge-labeled Thompson NFAs and runs
// them with a Pike VM.
//
// Every transition carries a label that points at a leaf node of the syntax
// tree. Consuming labels (characters, ranges, groups, '.') are tested against
// the input lazily during simulation; zero-width labels (epsilon, anchors,
// group boundaries) are evaluated against the cursor position.
package nfa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState reports a transition or marker that refers to a state
	// the builder never allocated.
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrTooComplex reports that the automaton would exceed a compiler limit
	// (repetition count, state count or nesting depth).
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidConfig reports a CompilerConfig with a negative limit.
	ErrInvalidConfig = errors.New("invalid NFA configuration")
)

// CompileError is returned by Compiler when a tree cannot be turned into an
// automaton. Parse failures are not wrapped; they surface as *syntax.Error.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return "nfa: compile: " + e.Err.Error()
	}
	return fmt.Sprintf("nfa: compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// BuildError is returned by Builder.Validate and Builder.Build for a
// malformed graph. StateID is InvalidState when no single state is at fault.
type BuildError struct {
	Message string
	StateID StateID
	Err     error
}

func (e *BuildError) Error() string {
	if e.StateID == InvalidState {
		return "nfa: build: " + e.Message
	}
	return fmt.Sprintf("nfa: build: state %d: %s", e.StateID, e.Message)
}

func (e *BuildError) Unwrap() error { return e.Err }
