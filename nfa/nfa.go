package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/regnfa/syntax"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// EdgeID uniquely identifies an NFA transition.
type EdgeID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Edge is a labeled transition. Label addresses a leaf node in the NFA's
// syntax tree; whether the edge consumes input depends on the label's kind.
type Edge struct {
	From  StateID
	To    StateID
	Label syntax.NodeID
}

// State is an NFA state with an ordered list of outgoing edges.
// Edge order is match priority: earlier edges are preferred.
type State struct {
	id  StateID
	out []EdgeID
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Out returns the outgoing edges in priority order.
func (s *State) Out() []EdgeID {
	return s.out
}

// NFA is a compiled, edge-labeled Thompson automaton.
//
// It has exactly one start and one accept state; the accept state is only
// entered through a zero-width edge. An NFA is immutable after Build and safe
// for concurrent use by multiple PikeVMs.
type NFA struct {
	states []State
	edges  []Edge

	// tree is the arena that edge labels point into. It holds the parsed
	// pattern plus the pseudo nodes added during compilation.
	tree *syntax.Tree

	start  StateID
	accept StateID

	groupCount int
	flags      syntax.Flags
	pattern    string
}

// Start returns the start state.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the accept state.
func (n *NFA) Accept() StateID {
	return n.accept
}

// IsAccept reports whether id is the accept state.
func (n *NFA) IsAccept(id StateID) bool {
	return id == n.accept
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Edges returns the total number of edges in the NFA.
func (n *NFA) Edges() int {
	return len(n.edges)
}

// Edge returns the edge with the given ID.
func (n *NFA) Edge(id EdgeID) Edge {
	return n.edges[id]
}

// Label returns the syntax node an edge is labeled with.
func (n *NFA) Label(id EdgeID) *syntax.Node {
	return n.tree.Node(n.edges[id].Label)
}

// Tree returns the syntax tree the edge labels refer to.
// Callers must not modify it.
func (n *NFA) Tree() *syntax.Tree {
	return n.tree
}

// GroupCount returns the number of capturing groups in the pattern.
func (n *NFA) GroupCount() int {
	return n.groupCount
}

// Flags returns the effective flags: those passed to the compiler plus any
// inline modifiers in the pattern.
func (n *NFA) Flags() syntax.Flags {
	return n.flags
}

// Pattern returns the source pattern, if the NFA was compiled from one.
func (n *NFA) Pattern() string {
	return n.pattern
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, edges: %d, start: %d, accept: %d, groups: %d, flags: %q}",
		len(n.states), len(n.edges), n.start, n.accept, n.groupCount, n.flags.String())
}

// Dump lists every state and its outgoing edges in priority order.
func (n *NFA) Dump() string {
	var b strings.Builder
	for i := range n.states {
		s := &n.states[i]
		marker := ""
		switch s.id {
		case n.start:
			marker = " (start)"
		case n.accept:
			marker = " (accept)"
		}
		fmt.Fprintf(&b, "%d%s\n", s.id, marker)
		for _, e := range s.out {
			edge := n.edges[e]
			label := n.tree.Node(edge.Label)
			fmt.Fprintf(&b, "  -> %d %s", edge.To, label.Kind)
			switch label.Kind {
			case syntax.KindCharacter:
				fmt.Fprintf(&b, " %q", label.Char)
			case syntax.KindCharacterRange:
				fmt.Fprintf(&b, " %q-%q", label.Lo, label.Hi)
			case syntax.KindGroupEntry, syntax.KindGroupExit:
				fmt.Fprintf(&b, " %d", label.Index)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
