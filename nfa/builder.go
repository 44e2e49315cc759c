package nfa

import (
	"fmt"

	"github.com/coregx/regnfa/internal/conv"
	"github.com/coregx/regnfa/syntax"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
//
// Labels are node IDs in the builder's tree. Pseudo labels that the parser
// never produces (epsilon, group boundaries, group links) are appended to the
// same tree with AddLabel.
type Builder struct {
	states []State
	edges  []Edge
	tree   *syntax.Tree
	start  StateID
	accept StateID

	epsilon syntax.NodeID
	link    syntax.NodeID
}

// NewBuilder creates a builder whose labels refer to tree. A nil tree starts
// an empty one. The builder takes ownership of tree and appends to it.
func NewBuilder(tree *syntax.Tree) *Builder {
	return NewBuilderWithCapacity(tree, 16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(tree *syntax.Tree, capacity int) *Builder {
	if tree == nil {
		tree = syntax.NewTree()
	}
	return &Builder{
		states:  make([]State, 0, capacity),
		edges:   make([]Edge, 0, capacity),
		tree:    tree,
		start:   InvalidState,
		accept:  InvalidState,
		epsilon: syntax.NoNode,
		link:    syntax.NoNode,
	}
}

// AddState adds a state with no edges and returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	return id
}

// AddEdge appends a transition from -> to labeled with label. Edges added
// earlier from the same state have higher priority.
// Dangling states and compound labels are reported by Validate.
func (b *Builder) AddEdge(from, to StateID, label syntax.NodeID) EdgeID {
	id := EdgeID(conv.IntToUint32(len(b.edges)))
	b.edges = append(b.edges, Edge{From: from, To: to, Label: label})
	if int(from) < len(b.states) {
		b.states[from].out = append(b.states[from].out, id)
	}
	return id
}

// AddLabel appends a pseudo node to the tree and returns its ID.
func (b *Builder) AddLabel(n syntax.Node) syntax.NodeID {
	return b.tree.Add(n)
}

// AddEpsilon adds an epsilon transition. All epsilon edges share one label.
func (b *Builder) AddEpsilon(from, to StateID) EdgeID {
	if b.epsilon == syntax.NoNode {
		b.epsilon = b.AddLabel(syntax.NewLeaf(syntax.KindEpsilon))
	}
	return b.AddEdge(from, to, b.epsilon)
}

// AddGroupLink adds the loop-back transition of a repeated group.
func (b *Builder) AddGroupLink(from, to StateID) EdgeID {
	if b.link == syntax.NoNode {
		b.link = b.AddLabel(syntax.NewLeaf(syntax.KindGroupLink))
	}
	return b.AddEdge(from, to, b.link)
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetAccept sets the accepting state for the NFA
func (b *Builder) SetAccept(accept StateID) {
	b.accept = accept
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Edges returns the current number of edges
func (b *Builder) Edges() int {
	return len(b.edges)
}

// Tree returns the tree labels refer to.
func (b *Builder) Tree() *syntax.Tree {
	return b.tree
}

func (b *Builder) validState(id StateID) bool {
	return id != InvalidState && int(id) < len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start and accept states are set and valid
// - All edges connect valid states
// - Every label is a leaf node of the tree
// - The accept state is only entered through zero-width edges
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if !b.validState(b.start) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start, Err: ErrInvalidState}
	}
	if b.accept == InvalidState {
		return &BuildError{Message: "accept state not set", StateID: InvalidState}
	}
	if !b.validState(b.accept) {
		return &BuildError{Message: "accept state out of bounds", StateID: b.accept, Err: ErrInvalidState}
	}

	for i, e := range b.edges {
		if !b.validState(e.From) {
			return &BuildError{
				Message: fmt.Sprintf("edge %d has invalid source %d", i, e.From),
				StateID: e.From,
				Err:     ErrInvalidState,
			}
		}
		if !b.validState(e.To) {
			return &BuildError{
				Message: fmt.Sprintf("edge %d has invalid target %d", i, e.To),
				StateID: e.From,
				Err:     ErrInvalidState,
			}
		}
		if e.Label < 0 || int(e.Label) >= b.tree.Len() {
			return &BuildError{
				Message: fmt.Sprintf("edge %d has invalid label %d", i, e.Label),
				StateID: e.From,
			}
		}
		kind := b.tree.Node(e.Label).Kind
		if kind.IsCompound() {
			return &BuildError{
				Message: fmt.Sprintf("edge %d is labeled with compound node %s", i, kind),
				StateID: e.From,
			}
		}
		if e.To == b.accept && !kind.IsZeroWidth() {
			return &BuildError{
				Message: fmt.Sprintf("edge %d enters the accept state on a consuming label", i),
				StateID: e.From,
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
// Options can be provided to set the group count, flags and source pattern.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	nfa := &NFA{
		states: b.states,
		edges:  b.edges,
		tree:   b.tree,
		start:  b.start,
		accept: b.accept,
	}
	for _, opt := range opts {
		opt(nfa)
	}
	return nfa, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithGroupCount sets the number of capturing groups
func WithGroupCount(count int) BuildOption {
	return func(n *NFA) {
		n.groupCount = count
	}
}

// WithFlags records the effective pattern flags
func WithFlags(flags syntax.Flags) BuildOption {
	return func(n *NFA) {
		n.flags = flags
	}
}

// WithPattern records the source pattern
func WithPattern(pattern string) BuildOption {
	return func(n *NFA) {
		n.pattern = pattern
	}
}
