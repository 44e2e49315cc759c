// Package syntax parses regular expressions into an index-addressed syntax
// tree.
//
// The tree is stored as an arena: every Node lives in Tree.Nodes and compound
// nodes refer to their children by NodeID. The same Node type is used by the
// nfa package as the label of automaton transitions, so the arena outlives
// parsing and is extended with pseudo nodes (epsilon, group entry/exit) during
// compilation.
package syntax

import (
	"fmt"

	"github.com/coregx/regnfa/internal/conv"
)

// NodeID addresses a node inside a Tree.
type NodeID int32

// NoNode marks an absent child (e.g. an expression without an alternative).
const NoNode NodeID = -1

// NoGroup is the group index of a non-capturing group.
const NoGroup = -1

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindCharacter matches a single literal character (Char).
	KindCharacter Kind = iota

	// KindCharacterRange matches any character in [Lo, Hi].
	KindCharacterRange

	// KindMatch is a match item (Sub) with a quantifier (Quant).
	KindMatch

	// KindExpression is a sequence (Items) with an optional alternative (Alt).
	KindExpression

	// KindGroup is a capturing (Index >= 0) or non-capturing group around Sub.
	KindGroup

	// KindAnyCharacter is '.'.
	KindAnyCharacter

	// KindCharacterGroup is a bracket expression or a class escape such as \w.
	// Items holds the members; Negated inverts membership.
	KindCharacterGroup

	// KindEpsilon is a zero-width transition that is always traversable.
	KindEpsilon

	// KindGroupLink is the loop-back transition of a repeated group. It is
	// traversed like KindEpsilon.
	KindGroupLink

	// KindGroupEntry records the start offset of group Index.
	KindGroupEntry

	// KindGroupExit records the end offset of group Index.
	KindGroupExit

	// KindStartOfString is '^'.
	KindStartOfString

	// KindEndOfString is '$'.
	KindEndOfString

	// KindStartOfStringOnly is \A.
	KindStartOfStringOnly

	// KindEndOfStringOnlyNotNewline is \z.
	KindEndOfStringOnlyNotNewline

	// KindEndOfStringOnlyMaybeNewline is \Z.
	KindEndOfStringOnlyMaybeNewline

	// KindWordBoundary is \b.
	KindWordBoundary

	// KindNonWordBoundary is \B.
	KindNonWordBoundary

	// KindEmptyString matches the empty string at offset 0.
	KindEmptyString
)

var kindNames = [...]string{
	KindCharacter:                   "Character",
	KindCharacterRange:              "CharacterRange",
	KindMatch:                       "Match",
	KindExpression:                  "Expression",
	KindGroup:                       "Group",
	KindAnyCharacter:                "AnyCharacter",
	KindCharacterGroup:              "CharacterGroup",
	KindEpsilon:                     "Epsilon",
	KindGroupLink:                   "GroupLink",
	KindGroupEntry:                  "GroupEntry",
	KindGroupExit:                   "GroupExit",
	KindStartOfString:               "StartOfString",
	KindEndOfString:                 "EndOfString",
	KindStartOfStringOnly:           "StartOfStringOnly",
	KindEndOfStringOnlyNotNewline:   "EndOfStringOnlyNotNewline",
	KindEndOfStringOnlyMaybeNewline: "EndOfStringOnlyMaybeNewline",
	KindWordBoundary:                "WordBoundary",
	KindNonWordBoundary:             "NonWordBoundary",
	KindEmptyString:                 "EmptyString",
}

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsAnchor reports whether k is a zero-width position assertion.
func (k Kind) IsAnchor() bool {
	switch k {
	case KindStartOfString, KindEndOfString, KindStartOfStringOnly,
		KindEndOfStringOnlyNotNewline, KindEndOfStringOnlyMaybeNewline,
		KindWordBoundary, KindNonWordBoundary, KindEmptyString:
		return true
	}
	return false
}

// IsZeroWidth reports whether a transition labeled with k consumes no input.
func (k Kind) IsZeroWidth() bool {
	switch k {
	case KindEpsilon, KindGroupLink, KindGroupEntry, KindGroupExit:
		return true
	}
	return k.IsAnchor()
}

// IsConsuming reports whether a transition labeled with k consumes exactly
// one character.
func (k Kind) IsConsuming() bool {
	switch k {
	case KindCharacter, KindCharacterRange, KindAnyCharacter, KindCharacterGroup:
		return true
	}
	return false
}

// IsCompound reports whether k has structure that the automaton builder must
// expand. Compound nodes are never valid transition labels.
func (k Kind) IsCompound() bool {
	switch k {
	case KindMatch, KindExpression, KindGroup:
		return true
	}
	return false
}

// QuantKind identifies the variant of a Quantifier.
type QuantKind uint8

const (
	QuantNone QuantKind = iota
	QuantOneOrMore
	QuantZeroOrMore
	QuantZeroOrOne
	QuantRange
)

// BoundKind identifies the variant of an UpperBound.
type BoundKind uint8

const (
	// BoundUndefined means no ',' was seen: {n} repeats exactly n times.
	BoundUndefined BoundKind = iota
	// BoundUnbounded is {n,}.
	BoundUnbounded
	// BoundBounded is {n,m}; N holds m.
	BoundBounded
)

// UpperBound is the upper limit of a range quantifier.
type UpperBound struct {
	Kind BoundKind
	N    uint64
}

// Quantifier describes how many times a match item or group repeats.
// Lower and Upper are only meaningful for QuantRange.
type Quantifier struct {
	Kind  QuantKind
	Lower uint64
	Upper UpperBound
	Lazy  bool
}

// IsNone reports whether q is the absent quantifier.
func (q Quantifier) IsNone() bool {
	return q.Kind == QuantNone
}

// Node is a syntax tree node and, inside the nfa package, a transition label.
// Which fields are meaningful depends on Kind.
type Node struct {
	Kind Kind

	// Char is the literal of KindCharacter.
	Char rune

	// Lo and Hi bound KindCharacterRange (inclusive).
	Lo, Hi rune

	// Items are the sequence of KindExpression or the members of
	// KindCharacterGroup.
	Items []NodeID

	// Alt is the alternative branch of KindExpression, or NoNode.
	Alt NodeID

	// Sub is the inner node of KindMatch and KindGroup.
	Sub NodeID

	// Index is the group index of KindGroup, KindGroupEntry and KindGroupExit.
	// NoGroup for non-capturing groups.
	Index int

	// Quant applies to KindMatch and KindGroup.
	Quant Quantifier

	// Negated inverts a KindCharacterGroup.
	Negated bool

	// Class is the escape letter ('w', 'D', ...) of a KindCharacterGroup that
	// was written as a class escape, or 0 for a bracket expression.
	Class rune
}

// Tree is an arena of nodes with a designated root.
type Tree struct {
	Nodes      []Node
	Root       NodeID
	GroupCount int
}

// NewTree returns an empty tree with no root.
func NewTree() *Tree {
	return &Tree{
		Nodes: make([]Node, 0, 16),
		Root:  NoNode,
	}
}

// Add appends n to the arena and returns its ID.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(conv.IntToInt32(len(t.Nodes)))
	t.Nodes = append(t.Nodes, n)
	return id
}

// Node returns the node with the given ID.
// It panics if id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Clone returns a deep copy of t. Child slices are copied so the clone can be
// extended independently.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Nodes:      make([]Node, len(t.Nodes), cap(t.Nodes)),
		Root:       t.Root,
		GroupCount: t.GroupCount,
	}
	copy(c.Nodes, t.Nodes)
	for i := range c.Nodes {
		if items := c.Nodes[i].Items; items != nil {
			c.Nodes[i].Items = append([]NodeID(nil), items...)
		}
	}
	return c
}

// Leaf constructors.

func characterNode(c rune) Node {
	return Node{Kind: KindCharacter, Char: c, Alt: NoNode, Sub: NoNode, Index: NoGroup}
}

func rangeNode(lo, hi rune) Node {
	return Node{Kind: KindCharacterRange, Lo: lo, Hi: hi, Alt: NoNode, Sub: NoNode, Index: NoGroup}
}

func kindNode(k Kind) Node {
	return Node{Kind: k, Alt: NoNode, Sub: NoNode, Index: NoGroup}
}

// NewLeaf returns a node of kind k with every child reference unset.
func NewLeaf(k Kind) Node {
	return kindNode(k)
}

// NewGroupBoundary returns a GroupEntry or GroupExit node for group index.
func NewGroupBoundary(k Kind, index int) Node {
	n := kindNode(k)
	n.Index = index
	return n
}
