package literal

import (
	"github.com/coregx/regnfa/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: caps each literal; longer ones are cut and marked incomplete
//   - MaxClassSize: prevents expanding large character groups like [a-z]
//   - MaxDepth: bounds recursion over deeply nested groups
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals. Exceeding it makes the
	// result unknown. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits each literal's length in runes. Default: 16.
	MaxLiteralLen int

	// MaxClassSize limits the size of character groups to expand.
	// [abc] expands to "a", "b", "c"; [a-z] is too large. Default: 10.
	MaxClassSize int

	// MaxDepth limits recursion. Default: 64.
	MaxDepth int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 16,
		MaxClassSize:  10,
		MaxDepth:      64,
	}
}

// Extractor extracts literal prefixes from syntax trees.
//
// Example:
//
//	tree, _ := syntax.Parse("(hello|world)", nil)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(tree, syntax.FlagNone)
//	// prefixes = ["hello" "world"]
type Extractor struct {
	config ExtractorConfig
	tree   *syntax.Tree
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract returns the prefixes of tree using the default configuration.
func Extract(tree *syntax.Tree, flags syntax.Flags) *Seq {
	return New(DefaultConfig()).ExtractPrefixes(tree, flags)
}

// ExtractPrefixes returns a set of literals such that every match of tree
// starts with one of them. It returns nil when no such finite set is known:
// when the pattern can start with an arbitrary character, when one of the
// prefixes would be empty, when limits are exceeded, or when flags enable
// case-insensitive matching.
//
// Examples:
//
//	"hello"         → ["hello"]
//	"(foo|bar)"     → ["foo" "bar"]
//	"[abc]test"     → ["atest" "btest" "ctest"]
//	"hello.*world"  → ["hello"...]
//	".*foo"         → nil
//	"a?b"           → ["ab" "b"]
func (e *Extractor) ExtractPrefixes(tree *syntax.Tree, flags syntax.Flags) *Seq {
	if tree == nil || tree.Root == syntax.NoNode || flags.Has(syntax.FlagIgnoreCase) {
		return nil
	}
	e.tree = tree
	seq := e.prefixes(tree.Root, 0)
	if seq == nil || seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}
	return seq
}

func (e *Extractor) prefixes(id syntax.NodeID, depth int) *Seq {
	if depth > e.config.MaxDepth {
		return nil
	}
	n := e.tree.Node(id)

	var seq *Seq
	switch n.Kind {
	case syntax.KindCharacter:
		seq = NewSeq(Literal{Runes: []rune{n.Char}, Complete: true})
	case syntax.KindCharacterGroup:
		seq = e.expandGroup(n)
	case syntax.KindAnyCharacter, syntax.KindCharacterRange:
		return nil
	case syntax.KindExpression:
		seq = e.concat(n.Items, depth)
		if seq != nil && n.Alt != syntax.NoNode {
			seq = union(seq, e.prefixes(n.Alt, depth+1))
		}
	case syntax.KindMatch, syntax.KindGroup:
		seq = e.quantified(e.prefixes(n.Sub, depth+1), n.Quant)
	default:
		// Anchors and epsilon are zero-width and add no text.
		seq = NewSeq(Literal{Complete: true})
	}
	return e.limit(seq)
}

func (e *Extractor) concat(items []syntax.NodeID, depth int) *Seq {
	acc := NewSeq(Literal{Complete: true})
	for _, item := range items {
		next := e.prefixes(item, depth+1)
		acc = e.limit(cross(acc, next))
		if acc == nil || acc.allInexact() {
			break
		}
	}
	return acc
}

// quantified adjusts sub for a quantifier. Optional repetition adds the empty
// literal; any repetition beyond one copy makes the literals incomplete.
func (e *Extractor) quantified(sub *Seq, q syntax.Quantifier) *Seq {
	empty := NewSeq(Literal{Complete: true})
	switch q.Kind {
	case syntax.QuantNone:
		return sub
	case syntax.QuantZeroOrOne:
		return union(sub, empty)
	case syntax.QuantZeroOrMore:
		if sub == nil {
			return nil
		}
		inexact := sub.Clone()
		inexact.MakeInexact()
		return union(inexact, empty)
	case syntax.QuantOneOrMore:
		if sub == nil {
			return nil
		}
		inexact := sub.Clone()
		inexact.MakeInexact()
		return inexact
	case syntax.QuantRange:
		if q.Lower == 0 {
			if q.Upper.Kind == syntax.BoundUndefined {
				return empty
			}
			if sub == nil {
				return nil
			}
			inexact := sub.Clone()
			inexact.MakeInexact()
			return union(inexact, empty)
		}
		if q.Lower == 1 && q.Upper.Kind == syntax.BoundUndefined {
			return sub
		}
		if sub == nil {
			return nil
		}
		inexact := sub.Clone()
		inexact.MakeInexact()
		return inexact
	}
	return nil
}

// expandGroup turns a small, non-negated character group into one literal per
// member character.
func (e *Extractor) expandGroup(n *syntax.Node) *Seq {
	if n.Negated {
		return nil
	}
	var lits []Literal
	var walk func(items []syntax.NodeID) bool
	walk = func(items []syntax.NodeID) bool {
		for _, item := range items {
			m := e.tree.Node(item)
			switch m.Kind {
			case syntax.KindCharacter:
				lits = append(lits, Literal{Runes: []rune{m.Char}, Complete: true})
			case syntax.KindCharacterRange:
				if int(m.Hi-m.Lo)+1 > e.config.MaxClassSize {
					return false
				}
				for c := m.Lo; c <= m.Hi; c++ {
					lits = append(lits, Literal{Runes: []rune{c}, Complete: true})
				}
			case syntax.KindCharacterGroup:
				if m.Negated || !walk(m.Items) {
					return false
				}
			default:
				return false
			}
			if len(lits) > e.config.MaxClassSize {
				return false
			}
		}
		return true
	}
	if !walk(n.Items) {
		return nil
	}
	seq := NewSeq(lits...)
	seq.Dedup()
	return seq
}

// limit enforces MaxLiterals and MaxLiteralLen.
func (e *Extractor) limit(seq *Seq) *Seq {
	if seq == nil {
		return nil
	}
	if seq.Len() > e.config.MaxLiterals {
		return nil
	}
	for _, l := range seq.literals {
		if len(l.Runes) > e.config.MaxLiteralLen {
			seq.Truncate(e.config.MaxLiteralLen)
			break
		}
	}
	return seq
}
