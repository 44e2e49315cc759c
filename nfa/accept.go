package nfa

import (
	"fmt"
	"unicode"

	"github.com/coregx/regnfa/syntax"
)

// accepts reports whether the edge labeled id can be taken at pos.
//
// Consuming labels test ctx.Text[pos] and are false at the end of the text.
// Zero-width labels test the position. Compound labels cannot appear on edges
// of a validated NFA; reaching one here is a bug and panics.
func (n *NFA) accepts(id syntax.NodeID, ctx *Context, pos int) bool {
	label := n.tree.Node(id)
	text := ctx.Text
	flags := ctx.Flags

	switch label.Kind {
	case syntax.KindCharacter, syntax.KindCharacterRange, syntax.KindCharacterGroup:
		if pos >= len(text) {
			return false
		}
		return n.matchesClass(label, text[pos], flags.Has(syntax.FlagIgnoreCase))

	case syntax.KindAnyCharacter:
		if pos >= len(text) {
			return false
		}
		return text[pos] != '\n' || flags.Has(syntax.FlagDotAll)

	case syntax.KindEpsilon, syntax.KindGroupLink, syntax.KindGroupEntry, syntax.KindGroupExit:
		return true

	case syntax.KindStartOfString:
		if pos == 0 {
			return true
		}
		return flags.Has(syntax.FlagMultiline) && pos <= len(text) && text[pos-1] == '\n'

	case syntax.KindEndOfString:
		if pos == len(text) {
			return true
		}
		if pos < len(text) && text[pos] == '\n' {
			return pos == len(text)-1 || flags.Has(syntax.FlagMultiline)
		}
		return false

	case syntax.KindStartOfStringOnly, syntax.KindEmptyString:
		return pos == 0

	case syntax.KindEndOfStringOnlyNotNewline:
		return pos == len(text)

	case syntax.KindEndOfStringOnlyMaybeNewline:
		return pos == len(text) || (pos == len(text)-1 && text[pos] == '\n')

	case syntax.KindWordBoundary:
		return isWordBoundary(text, pos)

	case syntax.KindNonWordBoundary:
		return !isWordBoundary(text, pos)
	}

	panic(fmt.Sprintf("nfa: %s node used as a transition label", label.Kind))
}

// matchesClass tests c against a character, range or character group label.
func (n *NFA) matchesClass(label *syntax.Node, c rune, fold bool) bool {
	switch label.Kind {
	case syntax.KindCharacter:
		return c == label.Char || (fold && equalFold(c, label.Char))
	case syntax.KindCharacterRange:
		return inRange(c, label.Lo, label.Hi, fold)
	case syntax.KindCharacterGroup:
		found := false
		for _, item := range label.Items {
			if n.matchesClass(n.tree.Node(item), c, fold) {
				found = true
				break
			}
		}
		return found != label.Negated
	}
	panic(fmt.Sprintf("nfa: %s node inside a character group", label.Kind))
}

// equalFold reports whether a and b are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// inRange reports whether c, or any case variant of c when fold is set, lies
// in [lo, hi].
func inRange(c, lo, hi rune, fold bool) bool {
	if lo <= c && c <= hi {
		return true
	}
	if !fold {
		return false
	}
	for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
		if lo <= f && f <= hi {
			return true
		}
	}
	return false
}

// isWordRune matches the characters of \w.
func isWordRune(c rune) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

func isWordBoundary(text []rune, pos int) bool {
	before := pos > 0 && pos <= len(text) && isWordRune(text[pos-1])
	after := pos < len(text) && isWordRune(text[pos])
	return before != after
}
