package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the tree back into pattern syntax. Parsing the result with
// the same flags yields a structurally equal tree.
func (t *Tree) String() string {
	if t == nil || t.Root == NoNode {
		return ""
	}
	var b strings.Builder
	t.writeNode(&b, t.Root)
	return b.String()
}

func (t *Tree) writeNode(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	switch n.Kind {
	case KindCharacter:
		writeLiteral(b, n.Char, false)
	case KindCharacterRange:
		b.WriteRune(n.Lo)
		b.WriteByte('-')
		b.WriteRune(n.Hi)
	case KindMatch:
		t.writeNode(b, n.Sub)
		writeQuantifier(b, n.Quant)
	case KindExpression:
		for _, item := range n.Items {
			t.writeNode(b, item)
		}
		if n.Alt != NoNode {
			b.WriteByte('|')
			t.writeNode(b, n.Alt)
		}
	case KindGroup:
		b.WriteByte('(')
		if n.Index == NoGroup {
			b.WriteString("?:")
		}
		t.writeNode(b, n.Sub)
		b.WriteByte(')')
		writeQuantifier(b, n.Quant)
	case KindAnyCharacter:
		b.WriteByte('.')
	case KindCharacterGroup:
		if n.Class != 0 {
			b.WriteByte('\\')
			b.WriteRune(n.Class)
			return
		}
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		for _, item := range n.Items {
			m := t.Node(item)
			if m.Kind == KindCharacter {
				writeLiteral(b, m.Char, true)
				continue
			}
			t.writeNode(b, item)
		}
		b.WriteByte(']')
	case KindEpsilon, KindEmptyString, KindGroupLink, KindGroupEntry, KindGroupExit:
	case KindStartOfString:
		b.WriteByte('^')
	case KindEndOfString:
		b.WriteByte('$')
	case KindStartOfStringOnly:
		b.WriteString(`\A`)
	case KindEndOfStringOnlyNotNewline:
		b.WriteString(`\z`)
	case KindEndOfStringOnlyMaybeNewline:
		b.WriteString(`\Z`)
	case KindWordBoundary:
		b.WriteString(`\b`)
	case KindNonWordBoundary:
		b.WriteString(`\B`)
	}
}

var controlEscapes = map[rune]string{
	'\n': `\n`, '\t': `\t`, '\r': `\r`, '\f': `\f`, '\v': `\v`,
}

// writeLiteral writes c so that it parses back as the same character. Inside
// a character group only ']', '\\', '-' and '^' need escaping.
func writeLiteral(b *strings.Builder, c rune, inGroup bool) {
	if esc, ok := controlEscapes[c]; ok {
		b.WriteString(esc)
		return
	}
	switch {
	case inGroup && (c == ']' || c == '\\' || c == '-' || c == '^' || c == '['):
		b.WriteByte('\\')
	case !inGroup && isMeta(c):
		b.WriteByte('\\')
	}
	b.WriteRune(c)
}

func writeQuantifier(b *strings.Builder, q Quantifier) {
	switch q.Kind {
	case QuantNone:
		return
	case QuantZeroOrMore:
		b.WriteByte('*')
	case QuantOneOrMore:
		b.WriteByte('+')
	case QuantZeroOrOne:
		b.WriteByte('?')
	case QuantRange:
		b.WriteByte('{')
		b.WriteString(strconv.FormatUint(q.Lower, 10))
		switch q.Upper.Kind {
		case BoundUnbounded:
			b.WriteByte(',')
		case BoundBounded:
			b.WriteByte(',')
			b.WriteString(strconv.FormatUint(q.Upper.N, 10))
		}
		b.WriteByte('}')
	}
	if q.Lazy {
		b.WriteByte('?')
	}
}

// String returns the quantifier in pattern syntax, or "" for QuantNone.
func (q Quantifier) String() string {
	var b strings.Builder
	writeQuantifier(&b, q)
	return b.String()
}

// Dump returns an indented, one-node-per-line rendering of the tree for
// debugging.
func (t *Tree) Dump() string {
	if t == nil || t.Root == NoNode {
		return "<empty>\n"
	}
	var b strings.Builder
	t.dumpNode(&b, t.Root, 0)
	return b.String()
}

func (t *Tree) dumpNode(b *strings.Builder, id NodeID, depth int) {
	n := t.Node(id)
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%d %s", id, n.Kind)
	switch n.Kind {
	case KindCharacter:
		fmt.Fprintf(b, " %q", n.Char)
	case KindCharacterRange:
		fmt.Fprintf(b, " %q-%q", n.Lo, n.Hi)
	case KindGroup, KindGroupEntry, KindGroupExit:
		fmt.Fprintf(b, " index=%d", n.Index)
	case KindCharacterGroup:
		if n.Negated {
			b.WriteString(" negated")
		}
	}
	if !n.Quant.IsNone() {
		fmt.Fprintf(b, " quant=%s", n.Quant)
	}
	b.WriteByte('\n')

	switch n.Kind {
	case KindMatch, KindGroup:
		t.dumpNode(b, n.Sub, depth+1)
	case KindExpression, KindCharacterGroup:
		for _, item := range n.Items {
			t.dumpNode(b, item, depth+1)
		}
		if n.Alt != NoNode {
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString("|\n")
			t.dumpNode(b, n.Alt, depth+1)
		}
	}
}
