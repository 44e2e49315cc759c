// Package literal extracts the literal prefixes a pattern's matches must start
// with.
//
// The prefixes feed the prefilter: if every match begins with one of a small
// set of strings, a multi-literal search can skip start offsets where none of
// them occurs before running the automaton.
//
// Key concepts:
//   - A Literal is a rune sequence, marked Complete when it spans a whole
//     match rather than just its beginning
//   - A Seq is a set of alternative literals; a nil *Seq means "unknown", i.e.
//     the pattern can start with anything
package literal

import (
	"slices"
	"strings"
)

// Literal is a rune sequence extracted from a pattern.
//
// Example:
//   - Pattern /hello/ → Literal{"hello", Complete: true}
//   - Pattern /hello\d+/ → Literal{"hello", Complete: false}
type Literal struct {
	// Runes contains the literal text.
	Runes []rune

	// Complete reports whether the literal is the entire match of the node it
	// was extracted from, so that what follows can be appended to it.
	Complete bool
}

// NewLiteral creates a Literal from s.
func NewLiteral(s string, complete bool) Literal {
	return Literal{Runes: []rune(s), Complete: complete}
}

// Len returns the length of the literal in runes.
func (l Literal) Len() int {
	return len(l.Runes)
}

// Bytes returns the literal encoded as UTF-8.
func (l Literal) Bytes() []byte {
	return []byte(string(l.Runes))
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{text, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Runes) + ", complete=" + complete + "}"
}

func (l Literal) equal(o Literal) bool {
	return l.Complete == o.Complete && slices.Equal(l.Runes, o.Runes)
}

// Seq is a set of alternative literals, in pattern order.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns the literals in order. The slice must not be modified.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// IsFinite reports whether the set is known. A nil Seq stands for "any
// string".
func (s *Seq) IsFinite() bool {
	return s != nil
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	lits := make([]Literal, len(s.literals))
	for i, l := range s.literals {
		lits[i] = Literal{Runes: slices.Clone(l.Runes), Complete: l.Complete}
	}
	return &Seq{literals: lits}
}

// HasEmpty reports whether any literal is empty. A prefix set with an empty
// member does not constrain where matches start.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.Literals() {
		if len(l.Runes) == 0 {
			return true
		}
	}
	return false
}

// MinLen returns the length in runes of the shortest literal, or 0 for an
// empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := len(s.literals[0].Runes)
	for _, l := range s.literals[1:] {
		m = min(m, len(l.Runes))
	}
	return m
}

// MakeInexact marks every literal as incomplete.
func (s *Seq) MakeInexact() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Truncate cuts every literal to at most n runes and removes duplicates.
// Cut literals become incomplete.
func (s *Seq) Truncate(n int) {
	for i := range s.literals {
		if len(s.literals[i].Runes) > n {
			s.literals[i].Runes = s.literals[i].Runes[:n]
			s.literals[i].Complete = false
		}
	}
	s.Dedup()
}

// Dedup removes repeated literals, keeping the first occurrence. A literal
// that appears both complete and incomplete is kept once, as incomplete.
func (s *Seq) Dedup() {
	out := s.literals[:0]
	for _, l := range s.literals {
		dup := false
		for j := range out {
			if slices.Equal(out[j].Runes, l.Runes) {
				out[j].Complete = out[j].Complete && l.Complete
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	s.literals = out
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
func (s *Seq) LongestCommonPrefix() []rune {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Runes
	for _, l := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(l.Runes) && prefix[n] == l.Runes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return slices.Clone(prefix)
}

// String renders the sequence for debugging, e.g. ["foo" "bar"...].
// Incomplete literals carry a trailing "...".
func (s *Seq) String() string {
	if s == nil {
		return "<infinite>"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, l := range s.literals {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('"')
		b.WriteString(string(l.Runes))
		b.WriteByte('"')
		if !l.Complete {
			b.WriteString("...")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// union returns the literals of a followed by those of b.
// Either side being infinite makes the union infinite.
func union(a, b *Seq) *Seq {
	if a == nil || b == nil {
		return nil
	}
	lits := make([]Literal, 0, len(a.literals)+len(b.literals))
	lits = append(lits, a.literals...)
	lits = append(lits, b.literals...)
	s := &Seq{literals: lits}
	s.Dedup()
	return s
}

// cross extends every complete literal of a with every literal of b.
// Incomplete literals of a are kept as they are. An infinite b leaves a's
// literals in place but incomplete.
func cross(a, b *Seq) *Seq {
	if a == nil {
		return nil
	}
	if b == nil {
		out := a.Clone()
		out.MakeInexact()
		return out
	}
	var lits []Literal
	for _, x := range a.literals {
		if !x.Complete {
			lits = append(lits, x)
			continue
		}
		for _, y := range b.literals {
			runes := make([]rune, 0, len(x.Runes)+len(y.Runes))
			runes = append(runes, x.Runes...)
			runes = append(runes, y.Runes...)
			lits = append(lits, Literal{Runes: runes, Complete: y.Complete})
		}
	}
	s := &Seq{literals: lits}
	s.Dedup()
	return s
}

// allInexact reports whether no literal can be extended further.
func (s *Seq) allInexact() bool {
	for _, l := range s.Literals() {
		if l.Complete {
			return false
		}
	}
	return true
}
