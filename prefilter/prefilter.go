// Package prefilter finds candidate match starts using the literal prefixes
// extracted from a pattern.
//
// A prefilter only rejects start offsets that cannot begin a match; the
// automaton still decides every candidate, so results never change.
//
// Strategy selection:
//   - One literal → substring search
//   - Several literals → Aho-Corasick automaton (github.com/coregx/ahocorasick)
//
// All literals are cut to the length of the shortest one first. Equal-length
// needles make the earliest-ending occurrence also the earliest-starting one,
// which is the candidate the caller needs.
//
// Example usage:
//
//	tree, _ := syntax.Parse("hello|world", nil)
//	pf := prefilter.New(literal.Extract(tree, syntax.FlagNone))
//	pos := pf.Find([]byte("foo hello bar world"), 0)
//	// pos == 4
package prefilter

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/regnfa/literal"
)

// Prefilter finds the next offset where one of the prefix literals occurs.
type Prefilter interface {
	// Find returns the byte offset of the first candidate at or after start,
	// or -1 if there is none.
	Find(haystack []byte, start int) int

	// LiteralLen returns the length of the searched literals in runes.
	LiteralLen() int
}

// Builder selects and builds a prefilter for a prefix set.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for prefixes. prefixes may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns a prefilter, or nil if the prefixes cannot constrain match
// starts (unknown, empty, or containing the empty string).
func (b *Builder) Build() Prefilter {
	if b.prefixes == nil || b.prefixes.IsEmpty() || b.prefixes.HasEmpty() {
		return nil
	}
	seq := b.prefixes.Clone()
	n := seq.MinLen()
	seq.Truncate(n)

	if seq.Len() == 1 {
		return newMemmemPrefilter(seq.Get(0).Bytes(), n)
	}
	pf, err := newAhoCorasickPrefilter(seq, n)
	if err != nil {
		return nil
	}
	return pf
}

// New builds a prefilter for prefixes, or returns nil.
func New(prefixes *literal.Seq) Prefilter {
	return NewBuilder(prefixes).Build()
}

// memmemPrefilter searches for a single literal.
type memmemPrefilter struct {
	needle []byte
	runes  int
}

func newMemmemPrefilter(needle []byte, runes int) Prefilter {
	return &memmemPrefilter{needle: needle, runes: runes}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	pos := bytes.Index(haystack[start:], p.needle)
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *memmemPrefilter) LiteralLen() int {
	return p.runes
}

// ahoCorasickPrefilter searches for any of several equal-length literals.
type ahoCorasickPrefilter struct {
	auto  *ahocorasick.Automaton
	runes int
}

func newAhoCorasickPrefilter(seq *literal.Seq, runes int) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range seq.Literals() {
		builder.AddPattern(lit.Bytes())
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto, runes: runes}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) LiteralLen() int {
	return p.runes
}

// Scanner adapts a byte-level prefilter to the rune offsets used by the
// matcher.
type Scanner struct {
	pf       Prefilter
	haystack []byte

	// offsets[i] is the byte offset of rune i; the last entry is len(haystack).
	offsets []int
}

// NewScanner prepares text for candidate search with pf. Rune offsets match
// those of []rune(text), also when text is not valid UTF-8.
func NewScanner(pf Prefilter, text string) *Scanner {
	if !utf8.ValidString(text) {
		// The matcher decodes every invalid byte as U+FFFD; search the same
		// runes so literals containing U+FFFD are found.
		text = string([]rune(text))
	}
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return &Scanner{pf: pf, haystack: []byte(text), offsets: offsets}
}

// Next returns the first rune offset at or after from where a candidate
// starts, or -1 if no later offset can begin a match.
func (s *Scanner) Next(from int) int {
	if from < 0 || from >= len(s.offsets) {
		return -1
	}
	pos := s.pf.Find(s.haystack, s.offsets[from])
	if pos < 0 {
		return -1
	}
	// Round down to the rune containing pos so no candidate is skipped.
	i := sort.Search(len(s.offsets), func(i int) bool { return s.offsets[i] > pos }) - 1
	return max(i, from)
}
