package regnfa

import "fmt"

// Match is a successful match: a span of the subject text plus the offsets of
// every capturing group. Offsets are rune offsets.
type Match struct {
	text       []rune
	start, end int

	// slots holds 2 offsets per group (entry, exit); -1 when unset.
	slots []int
}

// Submatch is the result of one capturing group.
type Submatch struct {
	Start, End int
	Text       string

	// Matched is false when the group did not take part in the match. Start
	// and End are then -1 and Text is "".
	Matched bool
}

// Span returns the start and end offsets of the match, start <= end.
func (m *Match) Span() (start, end int) {
	return m.start, m.end
}

// Start returns the offset where the match begins.
func (m *Match) Start() int {
	return m.start
}

// End returns the offset just past the match.
func (m *Match) End() int {
	return m.end
}

// Text returns the matched text, i.e. group 0.
func (m *Match) Text() string {
	return string(m.text[m.start:m.end])
}

// Len returns the length of the match in runes.
func (m *Match) Len() int {
	return m.end - m.start
}

// Group returns the text of group i. Group 0 is the whole match and groups
// 1..N are the capturing groups in the order of their opening parenthesis.
// ok is false if the group did not take part in the match or i is out of
// range.
func (m *Match) Group(i int) (s string, ok bool) {
	start, end, ok := m.GroupSpan(i)
	if !ok {
		return "", false
	}
	return string(m.text[start:end]), true
}

// GroupSpan returns the offsets of group i, numbered as in Group.
func (m *Match) GroupSpan(i int) (start, end int, ok bool) {
	if i == 0 {
		return m.start, m.end, true
	}
	if i < 0 || 2*i > len(m.slots) {
		return -1, -1, false
	}
	start, end = m.slots[2*(i-1)], m.slots[2*(i-1)+1]
	if start < 0 || end < 0 {
		return -1, -1, false
	}
	return start, end, true
}

// GroupCount returns the number of capturing groups, excluding group 0.
func (m *Match) GroupCount() int {
	return len(m.slots) / 2
}

// Groups returns capturing groups 1..N in order.
func (m *Match) Groups() []Submatch {
	out := make([]Submatch, m.GroupCount())
	for i := range out {
		start, end, ok := m.GroupSpan(i + 1)
		out[i] = Submatch{Start: start, End: end, Matched: ok}
		if ok {
			out[i].Text = string(m.text[start:end])
		}
	}
	return out
}

// String returns a string representation of the match for debugging purposes.
// Format: Match{span=(0, 3), text="aaa"}
func (m *Match) String() string {
	return fmt.Sprintf("Match{span=(%d, %d), text=%q}", m.start, m.end, m.Text())
}
