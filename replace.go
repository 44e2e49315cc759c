package regnfa

import (
	"strconv"
	"strings"
)

// ReplaceAllString returns a copy of text with every match replaced by repl.
//
// Inside repl, $0..$9 and ${n} are replaced by the text of the corresponding
// group, and $$ by a literal '$'. Groups that did not take part in the match,
// or that do not exist, expand to "".
//
// Example:
//
//	re := regnfa.MustCompile(`(\w+)@(\w+)`)
//	re.ReplaceAllString("user@host", "$2 at ${1}") // "host at user"
func (r *Regex) ReplaceAllString(text, repl string) string {
	s, _ := r.ReplaceN(text, repl, -1)
	return s
}

// ReplaceN is like ReplaceAllString but replaces at most n matches (all of
// them if n < 0). It also returns the number of replacements made.
//
// Example:
//
//	re := regnfa.MustCompile(`a`)
//	re.ReplaceN("aaaa", "b", 2) // "bbaa", 2
func (r *Regex) ReplaceN(text, repl string, n int) (string, int) {
	return r.replace(text, n, func(b *strings.Builder, m *Match) {
		expand(b, repl, m)
	})
}

// ReplaceAllStringFunc returns a copy of text in which every match is replaced
// by the return value of repl applied to the matched text. The replacement is
// inserted as is, without $ expansion.
func (r *Regex) ReplaceAllStringFunc(text string, repl func(string) string) string {
	s, _ := r.replace(text, -1, func(b *strings.Builder, m *Match) {
		b.WriteString(repl(m.Text()))
	})
	return s
}

// ReplaceAllFunc is like ReplaceAllStringFunc but passes the whole match, so
// that repl can inspect groups and offsets.
func (r *Regex) ReplaceAllFunc(text string, repl func(*Match) string) string {
	s, _ := r.replace(text, -1, func(b *strings.Builder, m *Match) {
		b.WriteString(repl(m))
	})
	return s
}

func (r *Regex) replace(text string, n int, write func(*strings.Builder, *Match)) (string, int) {
	if n == 0 {
		return text, 0
	}

	var b strings.Builder
	var runes []rune
	last, count := 0, 0
	it := r.FindIter(text)
	for n < 0 || count < n {
		m, ok := it.Next()
		if !ok {
			break
		}
		runes = m.text
		b.WriteString(string(runes[last:m.start]))
		write(&b, m)
		last = m.end
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(string(runes[last:]))
	return b.String(), count
}

// expand appends template to b, replacing $ references with groups of m.
func expand(b *strings.Builder, template string, m *Match) {
	for {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			b.WriteString(template)
			return
		}
		b.WriteString(template[:i])
		template = template[i:]

		group, rest, ok := groupRef(template)
		if !ok {
			// "$$" and unrecognized references produce a literal '$'.
			b.WriteByte('$')
			if strings.HasPrefix(template, "$$") {
				template = template[2:]
			} else {
				template = template[1:]
			}
			continue
		}
		if s, ok := m.Group(group); ok {
			b.WriteString(s)
		}
		template = rest
	}
}

// groupRef parses a group reference ($n or ${n}) at the start of s.
func groupRef(s string) (group int, rest string, ok bool) {
	if len(s) < 2 || s[0] != '$' {
		return 0, s, false
	}
	if isDigit(s[1]) {
		return int(s[1] - '0'), s[2:], true
	}
	if s[1] != '{' {
		return 0, s, false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[2:end])
	if err != nil || n < 0 {
		return 0, s, false
	}
	return n, s[end+1:], true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Split slices text into the substrings between matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring is the unsplit remainder
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
//
// Empty matches split too, so a pattern that can match the empty string
// produces empty substrings at those positions.
//
// Example:
//
//	re := regnfa.MustCompile(`,\s*`)
//	re.Split("a, b,c", -1) // ["a" "b" "c"]
//	re.Split("a, b,c", 2)  // ["a" "b,c"]
func (r *Regex) Split(text string, n int) []string {
	if n == 0 {
		return nil
	}

	var out []string
	runes := []rune(text)
	last := 0
	for m := range r.All(text) {
		if n > 0 && len(out) == n-1 {
			break
		}
		out = append(out, string(runes[last:m.start]))
		last = m.end
	}
	return append(out, string(runes[last:]))
}
