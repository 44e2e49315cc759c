// Package regnfa provides a regular expression engine built on an
// edge-labeled Thompson NFA simulated breadth-first (Pike VM).
//
// Matching never backtracks: every start offset is simulated once, with all
// competing hypotheses advanced in lockstep, so the running time is bounded by
// O(len(text) * edges) per start offset regardless of the pattern.
//
// Offsets reported by this package are rune offsets, not byte offsets.
//
// Basic usage:
//
//	// Compile a pattern
//	re, err := regnfa.Compile(`(\w+)@(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Find first match
//	s, ok := re.Find("mail user@example now")
//	fmt.Println(s, ok) // "user@example" true
//
//	// Iterate over all matches
//	for m := range re.All("a@b c@d") {
//	    user, _ := m.Group(1)
//	    fmt.Println(user)
//	}
//
// Flags can be passed to CompileFlags or set inline with a leading (?imsx)
// block:
//
//	re := regnfa.MustCompile(`(?i)hello`)
//	re.IsMatch("HELLO") // true
//
// Supported syntax: literals, '.', character groups [...] and ranges,
// \w \W \d \D \s \S, the anchors ^ $ \A \z \Z \b \B, capturing and
// non-capturing groups, alternation, and the quantifiers * + ? {n} {n,}
// {,n} {n,m} with lazy variants.
//
// Limitations:
//   - No backreferences
//   - No lookaround assertions
//   - No possessive quantifiers
//   - No Unicode property classes
package regnfa

import (
	"strings"
	"sync"

	"github.com/coregx/regnfa/literal"
	"github.com/coregx/regnfa/nfa"
	"github.com/coregx/regnfa/prefilter"
	"github.com/coregx/regnfa/syntax"
)

// Flags is a set of pattern options.
type Flags = syntax.Flags

// Pattern options. They correspond to the inline modifiers i, s, m and x.
const (
	IgnoreCase  = syntax.FlagIgnoreCase
	DotAll      = syntax.FlagDotAll
	Multiline   = syntax.FlagMultiline
	FreeSpacing = syntax.FlagFreeSpacing
	NoFlags     = syntax.FlagNone
)

// Config controls compilation.
type Config struct {
	// Flags are the initial pattern options. Inline modifiers add to them.
	Flags Flags

	// Compiler bounds the size of the automaton.
	Compiler nfa.CompilerConfig

	// Literals bounds literal prefix extraction for the prefilter.
	Literals literal.ExtractorConfig

	// EnablePrefilter lets searches skip start offsets where no literal
	// prefix of the pattern occurs. It never changes results.
	// Default: true
	EnablePrefilter bool
}

// DefaultConfig returns the default configuration for compilation.
//
// Example:
//
//	config := regnfa.DefaultConfig()
//	config.Compiler.MaxRepeat = 100
//	re, err := regnfa.CompileWithConfig("a{1,50}", config)
func DefaultConfig() Config {
	return Config{
		Flags:           NoFlags,
		Compiler:        nfa.DefaultCompilerConfig(),
		Literals:        literal.DefaultConfig(),
		EnablePrefilter: true,
	}
}

// Regex is a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines. The automaton
// is immutable; per-search scratch space comes from an internal pool.
//
// Example:
//
//	re := regnfa.MustCompile(`hello`)
//	if re.IsMatch("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	pattern   string
	nfa       *nfa.NFA
	prefilter prefilter.Prefilter
	vms       sync.Pool
}

// Regexp is an alias for Regex.
type Regexp = Regex

// Compile compiles a regular expression pattern with no initial flags.
//
// Parse failures are returned as *syntax.Error; patterns whose automaton
// would exceed the compiler limits return *nfa.CompileError wrapping
// nfa.ErrTooComplex.
//
// Example:
//
//	re, err := regnfa.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileFlags compiles pattern with the given initial flags.
func CompileFlags(pattern string, flags Flags) (*Regex, error) {
	config := DefaultConfig()
	config.Flags = flags
	return CompileWithConfig(pattern, config)
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	n, err := nfa.NewCompiler(config.Compiler).Compile(pattern, config.Flags)
	if err != nil {
		return nil, err
	}

	re := &Regex{pattern: pattern, nfa: n}
	if config.EnablePrefilter {
		prefixes := literal.New(config.Literals).ExtractPrefixes(n.Tree(), n.Flags())
		re.prefilter = prefilter.New(prefixes)
	}
	re.vms.New = func() any {
		return nfa.NewPikeVM(n)
	}
	return re, nil
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var emailRegex = regnfa.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regnfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// MustCompileFlags is like CompileFlags but panics if the pattern fails to
// compile.
func MustCompileFlags(pattern string, flags Flags) *Regex {
	re, err := CompileFlags(pattern, flags)
	if err != nil {
		panic("regnfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// QuoteMeta returns a pattern that matches the literal text s.
//
// Example:
//
//	escaped := regnfa.QuoteMeta("1+1=2?")
//	// escaped = `1\+1\=2\?`
func QuoteMeta(s string) string {
	// Space and '#' are escaped too, so the result survives free-spacing mode.
	const special = `$()*+-.<=>?[\]^{|}# `

	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case strings.ContainsRune(special, c):
			b.WriteByte('\\')
			b.WriteRune(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\f':
			b.WriteString(`\f`)
		case c == '\v':
			b.WriteString(`\v`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// GroupCount returns the number of capturing groups in the pattern.
func (r *Regex) GroupCount() int {
	return r.nfa.GroupCount()
}

// Flags returns the effective flags: those passed to the compiler plus any
// inline modifiers.
func (r *Regex) Flags() Flags {
	return r.nfa.Flags()
}

// NFA returns the compiled automaton.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// matchAt runs the automaton anchored at start with a pooled VM.
func (r *Regex) matchAt(ctx *nfa.Context, start int) (nfa.Cursor, bool) {
	vm := r.vms.Get().(*nfa.PikeVM)
	defer r.vms.Put(vm)
	return vm.MatchAt(ctx, start)
}

// IsMatch reports whether text contains any match of the pattern.
//
// Example:
//
//	re := regnfa.MustCompile(`\d+`)
//	re.IsMatch("hello 123") // true
func (r *Regex) IsMatch(text string) bool {
	_, ok := r.FindIter(text).Next()
	return ok
}

// Find returns the text of the leftmost match. ok is false if there is no
// match, which distinguishes "no match" from an empty match.
//
// Example:
//
//	re := regnfa.MustCompile(`\d+`)
//	s, _ := re.Find("age: 42 years")
//	// s = "42"
func (r *Regex) Find(text string) (s string, ok bool) {
	m, ok := r.FindIter(text).Next()
	if !ok {
		return "", false
	}
	return m.Text(), true
}

// FindMatch returns the leftmost match, or nil.
func (r *Regex) FindMatch(text string) *Match {
	m, _ := r.FindIter(text).Next()
	return m
}

// FindAll returns successive non-overlapping matches.
// If n >= 0, at most n matches are returned; n < 0 returns all matches.
func (r *Regex) FindAll(text string, n int) []*Match {
	if n == 0 {
		return nil
	}
	var out []*Match
	it := r.FindIter(text)
	for n < 0 || len(out) < n {
		m, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out
}

// FindAllString returns the text of successive non-overlapping matches.
// If n >= 0, at most n matches are returned; n < 0 returns all matches.
//
// Example:
//
//	re := regnfa.MustCompile(`\d+`)
//	re.FindAllString("1 22 333", -1) // ["1" "22" "333"]
func (r *Regex) FindAllString(text string, n int) []string {
	matches := r.FindAll(text, n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text()
	}
	return out
}

// FindStringSubmatch returns the text of the leftmost match followed by the
// text of each capturing group. Groups that did not participate are "".
// It returns nil if there is no match.
//
// Example:
//
//	re := regnfa.MustCompile(`(\w+)@(\w+)`)
//	re.FindStringSubmatch("user@host") // ["user@host" "user" "host"]
func (r *Regex) FindStringSubmatch(text string) []string {
	m := r.FindMatch(text)
	if m == nil {
		return nil
	}
	out := make([]string, 0, r.GroupCount()+1)
	out = append(out, m.Text())
	for _, g := range m.Groups() {
		out = append(out, g.Text)
	}
	return out
}

// Count returns the number of non-overlapping matches in text.
//
// Example:
//
//	re := regnfa.MustCompile(`\d+`)
//	re.Count("1 2 3 4 5") // 5
func (r *Regex) Count(text string) int {
	n := 0
	it := r.FindIter(text)
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}
