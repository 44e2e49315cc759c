package nfa

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/regnfa/syntax"
)

// TestPikeVM_MatchAt tests anchored matching from a given start offset.
func TestPikeVM_MatchAt(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		text      string
		start     int
		wantEnd   int
		wantFound bool
	}{
		{name: "literal", pattern: "foo", text: "foobar", wantEnd: 3, wantFound: true},
		{name: "literal mismatch", pattern: "foo", text: "fob", wantEnd: -1},
		{name: "anchored at start offset", pattern: "bar", text: "foobar", start: 3, wantEnd: 6, wantFound: true},
		{name: "greedy plus", pattern: "a+", text: "aaab", wantEnd: 3, wantFound: true},
		{name: "lazy plus", pattern: "a+?", text: "aaab", wantEnd: 1, wantFound: true},
		{name: "greedy star empty", pattern: "[a-z]*", text: "E", wantEnd: 0, wantFound: true},
		{name: "lazy star", pattern: "a*?b", text: "aaab", wantEnd: 4, wantFound: true},
		{name: "alternation leftmost first", pattern: "a|ab", text: "ab", wantEnd: 1, wantFound: true},
		{name: "alternation second branch", pattern: "ab|a", text: "ab", wantEnd: 2, wantFound: true},
		{name: "optional greedy", pattern: "ab?", text: "ab", wantEnd: 2, wantFound: true},
		{name: "optional lazy", pattern: "ab??", text: "ab", wantEnd: 1, wantFound: true},
		{name: "exact range", pattern: "a{3}", text: "aaaa", wantEnd: 3, wantFound: true},
		{name: "exact range short", pattern: "a{3}", text: "aa", wantEnd: -1},
		{name: "bounded range", pattern: "a{1,3}", text: "aaaaa", wantEnd: 3, wantFound: true},
		{name: "bounded range lazy", pattern: "a{1,3}?", text: "aaaaa", wantEnd: 1, wantFound: true},
		{name: "unbounded range", pattern: "a{2,}", text: "aaaaa", wantEnd: 5, wantFound: true},
		{name: "zero range", pattern: "a{0}b", text: "b", wantEnd: 1, wantFound: true},
		{name: "upper only", pattern: "a{,2}", text: "aaa", wantEnd: 2, wantFound: true},
		{name: "any char", pattern: "a.c", text: "abc", wantEnd: 3, wantFound: true},
		{name: "any char not newline", pattern: "a.c", text: "a\nc", wantEnd: -1},
		{name: "class", pattern: `\d+`, text: "123x", wantEnd: 3, wantFound: true},
		{name: "negated class", pattern: `\D+`, text: "ab1", wantEnd: 2, wantFound: true},
		{name: "word class", pattern: `\w+`, text: "a_Z9-", wantEnd: 4, wantFound: true},
		{name: "space class", pattern: `\s+`, text: " \t\n\r\f\vx", wantEnd: 6, wantFound: true},
		{name: "negated group", pattern: "[^abc]+", text: "xyza", wantEnd: 3, wantFound: true},
		{name: "group with members", pattern: `[a-c\d_]+`, text: "ab1_d", wantEnd: 4, wantFound: true},
		{name: "past end", pattern: "a", text: "a", start: 2, wantEnd: -1},
		{name: "consuming at end", pattern: "a", text: "a", start: 1, wantEnd: -1},
		{name: "empty alternative", pattern: "a|", text: "b", wantEnd: 0, wantFound: true},
		{name: "empty group", pattern: "()b", text: "b", wantEnd: 1, wantFound: true},
		{name: "nested star terminates", pattern: "(a*)*b", text: "aab", wantEnd: 3, wantFound: true},
		{name: "nested empty loop", pattern: "(a?)*", text: "aa", wantEnd: 2, wantFound: true},
		{name: "unicode", pattern: "日本+", text: "日本本語", wantEnd: 3, wantFound: true},
		{name: "pathological", pattern: "(a|aa)*b", text: strings.Repeat("a", 64), wantEnd: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			vm := NewPikeVM(n)
			ctx := NewContext(tt.text, n.Flags())

			cur, found := vm.MatchAt(ctx, tt.start)
			if found != tt.wantFound {
				t.Fatalf("MatchAt(%q, %q, %d) found = %v, want %v", tt.pattern, tt.text, tt.start, found, tt.wantFound)
			}
			if found && cur.Pos != tt.wantEnd {
				t.Errorf("MatchAt(%q, %q, %d) end = %d, want %d", tt.pattern, tt.text, tt.start, cur.Pos, tt.wantEnd)
			}
		})
	}
}

// TestPikeVM_Captures tests capture slot recording.
func TestPikeVM_Captures(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    []int
	}{
		{"(a)(b)?", "a", []int{0, 1, -1, -1}},
		{"(a)(b)?", "ab", []int{0, 1, 1, 2}},
		{"(a+)(b*)", "aab", []int{0, 2, 2, 3}},
		{"(a|ab)(c|bcd)", "abcd", []int{0, 1, 1, 4}},
		{"(a)*", "aaa", []int{2, 3}},
		{"(?:(a)|b)+", "ab", []int{0, 1}},
		{"((a)b)", "ab", []int{0, 2, 0, 1}},
		{"(a*)+", "b", []int{0, 0}},
		{"()", "", []int{0, 0}},
		{"(x)|(y)", "y", []int{-1, -1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			vm := NewPikeVM(n)
			cur, found := vm.MatchAt(NewContext(tt.text, n.Flags()), 0)
			if !found {
				t.Fatalf("MatchAt(%q, %q) found no match", tt.pattern, tt.text)
			}
			got := cur.Captures(n.GroupCount())
			if !slices.Equal(got, tt.want) {
				t.Errorf("Captures() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestPikeVM_Anchors tests zero-width assertions with and without multiline.
func TestPikeVM_Anchors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		text    string
		start   int
		want    bool
	}{
		{"^a", syntax.FlagNone, "a", 0, true},
		{"^a", syntax.FlagNone, "ba", 1, false},
		{"^a", syntax.FlagNone, "b\na", 2, false},
		{"^a", syntax.FlagMultiline, "b\na", 2, true},
		{"a$", syntax.FlagNone, "a", 0, true},
		{"a$", syntax.FlagNone, "a\n", 0, true},
		{"a$", syntax.FlagNone, "a\nb", 0, false},
		{"a$", syntax.FlagMultiline, "a\nb", 0, true},
		{"a$", syntax.FlagNone, "ab", 0, false},
		{`\Aa`, syntax.FlagMultiline, "b\na", 2, false},
		{`a\z`, syntax.FlagNone, "a\n", 0, false},
		{`a\z`, syntax.FlagNone, "a", 0, true},
		{`a\Z`, syntax.FlagNone, "a\n", 0, true},
		{`a\Z`, syntax.FlagNone, "a\n\n", 0, false},
		{`\bfoo\b`, syntax.FlagNone, "foo bar", 0, true},
		{`\bfoo\b`, syntax.FlagNone, "xfoo", 1, false},
		{`foo\b`, syntax.FlagNone, "foobar", 0, false},
		{`foo\B`, syntax.FlagNone, "foobar", 0, true},
		{`\B`, syntax.FlagNone, "", 0, true},
		{"", syntax.FlagNone, "abc", 0, true},
		{"", syntax.FlagNone, "abc", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompileFlags(t, tt.pattern, tt.flags)
			got := NewPikeVM(n).IsMatchAt(NewContext(tt.text, n.Flags()), tt.start)
			if got != tt.want {
				t.Errorf("IsMatchAt(%q, flags=%q, %q, %d) = %v, want %v",
					tt.pattern, tt.flags, tt.text, tt.start, got, tt.want)
			}
		})
	}
}

// TestPikeVM_Flags covers ignore-case and dot-all.
func TestPikeVM_Flags(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		text    string
		wantEnd int
	}{
		{"abc", syntax.FlagIgnoreCase, "ABC", 3},
		{"abc", syntax.FlagNone, "ABC", -1},
		{"(?i)straße", syntax.FlagNone, "STRAßE", 6},
		{"[a-c]+", syntax.FlagIgnoreCase, "aBcD", 3},
		{"[^a-c]", syntax.FlagIgnoreCase, "B", -1},
		{`\w+`, syntax.FlagIgnoreCase, "ab", 2},
		{"k", syntax.FlagIgnoreCase, "\u212A", 1}, // Kelvin sign folds to k
		{"a.b", syntax.FlagDotAll, "a\nb", 3},
		{"(?s)a.b", syntax.FlagNone, "a\nb", 3},
		{"a.b", syntax.FlagNone, "a\nb", -1},
		{"(?x) a b c # letters", syntax.FlagNone, "abc", 3},
		{"a b", syntax.FlagFreeSpacing, "ab", 2},
		{"a b", syntax.FlagNone, "a b", 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompileFlags(t, tt.pattern, tt.flags)
			cur, found := NewPikeVM(n).MatchAt(NewContext(tt.text, n.Flags()), 0)
			end := -1
			if found {
				end = cur.Pos
			}
			if end != tt.wantEnd {
				t.Errorf("MatchAt(%q, %q) end = %d, want %d", tt.pattern, tt.text, end, tt.wantEnd)
			}
		})
	}
}

// TestPikeVM_Reuse checks that scratch state does not leak between searches.
func TestPikeVM_Reuse(t *testing.T) {
	n := mustCompile(t, "(a+)b")
	vm := NewPikeVM(n)
	texts := []string{"aab", "b", "ab", "aaaa", "aaab"}
	want := []int{3, -1, 2, -1, 4}
	for i, text := range texts {
		cur, found := vm.MatchAt(NewContext(text, n.Flags()), 0)
		end := -1
		if found {
			end = cur.Pos
		}
		if end != want[i] {
			t.Errorf("search %d over %q: end = %d, want %d", i, text, end, want[i])
		}
	}
}

// TestPikeVM_SharedNFA runs one NFA from many goroutines, each with its own VM.
func TestPikeVM_SharedNFA(t *testing.T) {
	n := mustCompile(t, `(\w+)@(\w+)`)
	ctx := NewContext("user@example", n.Flags())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vm := NewPikeVM(n)
			for j := 0; j < 100; j++ {
				cur, ok := vm.MatchAt(ctx, 0)
				if !ok || cur.Pos != 12 {
					t.Errorf("MatchAt = %d, %v, want 12, true", cur.Pos, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPikeVM_CompoundLabelPanics(t *testing.T) {
	tree := syntax.MustParse("ab", nil)
	n := &NFA{tree: tree}

	defer func() {
		if recover() == nil {
			t.Error("accepts on a compound label did not panic")
		}
	}()
	n.accepts(tree.Root, NewContext("ab", syntax.FlagNone), 0)
}

func BenchmarkPikeVM_MatchAt(b *testing.B) {
	n, err := Compile(`(\w+)\s+(\d{2,4})`, syntax.FlagNone)
	if err != nil {
		b.Fatal(err)
	}
	vm := NewPikeVM(n)
	ctx := NewContext("release 2024 notes", n.Flags())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.MatchAt(ctx, 0)
	}
}
