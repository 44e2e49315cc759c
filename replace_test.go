package regnfa

import (
	"strconv"
	"strings"
	"testing"
)

func TestReplaceAllString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
		want    string
	}{
		{`\d+`, "age: 42", "XX", "age: XX"},
		{`\d+`, "1 2 3", "X", "X X X"},
		{`\d+`, "abc", "X", "abc"},
		{`\s+`, "a  b   c", " ", "a b c"},
		{`(\w+)@(\w+)`, "user@host", "$2 at ${1}", "host at user"},
		{`(\w+)@(\w+)`, "user@host", "[$0]", "[user@host]"},
		{`(a)(b)?`, "a", "<$2>", "<>"},
		{`(a)`, "a", "$9", ""},
		{`a`, "a", "$$", "$"},
		{`a`, "a", "$x", "$x"},
		{`a`, "a", "${1", "${1"},
		{`(a)`, "a", "${1}0", "a0"},
		{`x*`, "abc", "-", "-a-b-c-"},
		{`a*`, "baaac", "-", "-b--c-"},
		{`本`, "日本語", "[$0]", "日[本]語"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.repl, func(t *testing.T) {
			got := MustCompile(tt.pattern).ReplaceAllString(tt.input, tt.repl)
			if got != tt.want {
				t.Errorf("ReplaceAllString(%q, %q) = %q, want %q", tt.input, tt.repl, got, tt.want)
			}
		})
	}
}

func TestReplaceN(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
		n       int
		want    string
		count   int
	}{
		{`a`, "aaaa", "b", 2, "bbaa", 2},
		{`a`, "aaaa", "b", -1, "bbbb", 4},
		{`a`, "aaaa", "b", 0, "aaaa", 0},
		{`a`, "xyz", "b", -1, "xyz", 0},
		{`(\d)`, "1 2 3", "<$1>", 10, "<1> <2> <3>", 3},
	}

	for _, tt := range tests {
		got, count := MustCompile(tt.pattern).ReplaceN(tt.input, tt.repl, tt.n)
		if got != tt.want || count != tt.count {
			t.Errorf("ReplaceN(%q, %q, %q, %d) = %q, %d, want %q, %d",
				tt.pattern, tt.input, tt.repl, tt.n, got, count, tt.want, tt.count)
		}
	}
}

func TestReplaceAllStringFunc(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.ReplaceAllStringFunc("1 2 30", func(s string) string {
		n, _ := strconv.Atoi(s)
		return strconv.Itoa(n * 2)
	})
	if got != "2 4 60" {
		t.Errorf("ReplaceAllStringFunc = %q, want %q", got, "2 4 60")
	}

	// The replacement is literal.
	got = re.ReplaceAllStringFunc("7", func(string) string { return "$0" })
	if got != "$0" {
		t.Errorf("ReplaceAllStringFunc expanded $0: %q", got)
	}
}

func TestReplaceAllFunc(t *testing.T) {
	re := MustCompile(`(\w+)=(\w+)`)
	got := re.ReplaceAllFunc("a=1, b=2", func(m *Match) string {
		k, _ := m.Group(1)
		v, _ := m.Group(2)
		return strings.ToUpper(k) + ":" + v
	})
	if got != "A:1, B:2" {
		t.Errorf("ReplaceAllFunc = %q, want %q", got, "A:1, B:2")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []string
	}{
		{`,\s*`, "a, b,c", -1, []string{"a", "b", "c"}},
		{`,\s*`, "a, b,c", 2, []string{"a", "b,c"}},
		{`,\s*`, "a, b,c", 1, []string{"a, b,c"}},
		{`,\s*`, "a, b,c", 0, nil},
		{`,`, "", -1, []string{""}},
		{`,`, "abc", -1, []string{"abc"}},
		{`,`, ",a,", -1, []string{"", "a", ""}},
		{`x*`, "abc", -1, []string{"", "a", "b", "c", ""}},
		{`本`, "日本語本", -1, []string{"日", "語", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got := MustCompile(tt.pattern).Split(tt.input, tt.n)
			if !equalStrings(got, tt.want) || (got == nil) != (tt.want == nil) {
				t.Errorf("Split(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
