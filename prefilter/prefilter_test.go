package prefilter

import (
	"strings"
	"testing"

	"github.com/coregx/regnfa/literal"
	"github.com/coregx/regnfa/syntax"
)

func prefixesOf(t *testing.T, pattern string) *literal.Seq {
	t.Helper()
	return literal.Extract(syntax.MustParse(pattern, nil), syntax.FlagNone)
}

func TestNew_Unusable(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
	}{
		{"nil", nil},
		{"empty", literal.NewSeq()},
		{"has empty", literal.NewSeq(literal.NewLiteral("a", true), literal.NewLiteral("", true))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pf := New(tt.seq); pf != nil {
				t.Errorf("New(%s) = %T, want nil", tt.seq, pf)
			}
		})
	}
}

func TestNew_Strategy(t *testing.T) {
	tests := []struct {
		pattern string
		single  bool
		litLen  int
	}{
		{"hello", true, 5},
		{"hello.*world", true, 5},
		{"foobar|fo", true, 2},
		{"foo|bar", false, 3},
		{"[abc]test", false, 5},
		{"ab|c", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := New(prefixesOf(t, tt.pattern))
			if pf == nil {
				t.Fatal("New() = nil")
			}
			_, single := pf.(*memmemPrefilter)
			if single != tt.single {
				t.Errorf("single-literal strategy = %v, want %v", single, tt.single)
			}
			if pf.LiteralLen() != tt.litLen {
				t.Errorf("LiteralLen() = %d, want %d", pf.LiteralLen(), tt.litLen)
			}
		})
	}
}

func TestPrefilter_Find(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		want     int
	}{
		{"hello", "foo hello bar", 0, 4},
		{"hello", "foo hello bar", 5, -1},
		{"hello|world", "foo hello bar world", 0, 4},
		{"hello|world", "foo hello bar world", 5, 14},
		{"hello|world", "nothing here", 0, -1},
		{"ab|c", "xxabc", 0, 2},
		{"ab|c", "xxabc", 3, 4},
		{"foo", "", 0, -1},
		{"foo", "foo", 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			pf := New(prefixesOf(t, tt.pattern))
			if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
				t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.start, got, tt.want)
			}
		})
	}
}

func TestScanner_RuneOffsets(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		from    int
		want    int
	}{
		{"hello", "日本 hello", 0, 3},
		{"hello", "日本 hello", 3, 3},
		{"hello", "日本 hello", 4, -1},
		{"本|x", "日本x", 0, 1},
		{"本|x", "日本x", 2, 2},
		{"本|x", "日本x", 3, -1},
		{"a", "aaa", 3, -1},
		{"a", "aaa", 7, -1},
		{"é|ü", "aéü", 0, 1},
		{"\uFFFDx", "\xffx", 0, 0},
		{"\uFFFDx", "a\xff\xfex", 0, 2},
		{"\uFFFDx", "a\xff\xfex", 3, -1},
		{"b", "\xff\xffb", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			s := NewScanner(New(prefixesOf(t, tt.pattern)), tt.text)
			if got := s.Next(tt.from); got != tt.want {
				t.Errorf("Next(%d) = %d, want %d", tt.from, got, tt.want)
			}
		})
	}
}

// Every offset where a prefix literal starts must be reported as a candidate.
func TestScanner_NoMissedCandidates(t *testing.T) {
	patterns := []string{"ab", "ab|cd", "[xy]z", "日本|語"}
	text := strings.Repeat("ab cd xz yz 日本語 ", 4)
	runes := []rune(text)

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			seq := prefixesOf(t, p)
			pf := New(seq)
			s := NewScanner(pf, text)

			for from := 0; from <= len(runes); from++ {
				want := -1
				for i := from; i < len(runes) && want < 0; i++ {
					for _, lit := range seq.Literals() {
						if hasPrefixAt(runes, i, lit.Runes[:pf.LiteralLen()]) {
							want = i
							break
						}
					}
				}
				if got := s.Next(from); got != want {
					t.Fatalf("Next(%d) = %d, want %d", from, got, want)
				}
			}
		})
	}
}

func hasPrefixAt(text []rune, i int, lit []rune) bool {
	if i+len(lit) > len(text) {
		return false
	}
	for j, r := range lit {
		if text[i+j] != r {
			return false
		}
	}
	return true
}

func BenchmarkScanner_Next(b *testing.B) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 1000) + "needle"
	seq := literal.NewSeq(literal.NewLiteral("needle", true), literal.NewLiteral("thread", true))
	s := NewScanner(New(seq), text)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if s.Next(0) < 0 {
			b.Fatal("no candidate")
		}
	}
}
