package regnfa

import (
	"regexp"
	"strings"
	"testing"
)

// Anchored alternation (ID validation: digits, UUID, hex32).
// '-' is a metacharacter here, so it is escaped; stdlib accepts the same text.
var anchoredAltPattern = `^(\d+|[0-9a-f]{8}\-[0-9a-f]{4}\-[0-9a-f]{4}\-[0-9a-f]{4}\-[0-9a-f]{12}|[0-9a-fA-F]{32})$`

var anchoredAltInputs = []string{
	"12345",                                // matches \d+
	"550e8400-e29b-41d4-a716-446655440000", // matches UUID
	"550e8400e29b41d4a716446655440000",     // matches hex32
	"not-a-match",                          // no match
	"12345-extra",                          // no match
	"abc",                                  // no match
}

// TestAnchoredAltCorrectness verifies regnfa agrees with stdlib regexp.
func TestAnchoredAltCorrectness(t *testing.T) {
	re := regexp.MustCompile(anchoredAltPattern)
	nre := MustCompile(anchoredAltPattern)

	for _, input := range anchoredAltInputs {
		stdMatch := re.MatchString(input)
		nfaMatch := nre.IsMatch(input)
		if stdMatch != nfaMatch {
			t.Errorf("input %q: stdlib=%v, regnfa=%v", input, stdMatch, nfaMatch)
		}
	}
}

// TestLeftmostFirstMatchesStdlib compares the first match against stdlib on
// ASCII input, where rune and byte offsets coincide. Both engines prefer the
// leftmost start, then the highest-priority alternative.
func TestLeftmostFirstMatchesStdlib(t *testing.T) {
	patterns := []string{
		`\d+`,
		`[a-z]+@[a-z]+\.com`,
		`foo|foobar`,
		`foobar|foo`,
		`a{2,4}`,
		`a{2,4}?`,
		`(a|ab)(c|bcd)`,
		`\bword\b`,
		`x*`,
		`[^aeiou ]+`,
		`(\w+)\.(\w+)`,
	}
	texts := []string{
		"",
		"foobar foo",
		"call 555 1234 now",
		"mail: bob@example.com, amy@test.com",
		"aaaaaa",
		"abcd",
		"a word, words, sword",
		"file.txt and image.png",
	}

	for _, p := range patterns {
		std := regexp.MustCompile(p)
		re := MustCompile(p)
		for _, text := range texts {
			want := std.FindStringSubmatchIndex(text)
			m := re.FindMatch(text)
			if (want == nil) != (m == nil) {
				t.Errorf("%q over %q: stdlib %v, regnfa %v", p, text, want, m)
				continue
			}
			if m == nil {
				continue
			}
			var got []int
			for i := 0; i <= re.GroupCount(); i++ {
				start, end, ok := m.GroupSpan(i)
				if !ok {
					start, end = -1, -1
				}
				got = append(got, start, end)
			}
			if !equalInts(got, want) {
				t.Errorf("%q over %q: stdlib %v, regnfa %v", p, text, want, got)
			}
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func BenchmarkAnchoredAlt_UUID(b *testing.B) {
	re := MustCompile(anchoredAltPattern)
	input := "550e8400-e29b-41d4-a716-446655440000"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.IsMatch(input)
	}
}

func BenchmarkAnchoredAlt_NoMatch(b *testing.B) {
	re := MustCompile(anchoredAltPattern)
	input := "not-a-match-at-all"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.IsMatch(input)
	}
}

// BenchmarkLiteralSearch measures scanning with and without the prefilter.
func BenchmarkLiteralSearch(b *testing.B) {
	text := strings.Repeat("lorem ipsum dolor sit amet, ", 200) + "error: disk full"
	unfiltered := DefaultConfig()
	unfiltered.EnablePrefilter = false

	cases := []struct {
		name   string
		config Config
	}{
		{"Prefilter", DefaultConfig()},
		{"NoPrefilter", unfiltered},
	}
	for _, c := range cases {
		re, err := CompileWithConfig(`(error|warning): \w+`, c.config)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(c.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, ok := re.Find(text); !ok {
					b.Fatal("no match")
				}
			}
		})
	}
}

func BenchmarkFindAll_Words(b *testing.B) {
	re := MustCompile(`\w+`)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Count(text)
	}
}
