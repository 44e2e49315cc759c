package syntax

import "strings"

// Flags is a bitset of pattern options.
// Combine flags with bitwise OR, e.g. FlagIgnoreCase|FlagMultiline.
// The zero value means no options.
type Flags uint8

const (
	// FlagIgnoreCase enables case-insensitive matching ("i").
	FlagIgnoreCase Flags = 1 << iota

	// FlagDotAll makes '.' match '\n' as well ("s").
	FlagDotAll

	// FlagMultiline makes '^' and '$' match at line boundaries ("m").
	FlagMultiline

	// FlagFreeSpacing ignores unescaped whitespace and #-comments ("x").
	FlagFreeSpacing

	// FlagNone is the empty flag set.
	FlagNone Flags = 0
)

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// flagForModifier maps an inline modifier letter to its flag.
func flagForModifier(c rune) (Flags, bool) {
	switch c {
	case 'i':
		return FlagIgnoreCase, true
	case 's':
		return FlagDotAll, true
	case 'm':
		return FlagMultiline, true
	case 'x':
		return FlagFreeSpacing, true
	}
	return FlagNone, false
}

// ParseFlags converts modifier letters such as "im" into a flag set.
// It returns false if s contains a letter that is not a recognized modifier.
func ParseFlags(s string) (Flags, bool) {
	var f Flags
	for _, c := range s {
		bit, ok := flagForModifier(c)
		if !ok {
			return f, false
		}
		f |= bit
	}
	return f, true
}

// String returns the modifier letters of f in "imsx" order.
func (f Flags) String() string {
	var b strings.Builder
	if f.Has(FlagIgnoreCase) {
		b.WriteByte('i')
	}
	if f.Has(FlagMultiline) {
		b.WriteByte('m')
	}
	if f.Has(FlagDotAll) {
		b.WriteByte('s')
	}
	if f.Has(FlagFreeSpacing) {
		b.WriteByte('x')
	}
	return b.String()
}
