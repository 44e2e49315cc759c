package syntax

import (
	"fmt"
)

// ErrorCode describes why a pattern failed to parse.
type ErrorCode string

const (
	ErrUnexpectedToken              ErrorCode = "unexpected token"
	ErrUnexpectedEOF                ErrorCode = "unexpected end of pattern"
	ErrUnableToParseChar            ErrorCode = "unable to parse character"
	ErrCantParseCharGroup           ErrorCode = "empty or malformed character group"
	ErrUnrecognizedAnchor           ErrorCode = "unrecognized anchor"
	ErrUnrecognizedModifier         ErrorCode = "unrecognized inline modifier"
	ErrInvalidExpression            ErrorCode = "invalid expression"
	ErrInvalidStartToCharacterClass ErrorCode = "invalid start to character class"
	ErrSuffixRemaining              ErrorCode = "unparsed suffix remaining"
	ErrUnrecognizedQuantifier       ErrorCode = "unrecognized quantifier"
	ErrInvalidRangeQuantifier       ErrorCode = "invalid range quantifier"
	ErrCantParseRangeBound          ErrorCode = "cannot parse range bound"
	ErrInvalidCharacterRange        ErrorCode = "invalid character range"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is a parse failure. Remainder holds the unconsumed input at the point
// of failure; the other fields are set depending on Code.
type Error struct {
	Code      ErrorCode
	Remainder string

	// Char is the expected character for ErrUnexpectedToken, or the offending
	// character for ErrUnrecognizedAnchor, ErrUnrecognizedModifier and
	// ErrUnrecognizedQuantifier.
	Char rune

	// Lower and Upper are the bounds of an ErrInvalidRangeQuantifier.
	Lower, Upper uint64

	// RangeStart and RangeEnd are the ends of an ErrInvalidCharacterRange.
	RangeStart, RangeEnd rune

	// Err is the strconv failure behind ErrCantParseRangeBound.
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Code {
	case ErrUnexpectedToken:
		return fmt.Sprintf("error parsing regexp: %s: expected %q at %q", e.Code, e.Char, e.Remainder)
	case ErrUnexpectedEOF:
		return fmt.Sprintf("error parsing regexp: %s", e.Code)
	case ErrUnrecognizedAnchor, ErrUnrecognizedModifier:
		return fmt.Sprintf("error parsing regexp: %s %q at %q", e.Code, e.Char, e.Remainder)
	case ErrUnrecognizedQuantifier:
		return fmt.Sprintf("error parsing regexp: %s %q", e.Code, e.Char)
	case ErrInvalidRangeQuantifier:
		return fmt.Sprintf("error parsing regexp: %s {%d,%d}", e.Code, e.Lower, e.Upper)
	case ErrCantParseRangeBound:
		return fmt.Sprintf("error parsing regexp: %s: %v", e.Code, e.Err)
	case ErrInvalidCharacterRange:
		return fmt.Sprintf("error parsing regexp: %s %q-%q", e.Code, e.RangeStart, e.RangeEnd)
	}
	return fmt.Sprintf("error parsing regexp: %s: %q", e.Code, e.Remainder)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, &syntax.Error{Code: syntax.ErrSuffixRemaining}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
