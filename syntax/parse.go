package syntax

import (
	"strconv"
	"unicode"
)

// escapable lists the characters that a backslash turns into a literal.
var escapable = map[rune]rune{
	'$': '$', '(': '(', ')': ')', '*': '*', '+': '+', '-': '-', '.': '.',
	'<': '<', '=': '=', '>': '>', '?': '?', '[': '[', '\\': '\\', ']': ']',
	'^': '^', '{': '{', '|': '|', '}': '}',
	' ': ' ', '#': '#', '/': '/',
	'n': '\n', 't': '\t', 'r': '\r', 'f': '\f', 'v': '\v',
}

// metacharacters cannot appear unescaped as a literal outside a character group.
const metacharacters = `$()*+-.<=>?[\]^{|}`

func isMeta(c rune) bool {
	for _, m := range metacharacters {
		if c == m {
			return true
		}
	}
	return false
}

func isClassLetter(c rune) bool {
	switch c {
	case 'w', 'W', 's', 'S', 'd', 'D':
		return true
	}
	return false
}

func isAnchorLetter(c rune) bool {
	switch c {
	case 'A', 'z', 'Z', 'G', 'b', 'B':
		return true
	}
	return false
}

// parser holds the scan position and group counter for one Parse call.
type parser struct {
	input      []rune
	pos        int
	groupCount int
	tree       *Tree
}

func newParser(pattern string) *parser {
	return &parser{
		input: []rune(pattern),
		tree:  NewTree(),
	}
}

// Parse parses pattern into a syntax tree. Inline modifiers at the start of
// the pattern are OR-ed into *flags; flags may be nil when the caller does not
// need them.
//
// Parsing is all-or-nothing: on failure the returned tree is nil and err is a
// *Error.
func Parse(pattern string, flags *Flags) (*Tree, error) {
	var local Flags
	if flags == nil {
		flags = &local
	}

	p := newParser(pattern)
	if len(p.input) == 0 {
		p.tree.Root = p.tree.Add(kindNode(KindEmptyString))
		return p.tree, nil
	}

	if err := p.parseInlineModifiers(flags); err != nil {
		return nil, err
	}
	if flags.Has(FlagFreeSpacing) {
		p.input = stripFreeSpacing(p.input[p.pos:])
		p.pos = 0
	}
	if !p.withinBounds() {
		p.tree.Root = p.tree.Add(kindNode(KindEmptyString))
		return p.tree, nil
	}

	var root NodeID
	if p.matches('^') {
		p.pos++
		anchor := p.tree.Add(kindNode(KindStartOfString))
		if !p.withinBounds() {
			p.tree.Root = anchor
			p.tree.GroupCount = p.groupCount
			return p.tree, nil
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n := p.tree.Node(expr)
		n.Items = append([]NodeID{anchor}, n.Items...)
		root = expr
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		root = expr
	}

	if p.withinBounds() {
		return nil, p.errorf(ErrSuffixRemaining)
	}
	p.tree.Root = root
	p.tree.GroupCount = p.groupCount
	return p.tree, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string, flags *Flags) *Tree {
	t, err := Parse(pattern, flags)
	if err != nil {
		panic("syntax: Parse(`" + pattern + "`): " + err.Error())
	}
	return t
}

// Scanner primitives.

func (p *parser) withinBounds() bool {
	return p.pos < len(p.input)
}

func (p *parser) remainder() string {
	return string(p.input[p.pos:])
}

func (p *parser) errorf(code ErrorCode) *Error {
	return &Error{Code: code, Remainder: p.remainder()}
}

func (p *parser) peek() (rune, error) {
	if !p.withinBounds() {
		return 0, p.errorf(ErrUnexpectedEOF)
	}
	return p.input[p.pos], nil
}

// peekAt returns the rune i positions ahead without consuming it.
func (p *parser) peekAt(i int) (rune, bool) {
	if p.pos+i >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos+i], true
}

func (p *parser) next() (rune, error) {
	c, err := p.peek()
	if err != nil {
		return 0, err
	}
	p.pos++
	return c, nil
}

func (p *parser) consume(expected rune) error {
	c, err := p.peek()
	if err != nil {
		return err
	}
	if c != expected {
		e := p.errorf(ErrUnexpectedToken)
		e.Char = expected
		return e
	}
	p.pos++
	return nil
}

func (p *parser) matches(expected rune) bool {
	c, ok := p.peekAt(0)
	return ok && c == expected
}

// matchesSeq reports whether the input continues with exactly seq.
func (p *parser) matchesSeq(seq ...rune) bool {
	for i, expected := range seq {
		c, ok := p.peekAt(i)
		if !ok || c != expected {
			return false
		}
	}
	return true
}

// Lookahead predicates.

func (p *parser) canParseGroup() bool {
	return p.matches('(')
}

func (p *parser) canParseCharacter() bool {
	c, ok := p.peekAt(0)
	return ok && !isMeta(c)
}

func (p *parser) canParseEscaped() bool {
	if !p.matches('\\') {
		return false
	}
	c, ok := p.peekAt(1)
	if !ok {
		return false
	}
	_, ok = escapable[c]
	return ok
}

func (p *parser) canParseCharacterClass() bool {
	if !p.matches('\\') {
		return false
	}
	c, ok := p.peekAt(1)
	return ok && isClassLetter(c)
}

func (p *parser) canParseCharacterRange() bool {
	c0, ok0 := p.peekAt(0)
	c1, ok1 := p.peekAt(1)
	c2, ok2 := p.peekAt(2)
	return ok0 && ok1 && ok2 && !isMeta(c0) && c1 == '-' && !isMeta(c2)
}

func (p *parser) canParseMatch() bool {
	return p.matches('.') ||
		p.canParseCharacterClass() ||
		p.matches('[') ||
		p.canParseCharacter() ||
		p.canParseEscaped()
}

func (p *parser) canParseAnchor() bool {
	c, ok := p.peekAt(0)
	if !ok {
		return false
	}
	if c == '^' || c == '$' {
		return true
	}
	if c == '\\' {
		c1, ok := p.peekAt(1)
		return ok && isAnchorLetter(c1)
	}
	return false
}

func (p *parser) canParseSubExpressionItem() bool {
	return p.canParseGroup() || p.canParseMatch() || p.canParseAnchor()
}

func (p *parser) canParseQuantifier() bool {
	c, ok := p.peekAt(0)
	if !ok {
		return false
	}
	switch c {
	case '+', '*', '?', '{':
		return true
	}
	return false
}

// Productions.

// parseInlineModifiers consumes leading (?imsx) blocks. A "(?" that is not
// followed by at least one modifier letter is left untouched so that "(?:"
// groups still parse.
func (p *parser) parseInlineModifiers(flags *Flags) error {
	for p.matchesSeq('(', '?') {
		var set Flags
		i := p.pos + 2
		for i < len(p.input) {
			bit, ok := flagForModifier(p.input[i])
			if !ok {
				break
			}
			set |= bit
			i++
		}
		if i == p.pos+2 {
			return nil
		}
		p.pos = i
		c, err := p.peek()
		if err != nil {
			return err
		}
		if c != ')' {
			if unicode.IsLetter(c) {
				e := p.errorf(ErrUnrecognizedModifier)
				e.Char = c
				return e
			}
			e := p.errorf(ErrUnexpectedToken)
			e.Char = ')'
			return e
		}
		p.pos++
		*flags |= set
	}
	return nil
}

// stripFreeSpacing drops unescaped whitespace and #-comments outside
// character groups.
func stripFreeSpacing(in []rune) []rune {
	out := make([]rune, 0, len(in))
	inGroup := false
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in):
			out = append(out, c, in[i+1])
			i++
		case inGroup:
			if c == ']' {
				inGroup = false
			}
			out = append(out, c)
		case c == '[':
			inGroup = true
			out = append(out, c)
		case c == '#':
			for i+1 < len(in) && in[i+1] != '\n' {
				i++
			}
		case unicode.IsSpace(c):
		default:
			out = append(out, c)
		}
	}
	return out
}

func (p *parser) parseExpression() (NodeID, error) {
	return p.parseAlternation(false)
}

// parseAlternation parses a sequence and, after '|', the remaining branches.
// Only branches after a '|' may be empty; they become a single epsilon.
func (p *parser) parseAlternation(allowEmpty bool) (NodeID, error) {
	var items []NodeID
	for p.canParseSubExpressionItem() {
		id, err := p.parseSubExpressionItem()
		if err != nil {
			return NoNode, err
		}
		items = append(items, id)
	}
	if len(items) == 0 {
		if !allowEmpty {
			return NoNode, p.errorf(ErrInvalidExpression)
		}
		items = append(items, p.tree.Add(kindNode(KindEpsilon)))
	}

	alt := NoNode
	if p.matches('|') {
		p.pos++
		var err error
		alt, err = p.parseAlternation(true)
		if err != nil {
			return NoNode, err
		}
	}

	n := kindNode(KindExpression)
	n.Items = items
	n.Alt = alt
	return p.tree.Add(n), nil
}

func (p *parser) parseSubExpressionItem() (NodeID, error) {
	switch {
	case p.canParseGroup():
		return p.parseGroup()
	case p.canParseAnchor():
		return p.parseAnchor()
	default:
		return p.parseMatch()
	}
}

func (p *parser) parseGroup() (NodeID, error) {
	if err := p.consume('('); err != nil {
		return NoNode, err
	}

	index := NoGroup
	switch {
	case p.matchesSeq('?', ':'):
		p.pos += 2
	case p.matches('?'):
		p.pos++
		e := p.errorf(ErrUnexpectedToken)
		e.Char = ':'
		return NoNode, e
	default:
		index = p.groupCount
		p.groupCount++
	}

	var sub NodeID
	if p.matches(')') {
		sub = p.tree.Add(kindNode(KindEpsilon))
	} else {
		var err error
		sub, err = p.parseExpression()
		if err != nil {
			return NoNode, err
		}
	}
	if err := p.consume(')'); err != nil {
		return NoNode, err
	}

	q := Quantifier{}
	if p.canParseQuantifier() {
		var err error
		q, err = p.parseQuantifier()
		if err != nil {
			return NoNode, err
		}
	}

	n := kindNode(KindGroup)
	n.Sub = sub
	n.Index = index
	n.Quant = q
	return p.tree.Add(n), nil
}

func (p *parser) parseAnchor() (NodeID, error) {
	if p.matches('\\') {
		p.pos++
		c, err := p.next()
		if err != nil {
			return NoNode, err
		}
		var k Kind
		switch c {
		case 'A':
			k = KindStartOfStringOnly
		case 'b':
			k = KindWordBoundary
		case 'B':
			k = KindNonWordBoundary
		case 'z':
			k = KindEndOfStringOnlyNotNewline
		case 'Z':
			k = KindEndOfStringOnlyMaybeNewline
		default:
			e := p.errorf(ErrUnrecognizedAnchor)
			e.Char = c
			return NoNode, e
		}
		return p.tree.Add(kindNode(k)), nil
	}

	c, err := p.next()
	if err != nil {
		return NoNode, err
	}
	switch c {
	case '^':
		return p.tree.Add(kindNode(KindStartOfString)), nil
	case '$':
		return p.tree.Add(kindNode(KindEndOfString)), nil
	}
	p.pos--
	e := p.errorf(ErrUnrecognizedAnchor)
	e.Char = c
	return NoNode, e
}

func (p *parser) parseMatch() (NodeID, error) {
	item, err := p.parseMatchItem()
	if err != nil {
		return NoNode, err
	}
	q := Quantifier{}
	if p.canParseQuantifier() {
		q, err = p.parseQuantifier()
		if err != nil {
			return NoNode, err
		}
	}
	n := kindNode(KindMatch)
	n.Sub = item
	n.Quant = q
	return p.tree.Add(n), nil
}

func (p *parser) parseMatchItem() (NodeID, error) {
	switch {
	case p.matches('.'):
		p.pos++
		return p.tree.Add(kindNode(KindAnyCharacter)), nil
	case p.canParseCharacterClass():
		return p.parseCharacterClass()
	case p.matches('['):
		return p.parseCharacterGroup()
	default:
		return p.parseCharacter()
	}
}

// parseCharacterClass expands \w \W \s \S \d \D into character groups.
func (p *parser) parseCharacterClass() (NodeID, error) {
	if !p.matches('\\') {
		return NoNode, p.errorf(ErrInvalidStartToCharacterClass)
	}
	p.pos++
	c, err := p.next()
	if err != nil {
		return NoNode, err
	}

	var items []NodeID
	switch c {
	case 'w', 'W':
		items = []NodeID{
			p.tree.Add(rangeNode('0', '9')),
			p.tree.Add(rangeNode('A', 'Z')),
			p.tree.Add(rangeNode('a', 'z')),
			p.tree.Add(characterNode('_')),
		}
	case 'd', 'D':
		items = []NodeID{p.tree.Add(rangeNode('0', '9'))}
	case 's', 'S':
		for _, ws := range " \t\n\r\f\v" {
			items = append(items, p.tree.Add(characterNode(ws)))
		}
	default:
		e := p.errorf(ErrUnrecognizedAnchor)
		e.Char = c
		return NoNode, e
	}

	n := kindNode(KindCharacterGroup)
	n.Items = items
	n.Negated = unicode.IsUpper(c)
	n.Class = c
	return p.tree.Add(n), nil
}

func (p *parser) parseCharacterGroup() (NodeID, error) {
	if err := p.consume('['); err != nil {
		return NoNode, err
	}
	negated := false
	if p.matches('^') {
		negated = true
		p.pos++
	}

	var items []NodeID
	for {
		id, err := p.parseCharacterGroupItem()
		if err != nil {
			if e, ok := err.(*Error); ok && e.Code == ErrUnableToParseChar {
				break
			}
			return NoNode, err
		}
		items = append(items, id)
	}
	if err := p.consume(']'); err != nil {
		return NoNode, err
	}
	if len(items) == 0 {
		return NoNode, p.errorf(ErrCantParseCharGroup)
	}

	n := kindNode(KindCharacterGroup)
	n.Items = items
	n.Negated = negated
	return p.tree.Add(n), nil
}

// parseCharacterGroupItem parses one member of a bracket group. Only the class
// escapes (\w \d \s and their negations) and escapable characters are
// special here; any other backslash is a literal, so [\b] matches '\\' or 'b'.
func (p *parser) parseCharacterGroupItem() (NodeID, error) {
	switch {
	case p.canParseCharacterClass():
		id, err := p.parseCharacterClass()
		if err != nil {
			return NoNode, err
		}
		// A class cannot be the start of a range such as [\d-z].
		if p.matches('-') {
			if c, ok := p.peekAt(1); ok && c != ']' {
				return NoNode, p.errorf(ErrInvalidStartToCharacterClass)
			}
		}
		return id, nil
	case p.canParseCharacterRange():
		return p.parseCharacterRange()
	default:
		return p.parseCharacterInGroup()
	}
}

func (p *parser) parseCharacterRange() (NodeID, error) {
	start, err := p.next()
	if err != nil {
		return NoNode, err
	}
	if err := p.consume('-'); err != nil {
		return NoNode, err
	}
	end, err := p.next()
	if err != nil {
		return NoNode, err
	}
	if start > end {
		e := p.errorf(ErrInvalidCharacterRange)
		e.RangeStart = start
		e.RangeEnd = end
		return NoNode, e
	}
	return p.tree.Add(rangeNode(start, end)), nil
}

func (p *parser) parseEscaped() (NodeID, error) {
	if err := p.consume('\\'); err != nil {
		return NoNode, err
	}
	c, err := p.next()
	if err != nil {
		return NoNode, err
	}
	if lit, ok := escapable[c]; ok {
		c = lit
	}
	return p.tree.Add(characterNode(c)), nil
}

func (p *parser) parseCharacter() (NodeID, error) {
	if p.canParseEscaped() {
		return p.parseEscaped()
	}
	if !p.canParseCharacter() {
		return NoNode, p.errorf(ErrUnableToParseChar)
	}
	c, err := p.next()
	if err != nil {
		return NoNode, err
	}
	return p.tree.Add(characterNode(c)), nil
}

// parseCharacterInGroup accepts any character except ']' as a literal.
// ErrUnableToParseChar signals the end of the group to the caller.
func (p *parser) parseCharacterInGroup() (NodeID, error) {
	if p.canParseEscaped() {
		return p.parseEscaped()
	}
	if p.matches(']') {
		return NoNode, p.errorf(ErrUnableToParseChar)
	}
	c, err := p.next()
	if err != nil {
		return NoNode, err
	}
	return p.tree.Add(characterNode(c)), nil
}

func (p *parser) parseQuantifier() (Quantifier, error) {
	if p.matches('{') {
		return p.parseRangeQuantifier()
	}
	c, err := p.next()
	if err != nil {
		return Quantifier{}, err
	}
	var k QuantKind
	switch c {
	case '*':
		k = QuantZeroOrMore
	case '+':
		k = QuantOneOrMore
	case '?':
		k = QuantZeroOrOne
	default:
		e := p.errorf(ErrUnrecognizedQuantifier)
		e.Char = c
		return Quantifier{}, e
	}
	lazy := false
	if p.matches('?') {
		p.pos++
		lazy = true
	}
	return Quantifier{Kind: k, Lazy: lazy}, nil
}

func (p *parser) parseRangeQuantifier() (Quantifier, error) {
	if err := p.consume('{'); err != nil {
		return Quantifier{}, err
	}
	var lower uint64
	if !p.matches(',') {
		n, err := p.parseInt()
		if err != nil {
			return Quantifier{}, err
		}
		lower = n
	}
	upper := UpperBound{Kind: BoundUndefined}
	if p.matches(',') {
		p.pos++
		upper.Kind = BoundUnbounded
		if c, ok := p.peekAt(0); ok && isASCIIDigit(c) {
			n, err := p.parseInt()
			if err != nil {
				return Quantifier{}, err
			}
			upper = UpperBound{Kind: BoundBounded, N: n}
		}
	}
	if err := p.consume('}'); err != nil {
		return Quantifier{}, err
	}
	lazy := false
	if p.matches('?') {
		p.pos++
		lazy = true
	}

	if upper.Kind == BoundBounded && upper.N < lower {
		return Quantifier{}, &Error{
			Code:      ErrInvalidRangeQuantifier,
			Remainder: p.remainder(),
			Lower:     lower,
			Upper:     upper.N,
		}
	}
	return Quantifier{Kind: QuantRange, Lower: lower, Upper: upper, Lazy: lazy}, nil
}

func (p *parser) parseInt() (uint64, error) {
	start := p.pos
	for p.withinBounds() && isASCIIDigit(p.input[p.pos]) {
		p.pos++
	}
	n, err := strconv.ParseUint(string(p.input[start:p.pos]), 10, 64)
	if err != nil {
		return 0, &Error{Code: ErrCantParseRangeBound, Remainder: p.remainder(), Err: err}
	}
	return n, nil
}

func isASCIIDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
