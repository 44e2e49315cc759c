package nfa

import (
	"fmt"

	"github.com/coregx/regnfa/internal/conv"
	"github.com/coregx/regnfa/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow
	// Default: 250
	MaxRecursionDepth int

	// MaxRepeat is the largest count accepted in a range quantifier.
	// Default: 1000
	MaxRepeat int

	// MaxStates caps the size of the compiled automaton. Nested range
	// quantifiers multiply, so this bounds {m,n} inside {m,n}.
	// Default: 1 << 20
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 250,
		MaxRepeat:         1000,
		MaxStates:         1 << 20,
	}
}

func (c CompilerConfig) validate() error {
	if c.MaxRecursionDepth < 0 || c.MaxRepeat < 0 || c.MaxStates < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidConfig)
	}
	return nil
}

// Compiler compiles syntax trees into NFAs
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	tree    *syntax.Tree
	depth   int // current recursion depth

	// entry and exit hold one GroupEntry/GroupExit label per group index.
	entry []syntax.NodeID
	exit  []syntax.NodeID
}

// fragment is a compiled subgraph with a single entry and a single exit.
type fragment struct {
	start, end StateID
}

// NewCompiler creates a new NFA compiler with the given configuration.
// Zero limits are replaced with their defaults.
func NewCompiler(config CompilerConfig) *Compiler {
	def := DefaultCompilerConfig()
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = def.MaxRecursionDepth
	}
	if config.MaxRepeat == 0 {
		config.MaxRepeat = def.MaxRepeat
	}
	if config.MaxStates == 0 {
		config.MaxStates = def.MaxStates
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an NFA. Inline modifiers in the
// pattern are added to flags; the result is available as NFA.Flags.
//
// Parse failures are returned as *syntax.Error. Resource limit violations are
// returned as *CompileError wrapping ErrTooComplex.
func (c *Compiler) Compile(pattern string, flags syntax.Flags) (*NFA, error) {
	tree, err := syntax.Parse(pattern, &flags)
	if err != nil {
		return nil, err
	}
	n, err := c.compileTree(tree, flags, WithPattern(pattern))
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Pattern = pattern
		}
		return nil, err
	}
	return n, nil
}

// CompileTree compiles an already parsed tree. The NFA takes ownership of
// tree and extends it with pseudo nodes.
func (c *Compiler) CompileTree(tree *syntax.Tree, flags syntax.Flags) (*NFA, error) {
	return c.compileTree(tree, flags)
}

func (c *Compiler) compileTree(tree *syntax.Tree, flags syntax.Flags, opts ...BuildOption) (*NFA, error) {
	if err := c.config.validate(); err != nil {
		return nil, &CompileError{Err: err}
	}
	if tree == nil || tree.Root == syntax.NoNode {
		return nil, &CompileError{Err: fmt.Errorf("%w: empty syntax tree", ErrInvalidConfig)}
	}

	c.tree = tree
	c.builder = NewBuilderWithCapacity(tree, 2*tree.Len()+2)
	c.depth = 0
	c.entry = make([]syntax.NodeID, tree.GroupCount)
	c.exit = make([]syntax.NodeID, tree.GroupCount)
	for i := 0; i < tree.GroupCount; i++ {
		c.entry[i] = c.builder.AddLabel(syntax.NewGroupBoundary(syntax.KindGroupEntry, i))
		c.exit[i] = c.builder.AddLabel(syntax.NewGroupBoundary(syntax.KindGroupExit, i))
	}

	frag, err := c.compileNode(tree.Root)
	if err != nil {
		return nil, err
	}

	// The accept state is only reachable through an epsilon edge.
	accept := c.builder.AddState()
	c.builder.AddEpsilon(frag.end, accept)
	c.builder.SetStart(frag.start)
	c.builder.SetAccept(accept)

	opts = append(opts, WithGroupCount(tree.GroupCount), WithFlags(flags))
	n, err := c.builder.Build(opts...)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return n, nil
}

// compileNode compiles the node with the given ID into a fresh fragment.
// Quantified nodes are compiled more than once, so every call must create new
// states.
func (c *Compiler) compileNode(id syntax.NodeID) (fragment, error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return fragment{}, &CompileError{Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	if c.builder.States() > c.config.MaxStates {
		return fragment{}, c.tooManyStates()
	}

	n := c.tree.Node(id)
	switch n.Kind {
	case syntax.KindExpression:
		return c.compileExpression(n)
	case syntax.KindMatch:
		sub := n.Sub
		return c.compileQuantified(n.Quant, func() (fragment, error) {
			return c.compileNode(sub)
		})
	case syntax.KindGroup:
		return c.compileGroup(n)
	default:
		// Leaves: consuming labels, anchors, epsilon and the empty string
		// all become a single labeled edge.
		return c.compileLeaf(id), nil
	}
}

func (c *Compiler) compileLeaf(label syntax.NodeID) fragment {
	start := c.builder.AddState()
	end := c.builder.AddState()
	c.builder.AddEdge(start, end, label)
	return fragment{start, end}
}

func (c *Compiler) compileEmpty() fragment {
	start := c.builder.AddState()
	end := c.builder.AddState()
	c.builder.AddEpsilon(start, end)
	return fragment{start, end}
}

// compileConcat chains items end-to-start.
func (c *Compiler) compileConcat(items []syntax.NodeID) (fragment, error) {
	if len(items) == 0 {
		return c.compileEmpty(), nil
	}
	first, err := c.compileNode(items[0])
	if err != nil {
		return fragment{}, err
	}
	end := first.end
	for _, item := range items[1:] {
		next, err := c.compileNode(item)
		if err != nil {
			return fragment{}, err
		}
		c.builder.AddEpsilon(end, next.start)
		end = next.end
	}
	return fragment{first.start, end}, nil
}

// compileExpression compiles a sequence and, if present, its alternatives.
// All branches of one alternation hang off a shared entry in left-to-right
// order and rejoin at a shared exit. The Alt chain is walked iteratively so
// only real nesting counts against MaxRecursionDepth.
func (c *Compiler) compileExpression(n *syntax.Node) (fragment, error) {
	if n.Alt == syntax.NoNode {
		return c.compileConcat(n.Items)
	}

	start := c.builder.AddState()
	end := c.builder.AddState()
	for branch := n; ; branch = c.tree.Node(branch.Alt) {
		if c.builder.States() > c.config.MaxStates {
			return fragment{}, c.tooManyStates()
		}
		seq, err := c.compileConcat(branch.Items)
		if err != nil {
			return fragment{}, err
		}
		c.builder.AddEpsilon(start, seq.start)
		c.builder.AddEpsilon(seq.end, end)
		if branch.Alt == syntax.NoNode {
			break
		}
	}
	return fragment{start, end}, nil
}

// compileGroup wraps a capturing group's body in GroupEntry/GroupExit edges.
// The quantifier applies to the wrapped body so every iteration records its
// own offsets.
func (c *Compiler) compileGroup(n *syntax.Node) (fragment, error) {
	sub, index := n.Sub, n.Index
	body := func() (fragment, error) {
		inner, err := c.compileNode(sub)
		if err != nil {
			return fragment{}, err
		}
		if index == syntax.NoGroup {
			return inner, nil
		}
		start := c.builder.AddState()
		end := c.builder.AddState()
		c.builder.AddEdge(start, inner.start, c.entry[index])
		c.builder.AddEdge(inner.end, end, c.exit[index])
		return fragment{start, end}, nil
	}
	if n.Quant.Kind == syntax.QuantZeroOrMore || n.Quant.Kind == syntax.QuantOneOrMore {
		return c.compileLoop(n.Quant, body, true)
	}
	return c.compileQuantified(n.Quant, body)
}

// compileQuantified applies q to the subgraph produced by body. body is called
// once per required copy.
func (c *Compiler) compileQuantified(q syntax.Quantifier, body func() (fragment, error)) (fragment, error) {
	switch q.Kind {
	case syntax.QuantNone:
		return body()
	case syntax.QuantZeroOrOne:
		return c.compileOptional(body, q.Lazy)
	case syntax.QuantZeroOrMore, syntax.QuantOneOrMore:
		return c.compileLoop(q, body, false)
	case syntax.QuantRange:
		return c.compileRange(q, body)
	}
	return fragment{}, &CompileError{Err: fmt.Errorf("unknown quantifier kind %d", q.Kind)}
}

// choice adds the two epsilon edges of a quantifier choice point. Greedy
// quantifiers try repeat before exit; lazy ones reverse that.
func (c *Compiler) choice(from, repeat, exit StateID, lazy bool) {
	if lazy {
		c.builder.AddEpsilon(from, exit)
		c.builder.AddEpsilon(from, repeat)
		return
	}
	c.builder.AddEpsilon(from, repeat)
	c.builder.AddEpsilon(from, exit)
}

func (c *Compiler) compileOptional(body func() (fragment, error), lazy bool) (fragment, error) {
	inner, err := body()
	if err != nil {
		return fragment{}, err
	}
	start := c.builder.AddState()
	end := c.builder.AddState()
	c.choice(start, inner.start, end, lazy)
	c.builder.AddEpsilon(inner.end, end)
	return fragment{start, end}, nil
}

// compileLoop compiles '*' and '+'. For '*' the choice point precedes the
// body; for '+' the body runs once before reaching it. Group bodies loop back
// through a GroupLink edge.
func (c *Compiler) compileLoop(q syntax.Quantifier, body func() (fragment, error), group bool) (fragment, error) {
	inner, err := body()
	if err != nil {
		return fragment{}, err
	}
	split := c.builder.AddState()
	end := c.builder.AddState()
	c.choice(split, inner.start, end, q.Lazy)
	if group {
		c.builder.AddGroupLink(inner.end, split)
	} else {
		c.builder.AddEpsilon(inner.end, split)
	}

	if q.Kind == syntax.QuantOneOrMore {
		return fragment{inner.start, end}, nil
	}
	return fragment{split, end}, nil
}

// compileRange unrolls {m}, {m,} and {m,n}: m mandatory copies followed by
// n-m optional copies or a trailing star.
func (c *Compiler) compileRange(q syntax.Quantifier, body func() (fragment, error)) (fragment, error) {
	lower := conv.Uint64ToInt(q.Lower)
	if lower > c.config.MaxRepeat {
		return fragment{}, c.tooManyRepeats(lower)
	}
	optional := 0
	if q.Upper.Kind == syntax.BoundBounded {
		upper := conv.Uint64ToInt(q.Upper.N)
		if upper > c.config.MaxRepeat {
			return fragment{}, c.tooManyRepeats(upper)
		}
		optional = upper - lower
	}

	var parts []fragment
	for i := 0; i < lower; i++ {
		f, err := body()
		if err != nil {
			return fragment{}, err
		}
		parts = append(parts, f)
	}

	switch q.Upper.Kind {
	case syntax.BoundUnbounded:
		star := syntax.Quantifier{Kind: syntax.QuantZeroOrMore, Lazy: q.Lazy}
		f, err := c.compileLoop(star, body, false)
		if err != nil {
			return fragment{}, err
		}
		parts = append(parts, f)
	case syntax.BoundBounded:
		for i := 0; i < optional; i++ {
			f, err := c.compileOptional(body, q.Lazy)
			if err != nil {
				return fragment{}, err
			}
			parts = append(parts, f)
		}
	}

	if len(parts) == 0 {
		return c.compileEmpty(), nil
	}
	for i := 1; i < len(parts); i++ {
		c.builder.AddEpsilon(parts[i-1].end, parts[i].start)
	}
	return fragment{parts[0].start, parts[len(parts)-1].end}, nil
}

func (c *Compiler) tooManyStates() error {
	return &CompileError{
		Err: fmt.Errorf("%w: more than %d states", ErrTooComplex, c.config.MaxStates),
	}
}

func (c *Compiler) tooManyRepeats(n int) error {
	return &CompileError{
		Err: fmt.Errorf("%w: repetition count %d exceeds %d", ErrTooComplex, n, c.config.MaxRepeat),
	}
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string, flags syntax.Flags) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern, flags)
}
