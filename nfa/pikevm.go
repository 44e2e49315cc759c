package nfa

import (
	"github.com/coregx/regnfa/internal/conv"
	"github.com/coregx/regnfa/internal/sparse"
	"github.com/coregx/regnfa/syntax"
)

// PikeVM implements the Pike VM algorithm for NFA execution.
// It simulates the NFA breadth-first: every thread in a level has consumed the
// same number of characters, and threads are kept in priority order so the
// result is the leftmost-first match without backtracking.
//
// Thread safety: the NFA is shared and read-only, but a PikeVM holds scratch
// space for one search at a time and is NOT safe for concurrent use. Use one
// PikeVM per goroutine (e.g. from a sync.Pool).
type PikeVM struct {
	nfa *NFA

	// Thread lists for the current and next level, in priority order.
	queue     []thread
	nextQueue []thread

	// visited holds the edges already reached in the level being built,
	// keyed on edge ID.
	visited *sparse.SparseSet

	// stack drives the epsilon closure depth-first in priority order.
	stack []thread
}

// thread is a pending consuming edge together with the cursor that reached
// its source state.
type thread struct {
	edge EdgeID
	cur  Cursor
}

// NewPikeVM creates a new PikeVM for the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	capacity := conv.IntToUint32(nfa.Edges())
	return &PikeVM{
		nfa:       nfa,
		queue:     make([]thread, 0, 16),
		nextQueue: make([]thread, 0, 16),
		visited:   sparse.NewSparseSet(capacity),
		stack:     make([]thread, 0, 16),
	}
}

// NFA returns the automaton this VM runs.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// MatchAt runs the automaton anchored at start and returns the cursor of the
// highest-priority match. The returned cursor's Pos is the match end and its
// captures hold the group offsets.
//
// Among threads of equal priority the one that consumed the most characters
// wins, so greedy quantifiers extend as far as they can.
func (p *PikeVM) MatchAt(ctx *Context, start int) (Cursor, bool) {
	if start < 0 || start > len(ctx.Text) {
		return Cursor{}, false
	}

	var best Cursor
	matched := false

	p.queue = p.queue[:0]
	p.visited.Clear()
	if cur, ok := p.closure(&p.queue, p.nfa.start, NewCursor(start), ctx); ok {
		best, matched = cur, true
	}

	for len(p.queue) > 0 {
		p.nextQueue = p.nextQueue[:0]
		p.visited.Clear()

		for _, t := range p.queue {
			edge := p.nfa.edges[t.edge]
			if !p.nfa.accepts(edge.Label, ctx, t.cur.Pos) {
				continue
			}
			cur, ok := p.closure(&p.nextQueue, edge.To, t.cur.Advance(), ctx)
			if ok {
				// Threads after t have lower priority than this match.
				best, matched = cur, true
				break
			}
		}

		p.queue, p.nextQueue = p.nextQueue, p.queue
	}

	return best, matched
}

// IsMatchAt reports whether the automaton matches at start.
func (p *PikeVM) IsMatchAt(ctx *Context, start int) bool {
	_, ok := p.MatchAt(ctx, start)
	return ok
}

// closure follows zero-width edges from state in priority order, appending
// every reachable consuming edge to list. If the accept state is reached,
// the exploration stops there and the accepting cursor is returned: all edges
// not yet explored have lower priority.
func (p *PikeVM) closure(list *[]thread, state StateID, cur Cursor, ctx *Context) (Cursor, bool) {
	p.stack = p.stack[:0]
	p.pushEdges(state, cur)

	for len(p.stack) > 0 {
		t := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		if !p.visited.Insert(uint32(t.edge)) {
			continue
		}

		edge := p.nfa.edges[t.edge]
		label := p.nfa.tree.Node(edge.Label)
		if label.Kind.IsConsuming() {
			*list = append(*list, t)
			continue
		}

		if !p.nfa.accepts(edge.Label, ctx, t.cur.Pos) {
			continue
		}
		next := t.cur
		switch label.Kind {
		case syntax.KindGroupEntry:
			next = next.Record(2 * label.Index)
		case syntax.KindGroupExit:
			next = next.Record(2*label.Index + 1)
		}
		if edge.To == p.nfa.accept {
			p.stack = p.stack[:0]
			return next, true
		}
		p.pushEdges(edge.To, next)
	}
	return Cursor{}, false
}

// pushEdges pushes the out-edges of state in reverse so the highest-priority
// edge is popped first.
func (p *PikeVM) pushEdges(state StateID, cur Cursor) {
	out := p.nfa.states[state].out
	for i := len(out) - 1; i >= 0; i-- {
		p.stack = append(p.stack, thread{edge: out[i], cur: cur})
	}
}
