package regnfa

import (
	"iter"

	"github.com/coregx/regnfa/nfa"
	"github.com/coregx/regnfa/prefilter"
)

// Matches is a lazy, single-pass iterator over the non-overlapping matches of
// a pattern in one text.
//
// Start offsets are tried from 0 through len(text) inclusive. After a match
// the next start is the match end, or end+1 for an empty match; after a
// failure it is the following offset. A Matches value is not safe for
// concurrent use.
type Matches struct {
	re   *Regex
	ctx  *nfa.Context
	scan *prefilter.Scanner
	pos  int
	done bool
}

// FindIter returns an iterator over all non-overlapping matches in text.
// Each call starts a fresh scan.
//
// Example:
//
//	it := re.FindIter("a1b22c333")
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Println(m.Text())
//	}
func (r *Regex) FindIter(text string) *Matches {
	it := &Matches{
		re:  r,
		ctx: nfa.NewContext(text, r.nfa.Flags()),
	}
	if r.prefilter != nil {
		it.scan = prefilter.NewScanner(r.prefilter, text)
	}
	return it
}

// All returns an iterator over all non-overlapping matches in text, for use
// with range-over-func.
func (r *Regex) All(text string) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		it := r.FindIter(text)
		for {
			m, ok := it.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Next returns the next match. The second result is false once the text is
// exhausted; every later call also returns false.
func (it *Matches) Next() (*Match, bool) {
	for !it.done && it.pos <= len(it.ctx.Text) {
		start := it.pos
		if it.scan != nil {
			// A match must begin with one of the literal prefixes.
			if start = it.scan.Next(it.pos); start < 0 {
				break
			}
		}

		cur, ok := it.re.matchAt(it.ctx, start)
		if !ok {
			it.pos = start + 1
			continue
		}

		if cur.Pos == start {
			it.pos = cur.Pos + 1
		} else {
			it.pos = cur.Pos
		}
		return &Match{
			text:  it.ctx.Text,
			start: start,
			end:   cur.Pos,
			slots: cur.Captures(it.re.nfa.GroupCount()),
		}, true
	}
	it.done = true
	return nil, false
}
