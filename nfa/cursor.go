package nfa

import "github.com/coregx/regnfa/syntax"

// Context is the read-only input of one search: the subject text as runes and
// the effective flags. Positions are rune offsets into Text.
type Context struct {
	Text  []rune
	Flags syntax.Flags
}

// NewContext returns a context over text.
func NewContext(text string, flags syntax.Flags) *Context {
	return &Context{Text: []rune(text), Flags: flags}
}

// captureEntry is one node of a persistent capture log. Entries are never
// modified after creation, so cursors share their common history.
type captureEntry struct {
	slot int
	pos  int
	prev *captureEntry
}

// Cursor is a thread's position plus its capture history.
//
// Cursor is a value type. Advance and Record return new cursors and never
// change the receiver, so a cursor can be handed to any number of threads.
type Cursor struct {
	Pos  int
	caps *captureEntry
}

// NewCursor returns a cursor at pos with no captures.
func NewCursor(pos int) Cursor {
	return Cursor{Pos: pos}
}

// Advance returns the cursor moved past one character.
func (c Cursor) Advance() Cursor {
	c.Pos++
	return c
}

// Record returns the cursor with the current position stored in slot.
// Group i uses slot 2i for its start and 2i+1 for its end.
func (c Cursor) Record(slot int) Cursor {
	return Cursor{
		Pos:  c.Pos,
		caps: &captureEntry{slot: slot, pos: c.Pos, prev: c.caps},
	}
}

// Slot returns the most recent offset recorded in slot.
func (c Cursor) Slot(slot int) (int, bool) {
	for e := c.caps; e != nil; e = e.prev {
		if e.slot == slot {
			return e.pos, true
		}
	}
	return -1, false
}

// Captures materializes 2*groupCount slots; unset slots are -1.
// The most recent record of each slot wins.
func (c Cursor) Captures(groupCount int) []int {
	slots := make([]int, 2*groupCount)
	for i := range slots {
		slots[i] = -1
	}
	remaining := len(slots)
	for e := c.caps; e != nil && remaining > 0; e = e.prev {
		if e.slot < len(slots) && slots[e.slot] == -1 {
			slots[e.slot] = e.pos
			remaining--
		}
	}
	return slots
}
