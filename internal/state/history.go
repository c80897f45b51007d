package state

import "log"

// History is a linear undo/redo log of marks. Marks live in exactly one of
// two stacks: committed (visible) or redo (undone). Committing a new mark
// discards the redo stack.
type History struct {
	committed []Drawable
	redo      []Drawable
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// BeginNew commits d and clears the redo stack.
func (h *History) BeginNew(d Drawable) {
	h.committed = append(h.committed, d)
	if len(h.redo) > 0 {
		log.Printf("[HISTORY] %s %s discards %d redoable marks", d.Kind(), d.ID(), len(h.redo))
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo moves the newest committed mark onto the redo stack. It reports
// whether anything moved.
func (h *History) Undo() bool {
	d, ok := pop(&h.committed)
	if !ok {
		return false
	}
	h.redo = append(h.redo, d)
	log.Printf("[HISTORY] undo %s %s", d.Kind(), d.ID())
	return true
}

// Redo moves the newest undone mark back onto the committed stack. It
// reports whether anything moved.
func (h *History) Redo() bool {
	d, ok := pop(&h.redo)
	if !ok {
		return false
	}
	h.committed = append(h.committed, d)
	log.Printf("[HISTORY] redo %s %s", d.Kind(), d.ID())
	return true
}

// Clear drops every mark from both stacks.
func (h *History) Clear() {
	log.Printf("[HISTORY] clear: %d committed, %d redoable", len(h.committed), len(h.redo))
	h.committed = nil
	h.redo = nil
}

// Snapshot returns the committed marks in drawing order. The slice is a copy;
// the redo stack is never exposed.
func (h *History) Snapshot() []Drawable {
	out := make([]Drawable, len(h.committed))
	copy(out, h.committed)
	return out
}

// Last returns the newest committed mark, or nil.
func (h *History) Last() Drawable {
	if len(h.committed) == 0 {
		return nil
	}
	return h.committed[len(h.committed)-1]
}

func (h *History) Len() int     { return len(h.committed) }
func (h *History) RedoLen() int { return len(h.redo) }

func pop(stack *[]Drawable) (Drawable, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	d := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return d, true
}
