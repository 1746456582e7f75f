package game

import "errors"

// ErrNothingToUndo is returned when no prior board is available
var ErrNothingToUndo = errors.New("nothing to undo")

// History is a bounded log of prior boards, most recent last. It holds
// independent copies, so no history entry ever aliases the live board.
type History struct {
	limit   int
	entries []*Board
}

// NewHistory creates a history that keeps at most limit boards.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records a copy of b, evicting the oldest entries beyond the limit
func (h *History) Push(b *Board) {
	h.entries = append(h.entries, b.Clone())
	if over := len(h.entries) - h.limit; over > 0 {
		clear(h.entries[:over])
		h.entries = h.entries[over:]
	}
}

// Pop removes and returns the most recent board
func (h *History) Pop() (*Board, error) {
	n := len(h.entries)
	if n == 0 {
		return nil, ErrNothingToUndo
	}
	b := h.entries[n-1]
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return b, nil
}

// Len returns the number of boards available to undo into
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the maximum number of boards kept
func (h *History) Limit() int {
	return h.limit
}

// Reset drops every entry
func (h *History) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
