// Package tui provides the Bubble Tea terminal UI for Retro Dungeon: a room
// or map panel, a stats panel, a scrollback log, and the command line.
package tui

// History keeps submitted commands for Ctrl+P / Ctrl+N browsing.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not browsing
}

// NewHistory creates a history holding at most max entries.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a command and ends browsing. Consecutive duplicates are kept
// once.
func (h *History) Push(cmd string) {
	h.cursor = -1
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return len(h.entries) }

// Prev steps to the previous (older) entry and stops at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps to the next (newer) entry. Moving past the newest ends browsing
// and returns false so the caller can clear the input.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}
