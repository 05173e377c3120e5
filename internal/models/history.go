package models

import "sync"

// HistoryCapacity is how many recent actions are retained.
const HistoryCapacity = 20

// ActionHistory is a bounded FIFO of recent decisions. The arbiter is the only
// writer; engines read it, possibly from another goroutine while a decision
// is timing out, so access is guarded.
type ActionHistory struct {
	mu       sync.RWMutex
	capacity int
	entries  []HistoryEntry
}

// NewActionHistory returns a history holding at most capacity entries.
// A non-positive capacity uses HistoryCapacity.
func NewActionHistory(capacity int) *ActionHistory {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &ActionHistory{
		capacity: capacity,
		entries:  make([]HistoryEntry, 0, capacity),
	}
}

// Record appends an entry, evicting the oldest when full.
func (h *ActionHistory) Record(action Action, commentary string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, HistoryEntry{Action: action, Commentary: commentary})
}

// Len returns the number of retained entries.
func (h *ActionHistory) Len() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Entries returns a copy, oldest first.
func (h *ActionHistory) Entries() []HistoryEntry {
	return h.Recent(-1)
}

// Recent returns up to n of the newest entries, oldest first. n < 0 means all.
func (h *ActionHistory) Recent(n int) []HistoryEntry {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	start := 0
	if n >= 0 && n < len(h.entries) {
		start = len(h.entries) - n
	}
	out := make([]HistoryEntry, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Last returns the newest entry.
func (h *ActionHistory) Last() (HistoryEntry, bool) {
	if h == nil {
		return HistoryEntry{}, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Restore replaces the contents with entries, keeping only the newest that fit.
func (h *ActionHistory) Restore(entries []HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > h.capacity {
		entries = entries[len(entries)-h.capacity:]
	}
	h.entries = append(h.entries[:0], entries...)
}
