package ui

import "github.com/piwi3910/SheetQuote/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the quote request at a point in time. Requests are
// plain values, so holding one never aliases the live form.
type Snapshot struct {
	Request model.QuoteRequest
	Label   string // Human-readable description (e.g. "Change Material")
}

// History manages undo/redo stacks of request snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// PushMerged is Push for keystroke edits: when the newest undo entry has
// the same label, the earlier snapshot is kept and s is dropped, so a run of
// typing in one field undoes as one step.
func (h *History) PushMerged(s Snapshot) {
	if n := len(h.undoStack); n > 0 && len(h.redoStack) == 0 && h.undoStack[n-1].Label == s.Label {
		return
	}
	h.Push(s)
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	// The restored state inherits the label of the change being undone,
	// so redo can describe it.
	current.Label = last.Label
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	current.Label = last.Label
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoLabel describes the change Undo would revert, or "".
func (h *History) UndoLabel() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// RedoLabel describes the change Redo would reapply, or "".
func (h *History) RedoLabel() string {
	if len(h.redoStack) == 0 {
		return ""
	}
	return h.redoStack[len(h.redoStack)-1].Label
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot creates a snapshot of a request with a label.
func MakeSnapshot(req model.QuoteRequest, label string) Snapshot {
	return Snapshot{
		Request: req,
		Label:   label,
	}
}
