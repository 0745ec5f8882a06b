// Package history provides bounded undo/redo over full mask snapshots.
//
// The history is deliberately lossy: both stacks are capped, and once the
// oldest snapshot is evicted the state it held is unrecoverable. This keeps
// memory bounded for long editing sessions at full-frame snapshot cost.
package history

import "cutout/internal/buffer"

// DefaultLimit is the default number of undoable steps.
const DefaultLimit = 50

// Stacks holds the undo and redo snapshot stacks for one editing session.
//
// The undo stack keeps one more entry than the step limit: its bottom entry
// is the oldest reachable state and is never restored past, so undo at the
// boundary is a no-op rather than an error. Seed it with the pre-edit mask
// via Reset when a session starts.
type Stacks struct {
	limit int
	undo  []*buffer.Mask
	redo  []*buffer.Mask
}

// New creates empty stacks allowing up to limit undoable steps.
// A non-positive limit falls back to DefaultLimit.
func New(limit int) *Stacks {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stacks{limit: limit}
}

// BeginStroke records the pre-stroke state and invalidates any redo
// states. Call it before the first stamp of a stroke so the snapshot
// captures the mask as it was.
func (s *Stacks) BeginStroke(mask *buffer.Mask) {
	// limit+1 because the bottom entry is the non-undoable base state.
	s.undo = pushBounded(s.undo, mask.Clone(), s.limit+1)
	s.redo = s.redo[:0]
}

// Undo steps the live mask back one stroke: the current state moves to the
// redo stack and the most recent snapshot is copied into the live mask.
// Returns false, leaving the mask untouched, when only the base state
// remains.
func (s *Stacks) Undo(live *buffer.Mask) bool {
	if len(s.undo) <= 1 {
		return false
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = pushBounded(s.redo, live.Clone(), s.limit)
	_ = live.CopyFrom(top)
	return true
}

// Redo re-applies the most recently undone state: the current live mask
// returns to the undo stack and the popped redo snapshot becomes live.
// Returns false when there is nothing to redo.
func (s *Stacks) Redo(live *buffer.Mask) bool {
	if len(s.redo) == 0 {
		return false
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = pushBounded(s.undo, live.Clone(), s.limit+1)
	_ = live.CopyFrom(top)
	return true
}

// CanUndo reports whether Undo would change the live mask.
func (s *Stacks) CanUndo() bool {
	return len(s.undo) > 1
}

// CanRedo reports whether Redo would change the live mask.
func (s *Stacks) CanRedo() bool {
	return len(s.redo) > 0
}

// Reset discards everything and re-seeds the undo stack with the given
// mask as the new pre-edit base state.
func (s *Stacks) Reset(mask *buffer.Mask) {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
	s.undo = append(s.undo, mask.Clone())
}

// pushBounded appends snap, evicting the oldest entry when the stack is
// at its cap. The newest entry is never the one evicted.
func pushBounded(stack []*buffer.Mask, snap *buffer.Mask, limit int) []*buffer.Mask {
	if len(stack) >= limit {
		copy(stack, stack[len(stack)-limit+1:])
		stack = stack[:limit-1]
	}
	return append(stack, snap)
}
