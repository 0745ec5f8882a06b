// Package session owns the editing state and sequences every operation
// of the mask editor: strokes, history, background choice, and export.
//
// The Session is the single writer of the live mask. UI callbacks run
// one at a time on the toolkit's event loop; the only concurrent path
// is image loading, which installs its result under the session lock
// and is guarded by a load generation counter.
package session

import (
	"fmt"
	"io"
	"sync"

	"cutout/internal/brush"
	"cutout/internal/buffer"
	"cutout/internal/compose"
	"cutout/internal/history"
	"cutout/internal/segment"
)

// Config carries the session's collaborators and policy knobs.
type Config struct {
	// Provider produces the initial segmentation for each loaded image.
	Provider segment.Provider
	// WorkingSize bounds the long edge of the working image.
	// Zero means compose.DefaultWorkingSize.
	WorkingSize int
	// HistoryLimit caps the undo/redo stacks. Zero means
	// history.DefaultLimit.
	HistoryLimit int
}

// Session holds one editing session: the working source image, the live
// mask, brush state, history, and the chosen background.
type Session struct {
	mu sync.RWMutex

	provider    segment.Provider
	workingSize int

	src         *buffer.Buffer
	mask        *buffer.Mask
	initialMask *buffer.Mask
	hist        *history.Stacks

	brushMode    brush.Mode
	brushRadius  int
	strokeActive bool

	background compose.Background

	loading bool
	loadGen uint64
	cancel  func()

	listeners map[EventType][]EventListener
}

// DefaultBrushRadius is the starting brush radius in buffer pixels.
const DefaultBrushRadius = 12

// New creates an idle session. Load an image before editing.
func New(cfg Config) *Session {
	provider := cfg.Provider
	if provider == nil {
		provider = segment.Threshold{}
	}
	return &Session{
		provider:    provider,
		workingSize: cfg.WorkingSize,
		hist:        history.New(cfg.HistoryLimit),
		brushMode:   brush.Erase,
		brushRadius: DefaultBrushRadius,
		background:  compose.Transparent{},
		listeners:   make(map[EventType][]EventListener),
	}
}

// Ready reports whether an image is loaded and stroke input is accepted.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src != nil && !s.loading
}

// Size returns the working image dimensions, or zeros when idle.
func (s *Session) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.src == nil {
		return 0, 0
	}
	return s.src.Width(), s.src.Height()
}

// SetBrush sets the stamp mode and radius for subsequent strokes.
func (s *Session) SetBrush(mode brush.Mode, radius int) {
	if radius < 1 {
		radius = 1
	}
	s.mu.Lock()
	s.brushMode = mode
	s.brushRadius = radius
	s.mu.Unlock()
}

// Brush returns the current stamp mode and radius.
func (s *Session) Brush() (brush.Mode, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brushMode, s.brushRadius
}

// StrokeBegin starts a stroke at buffer coordinates (x, y): the
// pre-stroke mask is snapshotted, then the first stamp is applied.
// Returns false when no editable image is loaded.
func (s *Session) StrokeBegin(x, y int) bool {
	s.mu.Lock()
	if s.src == nil || s.loading {
		s.mu.Unlock()
		return false
	}
	s.hist.BeginStroke(s.mask)
	brush.Stamp(s.mask, x, y, s.brushRadius, s.brushMode)
	s.strokeActive = true
	s.mu.Unlock()

	s.emit(EventHistoryChanged, nil)
	s.emit(EventMaskChanged, nil)
	return true
}

// StrokeMove continues the active stroke with another stamp. Stamps
// between StrokeBegin and StrokeEnd share one history entry.
func (s *Session) StrokeMove(x, y int) {
	s.mu.Lock()
	if !s.strokeActive {
		s.mu.Unlock()
		return
	}
	brush.Stamp(s.mask, x, y, s.brushRadius, s.brushMode)
	s.mu.Unlock()

	s.emit(EventMaskChanged, nil)
}

// StrokeEnd finishes the active stroke. No history operation happens
// here; the snapshot was taken at StrokeBegin.
func (s *Session) StrokeEnd() {
	s.mu.Lock()
	s.strokeActive = false
	s.mu.Unlock()
}

// StrokeActive reports whether a stroke is in progress.
func (s *Session) StrokeActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strokeActive
}

// Undo steps the mask back one stroke. A no-op at the history boundary.
func (s *Session) Undo() bool {
	s.mu.Lock()
	if s.mask == nil || s.strokeActive {
		s.mu.Unlock()
		return false
	}
	ok := s.hist.Undo(s.mask)
	s.mu.Unlock()

	if ok {
		s.emit(EventHistoryChanged, nil)
		s.emit(EventMaskChanged, nil)
	}
	return ok
}

// Redo re-applies the most recently undone stroke. A no-op when there
// is nothing to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	if s.mask == nil || s.strokeActive {
		s.mu.Unlock()
		return false
	}
	ok := s.hist.Redo(s.mask)
	s.mu.Unlock()

	if ok {
		s.emit(EventHistoryChanged, nil)
		s.emit(EventMaskChanged, nil)
	}
	return ok
}

// CanUndo reports whether Undo would change the mask.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether Redo would change the mask.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanRedo()
}

// ResetMask restores the provider's initial segmentation and clears the
// editing history back to that state.
func (s *Session) ResetMask() {
	s.mu.Lock()
	if s.mask == nil {
		s.mu.Unlock()
		return
	}
	_ = s.mask.CopyFrom(s.initialMask)
	s.hist.Reset(s.mask)
	s.strokeActive = false
	s.mu.Unlock()

	s.emit(EventHistoryChanged, nil)
	s.emit(EventMaskChanged, nil)
}

// SetBackground switches the background variant. The mask is untouched.
func (s *Session) SetBackground(bg compose.Background) {
	s.mu.Lock()
	s.background = bg
	s.mu.Unlock()

	s.emit(EventBackgroundChanged, nil)
}

// Background returns the active background variant.
func (s *Session) Background() compose.Background {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

// Mask returns the live mask for read access (statistics, preview).
// Only the session writes to it.
func (s *Session) Mask() *buffer.Mask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask
}

// Preview renders the current composite for display, with the
// transparent variant shown over the checkerboard.
func (s *Session) Preview() (*buffer.Buffer, error) {
	s.mu.RLock()
	src, mask, bg := s.src, s.mask, s.background
	s.mu.RUnlock()

	if src == nil {
		return nil, fmt.Errorf("session: no image loaded")
	}
	return compose.Preview(src, mask, bg)
}

// Export writes the final composite as PNG. The transparent variant
// keeps its alpha channel.
func (s *Session) Export(w io.Writer) error {
	s.mu.RLock()
	src, mask, bg := s.src, s.mask, s.background
	s.mu.RUnlock()

	if src == nil {
		return fmt.Errorf("session: no image loaded")
	}
	out, err := compose.Composite(src, mask, bg)
	if err != nil {
		return err
	}
	return compose.ExportPNG(out, w)
}
