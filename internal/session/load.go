package session

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"cutout/internal/buffer"
	"cutout/internal/compose"
	"cutout/internal/segment"
)

// Load starts an asynchronous load of a new source image: downsample to
// the working size, run the segmentation provider, and seed the mask and
// history. A Load issued while another is in flight supersedes it; the
// older result is discarded if it arrives late. Completion is reported
// through EventImageLoaded or EventLoadFailed.
func (s *Session) Load(img image.Image) {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	provider := s.provider
	workingSize := s.workingSize
	s.mu.Unlock()

	go s.runLoad(ctx, gen, img, provider, workingSize)
}

func (s *Session) runLoad(ctx context.Context, gen uint64, img image.Image, provider segment.Provider, workingSize int) {
	working := compose.FitWorking(img, workingSize)

	segmented, err := provider.Segment(ctx, working)

	var mask *buffer.Mask
	if err == nil {
		mask, err = buffer.MaskFromAlpha(segmented, working)
	}

	s.mu.Lock()
	if gen != s.loadGen {
		// A newer load superseded this one; drop the result.
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		// The session keeps its previous state; the load is recoverable
		// by loading again.
		s.mu.Unlock()
		slog.Warn("image load failed", "error", err)
		s.emit(EventLoadFailed, fmt.Errorf("failed to load image: %w", err))
		return
	}

	s.src = working
	s.mask = mask
	s.initialMask = mask.Clone()
	s.hist.Reset(mask)
	s.strokeActive = false
	s.mu.Unlock()

	s.emit(EventImageLoaded, s)
}
