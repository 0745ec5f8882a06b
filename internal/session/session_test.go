package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"cutout/internal/brush"
	"cutout/internal/buffer"
	"cutout/internal/compose"
	"cutout/internal/segment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullProvider marks every pixel as foreground.
type fullProvider struct{}

func (fullProvider) Segment(_ context.Context, src *buffer.Buffer) (*buffer.Buffer, error) {
	out := src.Clone()
	pix := out.Pix()
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return out, nil
}

// failProvider always errors.
type failProvider struct{}

func (failProvider) Segment(context.Context, *buffer.Buffer) (*buffer.Buffer, error) {
	return nil, errors.New("model unavailable")
}

// mismatchProvider returns a result of the wrong dimensions.
type mismatchProvider struct{}

func (mismatchProvider) Segment(_ context.Context, src *buffer.Buffer) (*buffer.Buffer, error) {
	return buffer.New(src.Width()+1, src.Height()), nil
}

// gatedProvider blocks until released, to exercise superseded loads.
type gatedProvider struct {
	gate chan struct{}
	fill uint8
}

func (p *gatedProvider) Segment(_ context.Context, src *buffer.Buffer) (*buffer.Buffer, error) {
	<-p.gate
	out := src.Clone()
	pix := out.Pix()
	for i := 3; i < len(pix); i += 4 {
		pix[i] = p.fill
	}
	return out, nil
}

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}

func loadAndWait(t *testing.T, s *Session, img image.Image) {
	t.Helper()
	done := make(chan struct{}, 1)
	s.On(EventImageLoaded, func(interface{}) { done <- struct{}{} })
	s.On(EventLoadFailed, func(data interface{}) {
		t.Errorf("unexpected load failure: %v", data)
		done <- struct{}{}
	})
	s.Load(img)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("load did not complete")
	}
}

func newLoaded(t *testing.T) *Session {
	t.Helper()
	s := New(Config{Provider: fullProvider{}})
	loadAndWait(t, s, testImage(40, 30))
	return s
}

func TestLoadSeedsSession(t *testing.T) {
	s := newLoaded(t)

	require.True(t, s.Ready())
	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	v, err := s.Mask().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), v, "mask seeded from the provider's alpha")
	assert.False(t, s.CanUndo())
}

func TestLoadDownsamplesToWorkingSize(t *testing.T) {
	s := New(Config{Provider: fullProvider{}, WorkingSize: 100})
	loadAndWait(t, s, testImage(400, 200))

	w, h := s.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestStrokeBeforeLoadRejected(t *testing.T) {
	s := New(Config{Provider: fullProvider{}})
	assert.False(t, s.StrokeBegin(5, 5))
	assert.False(t, s.Undo())
}

func TestStrokeErasesAndUndoes(t *testing.T) {
	s := newLoaded(t)
	s.SetBrush(brush.Erase, 4)
	before := s.Mask().Clone()

	require.True(t, s.StrokeBegin(10, 10))
	s.StrokeMove(14, 10)
	s.StrokeEnd()

	v, _ := s.Mask().At(10, 10)
	assert.Equal(t, uint8(0), v)
	v, _ = s.Mask().At(14, 10)
	assert.Equal(t, uint8(0), v)
	require.True(t, s.CanUndo())

	// One stroke, many stamps: a single undo restores everything.
	require.True(t, s.Undo())
	assert.True(t, s.Mask().Equal(before), "undo must restore the pre-stroke mask byte-for-byte")
	assert.False(t, s.Undo())
}

func TestStrokeMoveWithoutBeginIgnored(t *testing.T) {
	s := newLoaded(t)
	before := s.Mask().Clone()

	s.StrokeMove(10, 10)
	assert.True(t, s.Mask().Equal(before))
}

func TestUndoBlockedMidStroke(t *testing.T) {
	s := newLoaded(t)
	require.True(t, s.StrokeBegin(5, 5))
	assert.False(t, s.Undo(), "undo during an active stroke is ignored")
	s.StrokeEnd()
	assert.True(t, s.Undo())
}

func TestRedoInvalidatedByNewStroke(t *testing.T) {
	s := newLoaded(t)

	require.True(t, s.StrokeBegin(5, 5))
	s.StrokeEnd()
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	require.True(t, s.StrokeBegin(20, 20))
	s.StrokeEnd()
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
}

func TestResetMaskRestoresInitialSegmentation(t *testing.T) {
	s := newLoaded(t)
	initial := s.Mask().Clone()

	require.True(t, s.StrokeBegin(10, 10))
	s.StrokeEnd()
	require.True(t, s.StrokeBegin(20, 15))
	s.StrokeEnd()

	s.ResetMask()
	assert.True(t, s.Mask().Equal(initial))
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestSetBackgroundLeavesMaskAlone(t *testing.T) {
	s := newLoaded(t)
	require.True(t, s.StrokeBegin(10, 10))
	s.StrokeEnd()
	before := s.Mask().Clone()

	s.SetBackground(compose.SolidColor{C: color.NRGBA{G: 255, A: 255}})
	assert.True(t, s.Mask().Equal(before))
	assert.IsType(t, compose.SolidColor{}, s.Background())
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	s := newLoaded(t)
	require.True(t, s.StrokeBegin(10, 10))
	s.StrokeEnd()
	before := s.Mask().Clone()

	failed := make(chan interface{}, 1)
	s.On(EventLoadFailed, func(data interface{}) { failed <- data })

	// Swap in a failing provider for the next load.
	s.provider = failProvider{}
	s.Load(testImage(40, 30))

	select {
	case data := <-failed:
		err, ok := data.(error)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "model unavailable")
	case <-time.After(5 * time.Second):
		t.Fatal("load failure was not reported")
	}

	assert.True(t, s.Ready(), "session recovers to its previous valid state")
	assert.True(t, s.Mask().Equal(before), "failed load must not corrupt the mask")
}

func TestLoadDimensionMismatchFails(t *testing.T) {
	s := New(Config{Provider: mismatchProvider{}})

	failed := make(chan interface{}, 1)
	s.On(EventLoadFailed, func(data interface{}) { failed <- data })
	s.Load(testImage(40, 30))

	select {
	case data := <-failed:
		err, ok := data.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, buffer.ErrDimensionMismatch)
	case <-time.After(5 * time.Second):
		t.Fatal("dimension mismatch was not reported")
	}
	assert.False(t, s.Ready())
}

func TestSupersededLoadDiscarded(t *testing.T) {
	slow := &gatedProvider{gate: make(chan struct{}), fill: 1}
	s := New(Config{Provider: slow})

	loaded := make(chan struct{}, 2)
	s.On(EventImageLoaded, func(interface{}) { loaded <- struct{}{} })

	s.Load(testImage(10, 10))

	fast := &gatedProvider{gate: make(chan struct{}), fill: 2}
	s.provider = fast
	s.Load(testImage(10, 10))

	close(fast.gate)
	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("second load did not complete")
	}

	// Release the first, superseded load; its late result must be dropped.
	close(slow.gate)
	select {
	case <-loaded:
		t.Fatal("superseded load should not report completion")
	case <-time.After(100 * time.Millisecond):
	}

	v, _ := s.Mask().At(5, 5)
	assert.Equal(t, uint8(2), v, "the newer load's result wins")
}

func TestExportWritesPNG(t *testing.T) {
	s := newLoaded(t)
	s.SetBackground(compose.SolidColor{C: color.NRGBA{B: 255, A: 255}})

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestPreviewMatchesDimensions(t *testing.T) {
	s := newLoaded(t)

	out, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, 40, out.Width())
	assert.Equal(t, 30, out.Height())
}

func TestThresholdProviderEndToEnd(t *testing.T) {
	// Wire the real fallback provider through a full load.
	s := New(Config{Provider: segment.Threshold{}})
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 250, 250, 250, 255
	}
	loadAndWait(t, s, img)

	v, err := s.Mask().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v, "uniform background image segments to empty mask")
}
