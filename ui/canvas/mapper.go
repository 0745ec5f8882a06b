package canvas

// BufferPoint maps a pointer position in display space to buffer
// coordinates. The image is drawn contain-fit and centered inside the
// display surface; both scale ratios derive from the surface size the
// caller read at event time, never from a cached value, because the
// surface may resize between events.
//
// The returned coordinates may lie outside the buffer when the pointer
// is over the letterbox margin; inside reports whether they are within
// bounds. Brush stamping clips, so callers may use out-of-range points.
func BufferPoint(px, py, dispW, dispH float32, bufW, bufH int) (bx, by int, inside bool) {
	if bufW <= 0 || bufH <= 0 || dispW <= 0 || dispH <= 0 {
		return 0, 0, false
	}

	scale := dispW / float32(bufW)
	if s := dispH / float32(bufH); s < scale {
		scale = s
	}

	ox := (dispW - float32(bufW)*scale) / 2
	oy := (dispH - float32(bufH)*scale) / 2

	bx = int((px - ox) / scale)
	by = int((py - oy) / scale)
	inside = bx >= 0 && bx < bufW && by >= 0 && by < bufH
	return bx, by, inside
}
