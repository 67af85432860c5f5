package buffer

// Window is a fixed-length sliding window over a sample stream.
type Window struct {
	samples []float64
}

// NewWindow returns a zero-filled window of length n.
func NewWindow(n int) *Window {
	if n < 0 {
		n = 0
	}
	return &Window{samples: make([]float64, n)}
}

// Samples returns the window contents, oldest first.
func (w *Window) Samples() []float64 { return w.samples }

// Len returns the window length.
func (w *Window) Len() int { return len(w.samples) }

// Slide discards the oldest n samples and returns the vacated tail for the
// caller to fill. n is clamped to the window length.
func (w *Window) Slide(n int) []float64 {
	n = max(0, min(n, len(w.samples)))
	copy(w.samples, w.samples[n:])
	tail := w.samples[len(w.samples)-n:]
	clear(tail)
	return tail
}

// Reset zeroes the window.
func (w *Window) Reset() { clear(w.samples) }
