package buffer

// Ring is a fixed-size circular buffer of samples addressed by absolute
// stream position. It tracks the total number of samples ever written.
//
// Ring does no synchronisation and never blocks. A reader that falls more
// than Size samples behind the writer reads overwritten data.
type Ring struct {
	data    []float64
	written uint64
}

// NewRing returns an empty ring holding size samples. Sizes below 1 are
// raised to 1.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{data: make([]float64, size)}
}

// Size returns the capacity in samples.
func (r *Ring) Size() int { return len(r.data) }

// Written returns the total number of samples written since creation or
// the last Reset.
func (r *Ring) Written() uint64 { return r.written }

// Write appends samples, wrapping the write cursor. Only the last Size
// samples of an oversized write are retained.
func (r *Ring) Write(samples []float64) {
	n := len(r.data)
	if len(samples) > n {
		r.written += uint64(len(samples) - n)
		samples = samples[len(samples)-n:]
	}

	pos := int(r.written % uint64(n))
	k := copy(r.data[pos:], samples)
	copy(r.data, samples[k:])

	r.written += uint64(len(samples))
}

// ReadAt copies len(dst) samples starting at absolute stream position pos.
func (r *Ring) ReadAt(dst []float64, pos uint64) {
	n := len(r.data)
	for len(dst) > 0 {
		start := int(pos % uint64(n))
		k := copy(dst, r.data[start:])
		dst = dst[k:]
		pos += uint64(k)
	}
}

// Reset discards all content.
func (r *Ring) Reset() {
	clear(r.data)
	r.written = 0
}
