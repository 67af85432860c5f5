package binaural

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/buffer"
	"github.com/cwbudde/algo-binaural/dsp/fourier"
)

// Binauralizer spatialises one mono source.
//
// Provide, GenerateLR and GenerateInterleaved belong to the audio goroutine.
// SetSampleLocation and SampleLocation may be called from any goroutine.
// Init must complete before streaming starts; Shut may be called at any
// time.
type Binauralizer struct {
	logger *slog.Logger

	state atomic.Int32
	set   atomic.Pointer[hrir.SampleSet]

	mu        sync.Locker
	elevation float64
	azimuth   float64

	conv *Convolver
	fade *Crossfade

	ring     *buffer.Ring
	consumed uint64
	window   *buffer.Window

	blended hrir.Data
	filters [2]Filter
	current int

	oldL, oldR []float64
	newL, newR []float64

	outL, outR []float64
	readPos    int
	starved    bool
}

// New creates an unbound Binauralizer. Without WithTransform the transform
// is chosen by fourier.New.
func New(opts ...Option) (*Binauralizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	t := cfg.transform
	if t == nil {
		var err error
		t, err = fourier.New(AudioBufferSize)
		if err != nil {
			return nil, fmt.Errorf("binaural: %w", err)
		}
	}

	conv, err := NewConvolver(t)
	if err != nil {
		return nil, err
	}

	b := &Binauralizer{
		logger:  cfg.logger,
		mu:      &sync.Mutex{},
		conv:    conv,
		fade:    NewCrossfade(UpdateSize),
		ring:    buffer.NewRing(RingSize),
		window:  buffer.NewWindow(AudioBufferSize),
		oldL:    make([]float64, AudioBufferSize),
		oldR:    make([]float64, AudioBufferSize),
		newL:    make([]float64, AudioBufferSize),
		newR:    make([]float64, AudioBufferSize),
		outL:    make([]float64, UpdateSize),
		outR:    make([]float64, UpdateSize),
		readPos: UpdateSize,
	}

	return b, nil
}

// State returns the lifecycle state.
func (b *Binauralizer) State() State { return State(b.state.Load()) }

// IsInit reports whether a sample set is bound.
func (b *Binauralizer) IsInit() bool {
	s := b.State()
	return s == StateBound || s == StateStreaming
}

// Init binds a finalized sample set and the lock guarding the location.
// A nil lock selects an internal mutex. Streaming state is reset, so Init
// must not run concurrently with the audio goroutine.
func (b *Binauralizer) Init(set *hrir.SampleSet, mu sync.Locker) error {
	if set == nil {
		return ErrNilSampleSet
	}
	if !set.Finalized() {
		return ErrNotFinalized
	}

	if mu != nil {
		b.mu = mu
	}

	b.ring.Reset()
	b.consumed = 0
	b.window.Reset()
	b.filters = [2]Filter{}
	b.current = 0
	clear(b.outL)
	clear(b.outR)
	b.readPos = UpdateSize
	b.starved = false

	b.set.Store(set)
	b.state.Store(int32(StateBound))

	b.logger.Debug("binaural: bound", "samples", set.Len(), "transform", b.conv.Transform().Name())

	return nil
}

// Shut detaches the sample set. Later output is silent. The sample set is
// left untouched.
func (b *Binauralizer) Shut() {
	prev := State(b.state.Swap(int32(StateUnbound)))
	b.set.Store(nil)

	if prev != StateUnbound {
		b.logger.Debug("binaural: unbound", "previous", prev.String())
	}
}

// SetSampleLocation sets the target direction in degrees.
func (b *Binauralizer) SetSampleLocation(elevation, azimuth float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.elevation = elevation
	b.azimuth = azimuth
}

// SampleLocation returns the target direction in degrees.
func (b *Binauralizer) SampleLocation() (elevation, azimuth float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.elevation, b.azimuth
}

// Provide queues mono input. It never blocks. The caller must keep the
// unread backlog below RingSize samples; older input is overwritten.
func (b *Binauralizer) Provide(samples []float64) {
	b.ring.Write(samples)
}

// GenerateLR fills outL and outR with processed output. Only the common
// length of both slices is written.
func (b *Binauralizer) GenerateLR(outL, outR []float64) {
	n := min(len(outL), len(outR))
	for i := 0; i < n; {
		if b.readPos == UpdateSize {
			b.refill()
		}
		k := copy(outL[i:n], b.outL[b.readPos:])
		copy(outR[i:i+k], b.outR[b.readPos:])
		i += k
		b.readPos += k
	}
}

// GenerateInterleaved fills out with left/right frames. A trailing odd
// sample is set to zero.
func (b *Binauralizer) GenerateInterleaved(out []float64) {
	frames := len(out) / 2
	for i := range frames {
		if b.readPos == UpdateSize {
			b.refill()
		}
		out[2*i] = b.outL[b.readPos]
		out[2*i+1] = b.outR[b.readPos]
		b.readPos++
	}
	if len(out)%2 == 1 {
		out[len(out)-1] = 0
	}
}

func (b *Binauralizer) refill() {
	b.readPos = 0

	set := b.set.Load()
	if set == nil || !b.IsInit() {
		b.silence()
		return
	}

	// Nothing is processed until one full window has been written.
	if b.ring.Written() < AudioBufferSize {
		b.silence()
		return
	}

	if b.ring.Written()-b.consumed < UpdateSize {
		if !b.starved && b.State() == StateStreaming {
			b.logger.Debug("binaural: input underrun")
		}
		b.starved = true
		b.silence()
		return
	}
	b.starved = false

	tail := b.window.Slide(UpdateSize)
	b.ring.ReadAt(tail, b.consumed)
	b.consumed += UpdateSize

	elevation, azimuth := ClampLocation(b.SampleLocation())

	next := 1 - b.current
	if m, ok := set.Lookup3(elevation, azimuth); ok {
		BlendMatch(&m, &b.blended)
	} else {
		b.blended = hrir.Data{}
	}

	if err := HRIRToHRTF(b.conv.Transform(), &b.blended, &b.filters[next]); err != nil {
		b.silence()
		return
	}

	err := b.conv.ConvolvePair(b.window.Samples(), &b.filters[b.current], &b.filters[next],
		b.oldL, b.oldR, b.newL, b.newR)
	if err != nil {
		b.silence()
		return
	}

	if err := b.fade.Apply(b.oldL[UpdateSize:], b.newL[UpdateSize:], b.outL); err != nil {
		b.silence()
		return
	}
	if err := b.fade.Apply(b.oldR[UpdateSize:], b.newR[UpdateSize:], b.outR); err != nil {
		b.silence()
		return
	}

	b.current = next

	if b.state.CompareAndSwap(int32(StateBound), int32(StateStreaming)) {
		b.logger.Debug("binaural: streaming")
	}
}

func (b *Binauralizer) silence() {
	clear(b.outL)
	clear(b.outR)
}
