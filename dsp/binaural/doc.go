// Package binaural renders a mono stream to stereo by convolving it with
// head-related transfer functions interpolated for a moving direction.
//
// A [Binauralizer] is created per sound source and bound to a finalized
// [hrir.SampleSet] with Init. The audio callback pushes mono samples with
// Provide and pulls stereo output with GenerateLR or GenerateInterleaved.
// A control goroutine moves the source with SetSampleLocation at any time.
//
// Each refill consumes UpdateSize new samples, slides them into an
// AudioBufferSize analysis window, and convolves the window with both the
// previous and the newly interpolated filter. The newest UpdateSize samples
// of the two results are crossfaded, so direction changes never click.
//
// Output stays silent until AudioBufferSize samples have been provided in
// total. After that, a refill with fewer than UpdateSize unread samples is
// an underrun and also yields silence without consuming input. The
// real-time path never returns errors: missing data, unbound state and
// underruns all produce silence.
//
// The frequency-domain helpers (Blend3, HRIRToHRTF, ConvolveSpectra,
// RampBuffers and Convolver) work on fixed-size buffers and can be used on
// their own.
package binaural
