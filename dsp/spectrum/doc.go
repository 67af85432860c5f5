// Package spectrum analyses split real/imaginary spectra such as the
// HRTFs produced by package binaural: magnitude and level in dB, phase
// unwrapping, group delay and fractional-octave smoothing.
//
// It does not compute transforms; see package fourier.
package spectrum
