// Package buffer provides the sample buffers used by streaming processors:
// a ring buffer that decouples producers from consumers, and a sliding
// analysis window. Both work on plain []float64 and never allocate after
// construction.
package buffer
