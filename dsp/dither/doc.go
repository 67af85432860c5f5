// Package dither quantizes rendered float output to integer PCM with
// optional dither noise.
package dither
