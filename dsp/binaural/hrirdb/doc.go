// Package hrirdb builds hrir.SampleSet values from directories of measured
// impulse responses stored as stereo WAV files.
//
// A LocationParser maps each file name to the directions it is measured
// at. Parsers for the MIT KEMAR compact set and the IRCAM Listen layout
// are provided; other databases plug in their own.
package hrirdb
