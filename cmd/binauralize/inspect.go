package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/fourier"
	"github.com/cwbudde/algo-binaural/dsp/spectrum"
)

type inspectOptions struct {
	at         []float64
	sampleRate float64
}

// octaveCentres are the bands reported for the interaural level difference.
var octaveCentres = []float64{250, 500, 1000, 2000, 4000, 8000, 16000}

// itdCutoff bounds the bins used for the interaural time difference.
const itdCutoff = 1500.0

func newInspectCmd(g *globalOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <set.hrir>",
		Short: "Summarize a sample set and analyse the HRTF at a direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd.ErrOrStderr())
			set, err := loadSet(args[0], logger)
			if err != nil {
				return err
			}
			t, err := g.transform()
			if err != nil {
				return err
			}
			return runInspect(cmd.OutOrStdout(), set, t, opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.at, "at", nil, "Analyse the HRTF at elevation,azimuth")
	cmd.Flags().Float64Var(&opts.sampleRate, "sample-rate", 44100, "Sample rate of the database in Hz")

	return cmd
}

func runInspect(w io.Writer, set *hrir.SampleSet, t fourier.Transform, opts *inspectOptions) error {
	grid := set.Grid()

	degenerate := 0
	for _, tri := range grid.Triangles {
		if tri.Degenerate {
			degenerate++
		}
	}
	occupied := 0
	for e := range grid.Cells {
		for a := range grid.Cells[e] {
			if len(grid.Cells[e][a].Triangles) > 0 {
				occupied++
			}
		}
	}

	fmt.Fprintf(w, "samples:   %d\n", set.Len())
	fmt.Fprintf(w, "finalized: %v\n", set.Finalized())
	fmt.Fprintf(w, "triangles: %d (%d degenerate)\n", len(grid.Triangles), degenerate)
	fmt.Fprintf(w, "cells:     %d/%d occupied\n", occupied, hrir.GridElevationCells*hrir.GridAzimuthCells)

	if opts.at == nil {
		return nil
	}

	elevation, azimuth, err := parseDirection(opts.at)
	if err != nil {
		return err
	}
	elevation, azimuth = binaural.ClampLocation(elevation, azimuth)

	m, ok := set.Lookup3(elevation, azimuth)
	if !ok {
		fmt.Fprintf(w, "\nno triangle covers (%.2f, %.2f)\n", elevation, azimuth)
		return nil
	}

	fmt.Fprintf(w, "\nlookup (%.2f, %.2f):\n", elevation, azimuth)
	for k := range 3 {
		s := set.Sample(m.Indices[k])
		fmt.Fprintf(w, "  sample %4d  (%7.2f, %7.2f)  weight %.4f\n", m.Indices[k], s.Elevation, s.Azimuth, m.Weights[k])
	}

	var blended hrir.Data
	binaural.BlendMatch(&m, &blended)

	var f binaural.Filter
	if err := binaural.HRIRToHRTF(t, &blended, &f); err != nil {
		return err
	}

	a, err := analyseFilter(&f, opts.sampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n  band Hz    left dB   right dB   ILD dB\n")
	for _, b := range a.bands {
		fmt.Fprintf(w, "  %7.0f  %9.2f  %9.2f  %7.2f\n", b.centre, b.left, b.right, b.left-b.right)
	}
	fmt.Fprintf(w, "\n  ITD: %.3f ms (below %.0f Hz)\n", a.itd*1000, itdCutoff)

	return nil
}

type bandLevel struct {
	centre      float64
	left, right float64
}

type filterAnalysis struct {
	bands []bandLevel
	// itd is the left minus right group delay in seconds. Positive values
	// mean the right ear leads.
	itd float64
}

func analyseFilter(f *binaural.Filter, sampleRate float64) (filterAnalysis, error) {
	const bins = binaural.HRTFLen / 2
	freq := spectrum.BinFrequencies(bins, binaural.HRTFLen, sampleRate)

	level := func(h *binaural.HRTF) ([]float64, error) {
		out := make([]float64, bins)
		if err := spectrum.Magnitude(out, h.Real[:bins], h.Imag[:bins]); err != nil {
			return nil, err
		}
		spectrum.ToDB(out, 0)
		return out, nil
	}
	delay := func(h *binaural.HRTF) (float64, error) {
		phase := make([]float64, bins)
		if err := spectrum.Phase(phase, h.Real[:bins], h.Imag[:bins]); err != nil {
			return 0, err
		}
		spectrum.UnwrapPhase(phase)
		gd, err := spectrum.GroupDelay(phase, binaural.HRTFLen)
		if err != nil {
			return 0, err
		}
		mean, ok := spectrum.BandMean(freq[1:], gd[1:], 0, itdCutoff)
		if !ok {
			return 0, nil
		}
		return mean / sampleRate, nil
	}

	left, err := level(&f.Left)
	if err != nil {
		return filterAnalysis{}, err
	}
	right, err := level(&f.Right)
	if err != nil {
		return filterAnalysis{}, err
	}

	var a filterAnalysis
	for _, c := range octaveCentres {
		lo, hi := c/math.Sqrt2, c*math.Sqrt2
		l, okL := spectrum.BandMean(freq, left, lo, hi)
		r, okR := spectrum.BandMean(freq, right, lo, hi)
		if okL && okR {
			a.bands = append(a.bands, bandLevel{centre: c, left: l, right: r})
		}
	}

	dl, err := delay(&f.Left)
	if err != nil {
		return filterAnalysis{}, err
	}
	dr, err := delay(&f.Right)
	if err != nil {
		return filterAnalysis{}, err
	}
	a.itd = dl - dr

	return a, nil
}
