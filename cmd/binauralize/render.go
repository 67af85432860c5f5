package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
	"github.com/cwbudde/algo-binaural/dsp/dither"
)

type sourceOptions struct {
	set   string
	scene string
	at    []float64
}

func (o *sourceOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.set, "set", "", "Sample set file written by bake")
	cmd.Flags().StringVar(&o.scene, "scene", "", "Scene YAML with source keyframes")
	cmd.Flags().Float64SliceVar(&o.at, "at", []float64{0, 0}, "Fixed elevation,azimuth when no scene is given")
	_ = cmd.MarkFlagRequired("set")
	cmd.MarkFlagsMutuallyExclusive("scene", "at")
}

type renderOptions struct {
	sourceOptions
	dither string
	seed   uint64
}

func (o *sourceOptions) loadScene() (*Scene, error) {
	if o.scene != "" {
		return LoadScene(o.scene)
	}
	e, a, err := parseDirection(o.at)
	if err != nil {
		return nil, err
	}
	return StaticScene(e, a), nil
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <in.wav> <out.wav>",
		Short: "Render a mono file to a 16-bit stereo WAV along a scene",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd.ErrOrStderr())
			return runRender(cmd.OutOrStdout(), logger, g, opts, args[0], args[1])
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.dither, "dither", dither.Triangular.String(),
		"Output dither (none, rectangular, triangular)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Dither noise seed; 0 picks a random one")

	return cmd
}

func (o *renderOptions) quantizer() (*dither.Quantizer, error) {
	typ, err := dither.ParseType(o.dither)
	if err != nil {
		return nil, err
	}
	opts := []dither.Option{dither.WithType(typ)}
	if o.seed != 0 {
		opts = append(opts, dither.WithSeed(o.seed))
	}
	return dither.NewQuantizer(16, opts...)
}

func runRender(out io.Writer, logger *slog.Logger, g *globalOptions, opts *renderOptions, inPath, outPath string) error {
	q, err := opts.quantizer()
	if err != nil {
		return err
	}
	scene, err := opts.loadScene()
	if err != nil {
		return err
	}
	set, err := loadSet(opts.set, logger)
	if err != nil {
		return err
	}
	b, err := g.newBinauralizer(set, logger)
	if err != nil {
		return err
	}

	mono, sampleRate, err := readMono(inPath)
	if err != nil {
		return err
	}

	left, right := renderScene(b, scene, mono, float64(sampleRate))

	if err := writeStereo16(outPath, sampleRate, left, right, q); err != nil {
		return err
	}

	fmt.Fprintf(out, "rendered %d frames at %d Hz -> %s\n", len(mono), sampleRate, outPath)
	return nil
}

// renderScene runs mono through b one refill block at a time, moving the
// source along scene. Input is queued one block ahead of the output so the
// first pull already sees a full window; the tail is zero padded.
func renderScene(b *binaural.Binauralizer, scene *Scene, mono []float64, sampleRate float64) (left, right []float64) {
	n := len(mono)
	left = make([]float64, n)
	right = make([]float64, n)

	block := make([]float64, binaural.UpdateSize)
	outL := make([]float64, binaural.UpdateSize)
	outR := make([]float64, binaural.UpdateSize)

	queue := func(pos int) {
		k := 0
		if pos < n {
			k = copy(block, mono[pos:])
		}
		clear(block[k:])
		b.Provide(block)
	}

	queue(0)
	for pos := 0; pos < n; pos += binaural.UpdateSize {
		b.SetSampleLocation(scene.At(float64(pos) / sampleRate))
		queue(pos + binaural.UpdateSize)
		b.GenerateLR(outL, outR)

		copy(left[pos:], outL)
		copy(right[pos:], outR)
	}

	return left, right
}
