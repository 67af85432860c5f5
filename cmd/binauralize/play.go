package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
)

const maxFramesPerBuffer = binaural.RingSize - 2*binaural.UpdateSize

type playOptions struct {
	sourceOptions
	framesPerBuffer int
	controlRate     time.Duration
}

func newPlayCmd(g *globalOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <in.wav>",
		Short: "Play a mono file binaurally on the default output device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd.ErrOrStderr())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), logger, g, opts, args[0])
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.framesPerBuffer, "frames-per-buffer", "b", binaural.UpdateSize,
		"Frames per output callback")
	cmd.Flags().DurationVar(&opts.controlRate, "control-rate", 10*time.Millisecond,
		"Interval between source position updates")

	return cmd
}

// player feeds the binauralizer from the output callback. process runs on
// the audio goroutine; played may be read from any goroutine.
type player struct {
	b      *binaural.Binauralizer
	mono   []float64
	cursor int
	played atomic.Int64

	in   []float64
	l, r []float64
}

// newPlayer primes b with a full window of input so that the first
// callback is already past startup and no callback underruns while the
// file lasts.
func newPlayer(b *binaural.Binauralizer, mono []float64, framesPerBuffer int) *player {
	p := &player{
		b:    b,
		mono: mono,
		in:   make([]float64, framesPerBuffer),
		l:    make([]float64, framesPerBuffer),
		r:    make([]float64, framesPerBuffer),
	}
	p.feed(binaural.AudioBufferSize)
	return p
}

func (p *player) feed(n int) {
	if cap(p.in) < n {
		p.in = make([]float64, n)
	}
	in := p.in[:n]
	k := 0
	if p.cursor < len(p.mono) {
		k = copy(in, p.mono[p.cursor:])
	}
	clear(in[k:])
	p.cursor += n
	p.b.Provide(in)
}

func (p *player) process(out [][]float32) {
	n := len(out[0])
	if cap(p.l) < n {
		p.l = make([]float64, n)
		p.r = make([]float64, n)
	}
	l, r := p.l[:n], p.r[:n]

	p.feed(n)
	p.b.GenerateLR(l, r)

	for i := range n {
		out[0][i] = float32(l[i])
		out[1][i] = float32(r[i])
	}
	p.played.Add(int64(n))
}

// finished reports whether the whole file has been played.
func (p *player) finished() bool {
	return p.played.Load() >= int64(len(p.mono))
}

func runPlay(ctx context.Context, out io.Writer, logger *slog.Logger, g *globalOptions, opts *playOptions, inPath string) error {
	if opts.framesPerBuffer <= 0 || opts.framesPerBuffer > maxFramesPerBuffer {
		return fmt.Errorf("--frames-per-buffer must be in [1, %d]", maxFramesPerBuffer)
	}
	if opts.controlRate <= 0 {
		return fmt.Errorf("--control-rate must be positive")
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

	b.SetSampleLocation(scene.At(0))
	p := newPlayer(b, mono, opts.framesPerBuffer)

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), opts.framesPerBuffer, p.process)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	logger.Info("playing", "file", inPath, "frames", len(mono), "sample_rate", sampleRate, "fft", g.fft)

	control(ctx, b, p, scene, float64(sampleRate), opts.controlRate)

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop output stream: %w", err)
	}
	b.Shut()

	fmt.Fprintf(out, "played %.2fs of %s\n", float64(p.played.Load())/float64(sampleRate), inPath)
	return nil
}

// control moves the source along scene until playback finishes or ctx is
// cancelled. It runs beside the audio callback and only touches the
// binauralizer through SetSampleLocation.
func control(ctx context.Context, b *binaural.Binauralizer, p *player, scene *Scene, sampleRate float64, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.finished() {
				return
			}
			b.SetSampleLocation(scene.At(float64(p.played.Load()) / sampleRate))
		}
	}
}
