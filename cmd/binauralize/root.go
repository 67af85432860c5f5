package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/fourier"
)

type globalOptions struct {
	verbose bool
	fft     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "binauralize",
		Short:         "Build HRIR sample sets and render binaural audio",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log debug output to stderr")
	root.PersistentFlags().StringVar(&opts.fft, "fft", "auto",
		fmt.Sprintf("Transform strategy (auto, %s)", strings.Join(fourier.Names, ", ")))

	root.AddCommand(
		newBakeCmd(opts),
		newInspectCmd(opts),
		newRenderCmd(opts),
		newPlayCmd(opts),
	)

	return root
}

func (o *globalOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *globalOptions) transform() (fourier.Transform, error) {
	return fourier.ByName(o.fft, binaural.AudioBufferSize)
}

// newBinauralizer creates a binauralizer bound to set.
func (o *globalOptions) newBinauralizer(set *hrir.SampleSet, logger *slog.Logger) (*binaural.Binauralizer, error) {
	t, err := o.transform()
	if err != nil {
		return nil, err
	}

	b, err := binaural.New(binaural.WithTransform(t), binaural.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := b.Init(set, nil); err != nil {
		return nil, err
	}
	return b, nil
}

func loadSet(path string, logger *slog.Logger) (*hrir.SampleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := hrir.Load(bufio.NewReader(f), hrir.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// parseDirection parses the --at flag value.
func parseDirection(at []float64) (elevation, azimuth float64, err error) {
	if len(at) != 2 {
		return 0, 0, fmt.Errorf("--at expects elevation,azimuth, got %d values", len(at))
	}
	return at[0], at[1], nil
}
