package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/binaural/hrirdb"
)

type bakeOptions struct {
	output string
	layout string
	swap   bool
	fade   int
}

func newBakeCmd(g *globalOptions) *cobra.Command {
	opts := &bakeOptions{}

	cmd := &cobra.Command{
		Use:   "bake <database-dir>",
		Short: "Build, triangulate and save a sample set from a WAV database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd.ErrOrStderr())
			return runBake(cmd.OutOrStdout(), logger, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "set.hrir", "Output sample set file")
	cmd.Flags().StringVar(&opts.layout, "layout", "mit",
		"File naming layout ("+strings.Join(hrirdb.Layouts(), ", ")+")")
	cmd.Flags().BoolVar(&opts.swap, "swap", false, "Swap left and right channels")
	cmd.Flags().IntVar(&opts.fade, "tail-fade", 0, "Hann fade over the last N samples of each response")

	return cmd
}

func runBake(out io.Writer, logger *slog.Logger, dir string, opts *bakeOptions) error {
	parse, err := hrirdb.LayoutByName(opts.layout)
	if err != nil {
		return err
	}

	set, report, err := hrirdb.LoadDir(dir, parse,
		hrirdb.WithLogger(logger),
		hrirdb.WithSwapChannels(opts.swap),
		hrirdb.WithTailFade(opts.fade))
	if err != nil {
		return err
	}

	if err := saveSet(opts.output, set); err != nil {
		return err
	}

	fmt.Fprintf(out, "baked %d samples (%d skipped, %d ignored), %d triangles -> %s\n",
		set.Len(), report.Skipped, report.Ignored, len(set.Grid().Triangles), opts.output)
	return nil
}

func saveSet(path string, set *hrir.SampleSet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := set.Save(w); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}
