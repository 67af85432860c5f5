package hrirdb

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/window"
)

// ErrNoSamples is returned by LoadDir when no file produced a sample.
var ErrNoSamples = errors.New("hrirdb: no samples loaded")

// Report summarizes a Build.
type Report struct {
	// Added counts samples appended to the set. A mirrored file adds two.
	Added int
	// Skipped counts database files that failed to load or convert.
	Skipped int
	// Ignored counts files the parser did not recognize.
	Ignored int
}

// Option configures Build and LoadDir.
type Option func(*config) error

type config struct {
	logger *slog.Logger
	swapLR bool
	fade   []float64
}

// WithLogger sets the logger for skipped files and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("hrirdb: logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithSwapChannels swaps left and right for every file, on top of any
// swap requested by the parser.
func WithSwapChannels(swap bool) Option {
	return func(cfg *config) error {
		cfg.swapLR = swap
		return nil
	}
}

// WithTailFade tapers the last n samples of every impulse response to zero
// with a Hann fade. Databases whose responses are longer than hrir.Len are
// truncated on load; the fade removes the step at the cut.
func WithTailFade(n int) Option {
	return func(cfg *config) error {
		if n < 0 || n > hrir.Len {
			return fmt.Errorf("hrirdb: tail fade must be in [0, %d]: %d", hrir.Len, n)
		}
		if n == 0 {
			cfg.fade = nil
			return nil
		}
		fade, err := window.FadeOut(window.Hann, n)
		if err != nil {
			return err
		}
		cfg.fade = fade
		return nil
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// Build loads every file recognized by parse into set. Files that fail to
// load are logged and skipped. An error is returned only for invalid
// arguments or a finalized set.
func Build(set *hrir.SampleSet, files []string, parse LocationParser, opts ...Option) (Report, error) {
	var report Report

	cfg, err := newConfig(opts)
	if err != nil {
		return report, err
	}
	if set == nil || parse == nil {
		return report, fmt.Errorf("hrirdb: set and parser are required")
	}
	if set.Finalized() {
		return report, hrir.ErrFinalized
	}

	for _, path := range files {
		placements, ok := parse(path)
		if !ok {
			report.Ignored++
			continue
		}

		sd, err := LoadSound(path)
		if err != nil {
			cfg.logger.Warn("hrirdb: skipping file", "path", path, "error", err)
			report.Skipped++
			continue
		}

		for _, p := range placements {
			if err := cfg.add(set, sd, p); err != nil {
				cfg.logger.Warn("hrirdb: skipping sample", "path", path,
					"elevation", p.Elevation, "azimuth", p.Azimuth, "error", err)
				report.Skipped++
				break
			}
			report.Added++
		}
	}

	cfg.logger.Info("hrirdb: build complete", "added", report.Added,
		"skipped", report.Skipped, "ignored", report.Ignored)

	return report, nil
}

func (cfg *config) add(set *hrir.SampleSet, sd hrir.SoundData, p Placement) error {
	swap := p.SwapLR != cfg.swapLR
	if cfg.fade == nil {
		return set.AddSample(sd, p.Elevation, p.Azimuth, swap)
	}

	var d hrir.Data
	left, right := d.Left[:], d.Right[:]
	if swap {
		left, right = right, left
	}
	if err := hrir.ConvertSoundData(sd, left, right); err != nil {
		return err
	}
	if err := window.ApplyTail(d.Left[:], cfg.fade); err != nil {
		return err
	}
	if err := window.ApplyTail(d.Right[:], cfg.fade); err != nil {
		return err
	}
	return set.AddData(d, p.Elevation, p.Azimuth)
}

// LoadDir lists root recursively, builds a new sample set from it and
// finalizes the set.
func LoadDir(root string, parse LocationParser, opts ...Option) (*hrir.SampleSet, Report, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, Report{}, err
	}

	files, err := ListFiles(root, true)
	if err != nil {
		return nil, Report{}, err
	}

	set, err := hrir.NewSampleSet(hrir.WithLogger(cfg.logger))
	if err != nil {
		return nil, Report{}, err
	}

	report, err := Build(set, files, parse, opts...)
	if err != nil {
		return nil, report, err
	}
	if report.Added == 0 {
		return nil, report, fmt.Errorf("%w from %s", ErrNoSamples, root)
	}

	if err := set.Finalize(); err != nil {
		return nil, report, fmt.Errorf("hrirdb: finalize: %w", err)
	}

	return set, report, nil
}
