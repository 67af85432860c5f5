package binaural

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-binaural/dsp/fourier"
)

// Option configures a Binauralizer.
type Option func(*config) error

type config struct {
	logger    *slog.Logger
	transform fourier.Transform
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger for lifecycle events. Nothing is logged per
// sample or per block.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("binaural: logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTransform sets the transform used for convolution. It must have size
// AudioBufferSize and must not be shared with another Binauralizer.
func WithTransform(t fourier.Transform) Option {
	return func(cfg *config) error {
		if t == nil {
			return fmt.Errorf("binaural: transform must not be nil")
		}
		if t.Size() != AudioBufferSize {
			return fmt.Errorf("%w: %d != %d", ErrTransformSize, t.Size(), AudioBufferSize)
		}
		cfg.transform = t
		return nil
	}
}
