package fourier

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Errors returned by transform constructors and methods.
var (
	ErrInvalidSize    = errors.New("fourier: size must be a power of two >= 2")
	ErrLengthMismatch = errors.New("fourier: buffer length mismatch")
	ErrNoStrategy     = errors.New("fourier: no transform strategy available")
)

// Transform is an in-place complex FFT of one fixed size.
type Transform interface {
	// Size returns the transform length N.
	Size() int
	// Name identifies the strategy, one of Names.
	Name() string
	// Forward replaces (re, im) with its spectrum.
	Forward(re, im []float64) error
	// Inverse replaces (re, im) with its time-domain signal, scaled by 1/N.
	Inverse(re, im []float64) error
}

var (
	selectedMu    sync.Mutex
	selectedEntry *Entry
)

// New returns a transform of size n using the best strategy for this CPU.
//
// The strategy is looked up once and cached; later calls only construct a
// new instance of the cached strategy.
func New(n int) (Transform, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	entry, err := selected()
	if err != nil {
		return nil, err
	}

	t, err := entry.New(n)
	if err != nil {
		return nil, fmt.Errorf("fourier: %s strategy failed: %w", entry.Name, err)
	}

	return t, nil
}

// Selected returns the name of the strategy New uses on this machine.
func Selected() string {
	entry, err := selected()
	if err != nil {
		return ""
	}

	return entry.Name
}

func selected() (*Entry, error) {
	selectedMu.Lock()
	defer selectedMu.Unlock()

	if selectedEntry == nil {
		entry := Global.Lookup(cpu.DetectFeatures())
		if entry == nil {
			return nil, ErrNoStrategy
		}
		selectedEntry = entry
	}

	return selectedEntry, nil
}

// resetSelection clears the cached strategy. Intended for tests.
func resetSelection() {
	selectedMu.Lock()
	selectedEntry = nil
	selectedMu.Unlock()
}

// IsPowerOfTwo reports whether n is a power of two and at least 2.
func IsPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n.
func Log2(n int) int {
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

func checkBuffers(n int, re, im []float64) error {
	if len(re) != n || len(im) != n {
		return fmt.Errorf("%w: want %d, got re=%d im=%d", ErrLengthMismatch, n, len(re), len(im))
	}
	return nil
}

// Names lists the strategies accepted by ByName.
var Names = []string{"radix2", "algofft", "gonum", "reference"}

// ByName constructs the named strategy regardless of CPU detection. An
// empty name or "auto" defers to New.
func ByName(name string, n int) (Transform, error) {
	switch name {
	case "", "auto":
		return New(n)
	case "radix2":
		return NewRadix2(n)
	case "algofft":
		return NewPlan(n)
	case "gonum":
		return NewGonum(n)
	case "reference":
		return NewReference(n)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoStrategy, name)
	}
}
