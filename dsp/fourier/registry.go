package fourier

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Factory constructs a transform of size n.
type Factory func(n int) (Transform, error)

// Entry is one registered transform strategy.
type Entry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	New       Factory
}

// Registry stores the available strategies.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	sorted  bool
}

// Global is the registry consulted by New.
var Global = &Registry{}

// Register adds a strategy.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority strategy supported by features.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// Entries returns a copy of the registered strategies.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

func (r *Registry) sortByPriority() {
	slices.SortStableFunc(r.entries, func(a, b Entry) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

func init() {
	Global.Register(Entry{
		Name:      "radix2",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		New: func(n int) (Transform, error) {
			return NewRadix2(n)
		},
	})
}
