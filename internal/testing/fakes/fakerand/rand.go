// Package fakerand provides a predictable Random implementation for testing.
package fakerand

import (
	"sync"

	"github.com/acolita/fuzzpayload/internal/ports"
)

// Random is a fake random source that produces predictable output.
//
// Read cycles through a byte sequence. IntRange and Gamma pop scripted
// values; once a script runs out IntRange returns lo and Gamma returns 0.
// Scripted integers are clamped into the requested range.
type Random struct {
	mu       sync.Mutex
	sequence []byte
	offset   int
	ints     []int
	gammas   []float64
	calls    []Call
}

// Call records one IntRange request.
type Call struct {
	Lo, Hi int
}

// New creates a new fake random with the given sequence.
// If the sequence is nil, it defaults to sequential bytes 0-255.
func New(sequence []byte) *Random {
	if sequence == nil {
		sequence = make([]byte, 256)
		for i := range sequence {
			sequence[i] = byte(i)
		}
	}
	return &Random{sequence: sequence}
}

// NewSequential creates a fake random that returns 0, 1, 2, ..., 255, 0, 1, ...
func NewSequential() *Random {
	return New(nil)
}

// NewFixed creates a fake random that always returns the same bytes.
func NewFixed(b []byte) *Random {
	return New(b)
}

// QueueInts appends values returned by subsequent IntRange calls.
func (r *Random) QueueInts(v ...int) *Random {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, v...)
	return r
}

// QueueGammas appends values returned by subsequent Gamma calls.
func (r *Random) QueueGammas(v ...float64) *Random {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gammas = append(r.gammas, v...)
	return r
}

// Read fills b with predictable bytes from the sequence.
func (r *Random) Read(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range b {
		b[i] = r.sequence[r.offset%len(r.sequence)]
		r.offset++
	}
	return len(b), nil
}

// IntRange returns the next scripted integer clamped to [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	if hi < lo {
		panic("fakerand: IntRange called with hi < lo")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Lo: lo, Hi: hi})
	if len(r.ints) == 0 {
		return lo
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return min(max(v, lo), hi)
}

// Gamma returns the next scripted sample, ignoring shape and scale.
func (r *Random) Gamma(shape, scale float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.gammas) == 0 {
		return 0
	}
	v := r.gammas[0]
	r.gammas = r.gammas[1:]
	return v
}

// Calls returns the IntRange requests seen so far.
func (r *Random) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Reset rewinds the byte sequence and drops remaining scripts and recorded calls.
func (r *Random) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = 0
	r.ints = nil
	r.gammas = nil
	r.calls = nil
}

// Ensure Random implements ports.Random.
var _ ports.Random = (*Random)(nil)
