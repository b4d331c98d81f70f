// Package realrand provides real implementations of the Random port.
//
// Three constructors cover the generator's needs: NewStrong draws every value
// straight from crypto/rand, New uses a ChaCha8 stream seeded from crypto/rand,
// and NewSeeded uses a PCG stream so a run can be replayed from its seed.
// Every Random is guarded by a mutex and may be shared between goroutines.
package realrand

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/acolita/fuzzpayload/internal/ports"
)

// pcgStream is the fixed second PCG word; only the seed varies between runs.
const pcgStream = 0x9e3779b97f4a7c15

// Random implements ports.Random on top of a math/rand/v2 source.
type Random struct {
	mu  sync.Mutex
	src rand.Source
	rng *rand.Rand
}

func newRandom(src rand.Source) *Random {
	return &Random{src: src, rng: rand.New(src)}
}

// NewStrong returns a Random backed directly by crypto/rand.
func NewStrong() *Random {
	return newRandom(cryptoSource{})
}

// New returns a Random backed by a ChaCha8 stream with a fresh seed from crypto/rand.
func New() *Random {
	var seed [32]byte
	crand.Read(seed[:])
	return newRandom(rand.NewChaCha8(seed))
}

// NewSeeded returns a reproducible Random backed by a PCG stream.
func NewSeeded(seed uint64) *Random {
	return newRandom(rand.NewPCG(seed, pcgStream))
}

// Read fills b with random bytes. It never returns an error.
func (r *Random) Read(b []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for n < len(b) {
		v := r.src.Uint64()
		for j := 0; j < 8 && n < len(b); j++ {
			b[n] = byte(v)
			v >>= 8
			n++
		}
	}
	return n, nil
}

// IntRange returns a uniform integer in [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	if hi < lo {
		panic("realrand: IntRange called with hi < lo")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + int(r.rng.Int64N(int64(hi)-int64(lo)+1))
}

// Gamma returns a Gamma(shape, scale) sample.
func (r *Random) Gamma(shape, scale float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	// distuv parameterizes by rate, the inverse of scale.
	g := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: r.src}
	return g.Rand()
}

// cryptoSource is a rand.Source reading from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Ensure Random implements ports.Random.
var _ ports.Random = (*Random)(nil)
