package ports

// Random abstracts the random source used to shape and render payloads.
// Implementations must be safe for use from a single goroutine at minimum;
// the real adapters are also safe for concurrent use.
type Random interface {
	// Read fills b with uniformly distributed random bytes and returns the
	// number of bytes read.
	Read(b []byte) (n int, err error)

	// IntRange returns a uniformly distributed integer in [lo, hi].
	// It panics if hi < lo.
	IntRange(lo, hi int) int

	// Gamma returns a sample from the Gamma distribution with the given
	// shape and scale.
	Gamma(shape, scale float64) float64
}
