// Package payload generates structured random byte sequences for fuzzing
// binary protocol parsers.
//
// A payload is a list of groups, each a run of either random bytes or one
// repeated byte value. A Generator draws an overall length budget once and
// then yields Count sequences shaped within that budget, each aligned to Step.
package payload

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/acolita/fuzzpayload/internal/adapters/realrand"
	"github.com/acolita/fuzzpayload/internal/ports"
)

// Group count is drawn as int(Gamma(shape, scale)) + 1.
const (
	groupCountShape = 2.0
	groupCountScale = 2.0
)

// Config holds generator settings. It is fixed once the generator is created.
type Config struct {
	Count     int // number of sequences to yield
	MinLength int // lower bound for the target length
	MaxLength int // upper bound for the target length
	Step      int // alignment of every sequence length
}

// DefaultConfig returns the default generator settings.
func DefaultConfig() Config {
	return Config{
		Count:     100,
		MinLength: 1,
		MaxLength: 1 << 16,
		Step:      1,
	}
}

// Validate reports settings that can never produce a payload.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count %d < 0", ErrInvalidConfiguration, c.Count)
	case c.Step <= 0:
		return fmt.Errorf("%w: step %d <= 0", ErrInvalidConfiguration, c.Step)
	case c.MinLength < 1:
		return fmt.Errorf("%w: min_length %d < 1", ErrInvalidConfiguration, c.MinLength)
	case c.MinLength > c.MaxLength:
		return fmt.Errorf("%w: min_length %d > max_length %d", ErrInvalidConfiguration, c.MinLength, c.MaxLength)
	}
	return nil
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRandom sets the source used to shape groups.
func WithRandom(r ports.Random) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithStrongRandom sets the source of the target length draw.
func WithStrongRandom(r ports.Random) Option {
	return func(g *Generator) { g.strong = r }
}

// WithRenderRandom sets the source handed to every yielded Sequence.
func WithRenderRandom(r ports.Random) Option {
	return func(g *Generator) { g.render = r }
}

// WithLogger sets the logger used for per-item debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// Generator lazily yields Count structured random sequences.
// It is not safe for concurrent use and cannot be rewound.
type Generator struct {
	cfg      Config
	target   int
	produced int
	err      error

	strong ports.Random
	rnd    ports.Random
	render ports.Random
	logger *slog.Logger
}

// NewGenerator validates cfg and draws the target length from the strong source.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.strong == nil {
		g.strong = realrand.NewStrong()
	}
	if g.rnd == nil {
		g.rnd = g.strong
	}
	if g.render == nil {
		g.render = realrand.New()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	g.target = g.strong.IntRange(cfg.MinLength, cfg.MaxLength)
	g.logger.Debug("payload generator created",
		slog.Int("count", cfg.Count),
		slog.Int("step", cfg.Step),
		slog.Int("target_length", g.target),
	)
	return g, nil
}

// Config returns the generator settings.
func (g *Generator) Config() Config { return g.cfg }

// TargetLength returns the length budget shared by every yielded sequence.
func (g *Generator) TargetLength() int { return g.target }

// Produced returns how many sequences have been yielded.
func (g *Generator) Produced() int { return g.produced }

// Remaining returns how many sequences are left, or 0 after a failure.
func (g *Generator) Remaining() int {
	if g.err != nil {
		return 0
	}
	return g.cfg.Count - g.produced
}

// Next returns the next sequence. It returns ErrExhausted once Count
// sequences were produced. Errors are sticky: after one, Next keeps
// returning it.
func (g *Generator) Next() (*Sequence, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.produced >= g.cfg.Count {
		return nil, ErrExhausted
	}

	seq, err := g.next()
	if err != nil {
		g.err = fmt.Errorf("sequence %d: %w", g.produced, err)
		return nil, g.err
	}
	g.produced++
	return seq, nil
}

// All returns an iterator over the remaining sequences. Iteration stops
// after Count sequences or at the first error, which is yielded once.
func (g *Generator) All() iter.Seq2[*Sequence, error] {
	return func(yield func(*Sequence, error) bool) {
		for {
			seq, err := g.Next()
			if errors.Is(err, ErrExhausted) {
				return
			}
			if !yield(seq, err) || err != nil {
				return
			}
		}
	}
}

func (g *Generator) next() (*Sequence, error) {
	groups, err := g.buildGroups()
	if err != nil {
		return nil, err
	}

	groups, err = Normalize(groups, g.cfg.Step)
	if err != nil {
		return nil, err
	}

	seq, err := NewSequence(groups, g.render)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("payload sequence generated",
		slog.Int("index", g.produced),
		slog.Int("groups", len(groups)),
		slog.Int("length", seq.Len()),
	)
	return seq, nil
}

func (g *Generator) buildGroups() ([]Group, error) {
	count := int(g.rnd.Gamma(groupCountShape, groupCountScale)) + 1
	count = min(count, g.target)

	groups := make([]Group, 0, count)
	sum := 0
	for i := 0; i < count; i++ {
		// Reserve one byte for every group still to come.
		budget := g.target - sum - (count - i - 1)
		if budget < 1 {
			return nil, fmt.Errorf("%w: group %d of %d has budget %d (target %d)",
				ErrInvalidRange, i, count, budget, g.target)
		}

		length := g.drawLength(budget)
		fill, err := g.drawFill(length)
		if err != nil {
			return nil, err
		}

		groups = append(groups, Group{Length: length, Fill: fill})
		sum += length
	}
	return groups, nil
}

func (g *Generator) drawLength(budget int) int {
	if lengthTable.pick(g.rnd) == lengthShort {
		return g.rnd.IntRange(1, max(1, budget/10))
	}
	return g.rnd.IntRange(1, budget)
}

func (g *Generator) drawFill(length int) (Fill, error) {
	switch fillTable.pick(g.rnd) {
	case fillRandom:
		return RandomFill(), nil
	case fillLengthMarker:
		if length < 256 {
			return FixedFill(length - 1)
		}
	}
	return FixedFill(g.rnd.IntRange(0, 255))
}
