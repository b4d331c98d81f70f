package payload

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/acolita/fuzzpayload/internal/adapters/realrand"
	"github.com/acolita/fuzzpayload/internal/ports"
)

// Sequence is a structured random payload: an ordered list of groups and
// the source used to draw its random spans.
//
// Rendering is not cached. Every Render call draws the random spans again,
// so two renders share fixed spans and length but not random content.
type Sequence struct {
	groups []Group
	rnd    ports.Random
}

// NewSequence builds a Sequence over a private copy of groups. A nil rnd
// gets a freshly seeded realrand.New source owned by this sequence.
func NewSequence(groups []Group, rnd ports.Random) (*Sequence, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: empty group list", ErrInvalidGroup)
	}
	for i, g := range groups {
		if g.Length < 1 {
			return nil, fmt.Errorf("%w: group %d has length %d", ErrInvalidGroup, i, g.Length)
		}
	}
	if rnd == nil {
		rnd = realrand.New()
	}

	own := make([]Group, len(groups))
	copy(own, groups)
	return &Sequence{groups: own, rnd: rnd}, nil
}

// Groups returns a copy of the group list.
func (s *Sequence) Groups() []Group {
	out := make([]Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// Len returns the rendered length in bytes.
func (s *Sequence) Len() int {
	return TotalLength(s.groups)
}

// Render materializes the payload, drawing fresh bytes for random groups.
func (s *Sequence) Render() ([]byte, error) {
	return Render(s.groups, s.rnd)
}

func (s *Sequence) String() string {
	var b strings.Builder
	b.WriteString("Sequence(groups=[")
	for i, g := range s.groups {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.String())
	}
	b.WriteString("])")
	return b.String()
}

// Render concatenates the rendering of each group in order.
func Render(groups []Group, rnd ports.Random) ([]byte, error) {
	buf := make([]byte, 0, TotalLength(groups))
	for i, g := range groups {
		if !g.Fill.IsRandom() {
			buf = append(buf, bytes.Repeat([]byte{g.Fill.Value()}, g.Length)...)
			continue
		}

		start := len(buf)
		buf = buf[:start+g.Length]
		if _, err := rnd.Read(buf[start:]); err != nil {
			return nil, fmt.Errorf("render group %d: %w", i, err)
		}
	}
	return buf, nil
}
