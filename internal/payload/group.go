package payload

import (
	"fmt"
	"strconv"
)

// Fill describes the bytes of a Group: either a single repeated value or
// independently drawn random bytes.
type Fill struct {
	value  byte
	random bool
}

// RandomFill returns the fill whose bytes are drawn independently at render time.
func RandomFill() Fill {
	return Fill{random: true}
}

// FixedFill returns a fill repeating v. v must be in [0, 255].
func FixedFill(v int) (Fill, error) {
	if v < 0 || v > 255 {
		return Fill{}, fmt.Errorf("%w: %d", ErrInvalidFillValue, v)
	}
	return Fill{value: byte(v)}, nil
}

// IsRandom reports whether the fill is random.
func (f Fill) IsRandom() bool { return f.random }

// Value returns the repeated byte. It is meaningless for a random fill.
func (f Fill) Value() byte { return f.value }

func (f Fill) String() string {
	if f.random {
		return "random"
	}
	return strconv.Itoa(int(f.value))
}

// Group is one contiguous run of a payload.
type Group struct {
	Length int
	Fill   Fill
}

// NewGroup returns a Group, rejecting lengths below one.
func NewGroup(length int, fill Fill) (Group, error) {
	if length < 1 {
		return Group{}, fmt.Errorf("%w: length %d < 1", ErrInvalidGroup, length)
	}
	return Group{Length: length, Fill: fill}, nil
}

func (g Group) String() string {
	return fmt.Sprintf("(%d, %s)", g.Length, g.Fill)
}

// TotalLength sums the lengths of groups.
func TotalLength(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += g.Length
	}
	return total
}
