package payload

import "fmt"

// Normalize returns a copy of groups whose total length is a multiple of step.
//
// With r the remainder of the total modulo step, the first group longer than r
// is shrunk by r. When no group is long enough, the first group grows by
// step-r instead. At most one group changes and fills are never touched.
func Normalize(groups []Group, step int) ([]Group, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %d <= 0", ErrInvalidConfiguration, step)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: empty group list", ErrInvalidGroup)
	}

	out := make([]Group, len(groups))
	copy(out, groups)

	r := TotalLength(out) % step
	if r == 0 {
		return out, nil
	}

	for i := range out {
		if out[i].Length > r {
			out[i].Length -= r
			return out, nil
		}
	}

	out[0].Length += step - r
	return out, nil
}
