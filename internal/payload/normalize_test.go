package payload

import (
	"errors"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		groups []Group
		step   int
		want   []Group
	}{
		{
			name:   "already aligned",
			groups: []Group{random(5), fixed(t, 3, 7)},
			step:   4,
			want:   []Group{random(5), fixed(t, 3, 7)},
		},
		{
			name:   "shrink first long enough group",
			groups: []Group{random(5), fixed(t, 3, 7)},
			step:   6,
			want:   []Group{random(3), fixed(t, 3, 7)},
		},
		{
			name:   "shrink skips short groups",
			groups: []Group{fixed(t, 1, 0), fixed(t, 2, 1), random(9)},
			step:   5,
			want:   []Group{fixed(t, 1, 0), fixed(t, 2, 1), random(7)},
		},
		{
			name:   "grow first group when none can shrink",
			groups: []Group{random(1)},
			step:   4,
			want:   []Group{random(4)},
		},
		{
			name:   "grow ignores fill kind",
			groups: []Group{fixed(t, 2, 9), random(2)},
			step:   6,
			want:   []Group{fixed(t, 4, 9), random(2)},
		},
		{
			name:   "step one",
			groups: []Group{random(13)},
			step:   1,
			want:   []Group{random(13)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.groups, tt.step)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []Group{random(5), fixed(t, 3, 7)}
	if _, err := Normalize(in, 6); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if in[0].Length != 5 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := Normalize([]Group{random(1)}, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Normalize(step=0) error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := Normalize(nil, 4); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("Normalize(nil) error = %v, want ErrInvalidGroup", err)
	}
}

func TestNormalize_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lengths := rapid.SliceOfN(rapid.IntRange(1, 300), 1, 12).Draw(t, "lengths")
		step := rapid.IntRange(1, 64).Draw(t, "step")

		in := make([]Group, len(lengths))
		for i, l := range lengths {
			in[i] = Group{Length: l, Fill: Fill{value: byte(i)}}
		}

		out, err := Normalize(in, step)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if len(out) != len(in) {
			t.Fatalf("len(out) = %d, want %d", len(out), len(in))
		}

		total := TotalLength(out)
		if total%step != 0 {
			t.Fatalf("total %d not a multiple of %d", total, step)
		}

		changed := 0
		for i := range out {
			if out[i].Fill != in[i].Fill {
				t.Fatalf("group %d fill changed", i)
			}
			if out[i].Length < 1 {
				t.Fatalf("group %d length %d < 1", i, out[i].Length)
			}
			if out[i].Length != in[i].Length {
				changed++
			}
		}
		if TotalLength(in)%step == 0 && changed != 0 {
			t.Fatalf("aligned input changed %d groups", changed)
		}
		if TotalLength(in)%step != 0 && changed != 1 {
			t.Fatalf("changed %d groups, want exactly 1", changed)
		}
	})
}
