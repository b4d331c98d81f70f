package payload

import "github.com/acolita/fuzzpayload/internal/ports"

// choice pairs a variant with its relative weight.
type choice[T any] struct {
	weight int
	value  T
}

// choices is a weighted table sampled with a single IntRange draw.
type choices[T any] []choice[T]

func (c choices[T]) pick(rnd ports.Random) T {
	total := 0
	for _, ch := range c {
		total += ch.weight
	}

	n := rnd.IntRange(0, total-1)
	for _, ch := range c {
		if n < ch.weight {
			return ch.value
		}
		n -= ch.weight
	}
	return c[len(c)-1].value
}

type lengthKind int

const (
	lengthFull  lengthKind = iota // anywhere in [1, budget]
	lengthShort                   // [1, budget/10]
)

type fillKind int

const (
	fillRandom fillKind = iota
	fillLengthMarker
	fillUniformByte
)

var (
	lengthTable = choices[lengthKind]{
		{1, lengthFull},
		{1, lengthShort},
	}

	// The marker fill (length-1) makes group boundaries easy to spot in a
	// hex dump. It only applies to groups shorter than 256 bytes.
	fillTable = choices[fillKind]{
		{1, fillRandom},
		{1, fillLengthMarker},
		{2, fillUniformByte},
	}
)
