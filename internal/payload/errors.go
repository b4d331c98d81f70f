package payload

import "errors"

var (
	// ErrInvalidConfiguration reports generator settings that can never produce a payload.
	ErrInvalidConfiguration = errors.New("invalid generator configuration")

	// ErrInvalidRange reports a group whose length budget fell below one byte.
	ErrInvalidRange = errors.New("invalid group length range")

	// ErrInvalidFillValue reports a fixed fill that does not fit in a byte.
	ErrInvalidFillValue = errors.New("fill value out of byte range")

	// ErrInvalidGroup reports a malformed group or group list.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrExhausted is returned by Generator.Next after the configured count.
	ErrExhausted = errors.New("generator exhausted")
)
