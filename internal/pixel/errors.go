package pixel

import "errors"

var (
	// ErrUnsupportedFormat is returned for a format with no channel layout.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrUnsupportedType is returned for a numeric encoding without a codec,
	// or one that cannot carry the requested format.
	ErrUnsupportedType = errors.New("unsupported pixel type")

	// ErrAllocation is returned when a result buffer cannot be allocated.
	ErrAllocation = errors.New("pixel buffer allocation failed")

	// ErrShortBuffer is returned when a buffer is too small for the pixels
	// it is supposed to hold.
	ErrShortBuffer = errors.New("pixel buffer too short")

	// ErrInvalidScale is returned by Scale for a non-positive ratio or an
	// empty result.
	ErrInvalidScale = errors.New("invalid scale ratio")
)
