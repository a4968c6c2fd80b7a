package vehcfg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// Malformed position descriptor, bitstring or update token.
	ErrFormat = errors.New("invalid format")

	// Bit index outside [0,7] or low bit above high bit.
	ErrRange = errors.New("bit index out of range")

	// Bitstring length does not match the field width.
	ErrLength = errors.New("bitstring length mismatch")

	// Numeric value does not fit the field or a byte.
	ErrOverflow = errors.New("value overflow")

	// Blob length differs from the declared size.
	ErrSize = errors.New("unexpected config size")

	// Project code field is not in the allow-list.
	ErrProjectCode = errors.New("unsupported project code")

	// Field lies outside the checksummed region.
	ErrBounds = errors.New("position out of bounds")

	// Attempt to change the project code.
	ErrForbiddenField = errors.New("property is read-only")

	// Property is not in the position table.
	ErrUnknownProperty = errors.New("unknown property")
)

// PropertyError reports a failure tied to a single named property.
type PropertyError struct {
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %s: %v", e.Property, e.Err)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

func propertyErr(name string, err error) error {
	return &PropertyError{Property: name, Err: err}
}
