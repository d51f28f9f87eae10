package cstable

import "github.com/hexbee-net/errors"

const (
	// ErrConsistency reports columns disagreeing on the records they hold.
	ErrConsistency = errors.Error("inconsistent columns")
	// ErrFormat reports a file that is not a committed table of a known version.
	ErrFormat = errors.Error("invalid table format")

	ErrMissingField         = errors.Error("missing required field")
	ErrUnexpectedRepetition = errors.Error("unexpected repetition of a non-repeated field")
	ErrTypeMismatch         = errors.Error("value does not match field type")

	errCommitted = errors.Error("table already committed")
)
