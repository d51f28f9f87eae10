package schema

import "github.com/hexbee-net/errors"

const (
	ErrDuplicateFieldID    = errors.Error("duplicate field id")
	ErrInvalidFieldID      = errors.Error("invalid field id")
	ErrInvalidField        = errors.Error("invalid field")
	ErrUnknownField        = errors.Error("unknown field")
	ErrUnsupportedEncoding = errors.Error("unsupported encoding")
)
