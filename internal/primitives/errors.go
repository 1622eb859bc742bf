package primitives

import "github.com/cockroachdb/errors"

var (
	ErrInvalidTree       = errors.New("invalid tree config")
	ErrDuplicateID       = errors.New("duplicate node ID")
	ErrUnknownCallback   = errors.New("unknown callback")
	ErrDuplicateCallback = errors.New("callback already registered")
)
