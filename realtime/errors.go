package realtime

import "github.com/cockroachdb/errors"

var (
	ErrAlreadyStarted = errors.New("realtime: runner already started")
	ErrNotStarted     = errors.New("realtime: runner not started")
	ErrInvalidConfig  = errors.New("realtime: invalid config")
	ErrNilRoot        = errors.New("realtime: nil root node")
)
