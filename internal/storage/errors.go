package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation marks a cursor state-machine violation. It is a
	// programming error and the calling worker must stop.
	ErrInvalidOperation = errors.New("invalid cursor operation")

	ErrInTransaction       = fmt.Errorf("%w: already in a transaction", ErrInvalidOperation)
	ErrNotInTransaction    = fmt.Errorf("%w: not in a transaction", ErrInvalidOperation)
	ErrReadOnlyTransaction = fmt.Errorf("%w: transaction is read-only", ErrInvalidOperation)

	// ErrClosed is returned by a cursor or store after Close.
	ErrClosed = errors.New("storage is closed")
)
