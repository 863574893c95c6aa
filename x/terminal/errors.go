package terminal

import (
	"github.com/fount-one/fount/errors"
)

var (
	// ErrPaused is returned when the active cycle pauses the
	// requested operation.
	ErrPaused = errors.Register(1000, "operation is paused")

	// ErrBelowMinimum is returned when an operation would return less
	// than the caller specified minimum. It exists to give callers
	// slippage protection against price movement between submission
	// and execution.
	ErrBelowMinimum = errors.Register(1001, "below caller minimum")

	// ErrRejected is returned when the cycle's access delegate
	// disallows the operation.
	ErrRejected = errors.Register(1002, "rejected by delegate")

	// ErrTrackerOverflow is returned when reserved ticket accounting
	// would leave the representable range. This is a defensive bound
	// that must not trigger under correct configuration.
	ErrTrackerOverflow = errors.Register(1003, "ticket tracker overflow")

	// ErrReentrancy is returned when an external callee calls back
	// into the terminal while an operation is still in progress.
	ErrReentrancy = errors.Register(1004, "reentrant call")

	// ErrMigrationTarget is returned when migrating to a terminal that
	// is not on the governance allow list.
	ErrMigrationTarget = errors.Register(1005, "migration target not allowed")

	// ErrPremineClosed is returned when premined tickets are requested
	// after the project has already seen a real deposit.
	ErrPremineClosed = errors.Register(1006, "premine window closed")
)
