package errors

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be
	// completed due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever an operation request is invalid and
	// cannot be processed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a model is invalid and cannot be
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a record with the same unique key
	// already exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrEmpty is returned when a value fails a not-empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned when an amount of currency or tokens is
	// invalid or insufficient.
	ErrAmount = Register(12, "invalid amount")

	// ErrInput stands for general input problems.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "value overflow")

	// ErrCurrency is returned on a denomination mismatch.
	ErrCurrency = Register(17, "invalid currency")

	// ErrDatabase is returned by the storage layer.
	ErrDatabase = Register(18, "database error")

	// ErrPanic is only set when we recover from a panic.
	ErrPanic = Register(111222, "panic")
)
