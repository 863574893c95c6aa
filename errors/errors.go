package errors

import (
	"fmt"
	"reflect"

	pkgerr "github.com/pkg/errors"
)

// Register returns an error instance that should be used as the base
// for creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may
// want to declare custom codes. This function ensures that no error
// code is used twice. An attempt to reuse a code results in a panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes keeps track of registered codes to ensure uniqueness. Code
// 1 is reserved for wrapped non-fount errors.
var usedCodes = map[uint32]*Error{
	1: nil,
}

// Error represents a root error. Each error instance created during
// runtime should wrap one of the declared root errors, so that error
// tests can match on the category regardless of the message layering.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the registered category code.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error with the root cause set to this error.
// The two lines below are equal:
//
//	e.New("my description")
//	Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is checks if the given error instance is of this kind. The given
// error is unwrapped using the Cause method as deep as possible.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with a nil
	// implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends the given error with additional information.
//
// If err is nil, this returns nil, avoiding the need for an if
// statement when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry stacktrace information yet, attach
	// it. This should be done only once per error, at the most inner
	// wrap.
	if stackTrace(err) == nil {
		err = pkgerr.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends the given error with formatted additional information.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stops its propagation. If a panic
// happens it is transformed into an ErrPanic instance and assigned to
// the given error. Call this function using defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// causer is an interface implemented by an error that supports
// wrapping. Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() pkgerr.StackTrace
}

// stackTrace returns the first stack trace found in the cause chain,
// or nil if there is none.
func stackTrace(err error) pkgerr.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
