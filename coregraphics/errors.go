package coregraphics

import (
	"errors"
	"fmt"
)

// Error is a non-zero CGError code returned by the window server.
type Error int32

// Documented CGError values.
const (
	ErrorFailure           Error = 1000
	ErrorIllegalArgument   Error = 1001
	ErrorInvalidConnection Error = 1002
	ErrorInvalidContext    Error = 1003
	ErrorCannotComplete    Error = 1004
	ErrorNotImplemented    Error = 1006
	ErrorRangeCheck        Error = 1007
	ErrorTypeCheck         Error = 1008
	ErrorInvalidOperation  Error = 1010
	ErrorNoneAvailable     Error = 1011
)

var errorNames = map[Error]string{
	ErrorFailure:           "failure",
	ErrorIllegalArgument:   "illegal argument",
	ErrorInvalidConnection: "invalid connection",
	ErrorInvalidContext:    "invalid context",
	ErrorCannotComplete:    "cannot complete",
	ErrorNotImplemented:    "not implemented",
	ErrorRangeCheck:        "range check",
	ErrorTypeCheck:         "type check",
	ErrorInvalidOperation:  "invalid operation",
	ErrorNoneAvailable:     "none available",
}

// ErrNullHandle is returned when adopting a nil native reference.
var ErrNullHandle = errors.New("coregraphics: null handle")

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return fmt.Sprintf("coregraphics: error %d (%s)", int32(e), name)
	}
	return fmt.Sprintf("coregraphics: error %d", int32(e))
}

// Code returns the raw CGError value.
func (e Error) Code() int32 {
	return int32(e)
}

// check maps a CGError to nil on success or an Error carrying the code.
func check(code int32) error {
	if code == 0 {
		return nil
	}
	return Error(code)
}
