package device

import (
	"errors"
)

// ErrNoProgram is returned by Run when no program was loaded.
var ErrNoProgram = errors.New("no program loaded")

// IOError wraps a transport read or write failure.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// DeviceError is a "!!" reply from the device.
type DeviceError struct {
	Line string
}

func (e *DeviceError) Error() string { return "device error: " + e.Line }
