package ntc

import (
	"errors"
	"fmt"
)

// Code is a numeric result code shared by every conversion and driver operation.
type Code uint8

const (
	Success Code = iota
	Failure
	NotInitialized
	AlreadyInitialized
	InvalidParameter
	NullPointer
	OutOfMemory
	AdcReadFailed
	InvalidResistance
	TemperatureOutOfRange
	LookupTableError
	ConversionFailed
	CalibrationFailed
	UnsupportedOperation
	Timeout
	HardwareFault
)

var codeNames = [...]string{
	Success:               "Success",
	Failure:               "General failure",
	NotInitialized:        "Not initialized",
	AlreadyInitialized:    "Already initialized",
	InvalidParameter:      "Invalid parameter",
	NullPointer:           "Null pointer",
	OutOfMemory:           "Out of memory",
	AdcReadFailed:         "ADC read failed",
	InvalidResistance:     "Invalid resistance value",
	TemperatureOutOfRange: "Temperature out of range",
	LookupTableError:      "Lookup table error",
	ConversionFailed:      "Temperature conversion failed",
	CalibrationFailed:     "Calibration failed",
	UnsupportedOperation:  "Operation not supported",
	Timeout:               "Operation timeout",
	HardwareFault:         "Hardware fault",
}

// String returns a human-readable description of the code.
func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "Unknown error"
}

// Error is a coded error. Op names the failing operation and Err, if set, is the cause.
type Error struct {
	Code Code
	Op   string
	Err  error
}

// Sentinels usable with errors.Is. Matching is done by code.
var (
	ErrFailure               = &Error{Code: Failure}
	ErrNotInitialized        = &Error{Code: NotInitialized}
	ErrAlreadyInitialized    = &Error{Code: AlreadyInitialized}
	ErrInvalidParameter      = &Error{Code: InvalidParameter}
	ErrAdcReadFailed         = &Error{Code: AdcReadFailed}
	ErrInvalidResistance     = &Error{Code: InvalidResistance}
	ErrTemperatureOutOfRange = &Error{Code: TemperatureOutOfRange}
	ErrLookupTable           = &Error{Code: LookupTableError}
	ErrConversionFailed      = &Error{Code: ConversionFailed}
	ErrCalibrationFailed     = &Error{Code: CalibrationFailed}
	ErrUnsupportedOperation  = &Error{Code: UnsupportedOperation}
	ErrTimeout               = &Error{Code: Timeout}
	ErrHardwareFault         = &Error{Code: HardwareFault}
)

// NewError creates a coded error for op.
func NewError(code Code, op string) *Error {
	return &Error{Code: code, Op: op}
}

// Wrap creates a coded error for op carrying err as its cause.
func Wrap(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the code from err. A nil error is Success, a non-coded error is Failure.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Failure
}
