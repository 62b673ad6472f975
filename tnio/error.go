package tnio

import (
	"errors"
	"fmt"
	"runtime"
)

// Error handling in tnets is built around a small set of error kinds, each a sentinel value below.
// Every error returned by the codec wraps exactly one of them, with extra information attached by Error,
// so callers can tell kinds apart with errors.Is no matter how much detail is attached.
//
//	_, err := tnets.Parse(data)
//	if errors.Is(err, tnio.ErrUnableToTake) {
//		// input was truncated
//	}
//
// Errors from nested values are returned unchanged; a compound never wraps the error of its child.
// Panics are only used when there is a clear misuse of the library; programmer error.
var (
	// ErrUnknownSegmentType is returned when a frame's tag is not one of the known tags.
	ErrUnknownSegmentType = errors.New("unknown segment type")

	// ErrUnableToParseInt is returned when a length prefix or integer payload is not a decimal integer.
	ErrUnableToParseInt = errors.New("unable to parse int")

	// ErrUnableToParseFloat is returned when a float payload is not a decimal float.
	ErrUnableToParseFloat = errors.New("unable to parse float")

	// ErrNonZeroLengthNull is returned when a null frame carries a payload.
	ErrNonZeroLengthNull = errors.New("null with non-zero length")

	// ErrUnableToTake is returned by the value parser when a frame declares more bytes than remain.
	ErrUnableToTake = errors.New("unable to take payload")

	// ErrEOF is returned by the typed decoder when the input ends inside a frame.
	ErrEOF = errors.New("unexpected end of input")

	// ErrFoundNonStringKey is returned when a dict key frame is not a string.
	ErrFoundNonStringKey = errors.New("found non-string key")

	// ErrUnsupportedType is returned when the typed decoder is asked for a float.
	ErrUnsupportedType = errors.New("unsupported type")

	// Shape mismatches in the typed decoder; the expected tag or prefix was not found.
	ErrParsingBool        = errors.New("error parsing bool")
	ErrParsingUnit        = errors.New("error parsing unit")
	ErrParsingMap         = errors.New("error parsing map")
	ErrParsingSeq         = errors.New("error parsing seq")
	ErrParsingEnum        = errors.New("error parsing enum")
	ErrParsingString      = errors.New("error parsing string")
	ErrParsingUnsigned    = errors.New("error parsing unsigned")
	ErrParsingUnitVariant = errors.New("error parsing unit variant")
	ErrParsingLength      = errors.New("error parsing length")

	// ErrUnusedParseData is returned when a value decoded successfully but input remains.
	ErrUnusedParseData = errors.New("unused parse data")

	// ErrNonUTF8Str is returned when bytes that must be text are not valid UTF-8.
	ErrNonUTF8Str = errors.New("non-utf8 string")

	// ErrStackProblem is returned when the serializer's staging stack is unbalanced.
	// Seeing it means a Marshaler opened or closed compounds incorrectly.
	ErrStackProblem = errors.New("stack problem")

	// ErrMessage is the kind of free-form errors raised by user types, see Messagef.
	ErrMessage = errors.New("message")

	// ErrNestingTooDeep is returned when compounds nest deeper than the configured limit.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrBadType is returned when a Go type cannot be used the way it was asked to be.
	ErrBadType = errors.New("bad type")

	// ErrNilPointer is returned if a pointer that should not be nil is nil.
	ErrNilPointer = errors.New("nil pointer")
)

// NewError returns an Error wrapping err with message and the name of the calling function.
// skip is the number of extra stack frames to skip when finding the caller.
func NewError(err error, message string, skip int) error {
	return Error{
		Err:     err,
		Message: message,
		Caller:  GetCaller(1 + skip),
	}
}

// Messagef returns an ErrMessage error with a formatted description.
func Messagef(format string, args ...interface{}) error {
	return Error{
		Err:     ErrMessage,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error is returned for every codec failure.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Err == ErrMessage {
		return e.Message
	}

	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap()
func (e Error) Unwrap() error {
	return e.Err
}

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Writer.
// If message is empty, it is filled with the calling function's name.
func NewIOError(err error, message string, skip int) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", 0)
	}
	if message == "" {
		message = "in " + GetCaller(1+skip)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when the io.Writer given to an Encoder fails.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
