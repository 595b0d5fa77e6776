// Package errs defines the error taxonomy shared by every nachricht
// package: the header codec, the symbol table, the core encoder and
// decoder, and the adapter layer.
//
// Callers match a specific failure with errors.Is against one of the
// sentinels below. A call site either returns the sentinel as is or
// wraps it with fmt.Errorf's %w verb to attach detail (which field,
// which kind).
package errs

import "errors"

var (
	// ErrUnexpectedEOF means the input was shorter than a header or its
	// payload demanded.
	ErrUnexpectedEOF = errors.New("nachricht: unexpected end of input")

	// ErrInvalidUTF8 means a String or Symbol payload was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("nachricht: invalid UTF-8 in string payload")

	// ErrUnknownReference means a REF header's index was not less than
	// the symbol table's length at the time it was resolved.
	ErrUnknownReference = errors.New("nachricht: reference index out of range")

	// ErrUnexpectedWireKind means a typed decode call found a wire kind
	// it can't accept (e.g. expecting a Record but finding a Bytes).
	ErrUnexpectedWireKind = errors.New("nachricht: unexpected wire kind")

	// ErrIntegerOutOfRange means a decoded i65 value does not fit the
	// caller's requested target integer type.
	ErrIntegerOutOfRange = errors.New("nachricht: integer value out of range")

	// ErrLengthRequired means the serialization adapter was given a
	// sequence or map whose length isn't known up front. The reflect-
	// based adapter in this repository always knows a slice/array/map's
	// length before emitting its header, so it never constructs this
	// sentinel itself; it is kept in the taxonomy for adapters over
	// sources that can't pre-compute length (e.g. a streaming iterator).
	ErrLengthRequired = errors.New("nachricht: sequence or map length required")

	// ErrTrailingInput means DecodeAll found bytes left over after
	// decoding exactly one value.
	ErrTrailingInput = errors.New("nachricht: trailing input after value")

	// ErrUnsupportedMapKey means the adapter was asked to encode a map
	// whose key kind has no defined deterministic ordering (string and
	// integer keys are sorted; anything else is rejected rather than
	// emitted in an arbitrary, non-reproducible order).
	ErrUnsupportedMapKey = errors.New("nachricht: unsupported map key kind")

	// ErrMissingField means a struct expectation required a field the
	// wire record did not contain.
	ErrMissingField = errors.New("nachricht: missing required field")
)

// MessageError wraps a Visitor-supplied error with no further
// structure, mirroring serde's "custom" error constructor. Core adapter
// code never constructs one: it is the error type a caller's own
// Visitor implementation returns from a VisitXxx callback to reject a
// decoded value on domain-specific grounds (a string that fails a
// format check, an int outside a caller's valid range). Accept
// propagates whatever its Visitor returns unchanged, so a MessageError
// surfaces to the Unmarshal/Accept caller exactly like any other error.
type MessageError struct {
	Msg string
}

func (e *MessageError) Error() string { return e.Msg }

// Message builds a MessageError carrying msg as its text.
func Message(msg string) error { return &MessageError{Msg: msg} }

// IOError wraps a failure from the caller-provided sink during encode.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "nachricht: write error: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

// IO wraps a sink error as an IOError.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Err: err}
}
