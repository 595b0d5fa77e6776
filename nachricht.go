// Package nachricht implements the nachricht self-describing binary
// interchange format: a msgpack/CBOR/RION-like wire codec distinguished
// by a built-in symbol table that deduplicates repeated record layouts
// and atom-like strings.
//
// The format has no magic number, no framing, and no version byte — a
// buffer containing a single encoded value is itself the message.
package nachricht

import (
	"io"

	"github.com/yasammez/nachricht-go/adapter"
	"github.com/yasammez/nachricht-go/codec"
	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

// Encode returns the wire encoding of v.
func Encode(v value.Value) ([]byte, error) {
	enc := codec.NewEncoder()
	defer enc.Release()

	if err := enc.EncodeValue(v); err != nil {
		return nil, err
	}

	out := make([]byte, len(enc.Bytes()))
	copy(out, enc.Bytes())
	return out, nil
}

// EncodeTo writes the wire encoding of v to w, mirroring io.WriterTo's
// signature. A write failure is reported as an *errs.IOError wrapping
// the sink's own error, distinguishing it from a codec-level failure.
func EncodeTo(v value.Value, w io.Writer) (int64, error) {
	enc := codec.NewEncoder()
	defer enc.Release()

	if err := enc.EncodeValue(v); err != nil {
		return 0, err
	}

	n, err := w.Write(enc.Bytes())
	if err != nil {
		return int64(n), errs.IO(err)
	}
	return int64(n), nil
}

// Decode decodes exactly one self-describing value from the front of
// data, returning it along with any remaining bytes.
func Decode(data []byte) (value.Value, []byte, error) {
	dec := codec.NewDecoder(data)
	v, err := dec.DecodeValue()
	if err != nil {
		return value.Value{}, nil, err
	}
	return v, dec.Remaining(), nil
}

// DecodeAll decodes a single value from data and errors if any bytes
// remain afterward.
func DecodeAll(data []byte) (value.Value, error) {
	v, rest, err := Decode(data)
	if err != nil {
		return value.Value{}, err
	}
	if len(rest) != 0 {
		return value.Value{}, errs.ErrTrailingInput
	}
	return v, nil
}

// Marshal encodes v, a typed Go value, driving the adapter layer
// instead of an intermediate value.Value tree.
func Marshal(v any, opts ...adapter.Option) ([]byte, error) {
	return adapter.Marshal(v, opts...)
}

// Unmarshal decodes into target, a non-nil pointer, via the adapter
// layer.
func Unmarshal(data []byte, target any, opts ...adapter.Option) error {
	return adapter.Unmarshal(data, target, opts...)
}
