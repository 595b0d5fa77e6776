package nachricht

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

func TestEncodeDecodeNull(t *testing.T) {
	wire, err := Encode(value.Null())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, wire)

	v, rest, err := Decode(wire)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.True(t, value.Equal(value.Null(), v))
}

func TestEncodeToWritesThroughSink(t *testing.T) {
	var buf bytes.Buffer
	n, err := EncodeTo(value.Bool(true), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []byte{0x01}, buf.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeToSurfacesSinkFailure(t *testing.T) {
	_, err := EncodeTo(value.Bool(true), failingWriter{})
	var ioErr *errs.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.EqualError(t, ioErr.Unwrap(), "disk full")
}

func TestDecodeAllTrailingInput(t *testing.T) {
	wire, err := Encode(value.Bool(true))
	require.NoError(t, err)
	wire = append(wire, 0x00)

	_, err = DecodeAll(wire)
	assert.ErrorIs(t, err, errs.ErrTrailingInput)
}

type Animal struct {
	Name    string
	Species string
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := Animal{Name: "Jessica", Species: "PrionailurusViverrinus"}

	wire, err := Marshal(in)
	require.NoError(t, err)

	var out Animal
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}
