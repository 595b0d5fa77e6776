package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasammez/nachricht-go/codec"
)

func TestVariantUnitRoundTrip(t *testing.T) {
	v := Unit("Shape", "Circle", 0)

	wire, err := Marshal(v)
	require.NoError(t, err)

	dec := codec.NewDecoder(wire)
	decoded, err := dec.DecodeValue()
	require.NoError(t, err)

	out, err := DecodeVariant(decoded)
	require.NoError(t, err)
	assert.Equal(t, VariantUnit, out.Kind)
	assert.Equal(t, "Circle", out.Name)
}

func TestVariantNewtypeRoundTrip(t *testing.T) {
	v := Newtype("Shape", "Radius", 1, 5)

	wire, err := Marshal(v)
	require.NoError(t, err)

	dec := codec.NewDecoder(wire)
	decoded, err := dec.DecodeValue()
	require.NoError(t, err)

	out, err := DecodeVariant(decoded)
	require.NoError(t, err)
	assert.Equal(t, VariantNewtype, out.Kind)
	assert.Equal(t, "Radius", out.Name)
}

func TestVariantTupleRoundTrip(t *testing.T) {
	v := Tuple("Shape", "Point", 2, []any{1, 2})

	wire, err := Marshal(v)
	require.NoError(t, err)

	dec := codec.NewDecoder(wire)
	decoded, err := dec.DecodeValue()
	require.NoError(t, err)

	out, err := DecodeVariant(decoded)
	require.NoError(t, err)
	assert.Equal(t, VariantTuple, out.Kind)
	items, ok := out.Payload.([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestVariantStructRoundTrip(t *testing.T) {
	type Rect struct {
		W int
		H int
	}
	v := StructVariant("Shape", "Rectangle", 3, Rect{W: 2, H: 3})

	wire, err := Marshal(v)
	require.NoError(t, err)

	dec := codec.NewDecoder(wire)
	decoded, err := dec.DecodeValue()
	require.NoError(t, err)

	out, err := DecodeVariant(decoded)
	require.NoError(t, err)
	assert.Equal(t, VariantStruct, out.Kind)
	assert.Equal(t, "Rectangle", out.Name)
}
