package codec

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

func roundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()
	enc := NewEncoder()
	defer enc.Release()
	require.NoError(t, enc.EncodeValue(v))

	out := make([]byte, len(enc.Bytes()))
	copy(out, enc.Bytes())

	dec := NewDecoder(out)
	got, err := dec.DecodeValue()
	require.NoError(t, err)
	assert.Empty(t, dec.Remaining())
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Bool(false),
		value.F32(3.5),
		value.F64(-2.25),
		value.IntValue(value.FromInt64(0)),
		value.IntValue(value.FromInt64(-1)),
		value.IntValue(value.FromInt64(1 << 40)),
		value.Bytes([]byte{1, 2, 3}),
		value.String("hi"),
		value.Symbol("species"),
	}
	for _, c := range cases {
		got := roundTrip(t, c)
		assert.True(t, value.Equal(c, got), "case %v", c)
	}
}

func TestRoundTripMinusTwoToThe64(t *testing.T) {
	v := value.IntValue(value.Int{Negative: true, Magnitude: ^uint64(0)})
	got := roundTrip(t, v)
	assert.True(t, value.Equal(v, got))
}

func TestRoundTripArray(t *testing.T) {
	v := value.Array([]value.Value{value.Bool(true), value.Bool(false)})
	got := roundTrip(t, v)
	assert.True(t, value.Equal(v, got))
}

func TestRoundTripMap(t *testing.T) {
	v := value.Map([]value.MapEntry{
		{Key: value.String("k"), Value: value.IntValue(value.FromInt64(1))},
	})
	got := roundTrip(t, v)
	assert.True(t, value.Equal(v, got))
}

func TestRoundTripRecordAndLayoutSharing(t *testing.T) {
	rec := func(name, species string) value.Value {
		return value.Record([]value.Field{
			{Name: "name", Value: value.String(name)},
			{Name: "species", Value: value.Symbol(species)},
		})
	}

	arr := value.Array([]value.Value{
		rec("a", "PrionailurusViverrinus"),
		rec("b", "PrionailurusViverrinus"),
	})

	enc := NewEncoder()
	defer enc.Release()
	require.NoError(t, enc.EncodeValue(arr))
	wire := append([]byte(nil), enc.Bytes()...)

	dec := NewDecoder(wire)
	got, err := dec.DecodeValue()
	require.NoError(t, err)
	assert.Empty(t, dec.Remaining())
	assert.True(t, value.Equal(arr, got))
}

func TestHeaderMinimalityInWire(t *testing.T) {
	enc := NewEncoder()
	defer enc.Release()
	enc.EmitInt(value.FromInt64(1))
	assert.Equal(t, []byte{0x21}, enc.Bytes())
}

func TestUnknownReferenceError(t *testing.T) {
	// REF header pointing at index 0 of an empty table.
	wire := []byte{0xE0}
	dec := NewDecoder(wire)
	_, err := dec.DecodeValue()
	assert.ErrorIs(t, err, errs.ErrUnknownReference)
}

func TestTruncatedPayloadError(t *testing.T) {
	wire := []byte{0x42, 0x68} // STR header claims 2 bytes, only 1 present
	dec := NewDecoder(wire)
	_, err := dec.DecodeValue()
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestStringIsZeroCopyOverInput(t *testing.T) {
	enc := NewEncoder()
	defer enc.Release()
	enc.EmitStr("hello")
	wire := append([]byte(nil), enc.Bytes()...)

	dec := NewDecoder(wire)
	v, err := dec.DecodeValue()
	require.NoError(t, err)
	assert.Equal(t, "hello", v.AsString())
	assert.Same(t, &wire[1], unsafe.StringData(v.AsString()))
}
