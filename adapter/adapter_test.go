package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasammez/nachricht-go/codec"
	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

type Animal struct {
	Name    string
	Species string
}

type Zoo struct {
	Animals []Animal
	Tags    map[string]int
}

func TestMarshalUnmarshalStruct(t *testing.T) {
	in := Animal{Name: "Jessica", Species: "PrionailurusViverrinus"}

	wire, err := Marshal(in)
	require.NoError(t, err)

	var out Animal
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

func TestMarshalUnmarshalNested(t *testing.T) {
	in := Zoo{
		Animals: []Animal{
			{Name: "a", Species: "x"},
			{Name: "b", Species: "x"},
		},
		Tags: map[string]int{"z": 1, "a": 2},
	}

	wire, err := Marshal(in)
	require.NoError(t, err)

	var out Zoo
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

func TestMarshalDeterministicMapOrder(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	w1, err := Marshal(m)
	require.NoError(t, err)
	w2, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
}

func TestMarshalUnsupportedMapKey(t *testing.T) {
	m := map[float64]int{1.5: 1}
	_, err := Marshal(m)
	assert.Error(t, err)
}

func TestMarshalUnmarshalPointerOption(t *testing.T) {
	type Box struct {
		Value *int
	}
	v := 42
	in := Box{Value: &v}

	wire, err := Marshal(in)
	require.NoError(t, err)

	var out Box
	require.NoError(t, Unmarshal(wire, &out))
	require.NotNil(t, out.Value)
	assert.Equal(t, 42, *out.Value)

	var nilBox Box
	wireNil, err := Marshal(nilBox)
	require.NoError(t, err)

	var outNil Box
	require.NoError(t, Unmarshal(wireNil, &outNil))
	assert.Nil(t, outNil.Value)
}

func TestMarshalUnmarshalBytes(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	wire, err := Marshal(in)
	require.NoError(t, err)

	var out []byte
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

func TestUnmarshalTrailingInput(t *testing.T) {
	wire, err := Marshal(1)
	require.NoError(t, err)
	wire = append(wire, 0x00)

	var out int
	err = Unmarshal(wire, &out)
	assert.Error(t, err)
}

func TestMarshalUnmarshalTagRename(t *testing.T) {
	type Tagged struct {
		Value int `nachricht:"renamed"`
	}
	in := Tagged{Value: 7}

	wire, err := Marshal(in)
	require.NoError(t, err)

	var out Tagged
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

func recordFieldNames(t *testing.T, wire []byte) []string {
	t.Helper()
	dec := codec.NewDecoder(wire)
	v, err := dec.DecodeValue()
	require.NoError(t, err)
	fields := v.AsRecord()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestMarshalUnmarshalEmbeddedStructFlattens(t *testing.T) {
	type Inner struct {
		A int
	}
	type Outer struct {
		Inner
		B int
	}
	in := Outer{Inner: Inner{A: 1}, B: 2}

	wire, err := Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, recordFieldNames(t, wire))

	var out Outer
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

func TestMarshalUnmarshalTaggedEmbeddingNotFlattened(t *testing.T) {
	type Inner struct {
		A int
	}
	type Outer struct {
		Inner `nachricht:"inner"`
		B     int
	}
	in := Outer{Inner: Inner{A: 1}, B: 2}

	wire, err := Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "B"}, recordFieldNames(t, wire))

	var out Outer
	require.NoError(t, Unmarshal(wire, &out))
	assert.Equal(t, in, out)
}

// strictVisitor rejects negative ints with a caller-defined
// errs.MessageError, demonstrating the Visitor-supplied custom error
// path that Accept propagates unchanged.
type strictVisitor struct{ ValueVisitor }

func (strictVisitor) VisitInt(i value.Int) (any, error) {
	n, ok := i.Int64()
	if !ok || n < 0 {
		return nil, errs.Message("value must be a non-negative int64")
	}
	return n, nil
}

func TestAcceptPropagatesVisitorMessageError(t *testing.T) {
	wire, err := Marshal(-5)
	require.NoError(t, err)

	dec := codec.NewDecoder(wire)
	v, err := dec.DecodeValue()
	require.NoError(t, err)

	_, err = Accept(v, strictVisitor{})
	var msgErr *errs.MessageError
	require.ErrorAs(t, err, &msgErr)
	assert.Equal(t, "value must be a non-negative int64", msgErr.Error())
}
