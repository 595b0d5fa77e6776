// Package value defines the in-memory, self-describing tree used by the
// generic ("any") decode path: the fallback target when no static Go
// type is driving the decode, and the input to a textual printer.
package value

import "fmt"

// Kind discriminates the eleven wire value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindF32
	KindF64
	KindInt
	KindBytes
	KindString
	KindSymbol
	KindArray
	KindRecord
	KindMap
)

// Int is the logically-signed 65-bit integer: the union of uint64 and
// int64 reached by a sign bit alongside a magnitude. It does not
// fit in a native int64 because magnitude == math.MaxUint64 is a valid,
// representable value (-2^64).
type Int struct {
	Negative bool
	Magnitude uint64
}

// FromInt64 builds an Int from a native signed integer.
func FromInt64(v int64) Int {
	if v >= 0 {
		return Int{Negative: false, Magnitude: uint64(v)}
	}
	// value = -(magnitude+1) => magnitude = -value-1, computed without
	// overflowing int64 at v == math.MinInt64.
	return Int{Negative: true, Magnitude: uint64(-(v + 1))}
}

// FromUint64 builds a non-negative Int from a native unsigned integer.
func FromUint64(v uint64) Int { return Int{Magnitude: v} }

// Int64 converts to a native signed integer, returning ok=false if the
// value doesn't fit (including the -2^64 edge case).
func (i Int) Int64() (v int64, ok bool) {
	if !i.Negative {
		if i.Magnitude > uint64(1<<63-1) {
			return 0, false
		}
		return int64(i.Magnitude), true
	}
	if i.Magnitude >= 1<<63 {
		return 0, false
	}
	return -int64(i.Magnitude) - 1, true
}

// Uint64 converts to a native unsigned integer, returning ok=false if
// the value is negative or doesn't fit.
func (i Int) Uint64() (v uint64, ok bool) {
	if i.Negative {
		return 0, false
	}
	return i.Magnitude, true
}

func (i Int) String() string {
	if !i.Negative {
		return fmt.Sprintf("%d", i.Magnitude)
	}
	if i.Magnitude == ^uint64(0) {
		return "-18446744073709551616" // -2^64, doesn't fit any native width
	}
	return fmt.Sprintf("%d", -int64(i.Magnitude)-1)
}

// Value is the self-describing tagged union. Exactly one field group is
// meaningful per Kind; Value should be constructed with the constructor
// functions below (Null, Bool, ..., Map) rather than by setting fields
// directly.
type Value struct {
	kind Kind

	boolVal   bool
	f32Val    float32
	f64Val    float64
	intVal    Int
	bytesVal  []byte
	strVal    string
	arrayVal  []Value
	fieldsVal []Field
	mapVal    []MapEntry
}

// Field is one name/value pair of a Record, in declaration order.
type Field struct {
	Name  string
	Value Value
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

func (v Value) Kind() Kind { return v.kind }

func Null() Value                  { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, boolVal: b} }
func F32(f float32) Value          { return Value{kind: KindF32, f32Val: f} }
func F64(f float64) Value          { return Value{kind: KindF64, f64Val: f} }
func IntValue(i Int) Value         { return Value{kind: KindInt, intVal: i} }
func Bytes(b []byte) Value         { return Value{kind: KindBytes, bytesVal: b} }
func String(s string) Value        { return Value{kind: KindString, strVal: s} }
func Symbol(s string) Value        { return Value{kind: KindSymbol, strVal: s} }
func Array(items []Value) Value    { return Value{kind: KindArray, arrayVal: items} }
func Record(fields []Field) Value  { return Value{kind: KindRecord, fieldsVal: fields} }
func Map(entries []MapEntry) Value { return Value{kind: KindMap, mapVal: entries} }

func (v Value) AsBool() bool          { return v.boolVal }
func (v Value) AsF32() float32        { return v.f32Val }
func (v Value) AsF64() float64        { return v.f64Val }
func (v Value) AsInt() Int            { return v.intVal }
func (v Value) AsBytes() []byte       { return v.bytesVal }
func (v Value) AsString() string      { return v.strVal }
func (v Value) AsSymbol() string      { return v.strVal }
func (v Value) AsArray() []Value      { return v.arrayVal }
func (v Value) AsRecord() []Field     { return v.fieldsVal }
func (v Value) AsMap() []MapEntry     { return v.mapVal }

// Equal compares two Values structurally, treating borrowed and owned
// strings/bytes as equal when their contents match (the round-trip
// testable property is defined modulo that distinction).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindF32:
		return a.f32Val == b.f32Val
	case KindF64:
		return a.f64Val == b.f64Val
	case KindInt:
		return a.intVal == b.intVal
	case KindBytes:
		return string(a.bytesVal) == string(b.bytesVal)
	case KindString, KindSymbol:
		return a.strVal == b.strVal
	case KindArray:
		if len(a.arrayVal) != len(b.arrayVal) {
			return false
		}
		for i := range a.arrayVal {
			if !Equal(a.arrayVal[i], b.arrayVal[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(a.fieldsVal) != len(b.fieldsVal) {
			return false
		}
		for i := range a.fieldsVal {
			if a.fieldsVal[i].Name != b.fieldsVal[i].Name || !Equal(a.fieldsVal[i].Value, b.fieldsVal[i].Value) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mapVal) != len(b.mapVal) {
			return false
		}
		for i := range a.mapVal {
			if !Equal(a.mapVal[i].Key, b.mapVal[i].Key) || !Equal(a.mapVal[i].Value, b.mapVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
