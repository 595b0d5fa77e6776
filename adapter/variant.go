package adapter

// VariantKind discriminates the four variant payload shapes:
// Go has no tagged-union language feature, so Variant is the one
// concrete type the adapter uses to construct and pattern-match enum
// values flowing through the wire codec.
type VariantKind uint8

const (
	// VariantUnit carries no payload; it is wire-emitted as a Symbol
	// naming the variant.
	VariantUnit VariantKind = iota
	// VariantNewtype wraps exactly one payload value.
	VariantNewtype
	// VariantTuple wraps a payload of []any, encoded as an Array.
	VariantTuple
	// VariantStruct wraps a payload struct, encoded as a Record.
	VariantStruct
)

// Variant is a concrete Go shape for a serde-style enum value: an
// identified case of Enum, carrying a payload whose shape Kind
// describes.
type Variant struct {
	Enum  string
	Name  string
	Index uint32
	Kind  VariantKind
	// Payload is nil for VariantUnit, a single value for
	// VariantNewtype, a []any for VariantTuple, and a struct value for
	// VariantStruct.
	Payload any
}

// Unit constructs a unit variant (no payload).
func Unit(enum, name string, index uint32) Variant {
	return Variant{Enum: enum, Name: name, Index: index, Kind: VariantUnit}
}

// Newtype constructs a single-payload variant.
func Newtype(enum, name string, index uint32, payload any) Variant {
	return Variant{Enum: enum, Name: name, Index: index, Kind: VariantNewtype, Payload: payload}
}

// Tuple constructs a tuple variant from an ordered payload slice.
func Tuple(enum, name string, index uint32, payload []any) Variant {
	return Variant{Enum: enum, Name: name, Index: index, Kind: VariantTuple, Payload: payload}
}

// StructVariant constructs a struct-shaped variant.
func StructVariant(enum, name string, index uint32, payload any) Variant {
	return Variant{Enum: enum, Name: name, Index: index, Kind: VariantStruct, Payload: payload}
}
