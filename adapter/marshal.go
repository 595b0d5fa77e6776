// Package adapter bridges arbitrary Go values and the self-describing
// value.Value tree to the core wire codec, per the serialization and
// deserialization adapter contracts: Marshal drives the encoder
// directly from a reflect.Value walk, Unmarshal decodes one
// self-describing value.Value and then assigns it into a target Go
// value (the "any" path), and Variant gives the variant vocabulary a
// concrete Go shape since the language has no tagged unions.
package adapter

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/yasammez/nachricht-go/codec"
	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

// Marshal encodes v as a nachricht wire value. It drives the core
// encoder's primitives directly, field by field, rather than building
// an intermediate value.Value tree.
func Marshal(v any, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	enc := codec.NewEncoder()
	defer enc.Release()

	m := &marshaler{cfg: cfg, enc: enc}
	if err := m.encode(reflect.ValueOf(v)); err != nil {
		return nil, err
	}

	out := make([]byte, len(enc.Bytes()))
	copy(out, enc.Bytes())
	return out, nil
}

type marshaler struct {
	cfg config
	enc *codec.Encoder
}

var variantType = reflect.TypeOf(Variant{})

func (m *marshaler) encode(rv reflect.Value) error {
	if !rv.IsValid() {
		m.enc.EmitNull()
		return nil
	}

	if rv.Type() == variantType {
		return m.encodeVariant(rv.Interface().(Variant))
	}

	switch rv.Kind() {
	case reflect.Bool:
		m.enc.EmitBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		m.enc.EmitInt(value.FromInt64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		m.enc.EmitInt(value.FromUint64(rv.Uint()))
	case reflect.Float32:
		m.enc.EmitF32(float32(rv.Float()))
	case reflect.Float64:
		m.enc.EmitF64(rv.Float())
	case reflect.String:
		m.enc.EmitStr(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			m.enc.EmitNull()
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			m.enc.EmitBytes(rv.Bytes())
			return nil
		}
		return m.encodeSeq(rv)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			m.enc.EmitBytes(b)
			return nil
		}
		return m.encodeSeq(rv)
	case reflect.Map:
		return m.encodeMap(rv)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			m.enc.EmitNull()
			return nil
		}
		return m.encode(rv.Elem())
	case reflect.Struct:
		return m.encodeStruct(rv)
	default:
		return fmt.Errorf("%w: unsupported kind %s", errs.ErrUnexpectedWireKind, rv.Kind())
	}
	return nil
}

func (m *marshaler) encodeSeq(rv reflect.Value) error {
	n := rv.Len()
	m.enc.BeginArray(n)
	for i := 0; i < n; i++ {
		if err := m.encode(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (m *marshaler) encodeMap(rv reflect.Value) error {
	if rv.IsNil() {
		m.enc.EmitNull()
		return nil
	}

	keys := rv.MapKeys()
	if len(keys) == 0 {
		m.enc.BeginMap(0)
		return nil
	}

	switch {
	case keys[0].Kind() == reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case isIntKind(keys[0].Kind()):
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case isUintKind(keys[0].Kind()):
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	default:
		return fmt.Errorf("%w: map key kind %s", errs.ErrUnsupportedMapKey, keys[0].Kind())
	}

	m.enc.BeginMap(len(keys))
	for _, k := range keys {
		if err := m.encode(k); err != nil {
			return err
		}
		if err := m.encode(rv.MapIndex(k)); err != nil {
			return err
		}
	}
	return nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// fieldSpec is one struct field's wire name and declaration-order
// index chain, after tag overrides.
type fieldSpec struct {
	name   string
	index  []int
	inline bool
}

// structFields walks t's visible fields in declaration order (never a
// map, since layout identity depends on the ordered name tuple).
//
// reflect.VisibleFields lists an embedded struct field itself and then,
// separately, each of its promoted fields. An untagged embedded struct
// (or pointer-to-struct) is skipped here so only its promoted fields
// survive — the same flattening encoding/json applies to anonymous
// fields. Tagging the embedding gives it an explicit wire name instead,
// opting it out of flattening, again mirroring encoding/json.
func structFields(t reflect.Type, tagKey string) []fieldSpec {
	var specs []fieldSpec
	var tagged [][]int // index chains of tagged embeddings
outer:
	for _, f := range reflect.VisibleFields(t) {
		for _, p := range tagged {
			if len(f.Index) > len(p) && slices.Equal(f.Index[:len(p)], p) {
				continue outer
			}
		}
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get(tagKey)
		if tag == "-" {
			continue
		}
		if f.Anonymous && isStructOrPtrToStruct(f.Type) {
			if tag == "" {
				continue
			}
			tagged = append(tagged, f.Index)
		}

		name := f.Name
		inline := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "inline" {
					inline = true
				}
			}
		}
		specs = append(specs, fieldSpec{name: name, index: f.Index, inline: inline})
	}
	return specs
}

func isStructOrPtrToStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// encodeStruct emits a struct as a Record, using the symbol-table
// protocol for its field-name layout. A struct with exactly one field
// tagged ",inline" is nachricht's newtype-struct case: the inner
// value is encoded directly, with no wrapping Record.
func (m *marshaler) encodeStruct(rv reflect.Value) error {
	specs := structFields(rv.Type(), m.cfg.tagKey)

	if len(specs) == 1 && specs[0].inline {
		return m.encode(rv.FieldByIndex(specs[0].index))
	}

	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.name
	}

	needsNames := m.enc.BeginRecord(names)
	for _, s := range specs {
		if needsNames {
			m.enc.Field(s.name)
		}
		if err := m.encode(rv.FieldByIndex(s.index)); err != nil {
			return err
		}
	}
	m.enc.EndRecord(names)

	return nil
}

func (m *marshaler) encodeVariant(v Variant) error {
	switch v.Kind {
	case VariantUnit:
		m.enc.EmitSym(v.Name)
		return nil
	case VariantNewtype, VariantStruct:
		return m.encodeVariantField(v.Name, func() error { return m.encode(reflect.ValueOf(v.Payload)) })
	case VariantTuple:
		items, ok := v.Payload.([]any)
		if !ok {
			return fmt.Errorf("%w: tuple variant payload must be []any", errs.ErrUnexpectedWireKind)
		}
		return m.encodeVariantField(v.Name, func() error {
			m.enc.BeginArray(len(items))
			for _, item := range items {
				if err := m.encode(reflect.ValueOf(item)); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return fmt.Errorf("%w: unknown variant kind", errs.ErrUnexpectedWireKind)
	}
}

// encodeVariantField emits the one-field Record shared by every
// non-unit variant shape: {variant-name: payload}.
func (m *marshaler) encodeVariantField(name string, encodePayload func() error) error {
	names := []string{name}
	needsNames := m.enc.BeginRecord(names)
	if needsNames {
		m.enc.Field(name)
	}
	if err := encodePayload(); err != nil {
		return err
	}
	m.enc.EndRecord(names)
	return nil
}
