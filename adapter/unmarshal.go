package adapter

import (
	"fmt"
	"reflect"

	"github.com/yasammez/nachricht-go/codec"
	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

// Unmarshal decodes exactly one self-describing value from data and
// assigns it into target, which must be a non-nil pointer. Trailing
// bytes after the decoded value are reported as errs.ErrTrailingInput,
// mirroring a decode-all contract.
func Unmarshal(data []byte, target any, opts ...Option) error {
	cfg := newConfig(opts)

	dec := codec.NewDecoder(data)
	v, err := dec.DecodeValue()
	if err != nil {
		return err
	}
	if len(dec.Remaining()) != 0 {
		return errs.ErrTrailingInput
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: Unmarshal target must be a non-nil pointer", errs.ErrUnexpectedWireKind)
	}

	return (&unmarshaler{cfg: cfg}).assign(v, rv.Elem())
}

type unmarshaler struct {
	cfg config
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

func (u *unmarshaler) assign(v value.Value, rv reflect.Value) error {
	if rv.Type() == anyType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		if v.Kind() != value.KindBool {
			return errs.ErrUnexpectedWireKind
		}
		rv.SetBool(v.AsBool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind() != value.KindInt {
			return errs.ErrUnexpectedWireKind
		}
		i, ok := v.AsInt().Int64()
		if !ok {
			return errs.ErrIntegerOutOfRange
		}
		if rv.OverflowInt(i) {
			return errs.ErrIntegerOutOfRange
		}
		rv.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.Kind() != value.KindInt {
			return errs.ErrUnexpectedWireKind
		}
		n, ok := v.AsInt().Uint64()
		if !ok {
			return errs.ErrIntegerOutOfRange
		}
		if rv.OverflowUint(n) {
			return errs.ErrIntegerOutOfRange
		}
		rv.SetUint(n)

	case reflect.Float32:
		switch v.Kind() {
		case value.KindF32:
			rv.SetFloat(float64(v.AsF32()))
		case value.KindF64:
			rv.SetFloat(v.AsF64())
		default:
			return errs.ErrUnexpectedWireKind
		}

	case reflect.Float64:
		switch v.Kind() {
		case value.KindF32:
			rv.SetFloat(float64(v.AsF32()))
		case value.KindF64:
			rv.SetFloat(v.AsF64())
		default:
			return errs.ErrUnexpectedWireKind
		}

	case reflect.String:
		switch v.Kind() {
		case value.KindString, value.KindSymbol:
			s := v.AsString()
			if v.Kind() == value.KindSymbol {
				s = v.AsSymbol()
			}
			if u.cfg.copyStrings {
				s = string([]byte(s))
			}
			rv.SetString(s)
		default:
			return errs.ErrUnexpectedWireKind
		}

	case reflect.Slice:
		return u.assignSlice(v, rv)

	case reflect.Array:
		return u.assignArray(v, rv)

	case reflect.Map:
		return u.assignMap(v, rv)

	case reflect.Ptr:
		if v.Kind() == value.KindNull {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return u.assign(v, rv.Elem())

	case reflect.Interface:
		// Non-empty interfaces aren't a decode target this adapter
		// supports; only the empty interface (handled above) is.
		return fmt.Errorf("%w: cannot decode into interface %s", errs.ErrUnexpectedWireKind, rv.Type())

	case reflect.Struct:
		return u.assignStruct(v, rv)

	default:
		return fmt.Errorf("%w: unsupported target kind %s", errs.ErrUnexpectedWireKind, rv.Kind())
	}

	return nil
}

func (u *unmarshaler) assignSlice(v value.Value, rv reflect.Value) error {
	if v.Kind() == value.KindNull {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		if v.Kind() != value.KindBytes {
			return errs.ErrUnexpectedWireKind
		}
		b := v.AsBytes()
		if u.cfg.copyStrings {
			out := make([]byte, len(b))
			copy(out, b)
			b = out
		}
		rv.SetBytes(b)
		return nil
	}
	if v.Kind() != value.KindArray {
		return errs.ErrUnexpectedWireKind
	}
	items := v.AsArray()
	out := reflect.MakeSlice(rv.Type(), len(items), len(items))
	for i, item := range items {
		if err := u.assign(item, out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func (u *unmarshaler) assignArray(v value.Value, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		if v.Kind() != value.KindBytes {
			return errs.ErrUnexpectedWireKind
		}
		b := v.AsBytes()
		if len(b) != rv.Len() {
			return fmt.Errorf("%w: byte array length mismatch", errs.ErrUnexpectedWireKind)
		}
		reflect.Copy(rv, reflect.ValueOf(b))
		return nil
	}
	if v.Kind() != value.KindArray {
		return errs.ErrUnexpectedWireKind
	}
	items := v.AsArray()
	if len(items) != rv.Len() {
		return fmt.Errorf("%w: array length mismatch", errs.ErrUnexpectedWireKind)
	}
	for i, item := range items {
		if err := u.assign(item, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (u *unmarshaler) assignMap(v value.Value, rv reflect.Value) error {
	if v.Kind() == value.KindNull {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if v.Kind() != value.KindMap {
		return errs.ErrUnexpectedWireKind
	}
	entries := v.AsMap()
	out := reflect.MakeMapWithSize(rv.Type(), len(entries))
	keyType := rv.Type().Key()
	valType := rv.Type().Elem()
	for _, entry := range entries {
		k := reflect.New(keyType).Elem()
		if err := u.assign(entry.Key, k); err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := u.assign(entry.Value, val); err != nil {
			return err
		}
		out.SetMapIndex(k, val)
	}
	rv.Set(out)
	return nil
}

func (u *unmarshaler) assignStruct(v value.Value, rv reflect.Value) error {
	specs := structFields(rv.Type(), u.cfg.tagKey)

	if len(specs) == 1 && specs[0].inline {
		return u.assign(v, rv.FieldByIndex(specs[0].index))
	}

	if v.Kind() != value.KindRecord {
		return errs.ErrUnexpectedWireKind
	}

	byName := make(map[string]value.Value, len(v.AsRecord()))
	for _, f := range v.AsRecord() {
		byName[f.Name] = f.Value
	}

	for _, s := range specs {
		fv, ok := byName[s.name]
		if !ok {
			field := rv.FieldByIndex(s.index)
			if field.Kind() == reflect.Ptr || field.Kind() == reflect.Interface {
				continue
			}
			return fmt.Errorf("%w: field %q", errs.ErrMissingField, s.name)
		}
		if err := u.assign(fv, rv.FieldByIndex(s.index)); err != nil {
			return err
		}
	}

	return nil
}

// DecodeVariant interprets a decoded value.Value per the variant wire
// shapes: a Symbol is a unit variant; a single-field
// Record's payload kind (Array, Record, or anything else) determines
// whether it's a tuple, struct, or newtype variant.
func DecodeVariant(v value.Value) (Variant, error) {
	switch v.Kind() {
	case value.KindSymbol:
		return Variant{Name: v.AsSymbol(), Kind: VariantUnit}, nil
	case value.KindRecord:
		fields := v.AsRecord()
		if len(fields) != 1 {
			return Variant{}, fmt.Errorf("%w: variant record must have exactly one field", errs.ErrUnexpectedWireKind)
		}
		name := fields[0].Name
		payload := fields[0].Value
		switch payload.Kind() {
		case value.KindArray:
			items := payload.AsArray()
			anyItems := make([]any, len(items))
			for i, it := range items {
				anyItems[i] = it
			}
			return Variant{Name: name, Kind: VariantTuple, Payload: anyItems}, nil
		case value.KindRecord:
			return Variant{Name: name, Kind: VariantStruct, Payload: payload}, nil
		default:
			return Variant{Name: name, Kind: VariantNewtype, Payload: payload}, nil
		}
	default:
		return Variant{}, fmt.Errorf("%w: not a variant shape", errs.ErrUnexpectedWireKind)
	}
}
