// Package codec implements the core encoder and decoder: the walk over
// a value tree (or, via the lower-level primitives, a caller-driven
// push traversal) that emits or consumes nachricht's wire bytes,
// maintaining the session's symbol table as it goes.
package codec

import (
	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/header"
	"github.com/yasammez/nachricht-go/internal/pool"
	"github.com/yasammez/nachricht-go/symtab"
	"github.com/yasammez/nachricht-go/value"
)

// Encoder walks a value (or a caller-driven sequence of primitive
// calls, for the adapter layer) and emits nachricht wire bytes.
//
// An Encoder is not safe for concurrent use; each encode call should
// construct its own instance (see NewEncoder), matching the one
// session-per-call lifecycle: construct, encode once, release.
type Encoder struct {
	buf   *pool.Buffer
	table *symtab.Table
}

// NewEncoder creates an Encoder with a pooled output buffer and a fresh
// symbol table.
func NewEncoder() *Encoder {
	return &Encoder{buf: pool.Get(), table: symtab.New()}
}

// Bytes returns the bytes written so far. The returned slice aliases
// the Encoder's internal buffer and is only valid until the next call
// that writes to the Encoder, or until Release.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Release returns the Encoder's buffer to the shared pool. Callers must
// copy out any bytes they still need before calling Release.
func (e *Encoder) Release() { pool.Put(e.buf) }

// EmitNull appends the one-byte Null header.
func (e *Encoder) EmitNull() { header.WriteNull(e.buf) }

// EmitBool appends the one-byte Bool header.
func (e *Encoder) EmitBool(v bool) { header.WriteBool(e.buf, v) }

// EmitF32 appends an F32 header and value.
func (e *Encoder) EmitF32(v float32) { header.WriteF32(e.buf, v) }

// EmitF64 appends an F64 header and value.
func (e *Encoder) EmitF64(v float64) { header.WriteF64(e.buf, v) }

// EmitInt appends an INT header for the given i65 value.
func (e *Encoder) EmitInt(v value.Int) { header.WriteInt(e.buf, v.Negative, v.Magnitude) }

// EmitBytes appends a BIN/Bytes header followed by the payload.
func (e *Encoder) EmitBytes(b []byte) {
	header.WriteBytesHeader(e.buf, len(b))
	e.buf.Write(b)
}

// EmitStr appends a STR header followed by the UTF-8 payload.
func (e *Encoder) EmitStr(s string) {
	header.WriteStrHeader(e.buf, len(s))
	e.buf.Write([]byte(s))
}

// EmitSym appends a Symbol: a REF to the table if s was already
// interned this session, or a fresh SYM header plus payload (and a new
// atom entry) otherwise.
func (e *Encoder) EmitSym(s string) {
	if idx, ok := e.table.LookupAtom(s); ok {
		header.WriteRefHeader(e.buf, idx)
		return
	}
	e.table.InternAtom(s)
	header.WriteSymHeader(e.buf, len(s))
	e.buf.Write([]byte(s))
}

// BeginArray appends an ARR header for the given child count. The
// caller must then encode exactly length children, in order.
func (e *Encoder) BeginArray(length int) { header.WriteArrHeader(e.buf, length) }

// BeginMap appends a MAP header for the given entry-pair count. The
// caller must then encode exactly 2*entries values (key, value,
// key, value, ...), in order.
func (e *Encoder) BeginMap(entries int) { header.WriteMapHeader(e.buf, entries) }

// BeginRecord writes either a REF to an already-registered layout
// matching names, or a fresh REC header. It returns needsNames=true
// when the caller must call Field(name) immediately before encoding
// each field's value (the layout is new this session); needsNames=false
// means the layout already existed and the caller should encode just
// len(names) values, in order, without calling Field.
func (e *Encoder) BeginRecord(names []string) (needsNames bool) {
	if idx, ok := e.table.FindLayout(names); ok {
		header.WriteRefHeader(e.buf, idx)
		return false
	}
	header.WriteRecHeader(e.buf, len(names))
	return true
}

// Field writes one field name's header (SYM if this is the first time
// the name is seen this session, REF otherwise), mirroring EmitSym. Call
// immediately before encoding the field's value, and only when the
// matching BeginRecord returned needsNames=true.
func (e *Encoder) Field(name string) { e.EmitSym(name) }

// EndRecord registers names as a layout entry, to be called after all
// of a new record's fields have been written. No-op (and safe to call
// unconditionally) when the matching BeginRecord returned
// needsNames=false, since the layout was already registered.
func (e *Encoder) EndRecord(names []string) {
	e.table.InternLayout(names)
}

// EncodeValue walks v and appends its wire encoding, recursively
// encoding any children. This is the self-describing path used by the
// top-level Encode/EncodeTo entry points.
func (e *Encoder) EncodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		e.EmitNull()
	case value.KindBool:
		e.EmitBool(v.AsBool())
	case value.KindF32:
		e.EmitF32(v.AsF32())
	case value.KindF64:
		e.EmitF64(v.AsF64())
	case value.KindInt:
		e.EmitInt(v.AsInt())
	case value.KindBytes:
		e.EmitBytes(v.AsBytes())
	case value.KindString:
		e.EmitStr(v.AsString())
	case value.KindSymbol:
		e.EmitSym(v.AsSymbol())
	case value.KindArray:
		items := v.AsArray()
		e.BeginArray(len(items))
		for _, item := range items {
			if err := e.EncodeValue(item); err != nil {
				return err
			}
		}
	case value.KindRecord:
		return e.encodeRecord(v.AsRecord())
	case value.KindMap:
		entries := v.AsMap()
		e.BeginMap(len(entries))
		for _, entry := range entries {
			if err := e.EncodeValue(entry.Key); err != nil {
				return err
			}
			if err := e.EncodeValue(entry.Value); err != nil {
				return err
			}
		}
	default:
		return errs.ErrUnexpectedWireKind
	}
	return nil
}

func (e *Encoder) encodeRecord(fields []value.Field) error {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	needsNames := e.BeginRecord(names)
	for _, f := range fields {
		if needsNames {
			e.Field(f.Name)
		}
		if err := e.EncodeValue(f.Value); err != nil {
			return err
		}
	}
	e.EndRecord(names)

	return nil
}
