package codec

import (
	"unicode/utf8"
	"unsafe"

	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/header"
	"github.com/yasammez/nachricht-go/symtab"
	"github.com/yasammez/nachricht-go/value"
)

// maxPrealloc bounds the initial capacity a decoder will reserve for a
// wire-supplied length, since that length is an untrusted input: a
// hostile buffer could claim an array of a billion elements in a
// handful of header bytes. Capacities beyond this grow on demand via
// append instead of being reserved up front.
const maxPrealloc = 4096

// Decoder reads nachricht wire bytes, maintaining the session's mirror
// of the symbol table as it resolves SYM, REC, and REF headers.
//
// A Decoder is not safe for concurrent use; each decode call should
// construct its own instance.
type Decoder struct {
	data  []byte
	table *symtab.Table
}

// NewDecoder creates a Decoder reading from data, with a fresh symbol
// table.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data, table: symtab.New()}
}

// Remaining returns the bytes not yet consumed.
func (d *Decoder) Remaining() []byte { return d.data }

func (d *Decoder) advance(n int) { d.data = d.data[n:] }

// PeekHeader decodes the next header without consuming it.
func (d *Decoder) PeekHeader() (header.Header, error) { return header.Decode(d.data) }

// ReadHeader decodes and consumes the next header.
func (d *Decoder) ReadHeader() (header.Header, error) {
	h, err := header.Decode(d.data)
	if err != nil {
		return header.Header{}, err
	}
	d.advance(h.Size)
	return h, nil
}

// ReadBytes returns the next length bytes, aliasing the Decoder's input
// slice (zero-copy).
func (d *Decoder) ReadBytes(length int) ([]byte, error) {
	if len(d.data) < length {
		return nil, errs.ErrUnexpectedEOF
	}
	b := d.data[:length]
	d.advance(length)
	return b, nil
}

// ReadBytesCopy is like ReadBytes but returns an owned copy, for
// callers whose lifetime can't borrow from the input buffer.
func (d *Decoder) ReadBytesCopy(length int) ([]byte, error) {
	b, err := d.ReadBytes(length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadStr returns the next length bytes as a string validated as UTF-8,
// aliasing the input slice via unsafe.String (zero-copy). The returned
// string is only valid for as long as the input buffer is alive and
// unmodified.
func (d *Decoder) ReadStr(length int) (string, error) {
	b, err := d.ReadBytes(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.ErrInvalidUTF8
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// ReadStrCopy is like ReadStr but returns an owned copy.
func (d *Decoder) ReadStrCopy(length int) (string, error) {
	b, err := d.ReadBytes(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.ErrInvalidUTF8
	}
	return string(b), nil
}

// ResolveRef looks up a REF's target entry, returning
// errs.ErrUnknownReference if idx is out of range.
func (d *Decoder) ResolveRef(idx int) (symtab.Entry, error) {
	entry, ok := d.table.Entry(idx)
	if !ok {
		return symtab.Entry{}, errs.ErrUnknownReference
	}
	return entry, nil
}

// ExpectArray reads an ARR header and returns its child count.
func (d *Decoder) ExpectArray() (int, error) {
	h, err := d.ReadHeader()
	if err != nil {
		return 0, err
	}
	if h.Code != header.ARR {
		return 0, errs.ErrUnexpectedWireKind
	}
	return int(h.U), nil
}

// ExpectMap reads a MAP header and returns its entry-pair count.
func (d *Decoder) ExpectMap() (int, error) {
	h, err := d.ReadHeader()
	if err != nil {
		return 0, err
	}
	if h.Code != header.MAP {
		return 0, errs.ErrUnexpectedWireKind
	}
	return int(h.U), nil
}

func prealloc(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}

// readFieldName reads one record field-name item: a SYM (registering a
// new atom) or a REF to an already-known atom.
func (d *Decoder) readFieldName() (string, error) {
	h, err := d.PeekHeader()
	if err != nil {
		return "", err
	}

	switch h.Code {
	case header.SYM:
		d.advance(h.Size)
		s, err := d.ReadStrCopy(int(h.U))
		if err != nil {
			return "", err
		}
		d.table.AppendAtom(s)
		return s, nil
	case header.REF:
		d.advance(h.Size)
		entry, err := d.ResolveRef(int(h.U))
		if err != nil {
			return "", err
		}
		if entry.Kind != symtab.KindAtom {
			return "", errs.ErrUnexpectedWireKind
		}
		return entry.Atom, nil
	default:
		return "", errs.ErrUnexpectedWireKind
	}
}

// DecodeValue decodes exactly one self-describing value from the front
// of the Decoder's remaining input, recursively decoding any children
// and updating the symbol table as new atoms and layouts are
// encountered.
func (d *Decoder) DecodeValue() (value.Value, error) {
	h, err := d.PeekHeader()
	if err != nil {
		return value.Value{}, err
	}
	d.advance(h.Size)

	switch h.Code {
	case header.BIN:
		return d.decodeBin(h)
	case header.INT:
		return value.IntValue(value.Int{Negative: h.Sign, Magnitude: h.U}), nil
	case header.STR:
		s, err := d.ReadStr(int(h.U))
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case header.SYM:
		s, err := d.ReadStrCopy(int(h.U))
		if err != nil {
			return value.Value{}, err
		}
		d.table.AppendAtom(s)
		return value.Symbol(s), nil
	case header.ARR:
		return d.decodeArray(int(h.U))
	case header.REC:
		return d.decodeRecord(int(h.U))
	case header.MAP:
		return d.decodeMap(int(h.U))
	case header.REF:
		return d.decodeRef(int(h.U))
	default:
		return value.Value{}, errs.ErrUnexpectedWireKind
	}
}

func (d *Decoder) decodeBin(h header.Header) (value.Value, error) {
	switch h.Bin {
	case header.BinNull:
		return value.Null(), nil
	case header.BinTrue:
		return value.Bool(true), nil
	case header.BinFalse:
		return value.Bool(false), nil
	case header.BinF32:
		return value.F32(h.F32), nil
	case header.BinF64:
		return value.F64(h.F64), nil
	case header.BinBytes:
		b, err := d.ReadBytes(int(h.U))
		if err != nil {
			return value.Value{}, err
		}
		return value.Bytes(b), nil
	default:
		return value.Value{}, errs.ErrUnexpectedWireKind
	}
}

func (d *Decoder) decodeArray(n int) (value.Value, error) {
	items := make([]value.Value, 0, prealloc(n))
	for i := 0; i < n; i++ {
		v, err := d.DecodeValue()
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.Array(items), nil
}

func (d *Decoder) decodeRecord(n int) (value.Value, error) {
	names := make([]string, 0, prealloc(n))
	fields := make([]value.Field, 0, prealloc(n))

	for i := 0; i < n; i++ {
		name, err := d.readFieldName()
		if err != nil {
			return value.Value{}, err
		}
		v, err := d.DecodeValue()
		if err != nil {
			return value.Value{}, err
		}
		names = append(names, name)
		fields = append(fields, value.Field{Name: name, Value: v})
	}

	d.table.InternLayout(names)

	return value.Record(fields), nil
}

func (d *Decoder) decodeMap(n int) (value.Value, error) {
	entries := make([]value.MapEntry, 0, prealloc(n))
	for i := 0; i < n; i++ {
		k, err := d.DecodeValue()
		if err != nil {
			return value.Value{}, err
		}
		v, err := d.DecodeValue()
		if err != nil {
			return value.Value{}, err
		}
		entries = append(entries, value.MapEntry{Key: k, Value: v})
	}
	return value.Map(entries), nil
}

func (d *Decoder) decodeRef(idx int) (value.Value, error) {
	entry, err := d.ResolveRef(idx)
	if err != nil {
		return value.Value{}, err
	}

	switch entry.Kind {
	case symtab.KindAtom:
		return value.Symbol(entry.Atom), nil
	case symtab.KindLayout:
		fields := make([]value.Field, 0, prealloc(len(entry.Layout)))
		for _, name := range entry.Layout {
			v, err := d.DecodeValue()
			if err != nil {
				return value.Value{}, err
			}
			fields = append(fields, value.Field{Name: name, Value: v})
		}
		return value.Record(fields), nil
	default:
		return value.Value{}, errs.ErrUnexpectedWireKind
	}
}
