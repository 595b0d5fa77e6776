package header

import (
	"math"

	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/internal/pool"
)

// BinKind discriminates the sub-type carried by a BIN lead byte.
type BinKind uint8

const (
	BinNull BinKind = iota
	BinTrue
	BinFalse
	BinF32
	BinF64
	BinBytes
)

// Header is the fully decoded form of a wire value's one-to-nine-byte
// prefix. Which fields are meaningful depends on Code (and, for BIN, on
// Bin):
//
//   - BIN/BinNull, BinTrue, BinFalse: no further fields.
//   - BIN/BinF32: F32 holds the value; no separate payload follows.
//   - BIN/BinF64: F64 holds the value; no separate payload follows.
//   - BIN/BinBytes: U holds the byte length; that many payload bytes follow.
//   - INT: Sign and U (magnitude) together encode the i65 value; no
//     separate payload follows.
//   - STR, SYM: U holds the byte length; that many payload bytes follow.
//   - ARR: U holds the child count.
//   - REC: U holds the field count.
//   - MAP: U holds the entry (key+value pair) count.
//   - REF: U holds the symbol-table index.
type Header struct {
	Code Code
	Bin  BinKind
	Sign bool
	U    uint64
	F32  float32
	F64  float64
	// Size is the number of bytes this header itself occupied (lead byte
	// plus any trailing length/value bytes), not counting any payload
	// that follows (string bytes, array children, ...).
	Size int
}

// Decode reads one header from the front of data.
func Decode(data []byte) (Header, error) {
	if len(data) == 0 {
		return Header{}, errs.ErrUnexpectedEOF
	}

	lead := data[0]
	code := Code(lead >> 5)
	sz := lead & 0x1F

	switch code {
	case BIN:
		return decodeBin(data, sz)
	case INT:
		return decodeInt(data, sz)
	default:
		payload, n, err := readSzPayload(data[1:], sz)
		if err != nil {
			return Header{}, err
		}
		return Header{Code: code, U: payload, Size: 1 + n}, nil
	}
}

func decodeBin(data []byte, sz byte) (Header, error) {
	switch {
	case sz == binNull:
		return Header{Code: BIN, Bin: BinNull, Size: 1}, nil
	case sz == binTrue:
		return Header{Code: BIN, Bin: BinTrue, Size: 1}, nil
	case sz == binFalse:
		return Header{Code: BIN, Bin: BinFalse, Size: 1}, nil
	case sz == 3:
		if len(data) < 5 {
			return Header{}, errs.ErrUnexpectedEOF
		}
		bits := beUint32(data[1:5])
		return Header{Code: BIN, Bin: BinF32, F32: math.Float32frombits(bits), Size: 5}, nil
	case sz == 4:
		if len(data) < 9 {
			return Header{}, errs.ErrUnexpectedEOF
		}
		bits := beUint64(data[1:9])
		return Header{Code: BIN, Bin: BinF64, F64: math.Float64frombits(bits), Size: 9}, nil
	case sz >= binBytesBase && sz <= 23:
		return Header{Code: BIN, Bin: BinBytes, U: uint64(sz - binBytesBase), Size: 1}, nil
	default: // sz in [24,31]
		length, n, err := readTrailing(data[1:], int(sz-23))
		if err != nil {
			return Header{}, err
		}
		return Header{Code: BIN, Bin: BinBytes, U: length, Size: 1 + n}, nil
	}
}

func decodeInt(data []byte, sz byte) (Header, error) {
	sign := sz&0x10 != 0
	szPrime := sz & 0x0F

	if szPrime <= 7 {
		return Header{Code: INT, Sign: sign, U: uint64(szPrime), Size: 1}, nil
	}

	trailingCount := int(szPrime - 7)
	magnitude, n, err := readTrailing(data[1:], trailingCount)
	if err != nil {
		return Header{}, err
	}

	return Header{Code: INT, Sign: sign, U: magnitude, Size: 1 + n}, nil
}

// readSzPayload resolves sz (for STR/SYM/ARR/REC/MAP/REF) into its
// payload value and the number of trailing bytes consumed from rest.
func readSzPayload(rest []byte, sz byte) (uint64, int, error) {
	if sz <= 23 {
		return uint64(sz), 0, nil
	}
	return readTrailing(rest, int(sz-23))
}

// readTrailing reads n big-endian bytes from the front of data.
func readTrailing(data []byte, n int) (uint64, int, error) {
	if len(data) < n {
		return 0, 0, errs.ErrUnexpectedEOF
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(data[i])
	}
	return v, n, nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// minTrailingBytes returns the minimum number of big-endian bytes, in
// {1,2,3,4,5,6,7,8}, needed to represent v. Encoders use this to pick
// the shortest valid header (testable property: header minimality).
func minTrailingBytes(v uint64) int {
	n := 1
	for v >>= 8; v != 0; v >>= 8 {
		n++
	}
	return n
}

func writeTrailing(buf *pool.Buffer, v uint64, n int) {
	start := len(buf.B)
	buf.Grow(n)
	buf.B = buf.B[:start+n]
	for i := n - 1; i >= 0; i-- {
		buf.B[start+i] = byte(v)
		v >>= 8
	}
}

// writeSzHeader writes a lead byte (and, if needed, trailing length
// bytes) for STR, SYM, ARR, REC, MAP, or REF, using the minimal
// encoding for value.
func writeSzHeader(buf *pool.Buffer, code Code, value uint64) {
	if value <= 23 {
		buf.Grow(1)
		buf.B = append(buf.B, byte(code)<<5|byte(value))
		return
	}

	n := minTrailingBytes(value)
	buf.Grow(1)
	buf.B = append(buf.B, byte(code)<<5|byte(23+n))
	writeTrailing(buf, value, n)
}

// WriteNull appends the one-byte Null header (0x00).
func WriteNull(buf *pool.Buffer) {
	buf.Grow(1)
	buf.B = append(buf.B, byte(BIN)<<5|binNull)
}

// WriteBool appends the one-byte Bool header.
func WriteBool(buf *pool.Buffer, v bool) {
	sz := byte(binFalse)
	if v {
		sz = binTrue
	}
	buf.Grow(1)
	buf.B = append(buf.B, byte(BIN)<<5|sz)
}

// WriteF32 appends the five-byte F32 header (lead byte + 4 value bytes).
func WriteF32(buf *pool.Buffer, v float32) {
	buf.Grow(5)
	buf.B = append(buf.B, byte(BIN)<<5|3)
	bits := math.Float32bits(v)
	buf.B = append(buf.B, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// WriteF64 appends the nine-byte F64 header (lead byte + 8 value bytes).
func WriteF64(buf *pool.Buffer, v float64) {
	buf.Grow(9)
	buf.B = append(buf.B, byte(BIN)<<5|4)
	bits := math.Float64bits(v)
	for shift := 56; shift >= 0; shift -= 8 {
		buf.B = append(buf.B, byte(bits>>uint(shift)))
	}
}

// WriteBytesHeader appends a BIN/Bytes header for a payload of the
// given length; the payload bytes themselves are not written here.
func WriteBytesHeader(buf *pool.Buffer, length int) {
	v := uint64(length)
	if v <= 18 { // sz in [5,23] => length sz-5 in [0,18]
		buf.Grow(1)
		buf.B = append(buf.B, byte(BIN)<<5|byte(binBytesBase+v))
		return
	}

	n := minTrailingBytes(v)
	buf.Grow(1)
	buf.B = append(buf.B, byte(BIN)<<5|byte(23+n))
	writeTrailing(buf, v, n)
}

// WriteInt appends an INT header encoding sign and magnitude:
// value = magnitude if !sign, else -(magnitude+1).
func WriteInt(buf *pool.Buffer, sign bool, magnitude uint64) {
	var signBit byte
	if sign {
		signBit = 0x10
	}

	if magnitude <= 7 {
		buf.Grow(1)
		buf.B = append(buf.B, byte(INT)<<5|signBit|byte(magnitude))
		return
	}

	n := minTrailingBytes(magnitude)
	buf.Grow(1)
	buf.B = append(buf.B, byte(INT)<<5|signBit|byte(7+n))
	writeTrailing(buf, magnitude, n)
}

// WriteStrHeader appends a STR header for a payload of the given length.
func WriteStrHeader(buf *pool.Buffer, length int) { writeSzHeader(buf, STR, uint64(length)) }

// WriteSymHeader appends a SYM header for a payload of the given length.
func WriteSymHeader(buf *pool.Buffer, length int) { writeSzHeader(buf, SYM, uint64(length)) }

// WriteArrHeader appends an ARR header for the given child count.
func WriteArrHeader(buf *pool.Buffer, length int) { writeSzHeader(buf, ARR, uint64(length)) }

// WriteRecHeader appends a REC header for the given field count.
func WriteRecHeader(buf *pool.Buffer, fields int) { writeSzHeader(buf, REC, uint64(fields)) }

// WriteMapHeader appends a MAP header for the given entry-pair count.
func WriteMapHeader(buf *pool.Buffer, entries int) { writeSzHeader(buf, MAP, uint64(entries)) }

// WriteRefHeader appends a REF header for the given symbol-table index.
func WriteRefHeader(buf *pool.Buffer, index int) { writeSzHeader(buf, REF, uint64(index)) }
