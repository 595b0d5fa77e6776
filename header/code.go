// Package header implements the one-to-nine-byte lead-byte encoding
// shared by every nachricht wire value: a 3-bit code, a 5-bit sz, and
// zero or more big-endian trailing bytes.
package header

// Code is the 3-bit discriminator occupying the top bits of a lead byte.
type Code uint8

const (
	// BIN carries Null, Bool, F32, F64, and short-or-long Bytes payloads,
	// disambiguated by sz (see decodeBin and the Write* helpers in
	// header.go).
	BIN Code = 0
	// INT carries a signed 65-bit integer; sz's MSB is the sign bit.
	INT Code = 1
	// STR carries a UTF-8 string, length in bytes.
	STR Code = 2
	// SYM carries a UTF-8 symbol, length in bytes.
	SYM Code = 3
	// ARR carries an array, length in child values.
	ARR Code = 4
	// REC carries a record, length in fields.
	REC Code = 5
	// MAP carries a map, length in key+value entry pairs.
	MAP Code = 6
	// REF carries a symbol-table index.
	REF Code = 7
)

func (c Code) String() string {
	switch c {
	case BIN:
		return "BIN"
	case INT:
		return "INT"
	case STR:
		return "STR"
	case SYM:
		return "SYM"
	case ARR:
		return "ARR"
	case REC:
		return "REC"
	case MAP:
		return "MAP"
	case REF:
		return "REF"
	default:
		return "unknown"
	}
}

// Sub-codes of BIN, held in sz when Code == BIN.
const (
	binNull      = 0
	binTrue      = 1
	binFalse     = 2
	binF32       = 3
	binF64       = 4
	binBytesBase = 5 // sz in [5,23] => Bytes of length sz-5
)
