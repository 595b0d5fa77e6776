// Package symtab implements the append-only symbol table shared by the
// encoder and decoder: an ordered list of entries, each either an atom
// (a UTF-8 string) or a layout (an ordered list of field names of a
// previously emitted record). A REF is resolved by inspecting the kind
// of the entry it points at — this package is where that kind lives.
//
// The encoder uses Table to deduplicate: InternAtom and InternLayout
// return the existing index when the content was already seen, so the
// encoder can emit a REF instead of repeating the bytes. The decoder
// uses the same Table purely as a mirror, adding entries in the exact
// order it encounters new atoms and records (AppendAtom for each SYM,
// InternLayout after each REC, so that a layout the encoder registered
// only once is also held only once) and consulting Entry(i) to resolve
// a REF.
package symtab

import "github.com/cespare/xxhash/v2"

// Kind discriminates a symbol-table entry.
type Kind uint8

const (
	KindAtom Kind = iota
	KindLayout
)

// Entry is one symbol-table slot.
type Entry struct {
	Kind   Kind
	Atom   string   // meaningful when Kind == KindAtom
	Layout []string // meaningful when Kind == KindLayout, field names in declaration order
}

// Table is the append-only, per-session symbol table. The zero value is
// not usable; construct with New.
type Table struct {
	entries []Entry

	// atomIndex supports the encoder's O(1) "have I seen this atom"
	// check. The decoder never populates it (it never needs to look an
	// atom up — it only ever appends).
	atomIndex map[string]int

	// layoutIndex maps a hash of the ordered field-name tuple to the
	// indices of layout entries that hash to it, so the encoder can find
	// a matching layout in O(1) expected time instead of scanning every
	// previously registered layout. Collisions (different tuples, same
	// hash) are resolved by comparing the full tuple of each candidate,
	// mirroring a hash-bucket-with-candidates design.
	layoutIndex map[uint64][]int
}

// New creates an empty symbol table for one encode or decode session.
func New() *Table {
	return &Table{
		atomIndex:   make(map[string]int),
		layoutIndex: make(map[uint64][]int),
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the entry at index i, or ok=false if i is out of range
// (the caller's signal to return errs.ErrUnknownReference).
func (t *Table) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// LookupAtom returns the index of an already-interned atom.
func (t *Table) LookupAtom(s string) (int, bool) {
	idx, ok := t.atomIndex[s]
	return idx, ok
}

// InternAtom returns the index of s, appending it as a new atom entry
// if it hasn't been seen in this session. created reports whether a new
// entry was appended (the encoder emits SYM for created atoms and REF
// for rediscovered ones).
func (t *Table) InternAtom(s string) (idx int, created bool) {
	if idx, ok := t.atomIndex[s]; ok {
		return idx, false
	}
	idx = len(t.entries)
	t.entries = append(t.entries, Entry{Kind: KindAtom, Atom: s})
	t.atomIndex[s] = idx
	return idx, true
}

// AppendAtom unconditionally appends an atom entry, used by the decoder
// when it encounters a SYM header for a string it hasn't assigned an
// index to yet. Mirrors InternAtom's side effect without the lookup,
// since the decoder never needs to search for a duplicate: it assigns
// indices purely in the order bytes arrive.
func (t *Table) AppendAtom(s string) int {
	idx := len(t.entries)
	t.entries = append(t.entries, Entry{Kind: KindAtom, Atom: s})
	return idx
}

// FindLayout returns the index of a previously registered layout whose
// ordered field names exactly match names, or ok=false.
func (t *Table) FindLayout(names []string) (int, bool) {
	key := hashNames(names)
	for _, candidate := range t.layoutIndex[key] {
		if sameNames(t.entries[candidate].Layout, names) {
			return candidate, true
		}
	}
	return 0, false
}

// InternLayout returns the index of a layout matching names, appending
// a new layout entry if none matches. It does not insert the
// constituent atoms — callers must InternAtom each field name before
// calling InternLayout, in the order names are first seen.
func (t *Table) InternLayout(names []string) (idx int, created bool) {
	if idx, ok := t.FindLayout(names); ok {
		return idx, false
	}

	idx = len(t.entries)
	owned := append([]string(nil), names...)
	t.entries = append(t.entries, Entry{Kind: KindLayout, Layout: owned})

	key := hashNames(names)
	t.layoutIndex[key] = append(t.layoutIndex[key], idx)

	return idx, true
}

// AppendLayout unconditionally appends a layout entry, without checking
// for an existing layout with the same names.
func (t *Table) AppendLayout(names []string) int {
	idx := len(t.entries)
	owned := append([]string(nil), names...)
	t.entries = append(t.entries, Entry{Kind: KindLayout, Layout: owned})
	return idx
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hashNames computes a digest of the ordered field-name tuple for use
// as a layoutIndex bucket key. It is not required to be collision-free
// (FindLayout still compares full tuples on a bucket hit) — only fast
// and well-distributed.
func hashNames(names []string) uint64 {
	d := xxhash.New()
	for _, n := range names {
		_, _ = d.WriteString(n)
		_, _ = d.Write([]byte{0}) // separator so ["ab","c"] != ["a","bc"]
	}
	return d.Sum64()
}
