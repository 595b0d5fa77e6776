package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternAtomDedup(t *testing.T) {
	tbl := New()

	idx1, created1 := tbl.InternAtom("name")
	assert.Equal(t, 0, idx1)
	assert.True(t, created1)

	idx2, created2 := tbl.InternAtom("name")
	assert.Equal(t, 0, idx2)
	assert.False(t, created2)

	idx3, created3 := tbl.InternAtom("species")
	assert.Equal(t, 1, idx3)
	assert.True(t, created3)

	assert.Equal(t, 2, tbl.Len())
}

func TestInternLayoutDedupAndOrderSensitive(t *testing.T) {
	tbl := New()
	tbl.InternAtom("name")
	tbl.InternAtom("species")

	idx1, created1 := tbl.InternLayout([]string{"name", "species"})
	assert.True(t, created1)

	idx2, created2 := tbl.InternLayout([]string{"name", "species"})
	assert.Equal(t, idx1, idx2)
	assert.False(t, created2)

	// Same names, different order => different layout.
	idx3, created3 := tbl.InternLayout([]string{"species", "name"})
	assert.True(t, created3)
	assert.NotEqual(t, idx1, idx3)
}

func TestEntryKindDiscrimination(t *testing.T) {
	tbl := New()
	tbl.InternAtom("name")
	tbl.InternAtom("species")
	layoutIdx, _ := tbl.InternLayout([]string{"name", "species"})

	atomEntry, ok := tbl.Entry(0)
	require.True(t, ok)
	assert.Equal(t, KindAtom, atomEntry.Kind)

	layoutEntry, ok := tbl.Entry(layoutIdx)
	require.True(t, ok)
	assert.Equal(t, KindLayout, layoutEntry.Kind)
	assert.Equal(t, []string{"name", "species"}, layoutEntry.Layout)
}

func TestEntryOutOfRange(t *testing.T) {
	tbl := New()
	_, ok := tbl.Entry(0)
	assert.False(t, ok)
}

func TestDecoderMirrorAppendOnly(t *testing.T) {
	tbl := New()
	a := tbl.AppendAtom("x")
	b := tbl.AppendAtom("y")
	l := tbl.AppendLayout([]string{"x", "y"})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 2, l)
	assert.Equal(t, 3, tbl.Len())
}

func TestFindLayoutDistinguishesTuplesWithSameConcatenation(t *testing.T) {
	tbl := New()
	tbl.InternAtom("a")
	tbl.InternAtom("b")
	tbl.InternAtom("ab")
	tbl.InternAtom("c")
	tbl.InternAtom("bc")

	i1, _ := tbl.InternLayout([]string{"a", "b"})
	i2, _ := tbl.InternLayout([]string{"ab"})
	assert.NotEqual(t, i1, i2)

	found1, ok1 := tbl.FindLayout([]string{"a", "b"})
	require.True(t, ok1)
	assert.Equal(t, i1, found1)

	found2, ok2 := tbl.FindLayout([]string{"ab"})
	require.True(t, ok2)
	assert.Equal(t, i2, found2)
}
