package bitpack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchorbv/bvsls/internal/bitpack"
)

func TestWordArrayBasic(t *testing.T) {
	a := bitpack.NewWordArray(3)
	require.Equal(t, 3, a.Len())
	for i := 0; i < 3; i++ {
		require.Equal(t, uint32(0), a.Word(i))
	}

	a.SetWord(1, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), a.Word(1))
	require.Equal(t, uint32(0), a.Word(0))
}

func TestWordArrayResizeGrowPreservesPrefix(t *testing.T) {
	a := bitpack.NewWordArray(2)
	a.SetWord(0, 1)
	a.SetWord(1, 2)

	a.Resize(4)
	require.Equal(t, 4, a.Len())
	require.Equal(t, uint32(1), a.Word(0))
	require.Equal(t, uint32(2), a.Word(1))
	require.Equal(t, uint32(0), a.Word(2))
	require.Equal(t, uint32(0), a.Word(3))
}

func TestWordArrayResizeShrinkThenGrowZeroes(t *testing.T) {
	a := bitpack.NewWordArray(4)
	a.SetWord(3, 0xFF)

	a.Resize(1)
	require.Equal(t, 1, a.Len())

	a.Resize(4)
	// The word that used to hold 0xFF must come back zeroed, not stale.
	require.Equal(t, uint32(0), a.Word(3))
}

func TestWordArrayClear(t *testing.T) {
	a := bitpack.NewWordArray(2)
	a.SetWord(0, 7)
	a.SetWord(1, 9)
	a.Clear()
	require.Equal(t, uint32(0), a.Word(0))
	require.Equal(t, uint32(0), a.Word(1))
}

func TestWordArrayCopyFrom(t *testing.T) {
	a := bitpack.NewWordArray(2)
	b := bitpack.NewWordArray(2)
	b.SetWord(0, 5)
	b.SetWord(1, 6)

	a.CopyFrom(b)
	require.Equal(t, uint32(5), a.Word(0))
	require.Equal(t, uint32(6), a.Word(1))
}
