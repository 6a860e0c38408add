package bv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchorbv/bvsls/bv"
)

func TestBitVecGetSetBit(t *testing.T) {
	v := bv.NewBitVec(8)
	require.False(t, v.GetBit(3))
	v.SetBit(3, true)
	require.True(t, v.GetBit(3))
	v.SetBit(3, false)
	require.False(t, v.GetBit(3))
}

func TestBitVecWordSpansWordBoundary(t *testing.T) {
	v := bv.NewBitVec(33)
	require.Equal(t, 2, v.NumWords())
	v.SetBit(32, true)
	require.Equal(t, uint32(0), v.Word(0))
	require.Equal(t, uint32(1), v.Word(1))
}

func TestBitVecEqualAndLess(t *testing.T) {
	a := bv.NewBitVec(8)
	b := bv.NewBitVec(8)
	require.True(t, bv.Equal(a, b))
	a.SetBit(0, true)
	require.False(t, bv.Equal(a, b))
	require.True(t, bv.Less(b, a))
	require.False(t, bv.Less(a, b))
	require.True(t, bv.LessEqual(a, a))
}

func TestBitVecClearAndHasOverflow(t *testing.T) {
	v := bv.NewBitVec(4)
	v.SetWord(0, 0xFF)
	require.True(t, v.HasOverflow())
	v.ClearOverflow()
	require.False(t, v.HasOverflow())
	require.Equal(t, uint32(0x0F), v.Word(0))
}

func TestBitVecCopyFrom(t *testing.T) {
	a := bv.NewBitVec(8)
	a.SetWord(0, 0x42)
	b := bv.NewBitVec(8)
	b.CopyFrom(a)
	require.True(t, bv.Equal(a, b))
	a.SetWord(0, 0x99)
	require.Equal(t, uint32(0x42), b.Word(0))
}

func TestBitVecString(t *testing.T) {
	zero := bv.NewBitVec(8)
	require.Equal(t, "0", zero.String())

	v := bv.NewBitVec(8)
	v.SetWord(0, 0x2a)
	require.Equal(t, "2a", v.String())

	wide := bv.NewBitVec(40)
	wide.SetWord(0, 0x000000ff)
	wide.SetWord(1, 0x01)
	require.Equal(t, "1000000ff", wide.String())
}

func TestBitVecSetWidthReinitializes(t *testing.T) {
	v := bv.NewBitVec(8)
	v.SetBit(0, true)
	v.SetWidth(16)
	require.Equal(t, uint32(16), v.BitWidth())
	require.False(t, v.GetBit(0))
}
