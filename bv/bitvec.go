// Package bv implements the fixed-width bit-vector container and the
// feasible-domain valuation used by a stochastic local search driver for
// bit-vector constraints.
//
// A BitVec is a sequence of bw bits packed into 32-bit words, word 0 being
// least significant. A Valuation tracks, for one bit-vector-sorted
// variable, the set of values still consistent with what the driver has
// learned about it: a wrap-around interval, a mask of bits whose value is
// pinned, and the word currently assigned to the variable.
package bv

import (
	"fmt"
	"strconv"

	"github.com/anchorbv/bvsls/internal/bitpack"
)

// wordBits is the width of the words BitVec packs bits into.
const wordBits = 32

func wordsFor(bw uint32) int {
	return int((bw + wordBits - 1) / wordBits)
}

func maskFor(bw uint32) uint32 {
	m := bw % wordBits
	if m == 0 {
		return ^uint32(0)
	}
	return (uint32(1) << m) - 1
}

// BitVec is a mutable, fixed-width unsigned bit-vector.
//
// Its backing store holds one extra word beyond what bw requires so that
// word-level addition (see Add in ops.go) always has somewhere to carry
// into without the caller preallocating scratch space.
type BitVec struct {
	bw   uint32
	nw   int
	mask uint32
	w    *bitpack.WordArray
}

// NewBitVec returns a zero-valued bit-vector of width bw.
func NewBitVec(bw uint32) *BitVec {
	v := &BitVec{}
	v.SetWidth(bw)
	return v
}

// SetWidth reinitializes v to width bw, zeroed. Existing backing capacity is
// reused when possible.
func (v *BitVec) SetWidth(bw uint32) {
	assertf(bw >= 1, "bit width must be >= 1, got %d", bw)
	v.bw = bw
	v.nw = wordsFor(bw)
	v.mask = maskFor(bw)
	if v.w == nil {
		v.w = bitpack.NewWordArray(v.nw + 1)
	} else {
		v.w.Resize(v.nw + 1)
	}
	v.w.Clear()
}

// BitWidth returns the number of semantic bits.
func (v *BitVec) BitWidth() uint32 { return v.bw }

// NumWords returns the number of words holding semantic bits (excludes the
// carry scratch word).
func (v *BitVec) NumWords() int { return v.nw }

// Word returns word i (0 is least significant).
func (v *BitVec) Word(i int) uint32 {
	assertf(i >= 0 && i < v.nw, "word index %d out of range [0,%d)", i, v.nw)
	return v.w.Word(i)
}

// SetWord overwrites word i.
func (v *BitVec) SetWord(i int, x uint32) {
	assertf(i >= 0 && i < v.nw, "word index %d out of range [0,%d)", i, v.nw)
	v.w.SetWord(i, x)
}

// GetBit returns bit i (0 is least significant).
func (v *BitVec) GetBit(i int) bool {
	assertf(i >= 0 && uint32(i) < v.bw, "bit index %d out of range [0,%d)", i, v.bw)
	return v.w.Word(i/wordBits)&(1<<uint(i%wordBits)) != 0
}

// SetBit sets or clears bit i.
func (v *BitVec) SetBit(i int, b bool) {
	assertf(i >= 0 && uint32(i) < v.bw, "bit index %d out of range [0,%d)", i, v.bw)
	wi := i / wordBits
	mask := uint32(1) << uint(i%wordBits)
	if b {
		v.w.SetWord(wi, v.w.Word(wi)|mask)
	} else {
		v.w.SetWord(wi, v.w.Word(wi)&^mask)
	}
}

// ClearOverflow masks off any bits set above bw in the top word. Not, Add,
// Sub and Mul call it before returning so their results never carry stray
// high bits a word-aligned operation (negate, Add carry) might have
// produced. SetWord stores the word as given and does not clear them.
func (v *BitVec) ClearOverflow() {
	v.w.SetWord(v.nw-1, v.w.Word(v.nw-1)&v.mask)
}

// HasOverflow reports whether the top word currently holds bits above bw.
// It exists for callers that want to detect a missed ClearOverflow call;
// normal use never needs it.
func (v *BitVec) HasOverflow() bool {
	return v.w.Word(v.nw-1)&^v.mask != 0
}

// CopyFrom overwrites v's bits with src's. Both must have the same width.
func (v *BitVec) CopyFrom(src *BitVec) {
	assertf(v.bw == src.bw, "bit-vector width mismatch: %d vs %d", v.bw, src.bw)
	v.w.CopyFrom(src.w)
}

// Equal reports whether a and b hold the same value. Widths must match.
func Equal(a, b *BitVec) bool {
	assertf(a.bw == b.bw, "bit-vector width mismatch: %d vs %d", a.bw, b.bw)
	for i := 0; i < a.nw; i++ {
		if a.w.Word(i) != b.w.Word(i) {
			return false
		}
	}
	return true
}

// Less reports whether a < b as unsigned integers. Widths must match.
func Less(a, b *BitVec) bool {
	assertf(a.bw == b.bw, "bit-vector width mismatch: %d vs %d", a.bw, b.bw)
	for i := a.nw - 1; i >= 0; i-- {
		if a.w.Word(i) != b.w.Word(i) {
			return a.w.Word(i) < b.w.Word(i)
		}
	}
	return false
}

// LessEqual reports whether a <= b as unsigned integers.
func LessEqual(a, b *BitVec) bool {
	return !Less(b, a)
}

func isZero(v *BitVec) bool {
	for i := 0; i < v.nw; i++ {
		if v.w.Word(i) != 0 {
			return false
		}
	}
	return true
}

func isOnes(v *BitVec) bool {
	for i := 0; i < v.nw-1; i++ {
		if v.w.Word(i) != ^uint32(0) {
			return false
		}
	}
	return v.w.Word(v.nw-1) == v.mask
}

// String renders v as a minimal-width hex literal, e.g. "2a" for a 7-bit
// bit-vector holding 42. A zero-valued bit-vector renders as "0".
func (v *BitVec) String() string {
	top := v.nw - 1
	for top > 0 && v.w.Word(top) == 0 {
		top--
	}
	if top == 0 && v.w.Word(0) == 0 {
		return "0"
	}
	s := strconv.FormatUint(uint64(v.w.Word(top)), 16)
	for i := top - 1; i >= 0; i-- {
		s += fmt.Sprintf("%08x", v.w.Word(i))
	}
	return s
}
