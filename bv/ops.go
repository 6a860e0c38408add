package bv

import "math/bits"

// And computes out := a & b.
func And(out, a, b *BitVec) {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	for i := 0; i < out.nw; i++ {
		out.w.SetWord(i, a.w.Word(i)&b.w.Word(i))
	}
}

// Or computes out := a | b.
func Or(out, a, b *BitVec) {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	for i := 0; i < out.nw; i++ {
		out.w.SetWord(i, a.w.Word(i)|b.w.Word(i))
	}
}

// Xor computes out := a ^ b.
func Xor(out, a, b *BitVec) {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	for i := 0; i < out.nw; i++ {
		out.w.SetWord(i, a.w.Word(i)^b.w.Word(i))
	}
}

// Not computes out := ^a, masked to a's width.
func Not(out, a *BitVec) {
	assertf(out.bw == a.bw, "bit-vector width mismatch")
	for i := 0; i < out.nw; i++ {
		out.w.SetWord(i, ^a.w.Word(i))
	}
	out.ClearOverflow()
}

// Add computes out := a + b mod 2^bw using ripple-carry word addition, and
// reports whether the true (unbounded) sum overflowed bw bits.
func Add(out, a, b *BitVec) bool {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	nw := a.nw
	var carry uint32
	for i := 0; i < nw; i++ {
		sum, c := bits.Add32(a.w.Word(i), b.w.Word(i), carry)
		out.w.SetWord(i, sum)
		carry = c
	}
	out.w.SetWord(nw, carry)
	overflow := out.w.Word(nw) != 0 || out.w.Word(nw-1)&^out.mask != 0
	out.ClearOverflow()
	return overflow
}

// Sub computes out := a - b mod 2^bw using ripple-borrow word subtraction,
// and reports whether the true (unbounded) difference underflowed.
func Sub(out, a, b *BitVec) bool {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	nw := a.nw
	var borrow uint32
	for i := 0; i < nw; i++ {
		diff, bw := bits.Sub32(a.w.Word(i), b.w.Word(i), borrow)
		out.w.SetWord(i, diff)
		borrow = bw
	}
	out.ClearOverflow()
	return borrow != 0
}

// Sub1 computes v := v - 1 mod 2^bw in place.
func Sub1(v *BitVec) {
	one := NewBitVec(v.bw)
	one.SetBit(0, true)
	Sub(v, v, one)
}

// Mul computes out := a * b mod 2^bw using schoolbook word multiplication,
// and reports whether the true (unbounded) product overflowed bw bits.
func Mul(out, a, b *BitVec) bool {
	assertf(out.bw == a.bw && a.bw == b.bw, "bit-vector width mismatch")
	nw := a.nw
	full := make([]uint32, 2*nw)
	for i := 0; i < nw; i++ {
		if a.w.Word(i) == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < nw; j++ {
			hi, lo := bits.Mul32(a.w.Word(i), b.w.Word(j))
			sum := uint64(lo) + uint64(full[i+j]) + carry
			full[i+j] = uint32(sum)
			carry = uint64(hi) + sum>>32
		}
		for k := i + nw; carry != 0; k++ {
			sum := uint64(full[k]) + carry
			full[k] = uint32(sum)
			carry = sum >> 32
		}
	}
	for i := 0; i < nw; i++ {
		out.w.SetWord(i, full[i])
	}
	overflow := out.w.Word(nw-1)&^out.mask != 0
	for i := nw; i < 2*nw; i++ {
		if full[i] != 0 {
			overflow = true
		}
	}
	out.ClearOverflow()
	return overflow
}

// Log2 returns floor(log2(word)) for a nonzero word, or -1 for zero.
func Log2(word uint32) int {
	if word == 0 {
		return -1
	}
	return 31 - bits.LeadingZeros32(word)
}

// Msb returns the bit position of the most significant set bit of v, or bw
// if v is zero.
func Msb(v *BitVec) uint32 {
	for i := int(v.bw) - 1; i >= 0; i-- {
		if v.GetBit(i) {
			return uint32(i)
		}
	}
	return v.bw
}

// IsPowerOfTwo reports whether v holds exactly one set bit.
func IsPowerOfTwo(v *BitVec) bool {
	count := 0
	for i := 0; i < v.nw; i++ {
		count += bits.OnesCount32(v.w.Word(i))
	}
	return count == 1
}
