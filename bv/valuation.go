package bv

import (
	"math/big"

	"github.com/anchorbv/bvsls/internal/moremath"
)

// Valuation tracks the feasible domain of one bit-vector-sorted variable as
// an SLS driver narrows it down: a wrap-around interval [lo,hi), a mask of
// bits whose value is pinned (fixed) together with what they are pinned to
// (bits), and the word currently assigned to the variable.
//
// lo == hi denotes the full domain rather than the empty one — there is no
// way to represent "no feasible values" in this scheme, matching the source
// invariant that a Valuation is always satisfiable by construction.
//
// Some callers commit tentative assignments directly into bits; others
// stage them in a separate eval workspace and only fold them into bits once
// a candidate has been accepted elsewhere (CommitEval). Which mode a
// Valuation uses is fixed at construction time.
type Valuation struct {
	bw uint32

	lo, hi *BitVec
	fixed  *BitVec
	bits   *BitVec

	hasEval bool
	eval    *BitVec
}

// NewValuation returns a Valuation of width bw with the full domain,
// nothing fixed, and bits zeroed. Candidate assignments are committed
// directly into Bits().
func NewValuation(bw uint32) *Valuation {
	return newValuation(bw, false)
}

// NewValuationWithEval is like NewValuation but stages candidate
// assignments in a separate Eval() workspace; call CommitEval to accept one.
func NewValuationWithEval(bw uint32) *Valuation {
	return newValuation(bw, true)
}

func newValuation(bw uint32, withEval bool) *Valuation {
	s := &Valuation{
		bw:      bw,
		lo:      NewBitVec(bw),
		hi:      NewBitVec(bw),
		fixed:   NewBitVec(bw),
		bits:    NewBitVec(bw),
		hasEval: withEval,
	}
	if withEval {
		s.eval = NewBitVec(bw)
	}
	return s
}

// BitWidth returns the width of the variable this Valuation tracks.
func (s *Valuation) BitWidth() uint32 { return s.bw }

// Lo returns the interval's inclusive lower bound. Callers may read it
// freely; mutate it only through AddRange/InitFixed.
func (s *Valuation) Lo() *BitVec { return s.lo }

// Hi returns the interval's exclusive upper bound.
func (s *Valuation) Hi() *BitVec { return s.hi }

// Fixed returns the mask of bits whose value is pinned. A driver may set
// bits here directly (paired with the matching bit in Bits()) once every
// AddRange call has been made, the way init_fixed's callers do; AddRange
// panics after any bit is pinned.
func (s *Valuation) Fixed() *BitVec { return s.fixed }

// Bits returns the currently committed assignment.
func (s *Valuation) Bits() *BitVec { return s.bits }

// Eval returns the staged candidate workspace. It panics if this Valuation
// was constructed without one.
func (s *Valuation) Eval() *BitVec {
	assertf(s.hasEval, "Eval called on a Valuation with no eval workspace")
	return s.eval
}

// InRange reports whether v falls in [lo,hi), accounting for the wrap case
// (lo >= hi) and the full-domain case (lo == hi).
func (s *Valuation) InRange(v *BitVec) bool {
	if Equal(s.lo, s.hi) {
		return true
	}
	if Less(s.lo, s.hi) {
		return LessEqual(s.lo, v) && Less(v, s.hi)
	}
	return LessEqual(s.lo, v) || Less(v, s.hi)
}

// AgreesOnFixed reports whether v matches bits on every bit fixed sets.
func (s *Valuation) AgreesOnFixed(v *BitVec) bool {
	for i := 0; i < int(s.bw); i++ {
		if s.fixed.GetBit(i) && v.GetBit(i) != s.bits.GetBit(i) {
			return false
		}
	}
	return true
}

// CanSet reports whether v is a legal assignment: in range and consistent
// with every fixed bit.
func (s *Valuation) CanSet(v *BitVec) bool {
	return s.InRange(v) && s.AgreesOnFixed(v)
}

// MinFeasible writes a lower bound on the feasible values to out: lo when
// lo < hi (the fixed mask is not consulted), otherwise fixed AND bits, the
// smallest value agreeing with every fixed bit (the interval is not
// consulted).
func (s *Valuation) MinFeasible(out *BitVec) {
	if Less(s.lo, s.hi) {
		out.CopyFrom(s.lo)
		return
	}
	And(out, s.fixed, s.bits)
}

// MaxFeasible writes an upper bound on the feasible values to out: hi-1
// when lo < hi (the fixed mask is not consulted), otherwise ^fixed OR bits,
// the largest value agreeing with every fixed bit (the interval is not
// consulted).
func (s *Valuation) MaxFeasible(out *BitVec) {
	if Less(s.lo, s.hi) {
		out.CopyFrom(s.hi)
		Sub1(out)
		return
	}
	notFixed := NewBitVec(s.bw)
	Not(notFixed, s.fixed)
	Or(out, notFixed, s.bits)
}

// pinBit fixes bit i to val, unless it is already fixed (in which case the
// existing pin wins and this is a no-op).
func (s *Valuation) pinBit(i int, val bool) {
	if s.fixed.GetBit(i) {
		return
	}
	s.fixed.SetBit(i, true)
	s.bits.SetBit(i, val)
}

// GetAtMost writes to dst the largest value that is <= src, in range, and
// consistent with every fixed bit, scanning bit positions from the most to
// the least significant. It reports false if no such value exists. When
// the scanned value falls outside the interval, RoundDown moves it to hi-1
// without re-checking the fixed mask.
//
// The scan tracks, alongside the value being built, the most recently
// scanned (least significant so far) position where a free bit could still
// be lowered from src's value (1 to 0) without yet having broken agreement
// with src above that position — the backtrack point. A straightforward word-level AND/OR-with-fixed
// formula handles the common case (the first disagreement with a fixed bit
// happens to already favor <=), but misses the case where src disagrees
// with a fixed bit that requires a 1 where src has a 0: there the only way
// to stay <= src is to back off to an earlier free 1-bit and clear it, so
// the backtrack point must be recorded as the scan goes.
func (s *Valuation) GetAtMost(src, dst *BitVec) bool {
	return s.snap(src, dst, true)
}

// GetAtLeast is the mirror of GetAtMost: the smallest value >= src, in
// range, and consistent with every fixed bit.
func (s *Valuation) GetAtLeast(src, dst *BitVec) bool {
	return s.snap(src, dst, false)
}

// snap implements the shared scan behind GetAtMost (atMost == true) and
// GetAtLeast (atMost == false). See GetAtMost's doc comment for the
// algorithm.
func (s *Valuation) snap(src, dst *BitVec, atMost bool) bool {
	bw := int(s.bw)
	tight := true // still equal to src above the current position
	backtrackPos := -1
	var backtrackVal bool

	for i := bw - 1; i >= 0; i-- {
		srcBit := src.GetBit(i)
		if s.fixed.GetBit(i) {
			fixedBit := s.bits.GetBit(i)
			dst.SetBit(i, fixedBit)
			if tight {
				if fixedBit == srcBit {
					continue
				}
				favorsDirection := (atMost && !fixedBit && srcBit) || (!atMost && fixedBit && !srcBit)
				if favorsDirection {
					// The forced bit already moves us away from src in the
					// direction we want (lower for at-most, higher for
					// at-least), so any value for the bits below already
					// satisfies the bound. The free bits below are set
					// maximally (at-most) or minimally (at-least).
					tight = false
					continue
				}
				// Forced away from src in the wrong direction: only a
				// backtrack to an earlier free bit can save this scan.
				if backtrackPos < 0 {
					return false
				}
				i = backtrackPos
				dst.SetBit(i, backtrackVal)
				tight = false
				backtrackPos = -1
				continue
			}
			continue
		}

		// Free bit.
		if !tight {
			// Below the tight prefix: at-most wants every free bit set (to
			// maximize), at-least wants every free bit clear (to minimize).
			dst.SetBit(i, atMost)
			continue
		}
		dst.SetBit(i, srcBit)
		if atMost && srcBit {
			// Recording this as a possible backtrack point: clearing it
			// gives a strictly smaller value while everything above stays
			// tight with src.
			backtrackPos = i
			backtrackVal = false
		} else if !atMost && !srcBit {
			backtrackPos = i
			backtrackVal = true
		}
	}

	if !s.InRange(dst) {
		if atMost {
			return s.RoundDown(dst)
		}
		return s.RoundUp(dst)
	}
	return true
}

// RoundUp nudges dst forward to the start of the interval if it falls
// before lo, and fails if it falls at or past hi in the linear case. In the
// wrap case it only ever clamps, and always succeeds.
func (s *Valuation) RoundUp(dst *BitVec) bool {
	if Less(s.lo, s.hi) {
		if !Less(dst, s.hi) {
			return false
		}
		if Less(dst, s.lo) {
			dst.CopyFrom(s.lo)
		}
		return true
	}
	if Equal(s.lo, s.hi) {
		return true
	}
	if LessEqual(s.hi, dst) && Less(dst, s.lo) {
		dst.CopyFrom(s.lo)
	}
	return true
}

// RoundDown nudges dst back to the last value before hi if it falls at or
// past hi, and fails if it falls before lo in the linear case. In the wrap
// case it only ever clamps, and always succeeds.
func (s *Valuation) RoundDown(dst *BitVec) bool {
	if Less(s.lo, s.hi) {
		if Less(dst, s.lo) {
			return false
		}
		if !Less(dst, s.hi) {
			dst.CopyFrom(s.hi)
			Sub1(dst)
		}
		return true
	}
	if Equal(s.lo, s.hi) {
		return true
	}
	if LessEqual(s.hi, dst) && Less(dst, s.lo) {
		dst.CopyFrom(s.hi)
		Sub1(dst)
	}
	return true
}

// RoundDownPred clears the free set bits of dst one at a time from most to
// least significant, until pred holds or every free bit has been tried.
// The clears accumulate: none is undone, so dst keeps them when pred is
// never satisfied. It reports whether pred was satisfied.
func (s *Valuation) RoundDownPred(dst *BitVec, pred func(*BitVec) bool) bool {
	if pred(dst) {
		return true
	}
	for i := int(s.bw) - 1; i >= 0; i-- {
		if s.fixed.GetBit(i) || !dst.GetBit(i) {
			continue
		}
		dst.SetBit(i, false)
		if pred(dst) {
			return true
		}
	}
	return false
}

// RoundUpPred sets the free clear bits of dst one at a time from least to
// most significant, until pred holds or every free bit has been tried. The
// sets accumulate: none is undone, so dst keeps them when pred is never
// satisfied. It reports whether pred was satisfied.
func (s *Valuation) RoundUpPred(dst *BitVec, pred func(*BitVec) bool) bool {
	if pred(dst) {
		return true
	}
	for i := 0; i < int(s.bw); i++ {
		if s.fixed.GetBit(i) || dst.GetBit(i) {
			continue
		}
		dst.SetBit(i, true)
		if pred(dst) {
			return true
		}
	}
	return false
}

// SetValue writes n mod 2^bw into dst.
func (s *Valuation) SetValue(dst *BitVec, n *big.Int) {
	assertf(dst.bw == s.bw, "bit-vector width mismatch: %d vs %d", dst.bw, s.bw)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(s.bw))
	reduced := new(big.Int).Mod(n, mod)
	for i := 0; i < int(s.bw); i++ {
		dst.SetBit(i, reduced.Bit(i) == 1)
	}
	dst.ClearOverflow()
}

// GetValue reconstructs v's value as an arbitrary-precision integer,
// summing word(i) * 2^(i*32).
func (s *Valuation) GetValue(v *BitVec) *big.Int {
	result := new(big.Int)
	word := new(big.Int)
	shifted := new(big.Int)
	for i := 0; i < v.nw; i++ {
		word.SetUint64(uint64(v.w.Word(i)))
		shifted.Lsh(word, uint(i*wordBits))
		result.Add(result, shifted)
	}
	return result
}

// ToNat reduces bits to a host-sized count, saturating at max rather than
// overflowing when bw is larger than 64 bits.
func (s *Valuation) ToNat(max uint64) uint64 {
	val := s.GetValue(s.bits)
	if !val.IsUint64() {
		return max
	}
	return moremath.SaturateUint64(val.Uint64(), max)
}

// ShiftRight writes bits shifted right by k into out: out[i] := bits[i+k]
// for i+k < bw, 0 otherwise.
func (s *Valuation) ShiftRight(out *BitVec, k uint32) {
	assertf(out.bw == s.bw, "bit-vector width mismatch: %d vs %d", out.bw, s.bw)
	for i := uint32(0); i < s.bw; i++ {
		if i+k < s.bw {
			out.SetBit(int(i), s.bits.GetBit(int(i+k)))
		} else {
			out.SetBit(int(i), false)
		}
	}
	out.ClearOverflow()
}

// CommitEval folds the staged eval workspace into bits. It panics if this
// Valuation has no eval workspace, or if eval disagrees with a fixed bit —
// callers are expected to only stage candidates CanSet already accepted.
func (s *Valuation) CommitEval() {
	assertf(s.hasEval, "CommitEval called on a Valuation with no eval workspace")
	assertf(s.AgreesOnFixed(s.eval), "eval disagrees with bits on a fixed bit")
	s.bits.CopyFrom(s.eval)
}

// commit writes v into whichever workspace this Valuation uses to hold an
// accepted candidate.
func (s *Valuation) commit(v *BitVec) {
	if s.hasEval {
		s.eval.CopyFrom(v)
	} else {
		s.bits.CopyFrom(v)
	}
}
