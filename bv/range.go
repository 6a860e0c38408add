package bv

import "math/big"

// AddRange intersects the current interval with [l mod 2^bw, h mod 2^bw).
// l == h (mod 2^bw) denotes the full domain and leaves the interval alone.
//
// Only the linear sub-case (old lo < old hi) tightens both bounds
// symmetrically. In the wrap sub-case (old lo >= old hi) this mirrors the
// source's own asymmetry: lo tightens whenever the new lower bound falls
// outside the excluded middle [old hi, old lo), but hi only tightens when
// the new upper bound falls strictly between old lo and old hi — a
// deliberately approximate, sound-but-incomplete narrowing that can leave
// the interval wider than the true intersection in some wrap
// configurations. This is preserved rather than "fixed": see DESIGN.md for
// why, and for which reading of the linear sub-case's hi-tightening clause
// this implementation follows.
//
// Must be called before any bit is pinned via InitFixed/Fixed.
func (s *Valuation) AddRange(l, h *big.Int) {
	assertf(s.fixedIsFree(), "AddRange called after fixed bits were pinned")

	lb := NewBitVec(s.bw)
	s.SetValue(lb, l)
	hb := NewBitVec(s.bw)
	s.SetValue(hb, h)

	if Equal(lb, hb) {
		return
	}

	if Equal(s.lo, s.hi) {
		s.lo.CopyFrom(lb)
		s.hi.CopyFrom(hb)
	} else {
		oldLo := NewBitVec(s.bw)
		oldLo.CopyFrom(s.lo)
		oldHi := NewBitVec(s.bw)
		oldHi.CopyFrom(s.hi)

		if Less(oldLo, oldHi) {
			if Less(oldLo, lb) && Less(lb, oldHi) {
				s.lo.CopyFrom(lb)
			}
			if Less(oldLo, hb) && Less(hb, oldHi) {
				s.hi.CopyFrom(hb)
			}
		} else {
			if !(LessEqual(oldHi, lb) && Less(lb, oldLo)) {
				s.lo.CopyFrom(lb)
			}
			if Less(oldLo, hb) && Less(hb, oldHi) {
				s.hi.CopyFrom(hb)
			}
		}
	}

	if !s.InRange(s.bits) {
		s.bits.CopyFrom(s.lo)
	}
	if s.hasEval && !s.InRange(s.eval) {
		s.eval.CopyFrom(s.lo)
	}
}

func (s *Valuation) fixedIsFree() bool {
	return isZero(s.fixed)
}

// InitFixed cross-propagates between the interval and the fixed mask:
//
//  1. tighten lo against fixed, so lo itself already agrees with every
//     pinned bit at and above the most significant disagreement;
//  2. tighten hi the same way, operating on hi-1 (hi is exclusive);
//  3. in the linear case, pin whatever the interval itself forces: hi's
//     leading zero bits must be zero in any feasible value, the bit below
//     hi's sole set bit (if hi is a power of two) must be zero, and if the
//     interval admits exactly one value (hi == lo+1) every bit is pinned to
//     that value.
func (s *Valuation) InitFixed() {
	s.tightenBoundAgainstFixed(s.lo)

	hi1 := NewBitVec(s.bw)
	hi1.CopyFrom(s.hi)
	Sub1(hi1)
	s.tightenBoundAgainstFixed(hi1)
	one := NewBitVec(s.bw)
	one.SetBit(0, true)
	Add(s.hi, hi1, one)

	if !Less(s.lo, s.hi) {
		return
	}

	i := int(s.bw) - 1
	for i >= 0 && !s.hi.GetBit(i) {
		s.pinBit(i, false)
		i--
	}

	if IsPowerOfTwo(s.hi) {
		top := int(Msb(s.hi))
		if top > 0 {
			s.pinBit(top-1, false)
		}
	}

	lp1 := NewBitVec(s.bw)
	lp1.CopyFrom(s.lo)
	Add(lp1, lp1, one)
	if Equal(lp1, s.hi) {
		for j := 0; j < int(s.bw); j++ {
			s.pinBit(j, s.lo.GetBit(j))
		}
	}
}

// tightenBoundAgainstFixed walks bound from most to least significant bit,
// skipping bits fixed doesn't pin, and stops at the first pinned bit that
// disagrees with bound: if the pinned value is higher, bound's bit is
// raised and everything below is reset to whatever fixed forces (0
// elsewhere); if the pinned value is lower, bound has already drifted above
// what fixed permits and the whole value is reset to fixed's forced bits.
func (s *Valuation) tightenBoundAgainstFixed(bound *BitVec) {
	for i := int(s.bw) - 1; i >= 0; i-- {
		if !s.fixed.GetBit(i) {
			continue
		}
		forced := s.bits.GetBit(i)
		cur := bound.GetBit(i)
		if forced == cur {
			continue
		}
		if forced && !cur {
			bound.SetBit(i, true)
			for j := i - 1; j >= 0; j-- {
				bound.SetBit(j, s.fixed.GetBit(j) && s.bits.GetBit(j))
			}
		} else {
			for j := int(s.bw) - 1; j >= 0; j-- {
				bound.SetBit(j, s.fixed.GetBit(j) && s.bits.GetBit(j))
			}
		}
		return
	}
}
