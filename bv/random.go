package bv

// RandSource supplies the raw entropy this package's sampling and repair
// operations consume. Implementations are never assumed to be
// cryptographically secure; tests typically inject a small deterministic
// sequence of words instead of a real PRNG, so a run can be replayed.
type RandSource interface {
	// NextWord returns the next pseudo-random 32-bit word.
	NextWord() uint32
}

// RandomBits XORs together 4 draws from r, each shifted up by one more byte
// than the last, the same spread used to fill a word from a byte-oriented
// generator without just taking the low bits of a single draw.
func RandomBits(r RandSource) uint32 {
	var v uint32
	for i := 0; i < wordBits/8; i++ {
		v ^= r.NextWord() << uint(8*i)
	}
	return v
}

// GetVariant writes a value to dst that agrees with every fixed bit and is
// otherwise random, ignoring the interval entirely.
func (s *Valuation) GetVariant(dst *BitVec, r RandSource) {
	for i := 0; i < dst.nw; i++ {
		word := RandomBits(r)
		fixedWord := s.fixed.w.Word(i)
		dst.w.SetWord(i, (word&^fixedWord)|(fixedWord&s.bits.w.Word(i)))
	}
	dst.ClearOverflow()
}

// randomizeBelowMsb ORs random bits into t's free positions and then clears
// every free bit at and above t's highest free set bit, producing a value
// strictly below the original t while leaving fixed bits untouched. If t has
// no free set bit (every set bit is pinned), no smaller value agrees with
// the fixed bits and t is left unchanged. SetRandomAtLeast dualizes this
// under complement (see randomAbove).
func (s *Valuation) randomizeBelowMsb(t *BitVec, r RandSource) {
	m := -1
	for i := int(s.bw) - 1; i >= 0; i-- {
		if t.GetBit(i) && !s.fixed.GetBit(i) {
			m = i
			break
		}
	}
	if m < 0 {
		return
	}
	for i := 0; i < t.nw; i++ {
		t.w.SetWord(i, t.w.Word(i)|(RandomBits(r)&^s.fixed.w.Word(i)))
	}
	t.ClearOverflow()
	for i := m; i < int(s.bw); i++ {
		if !s.fixed.GetBit(i) {
			t.SetBit(i, false)
		}
	}
}

// randomAbove produces a random value above tmp (whose fixed bits already
// agree with s.fixed/s.bits) by complementing, running the same
// below-the-msb construction, and complementing back.
func (s *Valuation) randomAbove(tmp *BitVec, r RandSource) {
	comp := NewBitVec(s.bw)
	Not(comp, tmp)
	s.randomizeBelowMsb(comp, r)
	Not(tmp, comp)
}

// SetRandomAtMost commits a value <= src: half the time (or whenever the
// snapped value is already zero) it commits GetAtMost(src) directly;
// otherwise it randomizes below that value and, if the result falls out of
// range, falls back to re-snapping and committing that instead.
func (s *Valuation) SetRandomAtMost(src, tmp *BitVec, r RandSource) bool {
	if !s.GetAtMost(src, tmp) {
		return false
	}
	if r.NextWord()&1 == 0 || isZero(tmp) {
		s.commit(tmp)
		return true
	}
	s.randomizeBelowMsb(tmp, r)
	if s.InRange(tmp) {
		s.commit(tmp)
		return true
	}
	if !s.GetAtMost(src, tmp) {
		return false
	}
	s.commit(tmp)
	return true
}

// SetRandomAtLeast is the mirror of SetRandomAtMost: a value >= src, with
// is_ones/randomAbove playing the role of is_zero/randomizeBelowMsb.
func (s *Valuation) SetRandomAtLeast(src, tmp *BitVec, r RandSource) bool {
	if !s.GetAtLeast(src, tmp) {
		return false
	}
	if r.NextWord()&1 == 0 || isOnes(tmp) {
		s.commit(tmp)
		return true
	}
	s.randomAbove(tmp, r)
	if s.InRange(tmp) {
		s.commit(tmp)
		return true
	}
	if !s.GetAtLeast(src, tmp) {
		return false
	}
	s.commit(tmp)
	return true
}

// SetRandomInRange samples a value in [loQ, hiQ] (intersected with this
// Valuation's own interval and fixed mask): it picks a starting snap toward
// loQ or toward hiQ with equal probability, then walks free bits back toward
// feasibility under a predicate that re-checks both bounds (not just the one
// the initial snap didn't already enforce — clearing or setting free bits
// during the walk can just as easily violate the bound the snap did
// establish), retrying the snap once on a miss.
func (s *Valuation) SetRandomInRange(loQ, hiQ, tmp *BitVec, r RandSource) bool {
	pred := func(t *BitVec) bool {
		return LessEqual(loQ, t) && LessEqual(t, hiQ) && s.InRange(t)
	}
	if r.NextWord()&1 == 0 {
		if !s.GetAtLeast(loQ, tmp) {
			return false
		}
		if !s.RoundDownPred(tmp, pred) {
			if !s.GetAtLeast(loQ, tmp) {
				return false
			}
			if !s.RoundDownPred(tmp, pred) {
				return false
			}
		}
	} else {
		if !s.GetAtMost(hiQ, tmp) {
			return false
		}
		if !s.RoundUpPred(tmp, pred) {
			if !s.GetAtMost(hiQ, tmp) {
				return false
			}
			if !s.RoundUpPred(tmp, pred) {
				return false
			}
		}
	}
	s.commit(tmp)
	return true
}

// SetRepair forces dst to agree with every fixed bit and then snaps it back
// into range, trying RoundDown first when tryDown is true (RoundUp
// otherwise) and falling back to the other direction if the first attempt
// fails. The repaired value is committed through the same eval/bits path as
// every other setter (CommitEval still required to fold an eval workspace
// into bits); when there is no eval workspace, the return value reports
// whether the commit actually changed bits.
func (s *Valuation) SetRepair(tryDown bool, dst *BitVec) bool {
	for i := 0; i < dst.nw; i++ {
		fixedWord := s.fixed.w.Word(i)
		dst.w.SetWord(i, (dst.w.Word(i)&^fixedWord)|(fixedWord&s.bits.w.Word(i)))
	}
	dst.ClearOverflow()

	if tryDown {
		if !s.RoundDown(dst) {
			s.RoundUp(dst)
		}
	} else {
		if !s.RoundUp(dst) {
			s.RoundDown(dst)
		}
	}

	if s.hasEval {
		s.eval.CopyFrom(dst)
		return true
	}
	changed := !Equal(s.bits, dst)
	s.bits.CopyFrom(dst)
	return changed
}
