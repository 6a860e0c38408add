// Package bitpack provides the mutable word-array storage used by the bv
// package's multi-word bit-vectors.
//
// This is similar in spirit to a flat []uint32, but centralizes the
// resize-on-width-change logic so bv.BitVec itself only deals with word
// indices, not slice growth.
package bitpack

// WordArray is a growable array of 32-bit words. The zero value is an empty
// array ready to use.
//
// Index 0 is the least significant word. Callers that need more words than
// Len reports must call Resize first; WordArray never grows implicitly on
// Set.
type WordArray struct {
	words []uint32
}

// NewWordArray returns a WordArray with n words, all zero.
func NewWordArray(n int) *WordArray {
	a := &WordArray{}
	a.Resize(n)
	return a
}

// Len returns the number of words currently held.
func (a *WordArray) Len() int {
	return len(a.words)
}

// Word returns the word at index i.
func (a *WordArray) Word(i int) uint32 {
	return a.words[i]
}

// SetWord stores v at index i.
func (a *WordArray) SetWord(i int, v uint32) {
	a.words[i] = v
}

// Resize grows or shrinks the array to exactly n words. Growing zeroes the
// new words; shrinking discards the trailing ones. The underlying capacity
// is reused when it is large enough, so repeatedly resizing to a previously
// held length does not allocate.
func (a *WordArray) Resize(n int) {
	switch {
	case n <= cap(a.words):
		old := len(a.words)
		a.words = a.words[:n]
		for i := old; i < n; i++ {
			a.words[i] = 0
		}
	default:
		grown := make([]uint32, n)
		copy(grown, a.words)
		a.words = grown
	}
}

// Clear zeroes every word without changing the length.
func (a *WordArray) Clear() {
	for i := range a.words {
		a.words[i] = 0
	}
}

// CopyFrom overwrites a's words with b's. a must already have the same
// length as b.
func (a *WordArray) CopyFrom(b *WordArray) {
	copy(a.words, b.words)
}
