/*
Package bitset provides a fixed-capacity packed bitset backed by a slice of uint64 words.

The capacity requested at construction is rounded up to a whole number of words. The
checked accessors validate the word index against the number of allocated words, not the
requested bit count, so indices inside the trailing slack of the last word are accepted.
Iteration covers the full word-aligned capacity as well.
*/
package bitset

import (
	"math"
	"math/bits"
)

// WordBits is the number of flags stored in a single backing word.
const WordBits = 64

// BitSet represents a packed set of boolean flags.
type BitSet struct {
	bits []uint64
}

func words(size int) int {
	return (size + WordBits - 1) / WordBits
}

// AllZero creates a BitSet able to hold size bits, with every flag cleared.
func AllZero(size int) *BitSet {
	return &BitSet{
		bits: make([]uint64, words(size)),
	}
}

// AllOne creates a BitSet able to hold size bits, with every flag set,
// including the slack in the last word.
func AllOne(size int) *BitSet {
	bs := AllZero(size)
	for i := range bs.bits {
		bs.bits[i] = math.MaxUint64
	}
	return bs
}

// Words returns the number of backing words.
func (bs *BitSet) Words() int {
	return len(bs.bits)
}

// Capacity returns the word-aligned number of addressable flags.
func (bs *BitSet) Capacity() int {
	return len(bs.bits) * WordBits
}

func (bs *BitSet) inRange(pos int) bool {
	index := pos / WordBits
	return pos >= 0 && index < len(bs.bits)
}

// GetUnchecked returns the flag at pos. It panics if pos is outside the backing words.
func (bs *BitSet) GetUnchecked(pos int) bool {
	index, offset := pos/WordBits, pos%WordBits
	return bs.bits[index]>>offset&1 == 1
}

// SetUnchecked sets the flag at pos to 1.
func (bs *BitSet) SetUnchecked(pos int) {
	index, offset := pos/WordBits, pos%WordBits
	bs.bits[index] |= 1 << offset
}

// ResetUnchecked clears the flag at pos.
func (bs *BitSet) ResetUnchecked(pos int) {
	index, offset := pos/WordBits, pos%WordBits
	bs.bits[index] &^= 1 << offset
}

// SetValueUnchecked sets or clears the flag at pos depending on value.
func (bs *BitSet) SetValueUnchecked(pos int, value bool) {
	if value {
		bs.SetUnchecked(pos)
		return
	}
	bs.ResetUnchecked(pos)
}

// Get returns the flag at pos. The second result is false when pos is out of range.
func (bs *BitSet) Get(pos int) (bool, bool) {
	if !bs.inRange(pos) {
		return false, false
	}
	return bs.GetUnchecked(pos), true
}

// Set sets the flag at pos and reports whether pos was in range.
func (bs *BitSet) Set(pos int) bool {
	if !bs.inRange(pos) {
		return false
	}
	bs.SetUnchecked(pos)
	return true
}

// Reset clears the flag at pos and reports whether pos was in range.
func (bs *BitSet) Reset(pos int) bool {
	if !bs.inRange(pos) {
		return false
	}
	bs.ResetUnchecked(pos)
	return true
}

// SetValue sets the flag at pos to value and reports whether pos was in range.
func (bs *BitSet) SetValue(pos int, value bool) bool {
	if !bs.inRange(pos) {
		return false
	}
	bs.SetValueUnchecked(pos, value)
	return true
}

// Count returns the number of bits set to 1.
func (bs *BitSet) Count() int {
	count := 0
	for _, word := range bs.bits {
		count += bits.OnesCount64(word)
	}
	return count
}

// Iter returns a new iterator positioned before the first flag.
func (bs *BitSet) Iter() *Iterator {
	return &Iterator{bitset: bs, pos: -1}
}
