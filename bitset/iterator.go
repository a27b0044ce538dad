package bitset

// Iterator walks the flags of a BitSet from index 0 through its word-aligned capacity.
type Iterator struct {
	bitset *BitSet
	pos    int
	value  bool
}

// Next advances the iterator. It returns false once every flag has been visited.
func (it *Iterator) Next() bool {
	if it.pos+1 >= it.bitset.Capacity() {
		it.pos = it.bitset.Capacity()
		return false
	}
	it.pos++
	it.value = it.bitset.GetUnchecked(it.pos)
	return true
}

// Index returns the position of the current flag.
func (it *Iterator) Index() int {
	return it.pos
}

// Value returns the current flag.
func (it *Iterator) Value() bool {
	return it.value
}

// Reset moves the iterator back before the first flag.
func (it *Iterator) Reset() {
	it.pos = -1
	it.value = false
}
