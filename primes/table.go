package primes

import (
	"slices"
)

// Factor is a prime power in a factorization, keyed by the prime's position in the table.
type Factor struct {
	Index    int
	Exponent uint64
}

// Table is an ascending, duplicate free list of primes.
type Table struct {
	primes []uint64
}

// NewTable wraps an ascending list of primes. The slice is not copied.
func NewTable(primes []uint64) *Table {
	return &Table{primes: primes}
}

// Extent returns the number of primes held.
func (t *Table) Extent() int {
	return len(t.primes)
}

// Prime returns the prime at index i.
func (t *Table) Prime(i int) uint64 {
	return t.primes[i]
}

// Primes returns the underlying list. Callers must not modify it.
func (t *Table) Primes() []uint64 {
	return t.primes
}

// Search looks value up by binary search and returns its index.
func (t *Table) Search(value uint64) (int, bool) {
	return slices.BinarySearch(t.primes, value)
}

// Factorize computes the prime factorization of num by trial division over the table.
// The result is ordered by ascending prime index. 0 and 1 have an empty factorization.
// If the cofactor left after trial division is not a prime in the table, an
// *InsufficientBoundError is returned.
func (t *Table) Factorize(num uint64) ([]Factor, error) {
	factors := make([]Factor, 0)

	for i, p := range t.primes {
		// p*p <= num without overflowing
		if p > num/p {
			break
		}
		var exponent uint64
		for num%p == 0 {
			num /= p
			exponent++
		}
		if exponent != 0 {
			factors = append(factors, Factor{Index: i, Exponent: exponent})
		}
	}

	if num > 1 {
		index, found := t.Search(num)
		if !found {
			return nil, &InsufficientBoundError{Num: num}
		}
		factors = append(factors, Factor{Index: index, Exponent: 1})
	}

	return factors, nil
}
