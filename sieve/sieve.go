/*
Package sieve provides an implementation of the Sieve of Eratosthenes
algorithm on top of a packed bitset, together with a helper that sizes
the sieve so that it yields at least a requested number of primes.
*/
package sieve

import (
	"math"

	"primetree/bitset"

	"github.com/rs/zerolog/log"
)

// minLimit is used for counts where n(ln n + ln ln n) is undefined or too small.
// Every integer below it yields the first six primes.
const minLimit = 14

/*
AllLessThan computes all prime numbers strictly below limit using the
Sieve of Eratosthenes algorithm. The result is in ascending order.
*/
func AllLessThan(limit uint64) []uint64 {
	if limit < 2 {
		return []uint64{}
	}

	mask := bitset.AllOne(int(limit))
	mask.ResetUnchecked(0)
	mask.ResetUnchecked(1)

	root := uint64(math.Ceil(math.Sqrt(float64(limit))))
	for i := uint64(2); i < root; i++ {
		if mask.GetUnchecked(int(i)) {
			for j := i * i; j < limit; j += i {
				mask.ResetUnchecked(int(j))
			}
		}
	}

	result := make([]uint64, 0, estimateCount(limit))
	it := mask.Iter()
	for it.Next() {
		if uint64(it.Index()) >= limit {
			break
		}
		if it.Value() {
			result = append(result, uint64(it.Index()))
		}
	}

	return result
}

/*
ApproxToNth sieves up to the upper bound n(ln n + ln ln n) of the n-th prime,
so the result holds at least n primes.
*/
func ApproxToNth(n uint64) []uint64 {
	limit := Limit(n)
	log.Debug().Uint64("n", n).Uint64("limit", limit).Msg("sieving primes")
	return AllLessThan(limit)
}

// Limit returns the sieve limit used by ApproxToNth for n.
func Limit(n uint64) uint64 {
	if n < 6 {
		return minLimit
	}
	nf := float64(n)
	limit := uint64(nf * (math.Log(nf) + math.Log(math.Log(nf))))
	if limit < minLimit {
		return minLimit
	}
	return limit
}

// estimateCount gives a rough capacity hint from the prime counting function x/ln x.
func estimateCount(limit uint64) int {
	if limit < minLimit {
		return 6
	}
	x := float64(limit)
	return int(x/math.Log(x)*1.2) + 1
}
