package primes

import "fmt"

// CacheIOError reports a filesystem failure while opening, reading or writing the cache.
// A missing cache file is not an error; it triggers regeneration.
type CacheIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("primes cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CacheIOError) Unwrap() error {
	return e.Err
}

// CacheFormatError reports cache contents that cannot be decoded into a prime list, or a
// prime list that cannot be encoded for the cache.
type CacheFormatError struct {
	Path string
	Err  error
}

func (e *CacheFormatError) Error() string {
	return fmt.Sprintf("malformed primes cache %s: %v", e.Path, e.Err)
}

func (e *CacheFormatError) Unwrap() error {
	return e.Err
}

// InsufficientBoundError reports a cofactor larger than every prime in the table.
type InsufficientBoundError struct {
	Num uint64
}

func (e *InsufficientBoundError) Error() string {
	return fmt.Sprintf("%d is not in the primes list. Try again with a larger bound", e.Num)
}
