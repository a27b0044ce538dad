/*
Package primes provides a persistent table of small primes and factorization over it.

A Table holds every prime below the limit it was sieved with, in ascending order. It is built
once per run by TryNew, which loads a cache file or regenerates it with a sieve when the file is
missing or holds fewer primes than requested. Factorize reports a number's factorization keyed by
prime index rather than prime value.

# Cache File Format

The cache file holds a single CBOR map with integer keys:
  - 1: version (currently 1)
  - 2: payload encoding (1 = plain, 2 = delta), see package encoders
  - 3: number of primes in the payload
  - 4: payload bytes

The record may be wrapped in a zstd frame. Readers detect the frame magic number, so
compressed and uncompressed caches are both accepted regardless of the writer's setting.
The layout is an implementation detail and only guaranteed to round trip with the same version.
*/
package primes
