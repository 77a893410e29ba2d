package mmap

import (
	"crypto/rand"
	"io"
	"math/big"
)

// cryptoPrime draws a random bits-wide prime using rng as the only source of
// randomness, per spec.md §4.2's "randomness must be drawn from the supplied
// PRNG only".
func cryptoPrime(rng io.Reader, bits int) (*big.Int, error) {
	return rand.Prime(rng, bits)
}
