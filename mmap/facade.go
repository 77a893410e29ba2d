// Package mmap defines a uniform façade over graded-encoding (multilinear
// map) backends, per spec.md §4.1: key generation, plaintext-field query,
// encode, the ring operations add/sub/mul, is_zero, and degree. The mmap
// primitive's own security and parameter tuning are out of scope (spec.md
// §1); this package only fixes the interface every backend — including the
// required dummy backend used for deterministic testing — must implement.
package mmap

import (
	"io"
	"math/big"
)

// KeyGenParams bundles the arguments to GenerateKeys.
type KeyGenParams struct {
	// Lambda is the security parameter (ignored by the dummy backend).
	Lambda int
	// Kappa is the multilinearity degree the backend must support.
	Kappa int
	// NZs is the number of named index-set slots ("zs") the backend tracks.
	NZs int
	// Pows lists, for each zs, the maximum power that may ever be asserted
	// at that slot (used by backends that must pre-publish raising powers).
	Pows []int
	// NSlots is the number of parallel plaintext-ring residues (nslots >= 2
	// per spec.md §3's invariant).
	NSlots int
	// NCores bounds backend-internal parallelism during key generation.
	NCores int
}

// Ciphertext is an opaque mmap-encoded value. Its only externally visible
// properties are its realized multilinearity Degree and (via Backend
// methods) whether it zero-tests.
type Ciphertext interface {
	Degree() uint
}

// SecretParams is the keyholder-only half of a keypair: it can read the
// plaintext ring structure and encode new ciphertexts.
type SecretParams interface {
	// PlaintextFields returns the nslots moduli the plaintext ring is built
	// from.
	PlaintextFields() []*big.Int
	// Encode embeds elems (one residue per plaintext field) at the index-set
	// position described by pows (one exponent per zs slot).
	Encode(elems []*big.Int, pows []int) (Ciphertext, error)
}

// PublicParams is the half of a keypair usable by an evaluator holding only
// ciphertexts: ring operations and zero-testing.
type PublicParams interface {
	Add(x, y Ciphertext) (Ciphertext, error)
	Sub(x, y Ciphertext) (Ciphertext, error)
	Mul(x, y Ciphertext) (Ciphertext, error)
	// IsZero reports whether x encodes the all-zero plaintext vector. A
	// non-nil error means the backend could not determine an answer; per
	// spec.md §7 (ZeroTestFailure) the caller treats that as "output = 1".
	IsZero(x Ciphertext) (bool, error)
}

// Backend generates a fresh (secret, public) keypair, drawing any randomness
// it needs from rng (spec.md §4.2: randomness is drawn from the supplied
// PRNG only — never from an ambient global source).
type Backend interface {
	GenerateKeys(p KeyGenParams, rng io.Reader) (SecretParams, PublicParams, error)
}
