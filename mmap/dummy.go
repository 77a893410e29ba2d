package mmap

import (
	"fmt"
	"io"
	"math/big"
)

// Dummy is the trivial mmap backend required by spec.md §4.1 ("the façade
// must admit a dummy backend that trivially computes in the product of
// rings, no hiding"). It performs plaintext-ring arithmetic directly, in the
// clear; encodings carry no masking at all. It exists only so the encoding
// scheme above it (ix, lin, lz) can be tested deterministically without a
// real graded-encoding implementation, per spec.md §1's "out of scope: the
// mmap primitive itself".
type Dummy struct{}

type dummySecret struct {
	moduli []*big.Int
}

type dummyPublic struct {
	moduli []*big.Int
}

// dummyCiphertext is a vector of residues, one per plaintext field, plus the
// realized multilinearity degree: 1 for a fresh encoding, summed by Mul and
// maxed by Add/Sub.
type dummyCiphertext struct {
	vals   []*big.Int
	degree uint
}

func (c *dummyCiphertext) Degree() uint { return c.degree }

// GenerateKeys draws nslots distinct plaintext-field moduli from rng. The
// dummy backend ignores Lambda, Kappa, NZs, and Pows: it tracks no index-set
// structure of its own (that bookkeeping belongs to the ix/lin/lz encoding
// wrappers built on top of it, per spec.md §4.1).
func (Dummy) GenerateKeys(p KeyGenParams, rng io.Reader) (SecretParams, PublicParams, error) {
	if p.NSlots < 2 {
		return nil, nil, fmt.Errorf("mmap: dummy backend requires nslots >= 2, got %d", p.NSlots)
	}
	moduli := make([]*big.Int, p.NSlots)
	for i := range moduli {
		prime, err := cryptoPrime(rng, 61)
		if err != nil {
			return nil, nil, fmt.Errorf("mmap: dummy keygen: %w", err)
		}
		moduli[i] = prime
	}
	return &dummySecret{moduli: moduli}, &dummyPublic{moduli: moduli}, nil
}

func (s *dummySecret) PlaintextFields() []*big.Int { return s.moduli }

// Encode reduces elems modulo each plaintext field. pows is accepted only to
// satisfy the Backend interface; the dummy backend does not itself enforce
// index-set structure (callers — ix.Set/ix.Level-typed encoding wrappers —
// are responsible for only combining ciphertexts whose index sets permit it,
// per spec.md §3's "mul adds index sets; add/sub require identical index
// sets" invariant).
func (s *dummySecret) Encode(elems []*big.Int, pows []int) (Ciphertext, error) {
	_ = pows
	if len(elems) != len(s.moduli) {
		return nil, fmt.Errorf("mmap: dummy encode: expected %d residues, got %d", len(s.moduli), len(elems))
	}
	vals := make([]*big.Int, len(elems))
	for i, e := range elems {
		vals[i] = new(big.Int).Mod(e, s.moduli[i])
	}
	return &dummyCiphertext{vals: vals, degree: 1}, nil
}

func (p *dummyPublic) asDummy(x Ciphertext) (*dummyCiphertext, error) {
	xc, ok := x.(*dummyCiphertext)
	if !ok {
		return nil, fmt.Errorf("mmap: dummy backend received foreign ciphertext type %T", x)
	}
	if len(xc.vals) != len(p.moduli) {
		return nil, fmt.Errorf("mmap: dummy backend: ciphertext width %d does not match %d plaintext fields", len(xc.vals), len(p.moduli))
	}
	return xc, nil
}

func (p *dummyPublic) combine(x, y Ciphertext, op func(z, a, b *big.Int)) (*dummyCiphertext, error) {
	xc, err := p.asDummy(x)
	if err != nil {
		return nil, err
	}
	yc, err := p.asDummy(y)
	if err != nil {
		return nil, err
	}
	vals := make([]*big.Int, len(xc.vals))
	for i := range vals {
		vals[i] = new(big.Int)
		op(vals[i], xc.vals[i], yc.vals[i])
		vals[i].Mod(vals[i], p.moduli[i])
	}
	return &dummyCiphertext{vals: vals}, nil
}

func (p *dummyPublic) Add(x, y Ciphertext) (Ciphertext, error) {
	c, err := p.combine(x, y, func(z, a, b *big.Int) { z.Add(a, b) })
	if err != nil {
		return nil, fmt.Errorf("mmap: dummy add: %w", err)
	}
	c.degree = maxDegree(x.Degree(), y.Degree())
	return c, nil
}

func (p *dummyPublic) Sub(x, y Ciphertext) (Ciphertext, error) {
	c, err := p.combine(x, y, func(z, a, b *big.Int) { z.Sub(a, b) })
	if err != nil {
		return nil, fmt.Errorf("mmap: dummy sub: %w", err)
	}
	c.degree = maxDegree(x.Degree(), y.Degree())
	return c, nil
}

func (p *dummyPublic) Mul(x, y Ciphertext) (Ciphertext, error) {
	c, err := p.combine(x, y, func(z, a, b *big.Int) { z.Mul(a, b) })
	if err != nil {
		return nil, fmt.Errorf("mmap: dummy mul: %w", err)
	}
	c.degree = x.Degree() + y.Degree()
	return c, nil
}

func (p *dummyPublic) IsZero(x Ciphertext) (bool, error) {
	xc, err := p.asDummy(x)
	if err != nil {
		return false, fmt.Errorf("mmap: dummy is_zero: %w", err)
	}
	for _, v := range xc.vals {
		if v.Sign() != 0 {
			return false, nil
		}
	}
	return true, nil
}

func maxDegree(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}
