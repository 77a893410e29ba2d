package lin

import (
	"fmt"

	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
)

// Enc is the LIN scheme's encoding wrapper (spec.md §4.1): a pair of an
// ix.Level (the named position this ciphertext was encoded at) and the
// opaque mmap.Ciphertext itself. Mul always succeeds and adds levels; Add
// and Sub are only ever called by the wire algebra in evaluate.go once it
// has raised one side by Zstar^δ so both operands land on the same level,
// per spec.md §3's "only two encodings at the same level may be added or
// subtracted" invariant.
type Enc struct {
	Level *ix.Level
	CT    mmap.Ciphertext
}

// mulEnc multiplies two encodings, adding their levels.
func mulEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Mul(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lin: mul: %w", err)
	}
	return Enc{Level: ix.AddLevel(x.Level, y.Level), CT: ct}, nil
}

// addEnc adds two encodings that the caller has already raised to a common
// level (via zstarPower, where needed). The wire algebra in evaluate.go
// computes x's level so that it equals y's by construction before calling
// this, mirroring original_source's bare encoding_add, which trusts its
// caller the same way rather than re-deriving the expected level; x's level
// is kept as the result's.
func addEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Add(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lin: add: %w", err)
	}
	return Enc{Level: x.Level, CT: ct}, nil
}

// subEnc subtracts two encodings, under the same already-equalized-level
// contract as addEnc.
func subEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Sub(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lin: sub: %w", err)
	}
	return Enc{Level: x.Level, CT: ct}, nil
}

// zstarPower computes Zstar^d for d >= 1 by the same linear
// repeated-multiplication the original scheme uses (spec.md §4.3: "Zstar^δ
// is computed on demand by repeated squaring/multiplication; when δ=1 the
// global Zstar is used directly").
func zstarPower(pp mmap.PublicParams, zstar Enc, d uint64) (Enc, error) {
	if d == 1 {
		return zstar, nil
	}
	pow, err := mulEnc(pp, zstar, zstar)
	if err != nil {
		return Enc{}, err
	}
	for j := uint64(2); j < d; j++ {
		pow, err = mulEnc(pp, pow, zstar)
		if err != nil {
			return Enc{}, err
		}
	}
	return pow, nil
}
