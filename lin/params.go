package lin

import (
	"fmt"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/obf"
)

// OpParams bundles the circuit-derived parameters the LIN generator and
// evaluator share (spec.md §4.4): obf.Params plus the D scalar
// (acirc_max_const_degree, used to scale the Zstar-column in Rbaro/Zbaro's
// level) and the chunker/rchunker bijections.
type OpParams struct {
	obf.Params
	D        uint64
	Chunker  acirc.Chunker
	Rchunker acirc.Rchunker
}

// DeriveParams computes OpParams for circuit c with symbol length ell and
// alphabet mode sigma (spec.md §4.4).
func DeriveParams(c *acirc.Circuit, ell int, sigma bool) (OpParams, error) {
	base, err := obf.New(c.NInputs, c.NConsts(), c.NOutputs(), ell, sigma)
	if err != nil {
		return OpParams{}, fmt.Errorf("lin: %w", err)
	}
	return OpParams{
		Params:   base,
		D:        uint64(acirc.MaxConstDegree(c)),
		Chunker:  acirc.InOrderChunker(ell),
		Rchunker: acirc.InOrderRchunker(ell),
	}, nil
}

// NSlots is the plaintext-ring width every LIN encoding vector carries:
// c+3 residues (spec.md §4.2's "(1,1,r2,…,r_{c+2})" has c+3 components).
func (p OpParams) NSlots() int { return p.C + 3 }
