package lz

import (
	"fmt"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/obf"
)

// OpParams bundles the circuit-derived parameters the LZ generator and
// evaluator share (spec.md §4.4): obf.Params plus the per-output constant
// degree bound CDMax, the per-symbol variable degree bound VDMax[k], the
// number of pre-published raising powers NPowers, and the chunker/rchunker
// bijections. Grounded on original_source/src/lz/obf_params.c's _op_new and
// obf_params_nzs/obf_params_new_toplevel.
type OpParams struct {
	obf.Params
	NPowers  int
	CDMax    int
	VDMax    []int
	Chunker  acirc.Chunker
	Rchunker acirc.Rchunker
}

// DeriveParams computes OpParams for circuit c with symbol length ell,
// alphabet mode sigma, and npowers pre-published raising powers per (k,s)
// slot and per Y slot (spec.md §4.4). npowers must be at least 1.
func DeriveParams(c *acirc.Circuit, ell int, sigma bool, npowers int) (OpParams, error) {
	if npowers <= 0 {
		return OpParams{}, fmt.Errorf("%w: lz: npowers must be positive, got %d", ErrMalformedInput, npowers)
	}
	base, err := obf.New(c.NInputs, c.NConsts(), c.NOutputs(), ell, sigma)
	if err != nil {
		return OpParams{}, fmt.Errorf("lz: %w", err)
	}
	chunker := acirc.InOrderChunker(ell)

	vdmax := make([]int, base.C)
	for k := 0; k < base.C; k++ {
		vdmax[k] = acirc.MaxVarDegree(c, k, chunker)
	}

	return OpParams{
		Params:   base,
		NPowers:  npowers,
		CDMax:    acirc.MaxConstDegree(c),
		VDMax:    vdmax,
		Chunker:  chunker,
		Rchunker: acirc.InOrderRchunker(ell),
	}, nil
}

// NSlots is the plaintext-ring width every LZ encoding carries: the
// "message" ring moduli[0] and the "blinding" ring moduli[1] (spec.md §4.2's
// "moduli[0] is the message ring... moduli[1] is the blinding ring").
func (p OpParams) NSlots() int { return 2 }

// Toplevel is the index set `{ Y=cdmax, S(k,s)=vdmax[k] for all k,s, Z(k)=1,
// W(k)=1 }` every authenticated output must be raised to, grounded on
// obf_params_new_toplevel.
func (p OpParams) Toplevel() *ix.Set {
	out := ix.New()
	out.Set(ix.SlotY(), uint64(p.CDMax))
	for k := 0; k < p.C; k++ {
		for s := 0; s < p.Q; s++ {
			out.Set(ix.SlotS(k, s), uint64(p.VDMax[k]))
		}
		out.Set(ix.SlotZ(k), 1)
		out.Set(ix.SlotW(k), 1)
	}
	return out
}

// ChatstarLevel is the index set `Chatstar[o]` is encoded at: the toplevel
// with every W(k) slot omitted, grounded on original_source/src/lz/obfuscator.c's
// _obfuscate (lines 378-392), which builds Chatstar's level from `{Y=cdmax,
// S(k,s)=vdmax[k], Z(k)=1}` alone. The W(k)=1 exponents are not part of
// Chatstar itself — they are contributed at evaluation time by the
// `∏_k what[k][sym][o]` factors (each living at W(k)=1), so that
// `Chatstar · ∏_k what` reaches the full Toplevel exactly once.
func (p OpParams) ChatstarLevel() *ix.Set {
	out := ix.New()
	out.Set(ix.SlotY(), uint64(p.CDMax))
	for k := 0; k < p.C; k++ {
		for s := 0; s < p.Q; s++ {
			out.Set(ix.SlotS(k, s), uint64(p.VDMax[k]))
		}
		out.Set(ix.SlotZ(k), 1)
	}
	return out
}
