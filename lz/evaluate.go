package lz

import (
	"fmt"
	"sync/atomic"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/dag"
	"github.com/dendisuhubdy/circ-obfuscation/telemetry"
)

// EvalResult is one Evaluate call's per-circuit outcome.
type EvalResult struct {
	Outputs    []int    // 0/1 per circuit output: 1 iff the authenticated encoding was zero
	Degrees    []uint64 // the realized multilinearity degree reported per output
	MaxNPowers int      // the largest raising power index used across the whole evaluation, +1
}

// Evaluate runs the obfuscated circuit on inputs, mirroring eval_worker and
// _evaluate: every ref (not just leaves) is scheduled via the dag package;
// once dag.Run returns, each output ref in turn gets the lhs/rhs
// toplevel-consistency check and zero test.
func Evaluate(obf *Obfuscation, c *acirc.Circuit, inputs []int, nthreads int, sink telemetry.Sink) (EvalResult, error) {
	if sink == nil {
		sink = telemetry.Discard{}
	}
	op := obf.Op

	syms := make([]int, op.C)
	for k := 0; k < op.C; k++ {
		s, ok := acirc.Symbol(inputs, k, op.Ell, op.Rchunker, op.Sigma)
		if !ok {
			return EvalResult{}, fmt.Errorf("%w: lz evaluate: symbol %d is not well-formed", ErrMalformedInput, k)
		}
		syms[k] = s
	}

	var maxPowers atomic.Int32

	deps := func(ref int) []int {
		g := c.Gates[ref]
		switch g.Op {
		case acirc.OpInput, acirc.OpConst:
			return nil
		case acirc.OpSet:
			return []int{g.In0}
		default:
			return []int{g.In0, g.In1}
		}
	}

	compute := func(ref int, in []Enc) (Enc, error) {
		g := c.Gates[ref]
		switch g.Op {
		case acirc.OpInput:
			k, j := op.Chunker(g.In0)
			return obf.Shat[k][syms[k]][j], nil
		case acirc.OpConst:
			return obf.Yhat[g.In0], nil
		case acirc.OpSet:
			return in[0], nil
		case acirc.OpMul:
			return mulEnc(obf.PP, in[0], in[1])
		case acirc.OpAdd, acirc.OpSub:
			x, y := in[0], in[1]
			if !x.Set.Equal(y.Set) {
				var err error
				if x, y, err = raiseEncodings(obf.PP, obf, x, y, &maxPowers); err != nil {
					return Enc{}, err
				}
			}
			if g.Op == acirc.OpAdd {
				return addEnc(obf.PP, x, y)
			}
			return subEnc(obf.PP, x, y)
		default:
			return Enc{}, fmt.Errorf("%w: lz evaluate: unknown gate op %v", ErrMalformedInput, g.Op)
		}
	}

	cache, err := dag.Run[Enc](len(c.Gates), deps, compute, nthreads)
	if err != nil {
		return EvalResult{}, fmt.Errorf("%w: lz evaluate: %v", ErrRingOp, err)
	}

	toplevel := op.Toplevel()
	out := EvalResult{
		Outputs: make([]int, len(c.Outputs)),
		Degrees: make([]uint64, len(c.Outputs)),
	}
	for o, ref := range c.Outputs {
		lhs := cache[ref]
		for k := 0; k < op.C; k++ {
			var err error
			if lhs, err = mulEnc(obf.PP, lhs, obf.Zhat[k][syms[k]][o]); err != nil {
				return EvalResult{}, fmt.Errorf("%w: lz evaluate: input consistency: %v", ErrRingOp, err)
			}
		}
		if lhs, err = raiseEncoding(obf.PP, obf, lhs, toplevel, &maxPowers); err != nil {
			return EvalResult{}, fmt.Errorf("%w: lz evaluate: raise lhs: %v", ErrRingOp, err)
		}
		if !lhs.Set.Equal(toplevel) {
			sink.Event("lz-evaluate-toplevel-mismatch", map[string]any{"output": o, "side": "lhs"})
			out.Outputs[o] = 1
			continue
		}

		rhs := obf.Chatstar[o]
		for k := 0; k < op.C; k++ {
			if rhs, err = mulEnc(obf.PP, rhs, obf.What[k][syms[k]][o]); err != nil {
				return EvalResult{}, fmt.Errorf("%w: lz evaluate: output consistency: %v", ErrRingOp, err)
			}
		}
		if !rhs.Set.Equal(toplevel) {
			sink.Event("lz-evaluate-toplevel-mismatch", map[string]any{"output": o, "side": "rhs"})
			out.Outputs[o] = 1
			continue
		}

		diff, err := subEnc(obf.PP, lhs, rhs)
		if err != nil {
			return EvalResult{}, fmt.Errorf("%w: lz evaluate: authentication: %v", ErrRingOp, err)
		}
		out.Degrees[o] = uint64(diff.CT.Degree())

		// Outputs[o]=1 iff diff zero-tests true, matching lin's convention
		// and spec.md §8's testable property (rop[o] == (C(x)[o]==0)); this
		// is the un-negated form, not the `¬is_zero` phrasing in spec.md
		// §4.3's LZ prose, which would invert every output relative to §8.
		zero, err := obf.PP.IsZero(diff.CT)
		if err != nil {
			sink.Event("lz-evaluate-zero-test-failed", map[string]any{"output": o, "error": fmt.Errorf("%w: %v", ErrZeroTest, err).Error()})
			out.Outputs[o] = 1
			continue
		}
		if zero {
			out.Outputs[o] = 1
		} else {
			out.Outputs[o] = 0
		}
	}

	out.MaxNPowers = int(maxPowers.Load())
	return out, nil
}
