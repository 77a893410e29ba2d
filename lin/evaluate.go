package lin

import (
	"fmt"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/dag"
	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/telemetry"
)

// wire is a gate's live value during evaluation: an r-encoding, a
// z-encoding, and the accumulated Z*-degree d the z-side carries (spec.md
// §4.3's wire algebra), grounded on original_source/src/lin/obfuscator.c's
// wire struct.
type wire struct {
	r Enc
	z Enc
	d uint64
}

func wireMul(pp mmap.PublicParams, x, y wire) (wire, error) {
	r, err := mulEnc(pp, x.r, y.r)
	if err != nil {
		return wire{}, err
	}
	z, err := mulEnc(pp, x.z, y.z)
	if err != nil {
		return wire{}, err
	}
	return wire{r: r, z: z, d: x.d + y.d}, nil
}

// wireAddGeneral is the unconstrained ADD used when x and y carry different
// levels, mirroring original_source's wire_add.
func wireAddGeneral(pp mmap.PublicParams, obf *Obfuscation, x, y wire) (wire, error) {
	if x.d > y.d {
		return wireAddGeneral(pp, obf, y, x)
	}
	d := y.d - x.d

	r, err := mulEnc(pp, x.r, y.r)
	if err != nil {
		return wire{}, err
	}
	z, err := mulEnc(pp, x.z, y.r)
	if err != nil {
		return wire{}, err
	}
	if d > 0 {
		zp, err := zstarPower(pp, obf.Zstar, d)
		if err != nil {
			return wire{}, err
		}
		if z, err = mulEnc(pp, z, zp); err != nil {
			return wire{}, err
		}
	}
	tmp, err := mulEnc(pp, y.z, x.r)
	if err != nil {
		return wire{}, err
	}
	if z, err = addEnc(pp, z, tmp); err != nil {
		return wire{}, err
	}
	return wire{r: r, z: z, d: y.d}, nil
}

// wireSubGeneral is the unconstrained SUB, mirroring wire_sub.
func wireSubGeneral(pp mmap.PublicParams, obf *Obfuscation, x, y wire) (wire, error) {
	d := absDiff(x.d, y.d)
	var zp Enc
	var err error
	if d > 0 {
		if zp, err = zstarPower(pp, obf.Zstar, d); err != nil {
			return wire{}, err
		}
	}

	var z wire
	if x.d <= y.d {
		zv, err := mulEnc(pp, x.z, y.r)
		if err != nil {
			return wire{}, err
		}
		if d > 0 {
			if zv, err = mulEnc(pp, zv, zp); err != nil {
				return wire{}, err
			}
		}
		tmp, err := mulEnc(pp, y.z, x.r)
		if err != nil {
			return wire{}, err
		}
		if zv, err = subEnc(pp, zv, tmp); err != nil {
			return wire{}, err
		}
		z = wire{z: zv, d: y.d}
	} else {
		zv, err := mulEnc(pp, x.z, y.r)
		if err != nil {
			return wire{}, err
		}
		tmp, err := mulEnc(pp, y.z, x.r)
		if err != nil {
			return wire{}, err
		}
		if d > 0 {
			if tmp, err = mulEnc(pp, tmp, zp); err != nil {
				return wire{}, err
			}
		}
		if zv, err = subEnc(pp, zv, tmp); err != nil {
			return wire{}, err
		}
		z = wire{z: zv, d: x.d}
	}

	r, err := mulEnc(pp, x.r, y.r)
	if err != nil {
		return wire{}, err
	}
	z.r = r
	return z, nil
}

// wireConstrainedAdd is the ADD used when x and y already carry the same
// level, borrowing a shared r rather than multiplying fresh ones in,
// mirroring wire_constrained_add.
func wireConstrainedAdd(pp mmap.PublicParams, obf *Obfuscation, x, y wire) (wire, error) {
	if x.d > y.d {
		return wireConstrainedAdd(pp, obf, y, x)
	}
	d := y.d - x.d

	var z Enc
	var err error
	if d > 0 {
		zp, err := zstarPower(pp, obf.Zstar, d)
		if err != nil {
			return wire{}, err
		}
		if z, err = mulEnc(pp, x.z, zp); err != nil {
			return wire{}, err
		}
		if z, err = addEnc(pp, z, y.z); err != nil {
			return wire{}, err
		}
	} else {
		if z, err = addEnc(pp, x.z, y.z); err != nil {
			return wire{}, err
		}
	}
	return wire{r: x.r, z: z, d: y.d}, nil
}

// wireConstrainedSub is the constrained SUB, mirroring wire_constrained_sub
// with one deliberate fix: the original's x.d > y.d branch subtracts into
// rop->z before rop->z has ever been assigned, reading an uninitialized
// encoding. Here that branch explicitly computes x.z - y.z·Z*^d instead.
func wireConstrainedSub(pp mmap.PublicParams, obf *Obfuscation, x, y wire) (wire, error) {
	d := absDiff(x.d, y.d)
	var zp Enc
	var err error
	if d > 0 {
		if zp, err = zstarPower(pp, obf.Zstar, d); err != nil {
			return wire{}, err
		}
	}

	var z Enc
	var dOut uint64
	if x.d <= y.d {
		if d > 0 {
			zv, err := mulEnc(pp, x.z, zp)
			if err != nil {
				return wire{}, err
			}
			if z, err = subEnc(pp, zv, y.z); err != nil {
				return wire{}, err
			}
		} else {
			if z, err = subEnc(pp, x.z, y.z); err != nil {
				return wire{}, err
			}
		}
		dOut = y.d
	} else {
		tmp, err := mulEnc(pp, y.z, zp)
		if err != nil {
			return wire{}, err
		}
		if z, err = subEnc(pp, x.z, tmp); err != nil {
			return wire{}, err
		}
		dOut = x.d
	}
	return wire{r: x.r, z: z, d: dOut}, nil
}

// wireTypeEq reports whether x and y carry identical r levels and identical
// z levels modulo the star component, the condition under which a
// constrained ADD/SUB may be used in place of the general form, mirroring
// wire_type_eq's encoding_equal/encoding_equal_z pair. The star component is
// excluded from the z comparison because it is exactly what d already
// tracks on each wire: two wires sitting on the same named strand can differ
// in how many times Zstar has been folded in so far without being a
// different "type" of wire.
func wireTypeEq(x, y wire) bool {
	return ix.EqualLevel(x.r.Level, y.r.Level) &&
		ix.EqualLevel(ix.WithoutStar(x.z.Level), ix.WithoutStar(y.z.Level))
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// EvalResult is one Evaluate call's per-circuit outcome.
type EvalResult struct {
	Outputs []int    // 0/1 per circuit output: 1 iff the authenticated wire was zero
	Degrees []uint64 // the z-side Z*-degree reported for each output
}

// Evaluate runs the obfuscated circuit on the raw input bit vector inputs,
// scheduling every gate (not just the leaves) across nthreads workers via
// the dag package — fixing original_source's nthreads-ignoring evaluator,
// which only ever parallelized INPUT/CONST leaves and ran every internal
// gate from whichever leaf goroutine happened to make it ready.
func Evaluate(obf *Obfuscation, c *acirc.Circuit, inputs []int, nthreads int, sink telemetry.Sink) (EvalResult, error) {
	if sink == nil {
		sink = telemetry.Discard{}
	}
	op := obf.Op

	syms := make([]int, op.C)
	for k := 0; k < op.C; k++ {
		s, ok := acirc.Symbol(inputs, k, op.Ell, op.Rchunker, op.Sigma)
		if !ok {
			return EvalResult{}, fmt.Errorf("%w: lin evaluate: symbol %d is not well-formed", ErrMalformedInput, k)
		}
		syms[k] = s
	}

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

	compute := func(ref int, in []wire) (wire, error) {
		g := c.Gates[ref]
		switch g.Op {
		case acirc.OpInput:
			k, j := op.Chunker(g.In0)
			s := syms[k]
			return wire{r: obf.Rks[k][s], z: obf.Zksj[k][s][j], d: 0}, nil
		case acirc.OpConst:
			return wire{r: obf.Rc, z: obf.Zcj[g.In0], d: 0}, nil
		case acirc.OpSet:
			return in[0], nil
		case acirc.OpMul:
			return wireMul(obf.PP, in[0], in[1])
		case acirc.OpAdd:
			if wireTypeEq(in[0], in[1]) {
				return wireConstrainedAdd(obf.PP, obf, in[0], in[1])
			}
			return wireAddGeneral(obf.PP, obf, in[0], in[1])
		case acirc.OpSub:
			if wireTypeEq(in[0], in[1]) {
				return wireConstrainedSub(obf.PP, obf, in[0], in[1])
			}
			return wireSubGeneral(obf.PP, obf, in[0], in[1])
		default:
			return wire{}, fmt.Errorf("%w: lin evaluate: unknown gate op %v", ErrMalformedInput, g.Op)
		}
	}

	cache, err := dag.Run[wire](len(c.Gates), deps, compute, nthreads)
	if err != nil {
		return EvalResult{}, fmt.Errorf("%w: lin evaluate: %v", ErrRingOp, err)
	}

	out := EvalResult{
		Outputs: make([]int, len(c.Outputs)),
		Degrees: make([]uint64, len(c.Outputs)),
	}
	for o, ref := range c.Outputs {
		w := cache[ref]

		for k := 0; k < op.C; k++ {
			tmp := wire{r: obf.Rhatkso[k][syms[k]][o], z: obf.Zhatkso[k][syms[k]][o], d: 0}
			w, err = wireMul(obf.PP, w, tmp)
			if err != nil {
				return EvalResult{}, fmt.Errorf("%w: lin evaluate: input consistency: %v", ErrRingOp, err)
			}
		}

		outTmp := wire{r: obf.Rhato[o], z: obf.Zhato[o], d: 0}
		w, err = wireMul(obf.PP, w, outTmp)
		if err != nil {
			return EvalResult{}, fmt.Errorf("%w: lin evaluate: output consistency: %v", ErrRingOp, err)
		}

		authTmp := wire{r: obf.Rbaro[o], z: obf.Zbaro[o], d: 0}
		w, err = wireSubGeneral(obf.PP, obf, w, authTmp)
		if err != nil {
			return EvalResult{}, fmt.Errorf("%w: lin evaluate: authentication: %v", ErrRingOp, err)
		}

		out.Degrees[o] = w.d
		zero, err := obf.PP.IsZero(w.z.CT)
		if err != nil {
			sink.Event("lin-evaluate-zero-test-failed", map[string]any{"output": o, "error": fmt.Errorf("%w: %v", ErrZeroTest, err).Error()})
			out.Outputs[o] = 1
			continue
		}
		if zero {
			out.Outputs[o] = 1
		} else {
			out.Outputs[o] = 0
		}
	}

	return out, nil
}
