package acirc

import "math/big"

// InputFunc supplies the value of INPUT(id) during a symbolic evaluation.
type InputFunc func(id int) *big.Int

// ConstFunc supplies the value substituted for CONST(idx) during a symbolic
// evaluation — normally Circuit.Consts[idx], but the LIN generator's ybaro
// computation and the LZ generator's Cstar computation substitute fresh
// per-index field elements (ykjc[idx], β[idx]) instead, which is why this is
// a function rather than always reading Consts directly.
type ConstFunc func(idx int) *big.Int

// EvalMod evaluates every output of c modulo mod, substituting inputs via in
// and constants via cst. Intermediate refs are memoized, matching the
// mpz_memo pattern in original_source/src/lin/obfuscator.c's ybaro
// computation and src/lz/obfuscator.c's Cstar computation.
func EvalMod(c *Circuit, in InputFunc, cst ConstFunc, mod *big.Int) []*big.Int {
	memo := make([]*big.Int, len(c.Gates))
	out := make([]*big.Int, len(c.Outputs))
	for i, ref := range c.Outputs {
		out[i] = evalRef(c, ref, in, cst, mod, memo)
	}
	return out
}

// EvalRefMod evaluates a single ref modulo mod, with memoization scoped to
// this call.
func EvalRefMod(c *Circuit, ref Ref, in InputFunc, cst ConstFunc, mod *big.Int) *big.Int {
	memo := make([]*big.Int, len(c.Gates))
	return evalRef(c, ref, in, cst, mod, memo)
}

func evalRef(c *Circuit, ref Ref, in InputFunc, cst ConstFunc, mod *big.Int, memo []*big.Int) *big.Int {
	if memo[ref] != nil {
		return memo[ref]
	}
	g := c.Gates[ref]
	var v *big.Int
	switch g.Op {
	case OpInput:
		v = new(big.Int).Mod(in(g.In0), mod)
	case OpConst:
		v = new(big.Int).Mod(cst(g.In0), mod)
	case OpSet:
		v = evalRef(c, Ref(g.In0), in, cst, mod, memo)
	case OpAdd:
		x := evalRef(c, Ref(g.In0), in, cst, mod, memo)
		y := evalRef(c, Ref(g.In1), in, cst, mod, memo)
		v = new(big.Int).Mod(new(big.Int).Add(x, y), mod)
	case OpSub:
		x := evalRef(c, Ref(g.In0), in, cst, mod, memo)
		y := evalRef(c, Ref(g.In1), in, cst, mod, memo)
		v = new(big.Int).Mod(new(big.Int).Sub(x, y), mod)
	case OpMul:
		x := evalRef(c, Ref(g.In0), in, cst, mod, memo)
		y := evalRef(c, Ref(g.In1), in, cst, mod, memo)
		v = new(big.Int).Mod(new(big.Int).Mul(x, y), mod)
	}
	memo[ref] = v
	return v
}

// EvalInt evaluates every output of c over the integers (no modular
// reduction), substituting inputs via in and constants from c.Consts. Used
// by end-to-end correctness tests to compute the ground-truth C(x).
func EvalInt(c *Circuit, inputs []*big.Int) []*big.Int {
	memo := make([]*big.Int, len(c.Gates))
	var evalPlain func(ref Ref) *big.Int
	evalPlain = func(ref Ref) *big.Int {
		if memo[ref] != nil {
			return memo[ref]
		}
		g := c.Gates[ref]
		var v *big.Int
		switch g.Op {
		case OpInput:
			v = new(big.Int).Set(inputs[g.In0])
		case OpConst:
			v = new(big.Int).Set(c.Consts[g.In0])
		case OpSet:
			v = evalPlain(Ref(g.In0))
		case OpAdd:
			v = new(big.Int).Add(evalPlain(Ref(g.In0)), evalPlain(Ref(g.In1)))
		case OpSub:
			v = new(big.Int).Sub(evalPlain(Ref(g.In0)), evalPlain(Ref(g.In1)))
		case OpMul:
			v = new(big.Int).Mul(evalPlain(Ref(g.In0)), evalPlain(Ref(g.In1)))
		}
		memo[ref] = v
		return v
	}
	out := make([]*big.Int, len(c.Outputs))
	for i, ref := range c.Outputs {
		out[i] = evalPlain(ref)
	}
	return out
}
