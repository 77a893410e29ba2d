package acirc

// leafIsVar reports whether leaf g (an OpInput or OpConst gate) counts as a degree-1
// variable for a given degree query; ConstDegree and VarDegree each supply a
// different notion of "which leaves are variables".
type leafIsVar func(g Gate) bool

// degreeMemo computes, for every ref, the polynomial degree of the circuit
// rooted at that ref when only leaves satisfying isVar count as degree-1
// variables (every other leaf is a degree-0 constant). ADD/SUB take the max
// of their operands' degree; MUL takes the sum. This mirrors the
// mpz_memo-keyed degree caches in original_source's obfuscator.c
// (acirc_const_degree / acirc_var_degree).
func degreeMemo(c *Circuit, isVar leafIsVar) []int {
	memo := make([]int, len(c.Gates))
	computed := make([]bool, len(c.Gates))
	var deg func(ref Ref) int
	deg = func(ref Ref) int {
		if computed[ref] {
			return memo[ref]
		}
		g := c.Gates[ref]
		var d int
		switch g.Op {
		case OpInput, OpConst:
			if isVar(g) {
				d = 1
			} else {
				d = 0
			}
		case OpSet:
			d = deg(Ref(g.In0))
		case OpAdd, OpSub:
			dx, dy := deg(Ref(g.In0)), deg(Ref(g.In1))
			if dx > dy {
				d = dx
			} else {
				d = dy
			}
		case OpMul:
			d = deg(Ref(g.In0)) + deg(Ref(g.In1))
		}
		memo[ref] = d
		computed[ref] = true
		return d
	}
	for ref := range c.Gates {
		deg(Ref(ref))
	}
	return memo
}

// ConstDegree returns, for every output, the circuit's polynomial degree
// when only CONST leaves are treated as variables (INPUT leaves are
// degree-0). This bounds the LZ scheme's Y-slot exponent and the LIN
// scheme's D parameter (acirc_max_const_degree).
func ConstDegree(c *Circuit) []int {
	memo := degreeMemo(c, func(g Gate) bool { return g.Op == OpConst })
	out := make([]int, len(c.Outputs))
	for i, ref := range c.Outputs {
		out[i] = memo[ref]
	}
	return out
}

// MaxConstDegree is max(ConstDegree(c)...), or 0 if there are no outputs.
func MaxConstDegree(c *Circuit) int {
	max := 0
	for _, d := range ConstDegree(c) {
		if d > max {
			max = d
		}
	}
	return max
}

// VarDegree returns, for every output, the circuit's polynomial degree when
// only INPUT leaves belonging to symbol k (as determined by chunk) are
// treated as variables. This bounds the LZ scheme's S(k,·)-slot exponent.
func VarDegree(c *Circuit, k int, chunk func(id int) (sym, bit int)) []int {
	memo := degreeMemo(c, func(g Gate) bool {
		if g.Op != OpInput {
			return false
		}
		sym, _ := chunk(g.In0)
		return sym == k
	})
	out := make([]int, len(c.Outputs))
	for i, ref := range c.Outputs {
		out[i] = memo[ref]
	}
	return out
}

// MaxVarDegree is max(VarDegree(c,k,chunk)...), or 0 if there are no outputs.
func MaxVarDegree(c *Circuit, k int, chunk func(id int) (sym, bit int)) int {
	max := 0
	for _, d := range VarDegree(c, k, chunk) {
		if d > max {
			max = d
		}
	}
	return max
}
