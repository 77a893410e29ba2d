// Package acirc implements the arithmetic-circuit front-end the obfuscator
// core consumes: a DAG of ADD/SUB/MUL/SET gates over INPUT/CONST leaves,
// topological evaluation (exact and modular), degree-bound queries, and the
// symbol chunker/rchunker bijections. spec.md §1 names this front-end an
// external collaborator out of scope for the core; SPEC_FULL.md §12 supplies
// a minimal, concrete implementation so the repository is runnable end to
// end, grounded on the call sites of acirc_eval/acirc_const_degree/
// acirc_var_degree/chunker/rchunker in original_source's LIN and LZ
// obfuscator.c.
package acirc

import (
	"fmt"
	"math/big"
)

// Op names a gate's operation.
type Op uint8

const (
	OpInput Op = iota
	OpConst
	OpAdd
	OpSub
	OpMul
	OpSet
)

// Ref is an index into a Circuit's Gates slice identifying one gate's output.
type Ref int

// Gate is one node of the circuit DAG. For OpInput, In0 holds the input bit
// id; for OpConst, In0 holds the index into Circuit.Consts. For OpSet, In0
// is the single operand ref. For OpAdd/OpSub/OpMul, In0 and In1 are operand
// refs.
type Gate struct {
	Op       Op
	In0, In1 int
}

// Circuit is a DAG of Gates with designated inputs, constants, and outputs.
type Circuit struct {
	NInputs int
	Consts  []*big.Int
	Gates   []Gate
	Outputs []Ref
}

// addGate appends a gate and returns its Ref.
func (c *Circuit) addGate(g Gate) Ref {
	c.Gates = append(c.Gates, g)
	return Ref(len(c.Gates) - 1)
}

// Input appends an INPUT(id) leaf.
func (c *Circuit) Input(id int) Ref { return c.addGate(Gate{Op: OpInput, In0: id}) }

// Const appends a CONST(idx) leaf referencing Consts[idx].
func (c *Circuit) Const(idx int) Ref { return c.addGate(Gate{Op: OpConst, In0: idx}) }

// Add appends an ADD(x,y) gate.
func (c *Circuit) Add(x, y Ref) Ref { return c.addGate(Gate{Op: OpAdd, In0: int(x), In1: int(y)}) }

// Sub appends a SUB(x,y) gate.
func (c *Circuit) Sub(x, y Ref) Ref { return c.addGate(Gate{Op: OpSub, In0: int(x), In1: int(y)}) }

// Mul appends a MUL(x,y) gate.
func (c *Circuit) Mul(x, y Ref) Ref { return c.addGate(Gate{Op: OpMul, In0: int(x), In1: int(y)}) }

// Set appends a SET(x) unary gate.
func (c *Circuit) Set(x Ref) Ref { return c.addGate(Gate{Op: OpSet, In0: int(x)}) }

// MarkOutput records ref as output number len(Outputs).
func (c *Circuit) MarkOutput(ref Ref) { c.Outputs = append(c.Outputs, ref) }

// NOutputs returns the number of designated outputs.
func (c *Circuit) NOutputs() int { return len(c.Outputs) }

// NConsts returns the number of circuit constants.
func (c *Circuit) NConsts() int { return len(c.Consts) }

func (g Gate) String() string {
	switch g.Op {
	case OpInput:
		return fmt.Sprintf("INPUT(%d)", g.In0)
	case OpConst:
		return fmt.Sprintf("CONST(%d)", g.In0)
	case OpSet:
		return fmt.Sprintf("SET(%d)", g.In0)
	case OpAdd:
		return fmt.Sprintf("ADD(%d,%d)", g.In0, g.In1)
	case OpSub:
		return fmt.Sprintf("SUB(%d,%d)", g.In0, g.In1)
	case OpMul:
		return fmt.Sprintf("MUL(%d,%d)", g.In0, g.In1)
	default:
		return "?"
	}
}
