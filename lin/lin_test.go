package lin_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/lin"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/prng"
	"github.com/dendisuhubdy/circ-obfuscation/telemetry"
)

func seededRNG(t *testing.T, seed byte) *prng.Keyed {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed
	}
	r, err := prng.NewKeyed(key)
	require.NoError(t, err)
	return r
}

// obfuscateAndRun drives the full pipeline for one circuit/ell/sigma
// configuration and returns the evaluator's result for every row of inputs.
func obfuscateAndRun(t *testing.T, c *acirc.Circuit, ell int, sigma bool, nthreads int, inputRows [][]int) []lin.EvalResult {
	t.Helper()

	op, err := lin.DeriveParams(c, ell, sigma)
	require.NoError(t, err)

	genRNG := seededRNG(t, 0x42)
	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, genRNG)
	require.NoError(t, err)

	obf := lin.New(op, pp)
	collector := &telemetry.Collector{}
	require.NoError(t, lin.Obfuscate(obf, sk, c, seededRNG(t, 0x99), collector))

	results := make([]lin.EvalResult, len(inputRows))
	for i, inputs := range inputRows {
		res, err := lin.Evaluate(obf, c, inputs, nthreads, telemetry.Discard{})
		require.NoError(t, err)
		results[i] = res
	}
	return results
}

func expectZeroBit(t *testing.T, c *acirc.Circuit, inputs []int) int {
	t.Helper()
	ins := make([]*big.Int, len(inputs))
	for i, v := range inputs {
		ins[i] = big.NewInt(int64(v))
	}
	outs := acirc.EvalInt(c, ins)
	for _, o := range outs {
		if o.Sign() != 0 {
			return 0
		}
	}
	return 1
}

// TestIdentityCircuitSigma covers scenario 1: a single-input identity
// circuit (C(x) = x) in sigma (one-hot) alphabet mode, checked for both
// input symbols.
func TestIdentityCircuitSigma(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	x := c.Input(0)
	c.MarkOutput(x)

	rows := [][]int{{1, 0}, {0, 1}}
	results := obfuscateAndRun(t, c, 2, true, 2, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

// TestBinaryAndCircuit covers scenario 2: a 2-bit AND circuit in binary
// alphabet mode.
func TestBinaryAndCircuit(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Mul(a, b))

	rows := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 1, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

// TestXorCircuitThreeVars covers scenario 3 (c=3, ell=1): a 3-variable
// circuit (a+b)-c built from ADD/SUB over {0,1}, evaluated on five of its
// eight input rows.
func TestXorCircuitThreeVars(t *testing.T) {
	c := &acirc.Circuit{NInputs: 3}
	a := c.Input(0)
	b := c.Input(1)
	cc := c.Input(2)
	ab := c.Add(a, b)
	abc := c.Sub(ab, cc)
	c.MarkOutput(abc)

	rows := [][]int{{0, 0, 0}, {1, 1, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}}
	results := obfuscateAndRun(t, c, 1, false, 4, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

// TestConstAddSubCircuit covers scenario 4: a circuit mixing a CONST leaf
// into ADD and SUB gates.
func TestConstAddSubCircuit(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2, Consts: []*big.Int{big.NewInt(1)}}
	a := c.Input(0)
	b := c.Input(1)
	k := c.Const(0)
	sum := c.Add(a, b)
	c.MarkOutput(c.Sub(sum, k))

	rows := [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 2, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

// TestGammaThreeOutputs covers scenario 5: a circuit with three distinct
// outputs (gamma=3), each independently authenticated.
func TestGammaThreeOutputs(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))
	c.MarkOutput(c.Sub(a, b))
	c.MarkOutput(c.Mul(a, b))

	rows := [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 3, rows)
	for i, row := range rows {
		want := acirc.EvalInt(c, []*big.Int{big.NewInt(int64(row[0])), big.NewInt(int64(row[1]))})
		for o := 0; o < 3; o++ {
			wantBit := 0
			if want[o].Sign() == 0 {
				wantBit = 1
			}
			require.Equal(t, wantBit, results[i].Outputs[o], "row %v output %d", row, o)
		}
	}
}

// TestNThreadsDoesNotChangeResult checks that varying the worker count never
// changes the evaluator's answer, the property the dag-based scheduler
// replaces the original nthreads-ignoring evaluator to guarantee.
func TestNThreadsDoesNotChangeResult(t *testing.T) {
	c := &acirc.Circuit{NInputs: 4}
	ins := make([]acirc.Ref, 4)
	for i := range ins {
		ins[i] = c.Input(i)
	}
	s1 := c.Add(ins[0], ins[1])
	s2 := c.Mul(ins[2], ins[3])
	s3 := c.Sub(s1, s2)
	c.MarkOutput(c.Add(s3, s3))

	row := []int{1, 0, 1, 1}
	for _, nthreads := range []int{1, 2, 8} {
		results := obfuscateAndRun(t, c, 4, false, nthreads, [][]int{row})
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[0].Outputs[0], "nthreads=%d", nthreads)
	}
}

// TestSymbolGroupingMatchesChunker checks the chunker/rchunker bijection
// DeriveParams wires up: NInputs=4, ell=2 must yield two 2-bit symbols.
func TestSymbolGroupingMatchesChunker(t *testing.T) {
	c := &acirc.Circuit{NInputs: 4}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))

	op, err := lin.DeriveParams(c, 2, false)
	require.NoError(t, err)
	require.Equal(t, 2, op.C)

	k0, j0 := op.Chunker(0)
	k1, j1 := op.Chunker(1)
	k2, j2 := op.Chunker(2)
	require.Equal(t, 0, k0)
	require.Equal(t, 0, k1)
	require.Equal(t, 1, k2)
	require.Equal(t, 0, j0)
	require.Equal(t, 1, j1)
	require.Equal(t, 0, j2)
}

func TestRoundTripSerialization(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))

	op, err := lin.DeriveParams(c, 2, false)
	require.NoError(t, err)

	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, seededRNG(t, 7))
	require.NoError(t, err)

	obf := lin.New(op, pp)
	require.NoError(t, lin.Obfuscate(obf, sk, c, seededRNG(t, 8), telemetry.Discard{}))

	buf := new(bytes.Buffer)
	_, err = obf.WriteTo(buf)
	require.NoError(t, err)

	obf2 := lin.New(op, pp)
	_, err = obf2.ReadFrom(buf, mmap.Dummy{})
	require.NoError(t, err)

	for _, row := range [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		r1, err := lin.Evaluate(obf, c, row, 1, telemetry.Discard{})
		require.NoError(t, err)
		r2, err := lin.Evaluate(obf2, c, row, 1, telemetry.Discard{})
		require.NoError(t, err)
		require.Equal(t, r1.Outputs, r2.Outputs)
	}
}
