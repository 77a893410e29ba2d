package lz_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/lz"
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

func obfuscateAndRun(t *testing.T, c *acirc.Circuit, ell int, sigma bool, npowers, nthreads int, inputRows [][]int) []lz.EvalResult {
	t.Helper()

	op, err := lz.DeriveParams(c, ell, sigma, npowers)
	require.NoError(t, err)

	genRNG := seededRNG(t, 0x11)
	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, genRNG)
	require.NoError(t, err)

	obf := lz.New(op, pp)
	collector := &telemetry.Collector{}
	require.NoError(t, lz.Obfuscate(obf, sk, c, seededRNG(t, 0x22), collector))

	results := make([]lz.EvalResult, len(inputRows))
	for i, inputs := range inputRows {
		res, err := lz.Evaluate(obf, c, inputs, nthreads, telemetry.Discard{})
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

func TestIdentityCircuitSigma(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	x := c.Input(0)
	c.MarkOutput(x)

	rows := [][]int{{1, 0}, {0, 1}}
	results := obfuscateAndRun(t, c, 2, true, 4, 2, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

func TestBinaryAndCircuit(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Mul(a, b))

	rows := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 4, 1, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

func TestAddSubMixedCircuit(t *testing.T) {
	c := &acirc.Circuit{NInputs: 3}
	a := c.Input(0)
	b := c.Input(1)
	cc := c.Input(2)
	ab := c.Add(a, b)
	abc := c.Sub(ab, cc)
	c.MarkOutput(abc)

	rows := [][]int{{0, 0, 0}, {1, 1, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}}
	results := obfuscateAndRun(t, c, 1, false, 4, 3, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

func TestConstMixedCircuit(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2, Consts: []*big.Int{big.NewInt(1)}}
	a := c.Input(0)
	b := c.Input(1)
	k := c.Const(0)
	sum := c.Add(a, b)
	c.MarkOutput(c.Sub(sum, k))

	rows := [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 4, 2, rows)
	for i, row := range rows {
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[i].Outputs[0], "row %v", row)
	}
}

// TestGammaThreeOutputs covers gamma=3 independently authenticated outputs.
func TestGammaThreeOutputs(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))
	c.MarkOutput(c.Sub(a, b))
	c.MarkOutput(c.Mul(a, b))

	rows := [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	results := obfuscateAndRun(t, c, 2, false, 4, 3, rows)
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
// changes the evaluator's answer or its reported max-powers telemetry.
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
	var first lz.EvalResult
	for i, nthreads := range []int{1, 2, 8} {
		results := obfuscateAndRun(t, c, 4, false, 4, nthreads, [][]int{row})
		want := expectZeroBit(t, c, row)
		require.Equal(t, want, results[0].Outputs[0], "nthreads=%d", nthreads)
		if i == 0 {
			first = results[0]
		} else {
			require.Equal(t, first.Outputs, results[0].Outputs)
		}
	}
}

// TestMaxNPowersUndershootsConfigured covers scenario 6: a circuit whose two
// outputs have distinct var_degree per symbol, wide enough that the diff
// raised during ADD/SUB equalization never needs the top configured power.
func TestMaxNPowersUndershootsConfigured(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))
	c.MarkOutput(c.Mul(a, b))

	const npowers = 8
	results := obfuscateAndRun(t, c, 2, false, npowers, 1, [][]int{{1, 1}})
	require.Less(t, results[0].MaxNPowers, npowers)
}

func TestRoundTripSerialization(t *testing.T) {
	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))

	op, err := lz.DeriveParams(c, 2, false, 4)
	require.NoError(t, err)

	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, seededRNG(t, 3))
	require.NoError(t, err)

	obf := lz.New(op, pp)
	require.NoError(t, lz.Obfuscate(obf, sk, c, seededRNG(t, 4), telemetry.Discard{}))

	buf := new(bytes.Buffer)
	_, err = obf.WriteTo(buf)
	require.NoError(t, err)

	obf2 := lz.New(op, pp)
	_, err = obf2.ReadFrom(buf, mmap.Dummy{})
	require.NoError(t, err)

	for _, row := range [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		r1, err := lz.Evaluate(obf, c, row, 1, telemetry.Discard{})
		require.NoError(t, err)
		r2, err := lz.Evaluate(obf2, c, row, 1, telemetry.Discard{})
		require.NoError(t, err)
		require.Equal(t, r1.Outputs, r2.Outputs)
	}
}
