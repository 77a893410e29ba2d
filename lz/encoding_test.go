package lz

import (
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/prng"
)

func testBackend(t *testing.T) (mmap.SecretParams, mmap.PublicParams) {
	t.Helper()
	key := make([]byte, 32)
	key[0] = 9
	rng, err := prng.NewKeyed(key)
	require.NoError(t, err)
	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: 2}, rng)
	require.NoError(t, err)
	return sk, pp
}

func encodeOnes(t *testing.T, sk mmap.SecretParams, set *ix.Set) Enc {
	t.Helper()
	ct, err := sk.Encode([]*big.Int{big.NewInt(1), big.NewInt(1)}, nil)
	require.NoError(t, err)
	return Enc{Set: set, CT: ct}
}

func TestMulAddsIndexSets(t *testing.T) {
	sk, pp := testBackend(t)

	xset := ix.New()
	xset.Set(ix.SlotS(0, 0), 1)
	x := encodeOnes(t, sk, xset)

	yset := ix.New()
	yset.Set(ix.SlotY(), 1)
	y := encodeOnes(t, sk, yset)

	got, err := mulEnc(pp, x, y)
	require.NoError(t, err)
	want := ix.Add(xset, yset)
	require.True(t, want.Equal(got.Set))
}

func TestLargestPowerRespectsTableBound(t *testing.T) {
	require.Equal(t, 0, largestPower(1, 8))
	require.Equal(t, 1, largestPower(2, 8))
	require.Equal(t, 1, largestPower(3, 8))
	require.Equal(t, 2, largestPower(5, 8))
	// table only has entries p=0,1,2 (npowers=3): diff=100 must still cap at
	// p=2, the largest index the table actually has, however large diff is.
	require.Equal(t, 2, largestPower(100, 3))
}

func TestRaiseSlotGreedilyConsumesDiff(t *testing.T) {
	sk, pp := testBackend(t)
	x := encodeOnes(t, sk, ix.New())

	table := make([]Enc, 4)
	for p := range table {
		s := ix.New()
		s.Set(ix.SlotS(0, 0), uint64(1)<<uint(p))
		table[p] = encodeOnes(t, sk, s)
	}

	var tracker atomic.Int32
	got, err := raiseSlot(pp, x, table, 5, &tracker)
	require.NoError(t, err)
	require.Equal(t, uint64(5), got.Set.Get(ix.SlotS(0, 0)))
	// 5 = 4+1: largest power consumed is p=2 (value 4), tracked as p+1=3.
	require.Equal(t, int32(3), tracker.Load())
}

func TestRaiseEncodingIdempotentAtTarget(t *testing.T) {
	sk, pp := testBackend(t)

	c := &acirc.Circuit{NInputs: 2}
	a := c.Input(0)
	b := c.Input(1)
	c.MarkOutput(c.Add(a, b))

	op, err := DeriveParams(c, 2, false, 4)
	require.NoError(t, err)
	obf := New(op, pp)
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for p := 0; p < op.NPowers; p++ {
				set := ix.New()
				set.Set(ix.SlotS(k, s), uint64(1)<<uint(p))
				obf.Uhat[k][s][p] = encodeOnes(t, sk, set)
			}
		}
	}

	target := ix.New()
	target.Set(ix.SlotS(0, 0), 3)
	x := encodeOnes(t, sk, target.Copy())

	var tracker atomic.Int32
	got, err := raiseEncoding(pp, obf, x, target, &tracker)
	require.NoError(t, err)
	require.True(t, target.Equal(got.Set))
	require.Equal(t, int32(0), tracker.Load())
}
