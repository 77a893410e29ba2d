package mmap_test

import (
	"math/big"
	"testing"

	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/prng"
	"github.com/stretchr/testify/require"
)

func dummyKeys(t *testing.T) (mmap.SecretParams, mmap.PublicParams) {
	t.Helper()
	rng, err := prng.NewKeyed(make([]byte, 32))
	require.NoError(t, err)
	sk, pp, err := mmap.Dummy{}.GenerateKeys(mmap.KeyGenParams{NSlots: 3}, rng)
	require.NoError(t, err)
	return sk, pp
}

func encodeInt(t *testing.T, sk mmap.SecretParams, v int64) mmap.Ciphertext {
	t.Helper()
	elems := make([]*big.Int, len(sk.PlaintextFields()))
	for i := range elems {
		elems[i] = big.NewInt(v)
	}
	ct, err := sk.Encode(elems, nil)
	require.NoError(t, err)
	return ct
}

func TestDummyAddMulIsZero(t *testing.T) {
	sk, pp := dummyKeys(t)

	two := encodeInt(t, sk, 2)
	three := encodeInt(t, sk, 3)

	sum, err := pp.Add(two, three)
	require.NoError(t, err)
	isZero, err := pp.IsZero(sum)
	require.NoError(t, err)
	require.False(t, isZero)

	prod, err := pp.Mul(two, three)
	require.NoError(t, err)
	require.Equal(t, uint(2), prod.Degree())

	diff, err := pp.Sub(sum, sum)
	require.NoError(t, err)
	isZero, err = pp.IsZero(diff)
	require.NoError(t, err)
	require.True(t, isZero)
}

func TestDummyDegreeAccumulates(t *testing.T) {
	sk, pp := dummyKeys(t)
	one := encodeInt(t, sk, 1)
	require.Equal(t, uint(1), one.Degree())

	squared, err := pp.Mul(one, one)
	require.NoError(t, err)
	require.Equal(t, uint(2), squared.Degree())

	cubed, err := pp.Mul(squared, one)
	require.NoError(t, err)
	require.Equal(t, uint(3), cubed.Degree())
}

func TestDummyRequiresMinNSlots(t *testing.T) {
	rng, err := prng.NewKeyed(make([]byte, 32))
	require.NoError(t, err)
	_, _, err = mmap.Dummy{}.GenerateKeys(mmap.KeyGenParams{NSlots: 1}, rng)
	require.Error(t, err)
}
