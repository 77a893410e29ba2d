package prng_test

import (
	"testing"

	"github.com/dendisuhubdy/circ-obfuscation/prng"
	"github.com/stretchr/testify/require"
)

func TestKeyedDeterministic(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	a, err := prng.NewKeyed(key)
	require.NoError(t, err)
	b, err := prng.NewKeyed(key)
	require.NoError(t, err)

	bufA := make([]byte, 256)
	bufB := make([]byte, 256)

	_, err = a.Read(bufA)
	require.NoError(t, err)
	_, err = b.Read(bufB)
	require.NoError(t, err)

	require.Equal(t, bufA, bufB)
}

func TestKeyedReset(t *testing.T) {
	key := make([]byte, 32)
	a, err := prng.NewKeyed(key)
	require.NoError(t, err)

	first := make([]byte, 128)
	_, err = a.Read(first)
	require.NoError(t, err)

	a.Reset()

	second := make([]byte, 128)
	_, err = a.Read(second)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestKeyedRequiresExactKeyLength(t *testing.T) {
	_, err := prng.NewKeyed([]byte{1, 2, 3})
	require.Error(t, err)
}
