package ix_test

import (
	"testing"

	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/stretchr/testify/require"
)

func TestSetAlgebra(t *testing.T) {
	a := ix.New()
	a.Set(ix.SlotY(), 3)
	a.Set(ix.SlotS(0, 1), 2)

	b := ix.New()
	b.Set(ix.SlotY(), 1)
	b.Set(ix.SlotS(0, 1), 5)
	b.Set(ix.SlotZ(2), 1)

	t.Run("add then sub recovers a", func(t *testing.T) {
		sum := ix.Add(a, b)
		back := ix.SubSaturating(sum, b)
		require.True(t, back.Equal(a))
	})

	t.Run("scalar mul by zero is zero", func(t *testing.T) {
		require.True(t, ix.ScalarMul(a, 0).IsZero())
	})

	t.Run("union max idempotent commutative associative", func(t *testing.T) {
		c := ix.New()
		c.Set(ix.SlotW(1), 7)

		require.True(t, ix.UnionMax(a, a).Equal(a))
		require.True(t, ix.UnionMax(a, b).Equal(ix.UnionMax(b, a)))
		require.True(t, ix.UnionMax(ix.UnionMax(a, b), c).Equal(ix.UnionMax(a, ix.UnionMax(b, c))))
	})

	t.Run("sub saturating never underflows", func(t *testing.T) {
		d := ix.SubSaturating(a, b)
		require.Equal(t, uint64(0), d.Get(ix.SlotS(0, 1)))
		require.Equal(t, uint64(2), d.Get(ix.SlotY()))
	})
}

func TestSetRoundTrip(t *testing.T) {
	a := ix.New()
	a.Set(ix.SlotY(), 3)
	a.Set(ix.SlotS(2, 1), 9)
	a.Set(ix.SlotZ(2), 1)
	a.Set(ix.SlotW(0), 4)

	p, err := a.MarshalBinary()
	require.NoError(t, err)

	b := ix.New()
	require.NoError(t, b.UnmarshalBinary(p))
	require.True(t, a.Equal(b))
}

func TestLevelNamedConstructors(t *testing.T) {
	require.True(t, ix.EqualLevel(ix.VKS(0, 1), ix.VKS(0, 1)))
	require.False(t, ix.EqualLevel(ix.VKS(0, 1), ix.VKS(0, 2)))

	sum := ix.AddLevel(ix.VKS(1, 2), ix.VStar())
	require.Equal(t, uint64(1), sum.Get(ix.LevelSlot{Kind: ix.LKS, K: 1, S: 2}))
	require.Equal(t, uint64(1), sum.Get(ix.LevelSlot{Kind: ix.LStar}))

	bar := ix.VBarO(0, 3)
	require.Equal(t, uint64(3), bar.Get(ix.LevelSlot{Kind: ix.LStar}))
	require.Equal(t, uint64(1), bar.Get(ix.LevelSlot{Kind: ix.LBarO, O: 0}))
}
