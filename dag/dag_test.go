package dag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/circ-obfuscation/dag"
)

func TestRunDiamond(t *testing.T) {
	// 0 -> {1,2} -> 3
	deps := func(i int) []int {
		switch i {
		case 1, 2:
			return []int{0}
		case 3:
			return []int{1, 2}
		default:
			return nil
		}
	}
	compute := func(i int, in []int) (int, error) {
		switch i {
		case 0:
			return 1, nil
		case 1, 2:
			return in[0] + i, nil
		case 3:
			return in[0] + in[1], nil
		}
		return 0, nil
	}

	for _, nthreads := range []int{1, 2, 4} {
		out, err := dag.Run[int](4, deps, compute, nthreads)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3, 5}, out)
	}
}

func TestRunPropagatesError(t *testing.T) {
	deps := func(i int) []int {
		if i == 0 {
			return nil
		}
		return []int{i - 1}
	}
	boom := errors.New("boom")
	compute := func(i int, in []int) (int, error) {
		if i == 1 {
			return 0, boom
		}
		return i, nil
	}

	_, err := dag.Run[int](5, deps, compute, 2)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
}

func TestRunIndependentNodes(t *testing.T) {
	deps := func(i int) []int { return nil }
	compute := func(i int, in []int) (int, error) { return i * i, nil }

	out, err := dag.Run[int](10, deps, compute, 3)
	require.NoError(t, err)
	for i, v := range out {
		require.Equal(t, i*i, v)
	}
}
