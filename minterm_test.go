// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMintermsExpandDontCares(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)

	// x0 alone (x1 is a don't care) should expand into two minterms:
	// (x0=1,x1=0) and (x0=1,x1=1)
	a, err := f.Ithvar(0)
	require.NoError(t, err)

	vs, err := f.Makeset([]int32{0, 1})
	require.NoError(t, err)

	it, err := f.Minterms(a, vs)
	require.NoError(t, err)
	require.Equal(t, 2, it.Len())

	seen := make(map[[2]int8]bool)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		seen[[2]int8{p[0], p[1]}] = true
	}
	require.True(t, seen[[2]int8{1, 0}])
	require.True(t, seen[[2]int8{1, 1}])

	require.NoError(t, a.Free())
}

func TestMintermRemove(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	vs, err := f.Makeset([]int32{0, 1})
	require.NoError(t, err)

	it, err := f.Minterms(a, vs)
	require.NoError(t, err)
	_, ok := it.Next()
	require.True(t, ok)

	shrunk, err := it.Remove()
	require.NoError(t, err)

	count, err := f.SatCount(shrunk)
	require.NoError(t, err)
	require.Equal(t, int64(1), count.Int64())

	require.NoError(t, a.Free())
	require.NoError(t, shrunk.Free())
}
