// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZDDModeUnionOfFamilies(t *testing.T) {
	f, err := New(3, WithMode(ZDDMode))
	require.NoError(t, err)
	require.Equal(t, ZDDMode, f.Mode())

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	b, err := f.Ithvar(1)
	require.NoError(t, err)

	fam, err := f.Apply(OPor, a, b)
	require.NoError(t, err)

	count, err := f.NodeCount(fam)
	require.NoError(t, err)
	require.Greater(t, count, 0)

	require.NoError(t, a.Free())
	require.NoError(t, b.Free())
	require.NoError(t, fam.Free())
}

func TestBackendsAgreeOnApply(t *testing.T) {
	mapF, err := New(3, WithBackend(MapBackend))
	require.NoError(t, err)
	arrF, err := New(3, WithBackend(ArrayBackend))
	require.NoError(t, err)

	for _, f := range []*Factory{mapF, arrF} {
		a, err := f.Ithvar(0)
		require.NoError(t, err)
		b, err := f.Ithvar(1)
		require.NoError(t, err)
		res, err := f.Apply(OPxor, a, b)
		require.NoError(t, err)

		count, err := f.SatCount(res)
		require.NoError(t, err)
		require.Equal(t, int64(4), count.Int64())

		require.NoError(t, a.Free())
		require.NoError(t, b.Free())
		require.NoError(t, res.Free())
	}
}
