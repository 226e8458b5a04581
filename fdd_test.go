// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFDDIthVarDistinct(t *testing.T) {
	f, err := New(0)
	require.NoError(t, err)

	domains, err := f.ExtDomain([]int{5})
	require.NoError(t, err)
	require.Len(t, domains, 1)
	d := domains[0]

	v2, err := f.IthVar(d, 2)
	require.NoError(t, err)
	v3, err := f.IthVar(d, 3)
	require.NoError(t, err)
	require.NotEqual(t, v2.id, v3.id)

	idx, err := f.GetVarIndices(d)
	require.NoError(t, err)
	require.Len(t, idx, 3) // ceil(log2(5)) == 3 bits

	require.NoError(t, v2.Free())
	require.NoError(t, v3.Free())
}

func TestFDDScanVarRoundTrips(t *testing.T) {
	f, err := New(0)
	require.NoError(t, err)

	domains, err := f.ExtDomain([]int{8})
	require.NoError(t, err)
	d := domains[0]

	for v := 0; v < 8; v++ {
		n, err := f.IthVar(d, v)
		require.NoError(t, err)
		got, err := f.ScanVar(n, d)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.NoError(t, n.Free())
	}
}

func TestFDDEnsureCapacityWidens(t *testing.T) {
	f, err := New(0)
	require.NoError(t, err)

	domains, err := f.ExtDomain([]int{4})
	require.NoError(t, err)
	d := domains[0]

	idxBefore, err := f.GetVarIndices(d)
	require.NoError(t, err)
	require.Len(t, idxBefore, 2)

	require.NoError(t, f.EnsureCapacity(d, 9))
	idxAfter, err := f.GetVarIndices(d)
	require.NoError(t, err)
	require.Len(t, idxAfter, 4)

	v, err := f.IthVar(d, 0)
	require.NoError(t, err)
	require.NoError(t, v.Free())
}

func TestFDDBuildEquals(t *testing.T) {
	f, err := New(0)
	require.NoError(t, err)

	domains, err := f.ExtDomain([]int{4, 4})
	require.NoError(t, err)

	eq, err := f.BuildEquals(domains[0], domains[1])
	require.NoError(t, err)

	count, err := f.SatCount(eq)
	require.NoError(t, err)
	// four pairs (v,v) out of sixteen total assignments satisfy equality
	require.Equal(t, int64(4), count.Int64())

	require.NoError(t, eq.Free())
}
