// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyAndOr(t *testing.T) {
	f, err := New(3)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	b, err := f.Ithvar(1)
	require.NoError(t, err)

	and, err := f.Apply(OPand, a, b)
	require.NoError(t, err)
	or, err := f.Apply(OPor, a, b)
	require.NoError(t, err)

	require.NotEqual(t, and.id, or.id)

	nodes, err := f.NodeCount(and)
	require.NoError(t, err)
	require.Greater(t, nodes, 0)

	require.NoError(t, a.Free())
	require.NoError(t, b.Free())
	require.NoError(t, and.Free())
	require.NoError(t, or.Free())
}

func TestNotInvolution(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	na, err := f.Not(a)
	require.NoError(t, err)
	nna, err := f.Not(na)
	require.NoError(t, err)

	require.Equal(t, a.id, nna.id)

	require.NoError(t, a.Free())
	require.NoError(t, na.Free())
	require.NoError(t, nna.Free())
}

func TestIteMatchesAnd(t *testing.T) {
	f, err := New(3)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	b, err := f.Ithvar(1)
	require.NoError(t, err)

	and1, err := f.Apply(OPand, a, b)
	require.NoError(t, err)
	and2, err := f.Ite(a, b, f.False())
	require.NoError(t, err)
	require.Equal(t, and1.id, and2.id)

	require.NoError(t, a.Free())
	require.NoError(t, b.Free())
	require.NoError(t, and1.Free())
	require.NoError(t, and2.Free())
}

func TestUseAfterFreeDetected(t *testing.T) {
	f, err := New(1)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	require.NoError(t, a.Free())

	_, err = f.Not(a)
	require.Error(t, err)
	require.True(t, IsKind(err, KindUseAfterFree))
}

func TestApplyWithConsumesOperands(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	b, err := f.Ithvar(1)
	require.NoError(t, err)

	_, err = f.ApplyWith(OPand, &a, &b)
	require.NoError(t, err)

	_, err = f.Not(a)
	require.Error(t, err)
	require.True(t, IsKind(err, KindUseAfterFree))
}

func TestExistQuantification(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)

	a, err := f.Ithvar(0)
	require.NoError(t, err)
	b, err := f.Ithvar(1)
	require.NoError(t, err)
	and, err := f.Apply(OPand, a, b)
	require.NoError(t, err)

	vs, err := f.Makeset([]int32{0})
	require.NoError(t, err)
	res, err := f.Exist(and, vs)
	require.NoError(t, err)

	// exists x0. (x0 & x1) == x1
	require.Equal(t, b.id, res.id)

	require.NoError(t, a.Free())
	require.NoError(t, b.Free())
	require.NoError(t, and.Free())
	require.NoError(t, res.Free())
}
