// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildNQueens constructs the diagram of every placement of n non-attacking
// queens on an n x n board: one Boolean variable per cell, true iff a queen
// sits there, conjoined with an at-least-one-queen-per-row constraint and a
// constraint that no two queens share a row, column or diagonal.
func buildNQueens(t *testing.T, n int) (*Factory, Node) {
	t.Helper()
	f, err := New(n * n)
	require.NoError(t, err)

	cell := func(r, c int) int32 { return int32(r*n + c) }

	valid := f.True()
	for r := 0; r < n; r++ {
		rowOR := f.False()
		for c := 0; c < n; c++ {
			v, err := f.Ithvar(cell(r, c))
			require.NoError(t, err)
			next, err := f.Apply(OPor, rowOR, v)
			require.NoError(t, err)
			require.NoError(t, rowOR.Free())
			require.NoError(t, v.Free())
			rowOR = next
		}
		next, err := f.Apply(OPand, valid, rowOR)
		require.NoError(t, err)
		require.NoError(t, valid.Free())
		require.NoError(t, rowOR.Free())
		valid = next
	}

	for r1 := 0; r1 < n; r1++ {
		for c1 := 0; c1 < n; c1++ {
			for r2 := r1; r2 < n; r2++ {
				for c2 := 0; c2 < n; c2++ {
					if r2 == r1 && c2 <= c1 {
						continue
					}
					if r2 != r1 && c1 != c2 && (r1-r2) != (c1-c2) && (r1-r2) != (c2-c1) {
						continue
					}
					a, err := f.Ithvar(cell(r1, c1))
					require.NoError(t, err)
					b, err := f.Ithvar(cell(r2, c2))
					require.NoError(t, err)
					nota, err := f.Not(a)
					require.NoError(t, err)
					notb, err := f.Not(b)
					require.NoError(t, err)
					lhs, err := f.Apply(OPor, nota, notb)
					require.NoError(t, err)
					require.NoError(t, a.Free())
					require.NoError(t, b.Free())
					require.NoError(t, nota.Free())
					require.NoError(t, notb.Free())
					next, err := f.Apply(OPand, valid, lhs)
					require.NoError(t, err)
					require.NoError(t, valid.Free())
					require.NoError(t, lhs.Free())
					valid = next
				}
			}
		}
	}
	return f, valid
}

func TestNQueensHasSolutions(t *testing.T) {
	f, valid := buildNQueens(t, 4)
	defer valid.Free()

	count, err := f.SatCount(valid)
	require.NoError(t, err)
	require.True(t, count.Cmp(big.NewInt(0)) > 0, "4-queens should have at least one placement")

	n, err := f.NodeCount(valid)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestNQueensTwoIsUnsolvable(t *testing.T) {
	// two queens on a 2x2 board always attack each other
	f, valid := buildNQueens(t, 2)
	defer valid.Free()
	require.Equal(t, 0, valid.id)
}
