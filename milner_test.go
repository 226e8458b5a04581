// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// cyclers builds the transition relation of a ring of n one-bit processes,
// each of which may pass its token to its successor: state variable i holds
// the token, next-state variable i+n holds it afterward, and the relation
// is the disjunction, over every process, of "process i has the token now
// and hands it to i+1 next, and no other process holds it next". It then computes the set of states reachable
// from the initial state (token at process 0) by iterating image
// computation (AppEx + Replace) to a fixpoint, following the same shape as
// the teacher's milner_test.go reachability benchmark.
func cyclers(t *testing.T, n int) (reachable int) {
	t.Helper()
	f, err := New(2 * n)
	require.NoError(t, err)

	curVars := make([]int32, n)
	for i := 0; i < n; i++ {
		curVars[i] = int32(i)
	}
	current, err := f.Makeset(curVars)
	require.NoError(t, err)

	inv := NewPairing(f)
	for i := 0; i < n; i++ {
		require.NoError(t, inv.Set(int32(i+n), int32(i)))
	}

	rel := f.False()
	for i := 0; i < n; i++ {
		succ := (i + 1) % n
		hasToken, err := f.Ithvar(int32(i))
		require.NoError(t, err)
		notOthers := f.True()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			nj, err := f.NIthvar(int32(j))
			require.NoError(t, err)
			nextNot, err := f.Apply(OPand, notOthers, nj)
			require.NoError(t, err)
			require.NoError(t, notOthers.Free())
			require.NoError(t, nj.Free())
			notOthers = nextNot
		}
		term, err := f.Apply(OPand, hasToken, notOthers)
		require.NoError(t, err)
		require.NoError(t, hasToken.Free())
		require.NoError(t, notOthers.Free())

		nextHasToken, err := f.Ithvar(int32(succ + n))
		require.NoError(t, err)
		withNext, err := f.Apply(OPand, term, nextHasToken)
		require.NoError(t, err)
		require.NoError(t, term.Free())
		require.NoError(t, nextHasToken.Free())
		for j := 0; j < n; j++ {
			if j == succ {
				continue
			}
			nj, err := f.NIthvar(int32(j + n))
			require.NoError(t, err)
			next, err := f.Apply(OPand, withNext, nj)
			require.NoError(t, err)
			require.NoError(t, withNext.Free())
			require.NoError(t, nj.Free())
			withNext = next
		}

		combined, err := f.Apply(OPor, rel, withNext)
		require.NoError(t, err)
		require.NoError(t, rel.Free())
		require.NoError(t, withNext.Free())
		rel = combined
	}

	init, err := f.Ithvar(0)
	require.NoError(t, err)
	for j := 1; j < n; j++ {
		nj, err := f.NIthvar(int32(j))
		require.NoError(t, err)
		next, err := f.Apply(OPand, init, nj)
		require.NoError(t, err)
		require.NoError(t, init.Free())
		require.NoError(t, nj.Free())
		init = next
	}

	frontier := init
	for {
		image, err := f.AppEx(OPand, frontier, rel, current)
		require.NoError(t, err)
		imageHere, err := f.Replace(image, inv)
		require.NoError(t, err)
		require.NoError(t, image.Free())

		grown, err := f.Apply(OPor, frontier, imageHere)
		require.NoError(t, err)
		require.NoError(t, imageHere.Free())

		if grown.id == frontier.id {
			require.NoError(t, grown.Free())
			break
		}
		require.NoError(t, frontier.Free())
		frontier = grown
	}

	count, err := f.SatCount(frontier)
	require.NoError(t, err)
	require.NoError(t, frontier.Free())
	require.NoError(t, rel.Free())
	// SatCount ranges over all 2n variables; the n next-state ones are free
	count.Rsh(count, uint(n))
	return int(count.Int64())
}

func TestCyclersReachability(t *testing.T) {
	// a ring of 3 processes passing one token has exactly 3 reachable
	// states: the token at each of the 3 positions in turn.
	require.Equal(t, 3, cyclers(t, 3))
}
