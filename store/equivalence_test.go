// Copyright 2024 The SouffleGo Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soufflego/soufflego/value"
)

func collectPairs(t *testing.T, eq EquivRelation) map[value.Tuple]bool {
	t.Helper()
	out := map[value.Tuple]bool{}
	eq.Scan(func(tp value.Tuple) bool {
		out[value.Tuple{tp[0], tp[1]}] = true
		return true
	})
	return out
}

func TestEquivalenceClosureScenario(t *testing.T) {
	require := require.New(t)
	eq := NewEquivRelation("EQ", Number)

	eq.Insert(value.Tuple{1, 2})
	eq.Insert(value.Tuple{2, 3})

	want := []value.Tuple{
		{1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2}, {2, 3},
		{3, 1}, {3, 2}, {3, 3},
	}
	for _, w := range want {
		require.True(eq.Contains(w), "missing pair %v", w)
	}
	require.Equal(len(want), eq.Size())
}

func TestEquivalenceUnionFindMatchesClosureTable(t *testing.T) {
	require := require.New(t)
	ct := NewEquivRelation("EQ", Number)
	uf := NewUnionFindEquivRelation(Number)

	inserts := []value.Tuple{{1, 2}, {2, 3}, {4, 5}}
	for _, p := range inserts {
		ct.Insert(p)
		uf.Insert(p)
	}

	ctPairs := collectPairs(t, ct)
	ufPairs := collectPairs(t, uf)
	require.Equal(ctPairs, ufPairs)
}

func TestEquivalenceExtendReturnsOnlyNewPairs(t *testing.T) {
	require := require.New(t)
	eq := NewEquivRelation("EQ", Number)
	first := eq.Extend(value.Tuple{1, 2})
	require.NotEmpty(first)
	for _, p := range first {
		eq.Insert(p)
	}

	again := eq.Extend(value.Tuple{1, 2})
	require.Empty(again, "re-extending an already-closed pair yields nothing new")
}
