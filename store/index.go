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
	"github.com/google/btree"

	"github.com/soufflego/soufflego/value"
)

// Index is an ordered view of a relation's tuples over a permutation of its
// attribute positions. It supports equal-range lookup by any prefix of the
// permutation.
type Index struct {
	perm []int
	tree *btree.BTreeG[value.Tuple]
}

const btreeDegree = 32

func newIndex(perm []int) *Index {
	p := append([]int(nil), perm...)
	return &Index{
		perm: p,
		tree: btree.NewG(btreeDegree, func(a, b value.Tuple) bool {
			return value.Less(permute(a, p), permute(b, p))
		}),
	}
}

// Perm returns the attribute-position permutation this index is ordered by.
func (ix *Index) Perm() []int {
	return ix.perm
}

// IsPrefix reports whether bound (a set of attribute positions) is a prefix
// of this index's permutation, i.e. whether this index can serve an
// equal-range lookup over exactly those positions.
func (ix *Index) IsPrefix(bound []int) bool {
	if len(bound) > len(ix.perm) {
		return false
	}
	seen := make(map[int]bool, len(bound))
	for _, b := range bound {
		seen[b] = true
	}
	for i := 0; i < len(bound); i++ {
		if !seen[ix.perm[i]] {
			return false
		}
	}
	return true
}

func (ix *Index) insert(t value.Tuple) {
	ix.tree.ReplaceOrInsert(t)
}

func (ix *Index) remove(t value.Tuple) {
	ix.tree.Delete(t)
}

func (ix *Index) has(t value.Tuple) bool {
	_, ok := ix.tree.Get(t)
	return ok
}

func (ix *Index) len() int {
	return ix.tree.Len()
}

// scan invokes fn for every tuple in the index, in index order, stopping
// early if fn returns false.
func (ix *Index) scan(fn func(value.Tuple) bool) {
	ix.tree.Ascend(func(t value.Tuple) bool {
		return fn(t)
	})
}

// rangeScan invokes fn for every tuple whose permuted columns fall in
// [lower, upper), where lower and upper are full-arity tuples in the
// relation's natural attribute order (unbound positions already filled with
// value.Min / value.Max by the caller). When lower and upper are the same
// tuple (every position bound) this degenerates to a single-tuple
// existence check rather than an empty half-open range.
func (ix *Index) rangeScan(lower, upper value.Tuple, fn func(value.Tuple) bool) {
	if lower.Equal(upper) {
		if ix.has(lower) {
			fn(lower)
		}
		return
	}
	hiKey := permute(upper, ix.perm)
	ix.tree.AscendGreaterOrEqual(lower, func(t value.Tuple) bool {
		if !value.Less(permute(t, ix.perm), hiKey) {
			return false
		}
		return fn(t)
	})
}

func permute(t value.Tuple, perm []int) value.Tuple {
	out := make(value.Tuple, len(perm))
	for i, p := range perm {
		if p < len(t) {
			out[i] = t[p]
		}
	}
	return out
}

// identityPerm returns [0, 1, ..., arity-1], the permutation of the total
// index that covers every attribute in declaration order.
func identityPerm(arity int) []int {
	p := make([]int, arity)
	for i := range p {
		p[i] = i
	}
	return p
}
