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

// Package indexselect computes, from the set of attribute-bound lookup
// patterns a relation receives over a whole program, a cover of ordered
// index permutations such that every pattern is a prefix of some chosen
// permutation. The cover is built greedily (see Cover) and is not always
// of minimal cardinality.
package indexselect

import "sort"

// Pattern is a set of bound attribute positions (0-based), as presented by
// a single scan or lookup site in a translated program.
type Pattern []int

// Perm is a full permutation of a relation's attribute positions: the
// order an Index sorts its tuples by.
type Perm []int

// Cover returns a set of permutations covering every pattern in patterns,
// plus the identity permutation (the total index, which always backs
// existence tests regardless of whether any pattern asked for it).
//
// The cover is computed greedily rather than by an exact minimum set-cover
// search (NP-hard in general): each pattern is satisfied by the first
// already-chosen permutation it is a prefix of; a pattern satisfied by none
// gets a fresh permutation built from its own positions (in ascending
// order, so a smaller pattern made of its lowest positions, such as {0}
// for {0,2}, shares it) followed by the remaining positions in ascending
// order.
func Cover(arity int, patterns []Pattern) []Perm {
	identity := identityPerm(arity)
	cover := []Perm{identity}

	// Larger patterns first: a big pattern's permutation often also
	// happens to prefix-cover a smaller one, which keeps the cover small
	// without needing backtracking.
	sorted := append([]Pattern(nil), patterns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	for _, p := range sorted {
		if len(p) == 0 || len(p) == arity {
			// the empty pattern (full scan) and the full pattern (existence
			// test) are always served by the total index.
			continue
		}
		if coveredByAny(cover, p) {
			continue
		}
		cover = append(cover, buildPerm(arity, p))
	}
	return cover
}

func identityPerm(arity int) Perm {
	p := make(Perm, arity)
	for i := range p {
		p[i] = i
	}
	return p
}

func coveredByAny(cover []Perm, p Pattern) bool {
	for _, perm := range cover {
		if isPrefix(perm, p) {
			return true
		}
	}
	return false
}

// isPrefix reports whether the position set p is exactly the first len(p)
// positions of perm, in any order.
func isPrefix(perm Perm, p Pattern) bool {
	if len(p) > len(perm) {
		return false
	}
	want := make(map[int]bool, len(p))
	for _, x := range p {
		want[x] = true
	}
	for i := 0; i < len(p); i++ {
		if !want[perm[i]] {
			return false
		}
	}
	return true
}

func buildPerm(arity int, p Pattern) Perm {
	bound := make(map[int]bool, len(p))
	ordered := append(Pattern(nil), p...)
	sort.Ints(ordered)
	for _, x := range ordered {
		bound[x] = true
	}

	perm := make(Perm, 0, arity)
	perm = append(perm, ordered...)
	for i := 0; i < arity; i++ {
		if !bound[i] {
			perm = append(perm, i)
		}
	}
	return perm
}
