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

// Package translate compiles a checked ast.Program into a ram.Program:
// cost-based body ordering, RAM emission per atom/negation/constraint,
// and the semi-naive delta-rewrite frame for each recursive stratum
// (§4.7). It assumes its input already passed check.Check; Translate
// reruns the checker itself and refuses to translate an unchecked or
// invalid program.
package translate

import "github.com/soufflego/soufflego/ast"

// maxPermutationSearch bounds the clauses §4.7 says to brute-force order
// by permutation; above this the user's written order is kept as-is.
const maxPermutationSearch = 8

// atomBaseSize is the heuristic relation-size unit the cost model scores
// against, in the absence of any real cardinality statistics (no fact
// counts are available before a program has run). Negated atoms and
// constraints are treated as comparatively free filters instead of scans.
const atomBaseSize = 100

// crossProductPenalty multiplies an atom's cost when it shares no bound
// variable with anything already placed before it: a cartesian join, the
// case the cost model is meant to steer the search away from.
const crossProductPenalty = 1000

// OrderBody returns the position ordering translate should emit c's body
// literals in: c.Plan verbatim if present (assumed already validated by
// check.Check), a cost-minimizing permutation search for up to
// maxPermutationSearch literals, or the identity order above that.
func OrderBody(c ast.Clause) []int {
	n := len(c.Body)
	if c.Plan != nil {
		return append([]int(nil), c.Plan...)
	}
	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	if n <= 1 || n > maxPermutationSearch {
		return identity
	}

	best := identity
	bestCost := bodyCost(c.Body, identity)
	permute(identity, func(candidate []int) {
		cost := bodyCost(c.Body, candidate)
		if cost < bestCost {
			bestCost = cost
			best = append([]int(nil), candidate...)
		}
	})
	return best
}

// bodyCost scores one candidate ordering: the sum, over positions, of an
// atom-size factor scaled by how many of its variables are still unbound
// at that point, with a heavy penalty for a literal sharing no bound
// variable with anything placed before it.
func bodyCost(body []ast.Literal, order []int) int {
	bound := map[string]bool{}
	total := 0
	for i, idx := range order {
		lit := body[idx]
		vars := ast.LiteralVars(lit)
		unbound, shared := 0, 0
		for _, v := range vars {
			if bound[v] {
				shared++
			} else {
				unbound++
			}
		}
		size := atomBaseSize
		if _, isAtom := lit.(ast.Atom); !isAtom {
			size = 1
		}
		cost := size * (unbound + 1)
		if i > 0 && shared == 0 && len(vars) > 0 {
			cost *= crossProductPenalty
		}
		total += cost
		for _, v := range vars {
			bound[v] = true
		}
	}
	return total
}

// permute calls visit once per permutation of base's elements (Heap's
// algorithm), including base itself.
func permute(base []int, visit func([]int)) {
	a := append([]int(nil), base...)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			visit(a)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				a[i], a[k-1] = a[k-1], a[i]
			} else {
				a[0], a[k-1] = a[k-1], a[0]
			}
		}
	}
	generate(len(a))
}
