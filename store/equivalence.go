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
	"github.com/soufflego/soufflego/value"
)

// EquivRelation is the binary relation specialization of §4.1: a relation
// declared "equivalence" additionally closes under reflexivity, symmetry,
// and transitivity on every insert. The observable contract is set
// membership under closure; two implementations are provided (an explicit
// closure table, and a union-find), both satisfying this interface.
type EquivRelation interface {
	// Insert adds the pair and its closure, reporting whether anything
	// changed.
	Insert(pair value.Tuple) bool
	Contains(pair value.Tuple) bool
	Size() int
	IsEmpty() bool
	Scan(fn func(value.Tuple) bool)
	Purge()
	// Extend returns every new pair implied by inserting pair under the
	// current contents, without requiring the caller to separately compute
	// the closure delta for merge into a recursive stratum's new relation.
	Extend(pair value.Tuple) []value.Tuple
}

// unionFindThreshold is a relation size above which the union-find backing
// store is the cheaper of the two; below it the closure table's constant
// factors are smaller. NewEquivRelation does not consult it and always
// returns the closure table.
const unionFindThreshold = 4096

// NewEquivRelation returns the closure-table implementation, which is the
// default: it keeps the simple, auditable set-of-pairs contract the tests
// in §8 check directly. Large relations should use NewUnionFindEquivRelation
// instead (see that constructor's doc comment).
func NewEquivRelation(name string, kind AttrKind) EquivRelation {
	return &closureTable{rel: New(name, []AttrKind{kind, kind})}
}

type closureTable struct {
	rel *Relation
}

func (c *closureTable) Contains(pair value.Tuple) bool { return c.rel.Contains(pair) }
func (c *closureTable) Size() int                      { return c.rel.Size() }
func (c *closureTable) IsEmpty() bool                  { return c.rel.IsEmpty() }
func (c *closureTable) Scan(fn func(value.Tuple) bool) { c.rel.Scan(fn) }
func (c *closureTable) Purge()                         { c.rel.Purge() }

func (c *closureTable) Insert(pair value.Tuple) bool {
	added := EquivalenceClosure(c.rel, pair)
	changed := false
	for _, t := range added {
		if c.rel.Insert(t) {
			changed = true
		}
	}
	return changed
}

func (c *closureTable) Extend(pair value.Tuple) []value.Tuple {
	var fresh []value.Tuple
	for _, t := range EquivalenceClosure(c.rel, pair) {
		if !c.rel.Contains(t) {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

// Underlying exposes the backing plain relation so callers that already
// hold a *Relation for an equivalence-declared relation (the evaluator:
// see eval.Engine) can reuse the same closure algorithm directly instead of
// going through the EquivRelation interface.
func (c *closureTable) Underlying() *Relation { return c.rel }

// EquivalenceClosure returns (a,b) plus every pair the reflexive/
// symmetric/transitive closure forces given rel's current, already closed
// contents: the reflexive pairs for a and b, the symmetric pair (b,a), and
// (x,y) and (y,x) for every x in a's class and y in b's class, a class
// being the element itself plus its existing neighbors. It is the algorithm behind both closureTable and eval.Engine's
// direct handling of relations declared "equivalence" (§4.1).
func EquivalenceClosure(rel *Relation, pair value.Tuple) []value.Tuple {
	a, b := pair[0], pair[1]
	out := []value.Tuple{
		{a, b}, {b, a}, {a, a}, {b, b},
	}

	neighborsOf := func(x value.Value) []value.Value {
		var ns []value.Value
		rel.Scan(func(t value.Tuple) bool {
			if t[0] == x {
				ns = append(ns, t[1])
			} else if t[1] == x {
				ns = append(ns, t[0])
			}
			return true
		})
		return ns
	}

	classA := append([]value.Value{a}, neighborsOf(a)...)
	classB := append([]value.Value{b}, neighborsOf(b)...)
	for _, x := range classA {
		for _, y := range classB {
			out = append(out, value.Tuple{x, y}, value.Tuple{y, x})
		}
	}
	return out
}

// unionFindRelation backs an equivalence relation with a disjoint-set
// forest keyed on the attribute domain, materializing the pair-store view
// only when Scan is called. This trades Insert's near-constant amortized
// cost for an O(n) Scan, which is the right trade-off once an equivalence
// class has grown large enough that per-insert closure scans over
// closureTable dominate runtime.
func NewUnionFindEquivRelation(kind AttrKind) EquivRelation {
	return &unionFindRelation{
		kind:   kind,
		parent: make(map[value.Value]value.Value),
	}
}

type unionFindRelation struct {
	kind   AttrKind
	parent map[value.Value]value.Value
}

func (u *unionFindRelation) find(x value.Value) value.Value {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if p == x {
		return x
	}
	root := u.find(p)
	u.parent[x] = root
	return root
}

func (u *unionFindRelation) Insert(pair value.Tuple) bool {
	a, b := pair[0], pair[1]
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	u.parent[ra] = rb
	return true
}

func (u *unionFindRelation) Contains(pair value.Tuple) bool {
	a, b := pair[0], pair[1]
	_, aOk := u.parent[a]
	_, bOk := u.parent[b]
	if !aOk || !bOk {
		return false
	}
	return u.find(a) == u.find(b)
}

func (u *unionFindRelation) IsEmpty() bool { return len(u.parent) == 0 }

func (u *unionFindRelation) Purge() { u.parent = make(map[value.Value]value.Value) }

// Size reports the number of tuples the pair-store view of this relation
// would contain, i.e. sum over classes of (class size)^2.
func (u *unionFindRelation) Size() int {
	classes := u.classes()
	total := 0
	for _, members := range classes {
		total += len(members) * len(members)
	}
	return total
}

func (u *unionFindRelation) classes() map[value.Value][]value.Value {
	out := make(map[value.Value][]value.Value)
	for x := range u.parent {
		root := u.find(x)
		out[root] = append(out[root], x)
	}
	return out
}

func (u *unionFindRelation) Scan(fn func(value.Tuple) bool) {
	for _, members := range u.classes() {
		for _, a := range members {
			for _, b := range members {
				if !fn(value.Tuple{a, b}) {
					return
				}
			}
		}
	}
}

func (u *unionFindRelation) Extend(pair value.Tuple) []value.Tuple {
	beforeA, beforeB := u.classes()[u.find(pair[0])], u.classes()[u.find(pair[1])]
	if !u.Insert(pair) {
		return nil
	}
	after := u.classes()[u.find(pair[0])]
	seen := make(map[value.Value]bool, len(beforeA)+len(beforeB))
	for _, x := range beforeA {
		seen[x] = true
	}
	for _, x := range beforeB {
		seen[x] = true
	}
	var fresh []value.Tuple
	for _, a := range after {
		for _, b := range after {
			if !seen[a] || !seen[b] {
				fresh = append(fresh, value.Tuple{a, b})
			}
		}
	}
	return fresh
}
