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

package ast

// Dependencies returns the set of relation references c's body and head
// arguments make, tagged with whether the reference is negated or
// reached only through an aggregate's nested body. A relation referenced
// more than once with the same tags appears once. This is the edge set
// the stratification graph (§4.8) is built from: one node per relation,
// one edge per (caller, callee, negated, aggregated) tuple collected
// across every clause of a program. Both negated and aggregated edges
// must not participate in a dependency cycle.
func (c Clause) Dependencies() []Dependency {
	var deps []Dependency
	seen := map[Dependency]bool{}
	add := func(d Dependency) {
		if !seen[d] {
			seen[d] = true
			deps = append(deps, d)
		}
	}
	for _, lit := range c.Body {
		switch n := lit.(type) {
		case Atom:
			add(Dependency{Relation: n.Relation, Negated: false})
		case Negation:
			add(Dependency{Relation: n.Atom.Relation, Negated: true})
		}
	}
	for _, a := range c.Head.Args {
		addAggregateDeps(a, add)
	}
	return deps
}

func addAggregateDeps(a Argument, add func(Dependency)) {
	switch n := a.(type) {
	case Aggregate:
		add(Dependency{Relation: n.Relation, Aggregated: true})
		addAggregateDeps(n.Target, add)
	case UnaryFn:
		addAggregateDeps(n.Arg, add)
	case BinaryFn:
		addAggregateDeps(n.Left, add)
		addAggregateDeps(n.Right, add)
	case TernaryFn:
		addAggregateDeps(n.Sym, add)
		addAggregateDeps(n.Start, add)
		addAggregateDeps(n.Len, add)
	case RecordInit:
		for _, f := range n.Fields {
			addAggregateDeps(f, add)
		}
	case Cast:
		addAggregateDeps(n.Arg, add)
	}
}

// Dependency is one relation reference c's body or head refers to,
// tagged with whether the reference is negated or reached only via an
// aggregate's nested body.
type Dependency struct {
	Relation   string
	Negated    bool
	Aggregated bool
}

// BodyVars returns every distinct variable mentioned anywhere in c's
// body, in first-seen order.
func (c Clause) BodyVars() []string {
	var order []string
	seen := map[string]bool{}
	for _, lit := range c.Body {
		for _, v := range LiteralVars(lit) {
			if !seen[v] {
				seen[v] = true
				order = append(order, v)
			}
		}
	}
	return order
}

// UngroundedHeadVars returns every variable in c.Head.Args that no
// positive body atom binds; a non-empty result means the clause fails
// §4.8's grounding check (every head variable must be bound by some
// positive body atom).
func (c Clause) UngroundedHeadVars() []string {
	bound := groundedByPositiveAtoms(c)
	var missing []string
	for _, v := range AtomVars(c.Head) {
		if !bound[v] {
			missing = append(missing, v)
		}
	}
	return missing
}

// UngroundedVars returns every variable §7 requires a positive body atom
// to bind — every head variable plus every variable referenced inside a
// negated body atom — that no positive body atom actually binds, in
// first-seen order (head first, then each negated atom in body order). A
// non-empty result means the clause is fatally ungrounded: a negation can
// test an already-bound variable, but since its atom never matches when
// absent, it can never be the sole source of a variable's binding.
func (c Clause) UngroundedVars() []string {
	bound := groundedByPositiveAtoms(c)

	var missing []string
	seen := map[string]bool{}
	require := func(v string) {
		if !bound[v] && !seen[v] {
			seen[v] = true
			missing = append(missing, v)
		}
	}
	for _, v := range AtomVars(c.Head) {
		require(v)
	}
	for _, lit := range c.Body {
		if neg, ok := lit.(Negation); ok {
			for _, v := range AtomVars(neg.Atom) {
				require(v)
			}
		}
	}
	return missing
}

// groundedByPositiveAtoms returns the set of variables bound by some
// positive (non-negated) body atom of c.
func groundedByPositiveAtoms(c Clause) map[string]bool {
	bound := map[string]bool{}
	for _, lit := range c.Body {
		if atom, ok := lit.(Atom); ok {
			for _, v := range LiteralVars(atom) {
				bound[v] = true
			}
		}
	}
	return bound
}

// AtomVars returns every distinct variable mentioned in atom's argument
// list, in first-seen order.
func AtomVars(atom Atom) []string {
	var order []string
	seen := map[string]bool{}
	for _, a := range atom.Args {
		for _, v := range Vars(a) {
			if !seen[v] {
				seen[v] = true
				order = append(order, v)
			}
		}
	}
	return order
}
