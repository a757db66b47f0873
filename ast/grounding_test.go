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

import "testing"

func TestClauseDependenciesDedupesAndTagsPolarity(t *testing.T) {
	c := Clause{
		Head: Atom{Relation: "reachable", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}},
		Body: []Literal{
			Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}},
			Negation{Atom: Atom{Relation: "blocked", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}}},
			Atom{Relation: "edge", Args: []Argument{Var{Name: "B"}, Var{Name: "A"}}},
		},
	}
	deps := c.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("expected 2 deduped dependencies, got %d: %v", len(deps), deps)
	}
	var sawEdge, sawBlocked bool
	for _, d := range deps {
		if d.Relation == "edge" && !d.Negated {
			sawEdge = true
		}
		if d.Relation == "blocked" && d.Negated {
			sawBlocked = true
		}
	}
	if !sawEdge || !sawBlocked {
		t.Fatalf("missing expected dependency entries: %v", deps)
	}
}

func TestUngroundedHeadVarsReportsMissingBinding(t *testing.T) {
	c := Clause{
		Head: Atom{Relation: "r", Args: []Argument{Var{Name: "A"}, Var{Name: "Stray"}}},
		Body: []Literal{
			Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}},
		},
	}
	got := c.UngroundedHeadVars()
	if len(got) != 1 || got[0] != "Stray" {
		t.Fatalf("UngroundedHeadVars() = %v, want [Stray]", got)
	}
}

func TestUngroundedHeadVarsEmptyForFullyGroundedClause(t *testing.T) {
	c := Clause{
		Head: Atom{Relation: "r", Args: []Argument{Var{Name: "A"}}},
		Body: []Literal{
			Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}},
		},
	}
	if got := c.UngroundedHeadVars(); len(got) != 0 {
		t.Fatalf("UngroundedHeadVars() = %v, want empty", got)
	}
}

func TestIsFactHasNoBody(t *testing.T) {
	fact := Clause{Head: Atom{Relation: "edge", Args: []Argument{NumConst{Value: 1}, NumConst{Value: 2}}}}
	if !fact.IsFact() {
		t.Fatal("expected IsFact() to be true for an empty body")
	}
	rule := Clause{
		Head: Atom{Relation: "r", Args: []Argument{Var{Name: "A"}}},
		Body: []Literal{Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}}},
	}
	if rule.IsFact() {
		t.Fatal("expected IsFact() to be false when Body is non-empty")
	}
}

func TestProgramRelationAndClausesFor(t *testing.T) {
	p := &Program{
		Relations: []RelationDecl{
			{Name: "edge", Attrs: []Attribute{{Name: "a", Kind: KindNumber}, {Name: "b", Kind: KindNumber}}},
		},
		Clauses: []Clause{
			{Head: Atom{Relation: "edge", Args: []Argument{NumConst{Value: 1}, NumConst{Value: 2}}}},
			{Head: Atom{Relation: "tc", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}}},
		},
	}
	decl, ok := p.Relation("edge")
	if !ok || decl.Arity() != 2 {
		t.Fatalf("Relation(edge) = %+v, %v", decl, ok)
	}
	if _, ok := p.Relation("missing"); ok {
		t.Fatal("expected Relation(missing) to report not found")
	}
	if got := p.ClausesFor("edge"); len(got) != 1 {
		t.Fatalf("ClausesFor(edge) returned %d clauses, want 1", len(got))
	}
}
