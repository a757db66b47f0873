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

// Attribute is one declared column of a relation.
type Attribute struct {
	Name string
	Kind AttrKind
}

// RelationDecl declares a relation's name, arity and attribute kinds, plus
// the qualifiers the semantic checker and translator need: whether it is
// an input/output relation (affects "empty relation with no rules"
// warnings), declared "equivalence" (§4.1), or a candidate for inlining
// (§4.8, §9 SUPPLEMENTED FEATURES).
type RelationDecl struct {
	Name        string
	Attrs       []Attribute
	Equivalence bool
	Inline      bool
	Input       bool
	Output      bool
}

// Arity returns the relation's declared attribute count.
func (d RelationDecl) Arity() int { return len(d.Attrs) }

// Clause is a rule (or, with an empty Body, a fact): Head is derived once
// per satisfying binding of Body. Plan, if non-nil, is a user-supplied
// permutation of Body's positions (1-based externally, stored 0-based)
// that overrides the translator's cost-based body ordering search.
type Clause struct {
	Head Atom
	Body []Literal
	Plan []int
}

// IsFact reports whether c has no body literals.
func (c Clause) IsFact() bool { return len(c.Body) == 0 }

// Program is a whole parsed source program: relation declarations plus
// clauses, and the pragma directives consumed at configuration time
// (§6). The front-end lexer/parser that produces a Program from source
// text is an external collaborator (§1); this type is the seam.
type Program struct {
	Relations []RelationDecl
	Clauses   []Clause
	Pragmas   map[string]string
}

// Relation looks up a declared relation by name.
func (p *Program) Relation(name string) (RelationDecl, bool) {
	for _, r := range p.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return RelationDecl{}, false
}

// ClausesFor returns every clause whose head targets the named relation,
// in declaration order.
func (p *Program) ClausesFor(name string) []Clause {
	var out []Clause
	for _, c := range p.Clauses {
		if c.Head.Relation == name {
			out = append(out, c)
		}
	}
	return out
}
