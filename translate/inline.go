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

package translate

import (
	"strconv"

	"github.com/soufflego/soufflego/ast"
)

// Inline substitutes every clause body reference to a relation declared
// `inline` with that relation's own clause bodies, repeating until no
// inlined relation remains reachable from a non-inlined clause, then
// drops the inlined relations' own declarations and clauses from the
// result (check.Check has already rejected self-referential or
// cyclically dependent inline sets, so this always terminates). A
// negated reference to an inlined relation is left untouched: check.Check
// only allows that case when the negation introduces no new variable, so
// substituting it would just re-derive the same negation with extra
// steps.
func Inline(prog *ast.Program) *ast.Program {
	inlineSet := map[string]bool{}
	for _, d := range prog.Relations {
		if d.Inline {
			inlineSet[d.Name] = true
		}
	}
	if len(inlineSet) == 0 {
		return prog
	}

	bodies := make(map[string][]ast.Clause, len(inlineSet))
	for name := range inlineSet {
		bodies[name] = prog.ClausesFor(name)
	}

	clauses := make([]ast.Clause, 0, len(prog.Clauses))
	for _, c := range prog.Clauses {
		if inlineSet[c.Head.Relation] {
			continue
		}
		clauses = append(clauses, expandClause(c, inlineSet, bodies)...)
	}

	relations := make([]ast.RelationDecl, 0, len(prog.Relations))
	for _, d := range prog.Relations {
		if !inlineSet[d.Name] {
			relations = append(relations, d)
		}
	}

	return &ast.Program{
		Relations: relations,
		Clauses:   clauses,
		Pragmas:   prog.Pragmas,
	}
}

// expandClause returns the one or more clauses c expands to once every
// inlined atom in its body has been replaced by that relation's clause
// bodies (cross-producted across multiple matching clauses), with the
// substituted clauses' own free variables renamed apart so they cannot
// collide with c's.
func expandClause(c ast.Clause, inlineSet map[string]bool, bodies map[string][]ast.Clause) []ast.Clause {
	pos := firstInlineAtom(c.Body, inlineSet)
	if pos < 0 {
		return []ast.Clause{c}
	}

	atom := c.Body[pos].(ast.Atom)
	var out []ast.Clause
	for _, callee := range bodies[atom.Relation] {
		bound := renameApart(callee, atom.Relation+"$"+strconv.Itoa(pos))
		binding, extra := unifyHead(bound.Head, atom)

		body := make([]ast.Literal, 0, len(c.Body)-1+len(bound.Body)+len(extra))
		body = append(body, c.Body[:pos]...)
		body = append(body, extra...)
		for _, lit := range bound.Body {
			body = append(body, substituteLiteral(lit, binding))
		}
		body = append(body, c.Body[pos+1:]...)

		next := ast.Clause{Head: c.Head, Body: body}
		out = append(out, expandClause(next, inlineSet, bodies)...)
	}
	return out
}

// firstInlineAtom returns the body position of the first plain (non-
// negated) atom targeting an inlined relation, or -1 if none remains.
func firstInlineAtom(body []ast.Literal, inlineSet map[string]bool) int {
	for i, lit := range body {
		if atom, ok := lit.(ast.Atom); ok && inlineSet[atom.Relation] {
			return i
		}
	}
	return -1
}

// renameApart returns callee with every one of its own variables tagged
// by relation, so its body can be spliced into a caller's clause without
// its local variables colliding with the caller's. expandClause passes the
// inlined relation's name followed by the body position of the atom being
// expanded, so two expansions of the same relation in one output clause
// (as in B(x, y) :- A(x), A(y)) get different tags.
func renameApart(callee ast.Clause, relation string) ast.Clause {
	tag := "$inline$" + relation + "$"
	rename := func(name string) string {
		return tag + name
	}
	return ast.Clause{
		Head: renameAtom(callee.Head, rename),
		Body: renameLiterals(callee.Body, rename),
	}
}

func renameAtom(atom ast.Atom, rename func(string) string) ast.Atom {
	args := make([]ast.Argument, len(atom.Args))
	for i, a := range atom.Args {
		args[i] = renameArgument(a, rename)
	}
	return ast.Atom{Relation: atom.Relation, Args: args}
}

func renameArgument(arg ast.Argument, rename func(string) string) ast.Argument {
	switch n := arg.(type) {
	case ast.Var:
		return ast.Var{Name: rename(n.Name)}
	case ast.Aggregate:
		// MapArgument only rewrites Target, not the nested Body literals
		// an aggregate's own local variables live in, so it's handled
		// directly here rather than through the generic helper.
		return ast.Aggregate{
			Fn:       n.Fn,
			Target:   renameArgument(n.Target, rename),
			Relation: n.Relation,
			Body:     renameLiterals(n.Body, rename),
		}
	default:
		return ast.MapArgument(arg, func(a ast.Argument) ast.Argument {
			return renameArgument(a, rename)
		})
	}
}

func renameLiterals(body []ast.Literal, rename func(string) string) []ast.Literal {
	out := make([]ast.Literal, len(body))
	for i, lit := range body {
		out[i] = renameLiteral(lit, rename)
	}
	return out
}

func renameLiteral(lit ast.Literal, rename func(string) string) ast.Literal {
	switch n := lit.(type) {
	case ast.Atom:
		return renameAtom(n, rename)
	case ast.Negation:
		return ast.Negation{Atom: renameAtom(n.Atom, rename)}
	case ast.BinaryConstraint:
		return ast.BinaryConstraint{
			Op:    n.Op,
			Left:  renameArgument(n.Left, rename),
			Right: renameArgument(n.Right, rename),
		}
	default:
		return lit
	}
}

// unifyHead positionally unifies head (the inlined relation's own head,
// already renamed apart) against call (the caller's body atom). A
// variable position in head becomes a substitution entry: every
// occurrence of that renamed variable in the callee's body is replaced
// by the caller's argument at that position. A non-variable position in
// head — most commonly a fact's constant argument — instead becomes an
// explicit equality constraint between the caller's argument and that
// constant, since there's no callee variable to carry the substitution
// and the caller's argument (itself possibly a variable still used
// elsewhere in the caller's clause) must still be constrained to match
// it. UnnamedVar positions bind nothing and need no constraint.
func unifyHead(head ast.Atom, call ast.Atom) (binding map[string]ast.Argument, extra []ast.Literal) {
	binding = make(map[string]ast.Argument, len(head.Args))
	for i, h := range head.Args {
		switch h := h.(type) {
		case ast.Var:
			binding[h.Name] = call.Args[i]
		case ast.UnnamedVar:
		default:
			extra = append(extra, ast.BinaryConstraint{Op: ast.Eq, Left: call.Args[i], Right: h})
		}
	}
	return binding, extra
}

func substituteLiteral(lit ast.Literal, binding map[string]ast.Argument) ast.Literal {
	switch n := lit.(type) {
	case ast.Atom:
		return substituteAtom(n, binding)
	case ast.Negation:
		return ast.Negation{Atom: substituteAtom(n.Atom, binding)}
	case ast.BinaryConstraint:
		return ast.BinaryConstraint{
			Op:    n.Op,
			Left:  substituteArgument(n.Left, binding),
			Right: substituteArgument(n.Right, binding),
		}
	default:
		return lit
	}
}

func substituteAtom(atom ast.Atom, binding map[string]ast.Argument) ast.Atom {
	args := make([]ast.Argument, len(atom.Args))
	for i, a := range atom.Args {
		args[i] = substituteArgument(a, binding)
	}
	return ast.Atom{Relation: atom.Relation, Args: args}
}

func substituteArgument(arg ast.Argument, binding map[string]ast.Argument) ast.Argument {
	switch n := arg.(type) {
	case ast.Var:
		if replacement, ok := binding[n.Name]; ok {
			return replacement
		}
		return n
	case ast.Aggregate:
		// A correlated aggregate body can still reference a variable
		// bound by the enclosing clause, so its Body literals need the
		// same substitution as everything else, not just Target.
		body := make([]ast.Literal, len(n.Body))
		for i, lit := range n.Body {
			body[i] = substituteLiteral(lit, binding)
		}
		return ast.Aggregate{
			Fn:       n.Fn,
			Target:   substituteArgument(n.Target, binding),
			Relation: n.Relation,
			Body:     body,
		}
	default:
		return ast.MapArgument(arg, func(a ast.Argument) ast.Argument {
			return substituteArgument(a, binding)
		})
	}
}
