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

package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soufflego/soufflego/ast"
)

// Check runs the single AST walk of §4.8 over prog and returns the
// accumulated report. A non-nil Report.Err() means the translator must
// refuse to run prog.
func Check(prog *ast.Program) *Report {
	r := NewReport()

	decls := map[string]ast.RelationDecl{}
	for _, decl := range prog.Relations {
		if _, dup := decls[decl.Name]; dup {
			r.addError(ErrDuplicateRelation.New(decl.Name))
			continue
		}
		decls[decl.Name] = decl
	}

	checkArity := func(relation string, args []ast.Argument) {
		decl, ok := decls[relation]
		if !ok {
			r.addError(ErrUnknownRelation.New(relation))
			return
		}
		if decl.Arity() != len(args) {
			r.addError(ErrArityMismatch.New(relation, decl.Arity(), len(args)))
		}
	}

	for _, c := range prog.Clauses {
		checkArity(c.Head.Relation, c.Head.Args)

		if c.IsFact() {
			checkFactConstants(r, c.Head)
		} else {
			for _, v := range c.UngroundedVars() {
				r.addError(ErrUngroundedVariable.New(v, c.Head.Relation))
			}
		}

		for _, lit := range c.Body {
			switch n := lit.(type) {
			case ast.Atom:
				checkArity(n.Relation, n.Args)
			case ast.Negation:
				checkArity(n.Atom.Relation, n.Atom.Args)
			case ast.BinaryConstraint:
				// constraints reference no relation; nothing to arity-check.
			}
		}

		checkSingleUseVars(r, c)
		checkPlan(r, c)
	}

	checkStratification(r, prog)
	checkInlining(r, prog, decls)
	checkEmptyRelations(r, prog, decls)

	return r
}

func checkFactConstants(r *Report, head ast.Atom) {
	var walk func(a ast.Argument) bool
	walk = func(a ast.Argument) bool {
		switch n := a.(type) {
		case ast.NumConst, ast.SymConst, ast.NullConst:
			return true
		case ast.RecordInit:
			for _, f := range n.Fields {
				if !walk(f) {
					return false
				}
			}
			return true
		default:
			return false
		}
	}
	for _, a := range head.Args {
		if !walk(a) {
			r.addError(ErrNonConstantFact.New(head.Relation))
			return
		}
	}
}

// checkSingleUseVars warns about a variable that occurs in exactly one of
// the clause's literals (the head or a single body literal), unless its
// name begins with `_`. Occurrences are counted per literal, so a variable
// repeated only within one literal, as in edge(X, X), is still warned about.
func checkSingleUseVars(r *Report, c ast.Clause) {
	counts := map[string]int{}
	var order []string
	count := func(v string) {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	for _, v := range ast.AtomVars(c.Head) {
		count(v)
	}
	for _, lit := range c.Body {
		for _, v := range ast.LiteralVars(lit) {
			count(v)
		}
	}
	for _, v := range order {
		if counts[v] == 1 && !strings.HasPrefix(v, "_") {
			r.addWarning(fmt.Sprintf("variable %q used only once in clause for %q", v, c.Head.Relation))
		}
	}
}

func checkPlan(r *Report, c ast.Clause) {
	if c.Plan == nil {
		return
	}
	n := len(c.Body)
	if len(c.Plan) != n {
		r.addError(ErrMalformedPlan.New(c.Head.Relation, n))
		return
	}
	seen := make([]bool, n)
	for _, p := range c.Plan {
		if p < 0 || p >= n || seen[p] {
			r.addError(ErrMalformedPlan.New(c.Head.Relation, n))
			return
		}
		seen[p] = true
	}
}

// checkStratification flags any cycle in the relation dependency graph
// that crosses a negated or aggregated edge: a relation cannot be defined,
// even transitively, in terms of its own negation or an aggregate over
// itself.
func checkStratification(r *Report, prog *ast.Program) {
	depGraph := prog.RelationGraph()
	plain := make(map[string][]string, len(depGraph))
	stratifyingEdges := map[[2]string]bool{}
	for from, deps := range depGraph {
		for _, d := range deps {
			plain[from] = append(plain[from], d.Relation)
			if d.Negated || d.Aggregated {
				stratifyingEdges[[2]string{from, d.Relation}] = true
			}
		}
	}

	for _, scc := range StronglyConnectedComponents(plain) {
		if len(scc) < 1 {
			continue
		}
		members := map[string]bool{}
		for _, m := range scc {
			members[m] = true
		}
		selfLoop := len(scc) == 1 && hasEdge(plain, scc[0], scc[0])
		if len(scc) == 1 && !selfLoop {
			continue
		}
		for from := range members {
			for _, to := range plain[from] {
				if !members[to] {
					continue
				}
				if stratifyingEdges[[2]string{from, to}] {
					names := append([]string{}, scc...)
					sort.Strings(names)
					r.addError(ErrStratificationCycle.New(strings.Join(names, ",")))
				}
			}
		}
	}
}

func hasEdge(graph map[string][]string, from, to string) bool {
	for _, n := range graph[from] {
		if n == to {
			return true
		}
	}
	return false
}

func checkInlining(r *Report, prog *ast.Program, decls map[string]ast.RelationDecl) {
	inlineSet := map[string]bool{}
	for _, d := range prog.Relations {
		if d.Inline {
			inlineSet[d.Name] = true
		}
	}
	if len(inlineSet) == 0 {
		return
	}

	for name := range inlineSet {
		decl := decls[name]
		if decl.Input {
			r.addError(ErrInlineViolation.New(name, "an inlined relation must not be declared input"))
		}
		if decl.Output {
			r.addError(ErrInlineViolation.New(name, "an inlined relation must not be declared output"))
		}
	}

	depGraph := prog.RelationGraph()
	plain := make(map[string][]string, len(depGraph))
	for from, deps := range depGraph {
		for _, d := range deps {
			plain[from] = append(plain[from], d.Relation)
		}
	}
	for _, scc := range StronglyConnectedComponents(plain) {
		if len(scc) < 2 {
			selfLoop := false
			for _, d := range plain[scc[0]] {
				selfLoop = selfLoop || d == scc[0]
			}
			if !selfLoop {
				continue
			}
		}
		var inlineMembers []string
		for _, m := range scc {
			if inlineSet[m] {
				inlineMembers = append(inlineMembers, m)
			}
		}
		if len(inlineMembers) > 0 {
			sort.Strings(inlineMembers)
			r.addError(ErrInlineViolation.New(strings.Join(inlineMembers, ","), "inlined relations must not be cyclically dependent on each other"))
		}
	}

	for _, c := range prog.Clauses {
		bound := map[string]bool{}
		for _, lit := range c.Body {
			atom, isAtom := lit.(ast.Atom)
			if isAtom {
				for _, v := range ast.AtomVars(atom) {
					bound[v] = true
				}
				continue
			}
			neg, isNeg := lit.(ast.Negation)
			if !isNeg || !inlineSet[neg.Atom.Relation] {
				continue
			}
			for _, v := range ast.AtomVars(neg.Atom) {
				if !bound[v] {
					r.addError(ErrInlineViolation.New(neg.Atom.Relation, fmt.Sprintf("negated reference introduces new variable %q", v)))
				}
			}
		}
	}
}

func checkEmptyRelations(r *Report, prog *ast.Program, decls map[string]ast.RelationDecl) {
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		decl := decls[name]
		if decl.Input {
			continue
		}
		if len(prog.ClausesFor(name)) == 0 {
			r.addWarning(fmt.Sprintf("relation %q has no rules and is not declared input", name))
		}
	}
}
