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
	"fmt"

	"github.com/soufflego/soufflego/ast"
	"github.com/soufflego/soufflego/ram"
)

func deltaName(r string) string { return "delta_" + r }
func newName(r string) string   { return "new_" + r }

// isRecursiveClause reports whether c's body contains a positive atom
// targeting one of the stratum's own relations. A stratified program can
// never have a negated reference into its own stratum (check.Check
// rejects that as a cycle through negation), so a recursive clause is
// exactly one with a qualifying positive atom.
func isRecursiveClause(c ast.Clause, stratum map[string]bool) bool {
	for _, lit := range c.Body {
		if atom, ok := lit.(ast.Atom); ok && stratum[atom.Relation] {
			return true
		}
	}
	return false
}

// recursiveAtomPositions returns the body positions of c that are
// positive atoms targeting a relation in stratum.
func recursiveAtomPositions(c ast.Clause, stratum map[string]bool) []int {
	var positions []int
	for i, lit := range c.Body {
		if atom, ok := lit.(ast.Atom); ok && stratum[atom.Relation] {
			positions = append(positions, i)
		}
	}
	return positions
}

// emitRecursiveStratum builds the semi-naive frame of §4.6 for a
// mutually recursive set of relations: seed every relation from its
// non-recursive clauses, copy the seed into its delta temporary, then
// repeatedly re-evaluate each recursive clause once per recursive atom
// occurrence — scanning that one occurrence from its delta and every
// other stratum-mate atom from the full relation — until every delta is
// empty.
func emitRecursiveStratum(e *clauseEmitter, prog *ast.Program, stratum Stratum) []ram.Stmt {
	members := make(map[string]bool, len(stratum.Relations))
	for _, r := range stratum.Relations {
		members[r] = true
	}

	var stmts []ram.Stmt
	for _, r := range stratum.Relations {
		decl, _ := prog.Relation(r)
		stmts = append(stmts,
			ram.Create{Relation: deltaName(r), Kinds: attrKinds(decl), Equivalence: decl.Equivalence},
			ram.Create{Relation: newName(r), Kinds: attrKinds(decl), Equivalence: decl.Equivalence},
		)
	}

	for _, r := range stratum.Relations {
		for _, c := range prog.ClausesFor(r) {
			if !isRecursiveClause(c, members) {
				stmts = append(stmts, emitClauseOnce(e, c, r))
			}
		}
		stmts = append(stmts, ram.Merge{Src: r, Dst: deltaName(r)})
	}

	var exitCond ram.Cond
	for _, r := range stratum.Relations {
		empty := ram.Cond(ram.Empty{Relation: deltaName(r)})
		if exitCond == nil {
			exitCond = empty
		} else {
			exitCond = ram.And{Left: exitCond, Right: empty}
		}
	}

	var body []ram.Stmt
	body = append(body, ram.ExitIf{Cond: exitCond})
	for _, r := range stratum.Relations {
		body = append(body, ram.Clear{Relation: newName(r)})
	}
	for _, r := range stratum.Relations {
		for _, c := range prog.ClausesFor(r) {
			if !isRecursiveClause(c, members) {
				continue
			}
			for _, deltaPos := range recursiveAtomPositions(c, members) {
				body = append(body, emitDeltaRewrittenClause(e, c, r, deltaPos, members))
			}
		}
	}
	for _, r := range stratum.Relations {
		body = append(body, ram.Merge{Src: newName(r), Dst: r})
		body = append(body, ram.Swap{A: newName(r), B: deltaName(r)})
	}

	stmts = append(stmts, ram.Loop{Body: ram.Sequence{Stmts: body}})

	for _, r := range stratum.Relations {
		stmts = append(stmts, ram.Drop{Relation: deltaName(r)}, ram.Drop{Relation: newName(r)})
	}
	return stmts
}

// emitDeltaRewrittenClause lowers c exactly like emitClauseOnce, except
// the body atom at deltaPos scans deltaName(its relation) instead of the
// relation itself, and the result is projected into new_<target> filtered
// against target (so a tuple already known is not re-derived).
func emitDeltaRewrittenClause(e *clauseEmitter, c ast.Clause, target string, deltaPos int, stratum map[string]bool) ram.Stmt {
	order := OrderBody(c)
	op := emitLiteralsDelta(e, c.Body, order, 0, deltaPos, bindings{}, func(b bindings) ram.Op {
		return projectHead(e, c.Head, b, newName(target), target)
	})
	return ram.DebugInfo{
		Message: fmt.Sprintf("recursive rule %s (delta position %d)", target, deltaPos),
		Inner:   ram.InsertQuery{Op: op},
	}
}

func emitLiteralsDelta(e *clauseEmitter, body []ast.Literal, order []int, pos, deltaPos int, b bindings, leaf func(bindings) ram.Op) ram.Op {
	if pos == len(order) {
		return leaf(b)
	}
	idx := order[pos]
	lit := body[idx]
	cont := func(b bindings) ram.Op {
		return emitLiteralsDelta(e, body, order, pos+1, deltaPos, b, leaf)
	}
	if atom, ok := lit.(ast.Atom); ok && idx == deltaPos {
		return e.emitAtomNamed(atom, deltaName(atom.Relation), b, cont)
	}
	return e.emitLiteral(lit, b, cont)
}
