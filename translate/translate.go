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
	"github.com/soufflego/soufflego/check"
	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/store"
	"github.com/soufflego/soufflego/value"
)

// Translate checks prog, inlines requested relations into their callers,
// stratifies the remainder, and emits a ram.Program: one Create per
// relation, then one block per stratum in dependency order (a recursive
// stratum additionally declares and drops its delta/new temporaries).
// Constants are interned against symbols, which callers should share with
// the eval.Engine that will run the result so constant ids agree with any
// independently loaded data.
func Translate(prog *ast.Program, symbols *value.SymbolTable) (*ram.Program, error) {
	report := check.Check(prog)
	if report.HasErrors() {
		return nil, report.Err()
	}

	prog = Inline(prog)

	strata := Stratify(prog)
	emitter := newClauseEmitter(symbols)

	var stmts []ram.Stmt
	for _, decl := range prog.Relations {
		stmts = append(stmts, ram.Create{
			Relation:    decl.Name,
			Kinds:       attrKinds(decl),
			Equivalence: decl.Equivalence,
		})
	}

	for _, stratum := range strata {
		stmts = append(stmts, emitStratum(emitter, prog, stratum)...)
	}

	return ram.NewProgram(ram.Sequence{Stmts: stmts}), nil
}

func attrKinds(decl ast.RelationDecl) []store.AttrKind {
	kinds := make([]store.AttrKind, len(decl.Attrs))
	for i, a := range decl.Attrs {
		kinds[i] = store.AttrKind(a.Kind)
	}
	return kinds
}

// emitStratum returns the statements that compute every relation in
// stratum, assuming every earlier stratum's relations are already fully
// computed.
func emitStratum(e *clauseEmitter, prog *ast.Program, stratum Stratum) []ram.Stmt {
	if !stratum.Recursive {
		var stmts []ram.Stmt
		for _, name := range stratum.Relations {
			for _, c := range prog.ClausesFor(name) {
				stmts = append(stmts, emitClauseOnce(e, c, name))
			}
		}
		return stmts
	}
	return emitRecursiveStratum(e, prog, stratum)
}

// emitClauseOnce lowers a non-recursive clause into a single InsertQuery,
// wrapped in DebugInfo per §6's profile-log convention. A fact (empty
// body) degenerates to a bare Project of its constant arguments.
func emitClauseOnce(e *clauseEmitter, c ast.Clause, target string) ram.Stmt {
	op := emitClauseBody(e, c, bindings{}, func(b bindings) ram.Op {
		return projectHead(e, c.Head, b, target, "")
	})
	return ram.DebugInfo{
		Message: fmt.Sprintf("rule %s", target),
		Inner:   ram.InsertQuery{Op: op},
	}
}

// emitClauseBody walks c.Body in OrderBody's chosen order, nesting scans,
// lookups and searches, and finally invokes leaf to build the innermost
// operation (a Project for a rule, or a delta-rewritten Project for a
// recursive clause's body).
func emitClauseBody(e *clauseEmitter, c ast.Clause, b bindings, leaf func(bindings) ram.Op) ram.Op {
	order := OrderBody(c)
	return emitLiterals(e, c.Body, order, 0, b, leaf)
}

// emitLiterals recursively lowers body[order[pos:]], calling leaf once
// every literal has been placed.
func emitLiterals(e *clauseEmitter, body []ast.Literal, order []int, pos int, b bindings, leaf func(bindings) ram.Op) ram.Op {
	if pos == len(order) {
		return leaf(b)
	}
	lit := body[order[pos]]
	return e.emitLiteral(lit, b, func(b bindings) ram.Op {
		return emitLiterals(e, body, order, pos+1, b, leaf)
	})
}

// projectHead lowers c's head into a Project leaf.
func projectHead(e *clauseEmitter, head ast.Atom, b bindings, target, filter string) ram.Op {
	values := make([]ram.Expr, len(head.Args))
	for i, a := range head.Args {
		values[i] = e.translateArg(a, b)
	}
	return ram.Project{Target: target, Filter: filter, Values: values}
}
