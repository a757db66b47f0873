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
	"github.com/soufflego/soufflego/value"
)

// bindings maps a clause-local variable name to the RAM expression that
// reads its bound value: a FieldRef into whichever scan/lookup/aggregate
// level first bound it.
type bindings map[string]ram.Expr

// clauseEmitter holds the per-clause translation state: the symbol table
// constants are interned against, and the next unused context level.
type clauseEmitter struct {
	symbols   *value.SymbolTable
	nextLevel int
}

func newClauseEmitter(symbols *value.SymbolTable) *clauseEmitter {
	return &clauseEmitter{symbols: symbols}
}

func (e *clauseEmitter) freshLevel() int {
	l := e.nextLevel
	e.nextLevel++
	return l
}

// translateArg lowers a as a value expression given the current
// bindings. Aggregate arguments are not handled here: the clause emitter
// pre-processes them into a level binding before the rest of the body is
// walked (see emitAggregateArg).
func (e *clauseEmitter) translateArg(a ast.Argument, b bindings) ram.Expr {
	switch n := a.(type) {
	case ast.Var:
		if expr, ok := b[n.Name]; ok {
			return expr
		}
		return ram.Const{V: 0}
	case ast.UnnamedVar:
		return ram.Const{V: 0}
	case ast.Counter:
		return ram.AutoInc{}
	case ast.NumConst:
		return ram.Const{V: value.Value(n.Value)}
	case ast.SymConst:
		return ram.Const{V: e.symbols.Intern(n.Value)}
	case ast.NullConst:
		return ram.Const{V: value.NullRecord}
	case ast.UnaryFn:
		return ram.Unary{Op: ram.UnaryOp(n.Op), Arg: e.translateArg(n.Arg, b)}
	case ast.BinaryFn:
		return ram.Binary{Op: ram.BinaryOp(n.Op), Left: e.translateArg(n.Left, b), Right: e.translateArg(n.Right, b)}
	case ast.TernaryFn:
		return ram.Substring{Sym: e.translateArg(n.Sym, b), Start: e.translateArg(n.Start, b), Len: e.translateArg(n.Len, b)}
	case ast.RecordInit:
		values := make([]ram.Expr, len(n.Fields))
		for i, f := range n.Fields {
			values[i] = e.translateArg(f, b)
		}
		return ram.Pack{Values: values}
	case ast.Cast:
		return e.translateArg(n.Arg, b)
	case ast.SubArg:
		return ram.SubroutineArg{Index: n.Index}
	case ast.Aggregate:
		// Reached only if an aggregate argument appears somewhere
		// emitAggregateArgs did not pre-bind; translate it to a fallback
		// zero rather than lowering the nested body twice.
		return ram.Const{V: 0}
	default:
		return ram.Const{V: 0}
	}
}

func relOp(op ast.RelOp) ram.RelOp { return ram.RelOp(op) }

// atomLayout, built by layoutAtom, holds the Bound/Pattern pair of an
// atom's already-known argument positions (constants, or variables bound
// by an earlier literal) and records, for positions whose variable is fresh in this
// atom, any other position within the SAME atom that also first saw it —
// the intra-atom self-join case (e.g. edge(X, X)) a scan's Bound can't
// express because neither position is bound before the scan starts.
type atomLayout struct {
	bound      []int
	pattern    []ram.Expr
	selfEquals [][2]int // pairs of positions within this atom requiring equality
	freshAt    map[string]int
}

func (e *clauseEmitter) layoutAtom(args []ast.Argument, b bindings) atomLayout {
	layout := atomLayout{freshAt: map[string]int{}}
	for pos, arg := range args {
		v, isVar := arg.(ast.Var)
		if !isVar {
			if _, isWildcard := arg.(ast.UnnamedVar); isWildcard {
				continue
			}
			layout.bound = append(layout.bound, pos)
			layout.pattern = append(layout.pattern, e.translateArg(arg, b))
			continue
		}
		if expr, ok := b[v.Name]; ok {
			layout.bound = append(layout.bound, pos)
			layout.pattern = append(layout.pattern, expr)
			continue
		}
		if first, seen := layout.freshAt[v.Name]; seen {
			layout.selfEquals = append(layout.selfEquals, [2]int{first, pos})
			continue
		}
		layout.freshAt[v.Name] = pos
	}
	return layout
}

// bindFreshVars records, into b, a FieldRef for every variable this atom
// introduced for the first time at level.
func bindFreshVars(layout atomLayout, level int, b bindings) {
	for name, pos := range layout.freshAt {
		if _, already := b[name]; !already {
			b[name] = ram.FieldRef{Level: level, Position: pos}
		}
	}
}

// emitAtom wraps cont in a Scan over atom, handling both cross-atom joins
// (via Bound/Pattern) and intra-atom repeated variables (via a Search
// equality check immediately inside the scan).
func (e *clauseEmitter) emitAtom(atom ast.Atom, b bindings, cont func(bindings) ram.Op) ram.Op {
	return e.emitAtomNamed(atom, atom.Relation, b, cont)
}

// emitAtomNamed is emitAtom with the scanned relation name overridden,
// used by the semi-naive frame to scan a stratum-mate's delta temporary
// in place of the relation itself.
func (e *clauseEmitter) emitAtomNamed(atom ast.Atom, relation string, b bindings, cont func(bindings) ram.Op) ram.Op {
	level := e.freshLevel()
	layout := e.layoutAtom(atom.Args, b)
	bindFreshVars(layout, level, b)

	wrapped := cont(b)
	for _, pair := range layout.selfEquals {
		wrapped = ram.Search{
			Cond: ram.Compare{
				Op:    ram.Eq,
				Left:  ram.FieldRef{Level: level, Position: pair[0]},
				Right: ram.FieldRef{Level: level, Position: pair[1]},
			},
			Inner: wrapped,
		}
	}
	return ram.Scan{
		Relation: relation,
		Level:    level,
		Bound:    layout.bound,
		Pattern:  layout.pattern,
		Inner:    wrapped,
	}
}

// emitNegation wraps cont in a Search over a NotExists condition; the
// checker guarantees every variable Negation.Atom references is already
// bound, so every position contributes to Bound/Pattern (Total is true).
func (e *clauseEmitter) emitNegation(neg ast.Negation, b bindings, cont func(bindings) ram.Op) ram.Op {
	layout := e.layoutAtom(neg.Atom.Args, b)
	total := len(layout.bound) == len(neg.Atom.Args)
	return ram.Search{
		Cond: ram.NotExists{
			Relation: neg.Atom.Relation,
			Bound:    layout.bound,
			Key:      layout.pattern,
			Total:    total,
		},
		Inner: cont(b),
	}
}

func (e *clauseEmitter) emitConstraint(c ast.BinaryConstraint, b bindings, cont func(bindings) ram.Op) ram.Op {
	return ram.Search{
		Cond: ram.Compare{
			Op:    relOp(c.Op),
			Left:  e.translateArg(c.Left, b),
			Right: e.translateArg(c.Right, b),
		},
		Inner: cont(b),
	}
}

func (e *clauseEmitter) emitBoolean(c ast.BooleanConstraint, b bindings, cont func(bindings) ram.Op) ram.Op {
	if c.Value {
		return cont(b)
	}
	return ram.Search{
		Cond:  ram.Compare{Op: ram.Eq, Left: ram.Const{V: 0}, Right: ram.Const{V: 1}},
		Inner: cont(b),
	}
}

// emitLiteral dispatches one body literal in the chosen order, recursing
// via cont for everything nested inside it.
func (e *clauseEmitter) emitLiteral(lit ast.Literal, b bindings, cont func(bindings) ram.Op) ram.Op {
	switch n := lit.(type) {
	case ast.Atom:
		return e.emitAtom(n, b, cont)
	case ast.Negation:
		return e.emitNegation(n, b, cont)
	case ast.BinaryConstraint:
		return e.emitConstraint(n, b, cont)
	case ast.BooleanConstraint:
		return e.emitBoolean(n, b, cont)
	default:
		panic(fmt.Sprintf("translate: unknown literal type %T", lit))
	}
}
