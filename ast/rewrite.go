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

// MapArgument rewrites arg's immediate children with fn and returns the
// resulting node, leaving leaf variants (Var, UnnamedVar, Counter,
// NumConst, SymConst, NullConst, SubArg) unchanged. It is the generic
// "map_children" routine DESIGN NOTES calls for in place of one bespoke
// rewrite per argument kind. Vars does not use it: it walks the whole
// argument tree itself.
func MapArgument(arg Argument, fn func(Argument) Argument) Argument {
	switch n := arg.(type) {
	case UnaryFn:
		return UnaryFn{Op: n.Op, Arg: fn(n.Arg)}
	case BinaryFn:
		return BinaryFn{Op: n.Op, Left: fn(n.Left), Right: fn(n.Right)}
	case TernaryFn:
		return TernaryFn{Sym: fn(n.Sym), Start: fn(n.Start), Len: fn(n.Len)}
	case RecordInit:
		fields := make([]Argument, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = fn(f)
		}
		return RecordInit{Fields: fields}
	case Cast:
		return Cast{To: n.To, Arg: fn(n.Arg)}
	case Aggregate:
		return Aggregate{Fn: n.Fn, Target: fn(n.Target), Relation: n.Relation, Body: n.Body}
	default:
		return arg
	}
}

// Vars returns every distinct variable name mentioned in arg, in
// first-seen order, ignoring the unnamed wildcard.
func Vars(arg Argument) []string {
	var order []string
	seen := map[string]bool{}
	var walk func(Argument)
	walk = func(a Argument) {
		switch n := a.(type) {
		case Var:
			if !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}
		case UnaryFn:
			walk(n.Arg)
		case BinaryFn:
			walk(n.Left)
			walk(n.Right)
		case TernaryFn:
			walk(n.Sym)
			walk(n.Start)
			walk(n.Len)
		case RecordInit:
			for _, f := range n.Fields {
				walk(f)
			}
		case Cast:
			walk(n.Arg)
		case Aggregate:
			walk(n.Target)
			for _, lit := range n.Body {
				for _, v := range LiteralVars(lit) {
					if !seen[v] {
						seen[v] = true
						order = append(order, v)
					}
				}
			}
		}
	}
	walk(arg)
	return order
}

// LiteralVars returns every distinct variable name mentioned anywhere in
// lit, in first-seen order.
func LiteralVars(lit Literal) []string {
	var order []string
	seen := map[string]bool{}
	add := func(vs []string) {
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				order = append(order, v)
			}
		}
	}
	switch n := lit.(type) {
	case Atom:
		for _, a := range n.Args {
			add(Vars(a))
		}
	case Negation:
		add(LiteralVars(n.Atom))
	case BinaryConstraint:
		add(Vars(n.Left))
		add(Vars(n.Right))
	}
	return order
}
