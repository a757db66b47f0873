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

func strSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVarsCollectsInFirstSeenOrderWithoutDuplicates(t *testing.T) {
	arg := BinaryFn{
		Op:   Add,
		Left: Var{Name: "X"},
		Right: BinaryFn{
			Op:    Mul,
			Left:  Var{Name: "Y"},
			Right: Var{Name: "X"},
		},
	}
	got := Vars(arg)
	want := []string{"X", "Y"}
	if !strSlicesEqual(got, want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
}

func TestVarsIgnoresUnnamedVar(t *testing.T) {
	arg := RecordInit{Fields: []Argument{UnnamedVar{}, Var{Name: "A"}, UnnamedVar{}}}
	got := Vars(arg)
	want := []string{"A"}
	if !strSlicesEqual(got, want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
}

func TestVarsDescendsIntoAggregateBody(t *testing.T) {
	arg := Aggregate{
		Fn:       AggSum,
		Target:   Var{Name: "W"},
		Relation: "edge",
		Body: []Literal{
			Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "W"}}},
		},
	}
	got := Vars(arg)
	want := []string{"W", "A"}
	if !strSlicesEqual(got, want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
}

func TestLiteralVarsAtomAndNegation(t *testing.T) {
	atom := Atom{Relation: "edge", Args: []Argument{Var{Name: "A"}, Var{Name: "B"}}}
	if got := LiteralVars(atom); !strSlicesEqual(got, []string{"A", "B"}) {
		t.Fatalf("LiteralVars(atom) = %v", got)
	}

	neg := Negation{Atom: Atom{Relation: "blocked", Args: []Argument{Var{Name: "A"}, Var{Name: "C"}}}}
	if got := LiteralVars(neg); !strSlicesEqual(got, []string{"A", "C"}) {
		t.Fatalf("LiteralVars(negation) = %v", got)
	}
}

func TestLiteralVarsBinaryConstraint(t *testing.T) {
	lit := BinaryConstraint{Op: Lt, Left: Var{Name: "X"}, Right: NumConst{Value: 10}}
	got := LiteralVars(lit)
	want := []string{"X"}
	if !strSlicesEqual(got, want) {
		t.Fatalf("LiteralVars(constraint) = %v, want %v", got, want)
	}
}

func TestMapArgumentRewritesImmediateChildrenOnly(t *testing.T) {
	rename := func(a Argument) Argument {
		if v, ok := a.(Var); ok {
			return Var{Name: v.Name + "'"}
		}
		return a
	}

	arg := BinaryFn{Op: Add, Left: Var{Name: "X"}, Right: NumConst{Value: 1}}
	got := MapArgument(arg, rename)
	bf, ok := got.(BinaryFn)
	if !ok {
		t.Fatalf("MapArgument returned %T, want BinaryFn", got)
	}
	if v, ok := bf.Left.(Var); !ok || v.Name != "X'" {
		t.Fatalf("Left = %v, want renamed Var", bf.Left)
	}
	if n, ok := bf.Right.(NumConst); !ok || n.Value != 1 {
		t.Fatalf("Right = %v, want unchanged NumConst", bf.Right)
	}
}

func TestMapArgumentLeavesLeavesUnchanged(t *testing.T) {
	leaves := []Argument{Var{Name: "X"}, UnnamedVar{}, Counter{}, NumConst{Value: 5}, SymConst{Value: "s"}, NullConst{}, SubArg{Index: 1}}
	for _, leaf := range leaves {
		got := MapArgument(leaf, func(a Argument) Argument { t.Fatal("fn should not be called on a leaf"); return a })
		if got != leaf {
			t.Fatalf("MapArgument(%v) = %v, want unchanged", leaf, got)
		}
	}
}

func TestMapArgumentRecordInitRewritesEachField(t *testing.T) {
	toZero := func(Argument) Argument { return NumConst{Value: 0} }
	arg := RecordInit{Fields: []Argument{Var{Name: "A"}, Var{Name: "B"}}}
	got := MapArgument(arg, toZero).(RecordInit)
	if len(got.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got.Fields))
	}
	for _, f := range got.Fields {
		if n, ok := f.(NumConst); !ok || n.Value != 0 {
			t.Fatalf("field = %v, want NumConst{0}", f)
		}
	}
}
