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

// Package ast defines the source-level Datalog syntax tree the translator
// consumes: relation declarations, clauses (a head atom plus a body of
// literals), and the argument expressions literals are built from. The
// lexer/parser that produces a Program is an external collaborator; this
// package only defines the tree shape and the minimal semantic-checker
// support (grounding, variable collection, stratification graph) that
// makes translation total.
package ast

// Argument is a clause argument expression: the narrow variant interface
// standing in for the deep argument-class hierarchy a visitor-based AST
// would use (§9's "two narrow variant enums").
type Argument interface {
	isArgument()
}

// Var references a clause variable by name.
type Var struct {
	Name string
}

func (Var) isArgument() {}

// UnnamedVar is the `_` wildcard: grounded implicitly, never reused.
type UnnamedVar struct{}

func (UnnamedVar) isArgument() {}

// Counter is the `$` auto-increment syntax.
type Counter struct{}

func (Counter) isArgument() {}

// NumConst is an integer literal.
type NumConst struct {
	Value int64
}

func (NumConst) isArgument() {}

// SymConst is a quoted string literal, interned at translation time.
type SymConst struct {
	Value string
}

func (SymConst) isArgument() {}

// NullConst is the null-record literal.
type NullConst struct{}

func (NullConst) isArgument() {}

// UnaryOp names the unary functors a source program can apply.
type UnaryOp int

const (
	Neg UnaryOp = iota
	BNot
	LNot
	Ord
	StrLen
)

// UnaryFn applies a UnaryOp to Arg.
type UnaryFn struct {
	Op  UnaryOp
	Arg Argument
}

func (UnaryFn) isArgument() {}

// BinaryOp names the binary functors a source program can apply.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Exp
	BAnd
	BOr
	BXor
	LAnd
	LOr
	Min
	Max
	Cat
)

// BinaryFn applies a BinaryOp to Left and Right.
type BinaryFn struct {
	Op          BinaryOp
	Left, Right Argument
}

func (BinaryFn) isArgument() {}

// TernaryFn is the substring functor: resolve(Sym)[Start:Start+Len].
type TernaryFn struct {
	Sym, Start, Len Argument
}

func (TernaryFn) isArgument() {}

// RecordInit constructs a record value from its field expressions.
type RecordInit struct {
	Fields []Argument
}

func (RecordInit) isArgument() {}

// AttrKind names a declared attribute's domain.
type AttrKind int

const (
	KindNumber AttrKind = iota
	KindSymbol
	KindRecord
)

// Cast asserts Arg's runtime value belongs to To's domain, a checked
// no-op at the value level (the domain is one shared integer) but
// meaningful to the semantic checker's type pass.
type Cast struct {
	To  AttrKind
	Arg Argument
}

func (Cast) isArgument() {}

// AggFn names the four aggregate functions a clause argument may invoke.
type AggFn int

const (
	AggMin AggFn = iota
	AggMax
	AggCount
	AggSum
)

// Aggregate is an intra-clause aggregate argument: the value of Target
// folded by Fn over every binding of Body, itself a small nested clause
// body (its own variables are local to the aggregate).
type Aggregate struct {
	Fn       AggFn
	Target   Argument
	Relation string
	Body     []Literal
}

func (Aggregate) isArgument() {}

// SubArg reads the Index-th argument of the subroutine currently being
// invoked (meaningful only inside a subroutine-only clause).
type SubArg struct {
	Index int
}

func (SubArg) isArgument() {}
