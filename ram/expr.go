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

// Package ram defines the relational-algebra intermediate representation
// (RAM): the small algebraic IR the translator emits and the evaluator
// walks. Each syntactic category (Expr, Cond, Op, Stmt) is a narrow
// interface with one marker method, implemented by a handful of concrete
// structs — the "two narrow variant enums" idiom used throughout this
// engine in place of deep node-class inheritance.
package ram

import "github.com/soufflego/soufflego/value"

// Expr is a RAM value expression: something the evaluator reduces to a
// single value.Value given a Context.
type Expr interface {
	isExpr()
}

// UnaryOp names the unary functors of §4.3.
type UnaryOp int

const (
	Neg UnaryOp = iota
	BNot
	LNot
	Ord
	StrLen
)

// BinaryOp names the binary functors of §4.3.
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
	MinOp
	MaxOp
	Cat
)

// Const is a constant number or interned symbol id, already resolved to a
// value.Value by translation time.
type Const struct {
	V value.Value
}

func (Const) isExpr() {}

// FieldRef reads context[Level][Position]: the value bound by an enclosing
// scan/lookup/aggregate at Level.
type FieldRef struct {
	Level    int
	Position int
}

func (FieldRef) isExpr() {}

// Unary applies a UnaryOp to Arg.
type Unary struct {
	Op  UnaryOp
	Arg Expr
}

func (Unary) isExpr() {}

// Binary applies a BinaryOp to Left and Right.
type Binary struct {
	Op          BinaryOp
	Left, Right Expr
}

func (Binary) isExpr() {}

// Substring is the ternary substring functor: resolve(Sym)[Start:Start+Len].
type Substring struct {
	Sym   Expr
	Start Expr
	Len   Expr
}

func (Substring) isExpr() {}

// Pack interns Values as a single record id via the record pool.
type Pack struct {
	Values []Expr
}

func (Pack) isExpr() {}

// AutoInc yields a fresh, monotonically increasing integer from the
// evaluator's per-run counter.
type AutoInc struct{}

func (AutoInc) isExpr() {}

// SubroutineArg reads the Index-th argument of the subroutine currently
// being invoked.
type SubroutineArg struct {
	Index int
}

func (SubroutineArg) isExpr() {}
