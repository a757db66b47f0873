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

// Literal is a clause body element: the narrow variant interface for
// atoms, negated atoms, and constraints.
type Literal interface {
	isLiteral()
}

// Atom applies Relation to Args. A head atom's Args must be grounded
// entirely by constants (a fact) or by the body (a rule); a body atom
// binds whatever variables of Args are not yet bound.
type Atom struct {
	Relation string
	Args     []Argument
}

func (Atom) isLiteral() {}

// Negation is a negated body atom: true iff no tuple of Atom's relation
// matches the current bindings of Atom's grounded arguments.
type Negation struct {
	Atom Atom
}

func (Negation) isLiteral() {}

// BooleanConstraint is a literal `true` or `false` body element, used by
// generated clauses and as a degenerate always-true/always-false guard.
type BooleanConstraint struct {
	Value bool
}

func (BooleanConstraint) isLiteral() {}

// RelOp names the binary comparison/match/contains operators a
// constraint literal may use.
type RelOp int

const (
	Eq RelOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
	Match
	NotMatch
	Contains
	NotContains
)

// BinaryConstraint is a comparison/match/contains body literal.
type BinaryConstraint struct {
	Op          RelOp
	Left, Right Argument
}

func (BinaryConstraint) isLiteral() {}
