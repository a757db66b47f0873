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

package ram

import "github.com/soufflego/soufflego/store"

// Stmt is a RAM statement: the outer structure of a program (§4.6).
type Stmt interface {
	isStmt()
}

// Sequence runs Stmts in order, stopping early if one reports an exit
// signal (see ExitIf).
type Sequence struct {
	Stmts []Stmt
}

func (Sequence) isStmt() {}

// Parallel runs Stmts concurrently and joins before returning; the
// children must not share mutable state other than through the relation
// store's own thread-safe operations (§5).
type Parallel struct {
	Stmts []Stmt
}

func (Parallel) isStmt() {}

// Loop repeats Body until an ExitIf nested within it fires.
type Loop struct {
	Body Stmt
}

func (Loop) isStmt() {}

// ExitIf evaluates Cond; if true, the enclosing Loop terminates. The exit
// signal returns through every enclosing Sequence at once, so statements
// after the ExitIf in the same body do not run in that iteration.
type ExitIf struct {
	Cond Cond
}

func (ExitIf) isStmt() {}

// Create declares a new relation with the given arity and attribute kinds.
type Create struct {
	Relation    string
	Kinds       []store.AttrKind
	Equivalence bool
}

func (Create) isStmt() {}

// Clear removes every tuple from Relation but keeps it declared.
type Clear struct {
	Relation string
}

func (Clear) isStmt() {}

// Drop removes Relation entirely.
type Drop struct {
	Relation string
}

func (Drop) isStmt() {}

// Merge is set-union of Src into Dst; for an equivalence Dst it applies
// the reflexive/symmetric/transitive closure (§4.1) rather than a plain
// union.
type Merge struct {
	Src, Dst string
}

func (Merge) isStmt() {}

// Swap exchanges the contents of two relations (used to rotate @delta_R
// and @new_R between semi-naive iterations).
type Swap struct {
	A, B string
}

func (Swap) isStmt() {}

// Load delegates reading Relation's initial contents to the I/O
// collaborator (§6), using Directives as the key/value option map (e.g.
// delimiter, filename).
type Load struct {
	Relation   string
	Directives map[string]string
}

func (Load) isStmt() {}

// Store delegates writing Relation's final contents to the I/O
// collaborator.
type Store struct {
	Relation   string
	Directives map[string]string
}

func (Store) isStmt() {}

// InsertQuery evaluates a nested Op tree; every rule body lives here.
type InsertQuery struct {
	Op Op
}

func (InsertQuery) isStmt() {}

// DebugInfo wraps Inner with a diagnostic message (the "current rule" text
// consulted by the signal handler and written to the profile log) without
// otherwise altering its semantics.
type DebugInfo struct {
	Message string
	Inner   Stmt
}

func (DebugInfo) isStmt() {}
