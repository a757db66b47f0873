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

// Op is a RAM operation: a node of the tree nested inside an InsertQuery
// statement (§4.5). Each operation binds at most one context level and
// then recurses into Inner.
type Op interface {
	isOp()
}

// AggOp names the four aggregate functions of §4.5.
type AggOp int

const (
	AggMin AggOp = iota
	AggMax
	AggCount
	AggSum
)

// Scan iterates Relation (or an index range of it), binding Level to each
// tuple in turn and recursing into Inner. An empty Bound means a full scan;
// otherwise Bound lists the bound attribute positions and Pattern the
// expressions for them, in the same order, used to build a range key with
// the rest filled with the domain min/max. PureExistence turns the scan
// into a single non-emptiness probe that runs Inner at most once and does
// not bind Level.
type Scan struct {
	Relation      string
	Level         int
	Bound         []int
	Pattern       []Expr
	PureExistence bool
	Inner         Op
}

func (Scan) isOp() {}

// Lookup unpacks RecordRef (expected to hold a record id of the given
// Arity) and binds Level to the resulting tuple before recursing. The null
// record id skips Inner entirely.
type Lookup struct {
	RecordRef Expr
	Level     int
	Arity     int
	Inner     Op
}

func (Lookup) isOp() {}

// Aggregate folds Target over the range [Bound/Pattern] of Relation using
// Fn, binds the single-attribute result at Level, and — iff Cond passes —
// recurses into Inner. An empty range skips Inner for min/max; for
// count/sum the fold's zero value is produced and Inner still runs.
type Aggregate struct {
	Fn       AggOp
	Target   Expr
	Relation string
	Bound    []int
	Pattern  []Expr
	Level    int
	Cond     Cond
	Inner    Op
}

func (Aggregate) isOp() {}

// Project evaluates Values into a fresh tuple and inserts it into Target,
// skipping the insert if Filter is set and Filter already contains the
// tuple. Project is always a leaf.
type Project struct {
	Values []Expr
	Target string
	Filter string // empty means "no filter"
}

func (Project) isOp() {}

// Return appends Values to the current subroutine's return buffer. A nil
// entry in Values records a 0 with the error flag set at that position.
type Return struct {
	Values []Expr
}

func (Return) isOp() {}

// Search evaluates Cond and, if true, recurses into Inner.
type Search struct {
	Cond  Cond
	Inner Op
}

func (Search) isOp() {}
