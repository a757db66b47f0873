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

// Package value defines the engine's single value domain: a fixed-width
// signed integer shared by numbers, interned symbols, and record ids.
package value

import "math"

// Value is the engine's only runtime value type. Numbers, interned symbol
// ids, and record pool ids all live in this one domain; nothing in the
// engine is polymorphic over a second (e.g. floating point) domain.
type Value int64

// Min and Max bound the domain and are used to fill the unbound tail of a
// range key (see store.Relation.Range).
const (
	Min Value = math.MinInt64
	Max Value = math.MaxInt64
)

// NullRecord is the record id reserved for the null-constant syntax; id 0
// is never allocated by a RecordPool.
const NullRecord Value = 0

// Tuple is a fixed-arity row of Values. Once inserted into a Relation a
// Tuple is never mutated; callers that need to change a value build a new
// Tuple.
type Tuple []Value

// Equal reports whether two tuples have the same arity and values.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of t so that the caller may retain it independently
// of whatever storage it was read from.
func (t Tuple) Clone() Tuple {
	c := make(Tuple, len(t))
	copy(c, t)
	return c
}

// Less gives tuples their lexicographic order over raw Value comparison;
// Index uses this (after permuting columns) to keep tuples sorted.
func Less(a, b Tuple) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
