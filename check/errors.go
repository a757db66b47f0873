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

// Package check implements the single-pass semantic checker (§4.8): it
// walks a program's declarations and clauses once, classifying every
// diagnostic as a fatal error or an informational warning, mirroring the
// teacher's sentinel-kind error idiom (see sql.ErrIndexIDAlreadyRegistered,
// auth.ErrNotAuthorized) rather than ad hoc string errors.
package check

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnknownRelation is an atom referencing an undeclared relation.
	ErrUnknownRelation = errors.NewKind("unknown relation %q")
	// ErrDuplicateRelation is a relation declared more than once.
	ErrDuplicateRelation = errors.NewKind("relation %q declared more than once")
	// ErrArityMismatch is an atom whose argument count does not match its
	// relation's declared arity.
	ErrArityMismatch = errors.NewKind("relation %q expects %d argument(s), got %d")
	// ErrUngroundedVariable is a head or negated-body variable with no
	// positive body atom binding it.
	ErrUngroundedVariable = errors.NewKind("variable %q in clause for %q is not grounded by any positive body atom")
	// ErrNonConstantFact is a fact clause whose head contains a variable,
	// wildcard, non-constant functor or counter.
	ErrNonConstantFact = errors.NewKind("fact for %q must use only constants, found a non-constant argument")
	// ErrStratificationCycle is a cycle through a negated or aggregated
	// relation reference.
	ErrStratificationCycle = errors.NewKind("stratification cycle through negated or aggregated reference to %q")
	// ErrMalformedPlan is a user-supplied plan that is not a permutation
	// of the clause's body positions.
	ErrMalformedPlan = errors.NewKind("plan for clause head %q is not a permutation of its %d body position(s)")
	// ErrInlineViolation covers the inlining well-formedness rules: an
	// inlined relation must not be declared input or output, must not sit
	// in a dependency cycle (including one through itself alone), and must not
	// introduce a new variable where it is referenced under negation.
	ErrInlineViolation = errors.NewKind("inline relation %q: %s")
)
