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

// Package store implements the engine's indexed in-memory relation store:
// fixed-arity tuple sets with automatically-selected secondary indices, a
// record pool for nested values, and the equivalence-relation
// specialization.
package store

import (
	"sync"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/soufflego/soufflego/store/indexselect"
	"github.com/soufflego/soufflego/value"
)

// ErrArityMismatch is raised when a tuple of the wrong arity is inserted
// into a relation. It is always a programmer error; no I/O or user data is
// involved.
var ErrArityMismatch = errors.NewKind("store: arity mismatch: relation %q expects %d attributes, got %d")

// Relation is a named, fixed-arity set of tuples with zero or more
// secondary ordered indices. One index — the total index, keyed on the
// identity permutation — always exists and backs existence tests.
type Relation struct {
	name   string
	arity  int
	kinds  []AttrKind

	mu         sync.RWMutex
	total      *Index
	secondary  map[string]*Index
	patternsMu sync.Mutex
	patterns   map[string]bool // dedup set of bound-position patterns observed so far
}

// New creates an empty relation with the given name, arity and per-attribute
// kinds. Relations start with only the total index; secondary indices are
// materialized lazily by RequestIndex, or up front by ApplyCover.
func New(name string, kinds []AttrKind) *Relation {
	arity := len(kinds)
	return &Relation{
		name:      name,
		arity:     arity,
		kinds:     kinds,
		total:     newIndex(identityPerm(arity)),
		secondary: make(map[string]*Index),
		patterns:  make(map[string]bool),
	}
}

// Name returns the relation's declared name.
func (r *Relation) Name() string { return r.name }

// Arity returns the relation's fixed tuple arity.
func (r *Relation) Arity() int { return r.arity }

// Kinds returns the declared attribute kinds, in position order.
func (r *Relation) Kinds() []AttrKind { return r.kinds }

func (r *Relation) checkArity(t value.Tuple) {
	if len(t) != r.arity {
		panic(ErrArityMismatch.New(r.name, r.arity, len(t)))
	}
}

// Insert adds tuple if it is not already present and reports whether the
// relation changed. The tuple is copied.
func (r *Relation) Insert(t value.Tuple) bool {
	r.checkArity(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(t)
}

func (r *Relation) insertLocked(t value.Tuple) bool {
	if r.total.has(t) {
		return false
	}
	cp := t.Clone()
	r.total.insert(cp)
	for _, ix := range r.secondary {
		ix.insert(cp)
	}
	return true
}

// InsertAll unions other into r; it is the canonical way to merge a delta
// or new relation into a full one during the semi-naive loop (§4.6). other
// is only read, never mutated, by this call.
func (r *Relation) InsertAll(other *Relation) bool {
	if other == nil {
		return false
	}
	other.mu.RLock()
	tuples := make([]value.Tuple, 0, other.total.len())
	other.total.scan(func(t value.Tuple) bool {
		tuples = append(tuples, t)
		return true
	})
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	changed := false
	for _, t := range tuples {
		if r.insertLocked(t) {
			changed = true
		}
	}
	return changed
}

// Contains is an existence test using the total index.
func (r *Relation) Contains(t value.Tuple) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total.has(t)
}

// IsEmpty reports whether the relation currently holds no tuples.
func (r *Relation) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total.len() == 0
}

// Size returns the number of distinct tuples currently stored.
func (r *Relation) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total.len()
}

// Scan invokes fn with every tuple exactly once, in an unspecified but
// stable order, stopping early if fn returns false.
func (r *Relation) Scan(fn func(value.Tuple) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.total.scan(fn)
}

// RequestIndex returns an index whose permutation has bound as a prefix,
// materializing one on first demand if none exists yet. bound is recorded
// so a later call to Cover can feed the program's full pattern set back
// into the index selector.
func (r *Relation) RequestIndex(bound []int) *Index {
	r.recordPattern(bound)

	r.mu.RLock()
	if ix := r.findCompatibleLocked(bound); ix != nil {
		r.mu.RUnlock()
		return ix
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if ix := r.findCompatibleLocked(bound); ix != nil {
		return ix
	}
	return r.materializeLocked(indexselect.Perm(buildPermFor(r.arity, bound)))
}

func (r *Relation) findCompatibleLocked(bound []int) *Index {
	if r.total.IsPrefix(bound) {
		return r.total
	}
	for _, ix := range r.secondary {
		if ix.IsPrefix(bound) {
			return ix
		}
	}
	return nil
}

func (r *Relation) materializeLocked(perm indexselect.Perm) *Index {
	ix := newIndex(perm)
	r.total.scan(func(t value.Tuple) bool {
		ix.insert(t)
		return true
	})
	r.secondary[permKey(perm)] = ix
	return ix
}

// ApplyCover materializes every permutation the index selector chose for
// this relation ahead of a run, so that later RequestIndex calls for any
// pattern submitted during selection are satisfied without a lazy build.
func (r *Relation) ApplyCover(cover []indexselect.Perm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, perm := range cover {
		if permEqual(perm, r.total.Perm()) {
			continue
		}
		if _, ok := r.secondary[permKey(perm)]; ok {
			continue
		}
		r.materializeLocked(perm)
	}
}

func (r *Relation) recordPattern(bound []int) {
	r.patternsMu.Lock()
	defer r.patternsMu.Unlock()
	r.patterns[patternKey(bound)] = true
}

// ObservedPatterns returns every distinct bound-position set requested of
// this relation so far, as input to indexselect.Cover.
func (r *Relation) ObservedPatterns() []indexselect.Pattern {
	r.patternsMu.Lock()
	defer r.patternsMu.Unlock()
	out := make([]indexselect.Pattern, 0, len(r.patterns))
	for k := range r.patterns {
		out = append(out, decodePatternKey(k))
	}
	return out
}

// Range iterates the half-open range [lower, upper) of the index matching
// bound, where lower and upper are full-arity tuples with unbound
// positions already filled in by the caller (value.Min / value.Max, or an
// exact value on both sides for a fully-bound equal-range lookup).
func (r *Relation) Range(bound []int, lower, upper value.Tuple, fn func(value.Tuple) bool) {
	ix := r.RequestIndex(bound)
	r.mu.RLock()
	defer r.mu.RUnlock()
	ix.rangeScan(lower, upper, fn)
}

// Purge removes all tuples but keeps index structure, so future lookups
// against the same bound patterns keep using the already-materialized
// indices.
func (r *Relation) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	arity := r.arity
	r.total = newIndex(identityPerm(arity))
	for k, ix := range r.secondary {
		r.secondary[k] = newIndex(ix.Perm())
	}
}

// Partition splits a full scan into n roughly balanced sub-iterators for
// parallel consumption by independent workers (§5). Each returned function
// invokes fn over its disjoint share of the tuples.
func (r *Relation) Partition(n int) []func(fn func(value.Tuple) bool) {
	if n < 1 {
		n = 1
	}
	r.mu.RLock()
	all := make([]value.Tuple, 0, r.total.len())
	r.total.scan(func(t value.Tuple) bool {
		all = append(all, t)
		return true
	})
	r.mu.RUnlock()

	parts := make([]func(func(value.Tuple) bool), 0, n)
	chunk := (len(all) + n - 1) / n
	if chunk == 0 {
		chunk = 1
	}
	for start := 0; start < len(all); start += chunk {
		end := start + chunk
		if end > len(all) {
			end = len(all)
		}
		share := all[start:end]
		parts = append(parts, func(fn func(value.Tuple) bool) {
			for _, t := range share {
				if !fn(t) {
					return
				}
			}
		})
	}
	return parts
}

func buildPermFor(arity int, bound []int) []int {
	boundSet := make(map[int]bool, len(bound))
	for _, b := range bound {
		boundSet[b] = true
	}
	perm := make([]int, 0, arity)
	perm = append(perm, bound...)
	for i := 0; i < arity; i++ {
		if !boundSet[i] {
			perm = append(perm, i)
		}
	}
	return perm
}

func permKey(perm indexselect.Perm) string {
	return permKeyOrdered(perm)
}

func permEqual(a, b []int) bool {
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
