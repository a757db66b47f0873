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

package store

import (
	"sync"

	"github.com/mitchellh/hashstructure"

	"github.com/soufflego/soufflego/value"
)

// RecordPool interns fixed-arity tuples as single Values ("records"). Id 0
// is reserved for the null record; two structurally identical tuples always
// share an id.
//
// Interning is content-addressed the way IndexedMemoryMatcher-style stores
// index by hash and filter collisions with an exact match: hashstructure
// gives a candidate bucket in O(1), and ties within a bucket are broken by
// a direct Tuple.Equal.
type RecordPool struct {
	mu      sync.RWMutex
	records []value.Tuple   // index 0 is the reserved null record
	byHash  map[uint64][]value.Value
}

// NewRecordPool returns a pool with only the null record (id 0) present.
func NewRecordPool() *RecordPool {
	return &RecordPool{
		records: []value.Tuple{nil},
		byHash:  make(map[uint64][]value.Value),
	}
}

// Pack interns t and returns its stable id. A nil or empty tuple packs to
// value.NullRecord.
func (p *RecordPool) Pack(t value.Tuple) value.Value {
	if len(t) == 0 {
		return value.NullRecord
	}

	h := contentHash(t)

	p.mu.RLock()
	for _, id := range p.byHash[h] {
		if p.records[id].Equal(t) {
			p.mu.RUnlock()
			return id
		}
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	// re-check: another writer may have interned t while we waited.
	for _, id := range p.byHash[h] {
		if p.records[id].Equal(t) {
			return id
		}
	}
	id := value.Value(len(p.records))
	p.records = append(p.records, t.Clone())
	p.byHash[h] = append(p.byHash[h], id)
	return id
}

// Unpack returns the tuple stored under id. The caller supplies the
// expected arity as a sanity check, matching the evaluator's lookup
// operation (§4.5) which always knows the record type's arity statically.
func (p *RecordPool) Unpack(id value.Value, arity int) value.Tuple {
	if id == value.NullRecord {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	t := p.records[id]
	if len(t) != arity {
		panic("store: RecordPool.Unpack arity mismatch")
	}
	return t
}

func contentHash(t value.Tuple) uint64 {
	h, err := hashstructure.Hash(t, nil)
	if err != nil {
		// hashstructure only fails on unsupported types (channels, funcs);
		// value.Tuple is a plain []int64 and can never trigger that path.
		panic(err)
	}
	return h
}
