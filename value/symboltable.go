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

package value

import "sync"

// SymbolTable interns strings into Values. Ids are assigned in insertion
// order and are never reused, so ids generated during a run stay stable for
// the lifetime of that run (the RecordPool and the evaluator's
// subroutine-argument path both depend on that).
type SymbolTable struct {
	mu      sync.RWMutex
	strings []string
	ids     map[string]Value
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		ids: make(map[string]Value),
	}
}

// Intern returns the Value for s, allocating a fresh one on first sight.
func (t *SymbolTable) Intern(s string) Value {
	t.mu.RLock()
	if v, ok := t.ids[s]; ok {
		t.mu.RUnlock()
		return v
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	// another writer may have interned s while we waited for the lock.
	if v, ok := t.ids[s]; ok {
		return v
	}
	v := Value(len(t.strings))
	t.strings = append(t.strings, s)
	t.ids[s] = v
	return v
}

// Resolve returns the string previously interned as v. Resolve panics if v
// was never returned by Intern on this table; that is always a programmer
// error (a forged Value), never a data error.
func (t *SymbolTable) Resolve(v Value) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int64(v) < 0 || int(v) >= len(t.strings) {
		panic("value: Resolve of unknown symbol id")
	}
	return t.strings[v]
}

// Len returns the number of distinct strings interned so far.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}
