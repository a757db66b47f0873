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
	"github.com/CAFxX/gcnotifier"

	"github.com/soufflego/soufflego/value"
)

// CompactionWatcher rebuilds a relation's index arenas after each garbage
// collection cycle. A relation under heavy semi-naive churn (repeated
// Purge/Insert across iterations, §5) accumulates btree node allocations
// that outlive the tuples they once held; this ties reclamation to the
// runtime's own GC cadence instead of a fixed timer.
type CompactionWatcher struct {
	notifier *gcnotifier.GCNotifier
	done     chan struct{}
}

// WatchForCompaction starts a background goroutine that calls r.Compact
// after every GC cycle, until Stop is called. Callers that never expect
// heavy churn on r (most relations, in practice) can simply not call this.
func (r *Relation) WatchForCompaction() *CompactionWatcher {
	n := gcnotifier.New()
	w := &CompactionWatcher{notifier: n, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-n.AfterGC():
				r.Compact()
			case <-w.done:
				n.Close()
				return
			}
		}
	}()
	return w
}

// Stop ends the background compaction goroutine started by
// WatchForCompaction. Stop is idempotent-unsafe: call it at most once.
func (w *CompactionWatcher) Stop() {
	close(w.done)
}

// Compact rebuilds the total index and every secondary index from their
// own current contents, dropping whatever btree node capacity churn from
// past inserts and removals left allocated but unused.
func (r *Relation) Compact() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tuples []value.Tuple
	r.total.scan(func(t value.Tuple) bool {
		tuples = append(tuples, t)
		return true
	})

	fresh := newIndex(r.total.Perm())
	for _, t := range tuples {
		fresh.insert(t)
	}
	r.total = fresh

	for k, ix := range r.secondary {
		rebuilt := newIndex(ix.Perm())
		for _, t := range tuples {
			rebuilt.insert(t)
		}
		r.secondary[k] = rebuilt
	}
}
