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

// Package eval implements the semi-naive bottom-up evaluator: the
// relational-algebra interpreter that walks a ram.Program against a live
// set of store.Relation instances (§4.6).
package eval

import (
	"context"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/soufflego/soufflego/iodirective"
	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/store"
	"github.com/soufflego/soufflego/value"
)

// Engine holds the mutable state one compiled Program runs against: the
// interned symbol table and record pool shared across every relation, the
// relation registry itself, the autoincrement counter, and the logging/
// tracing/I/O collaborators. An Engine is safe to Run or Call from
// multiple goroutines, though a single Run's own Parallel statements are
// the only concurrency the evaluator introduces internally (§5).
type Engine struct {
	symbols *value.SymbolTable
	records *store.RecordPool

	mu        sync.RWMutex
	relations map[string]*store.Relation
	equiv     map[string]bool
	watchers  map[*store.Relation]*store.CompactionWatcher

	counter int64

	logger *logrus.Logger
	tracer opentracing.Tracer
	runID  uuid.UUID

	reader  iodirective.Reader
	writer  iodirective.Writer
	profile iodirective.ProfileSink

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the default logrus.Logger (logrus.StandardLogger).
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer overrides the default opentracing.NoopTracer.
func WithTracer(t opentracing.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithReader wires a Load-statement collaborator; without one, Load is a
// logged no-op.
func WithReader(r iodirective.Reader) Option {
	return func(e *Engine) { e.reader = r }
}

// WithWriter wires a Store-statement collaborator; without one, Store is a
// logged no-op.
func WithWriter(w iodirective.Writer) Option {
	return func(e *Engine) { e.writer = w }
}

// WithProfileSink wires the profile-log collaborator DebugInfo statements
// emit lines to; without one, lines are discarded.
func WithProfileSink(s iodirective.ProfileSink) Option {
	return func(e *Engine) { e.profile = s }
}

// WithSymbols overrides the Engine's fresh value.SymbolTable with one
// shared by another collaborator — the translator that compiled the
// Program being run, for instance — so constant ids agree between
// independently interned data and the compiled plan's constants.
func WithSymbols(s *value.SymbolTable) Option {
	return func(e *Engine) { e.symbols = s }
}

// NewEngine returns a ready Engine with fresh symbol table, record pool,
// and empty relation registry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		symbols:   value.NewSymbolTable(),
		records:   store.NewRecordPool(),
		relations: make(map[string]*store.Relation),
		equiv:     make(map[string]bool),
		watchers:  make(map[*store.Relation]*store.CompactionWatcher),
		logger:    logrus.StandardLogger(),
		tracer:    opentracing.NoopTracer{},
		runID:     uuid.NewV4(),
		profile:   iodirective.NopSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Symbols returns the Engine's shared symbol table, so embedders can
// resolve Return values back into strings.
func (e *Engine) Symbols() *value.SymbolTable { return e.symbols }

// Records returns the Engine's shared record pool.
func (e *Engine) Records() *store.RecordPool { return e.records }

// Relation returns the named relation's current tuples, or false if it has
// never been created (for embedders; internal evaluation uses the
// unexported relation that returns ErrUnknownRelation instead).
func (e *Engine) Relation(name string) (*store.Relation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.relations[name]
	return r, ok
}

func (e *Engine) relation(name string) (*store.Relation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.relations[name]
	if !ok {
		return nil, ErrUnknownRelation.New(name)
	}
	return r, nil
}

func (e *Engine) createRelation(name string, kinds []store.AttrKind, equivalence bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rel := store.New(name, kinds)
	e.relations[name] = rel
	if equivalence {
		e.equiv[name] = true
		// An equivalence relation's closure insertion re-derives and
		// discards far more index nodes per iteration than a plain
		// relation (§4.1), so only these are worth the background
		// compaction goroutine's overhead.
		e.watchers[rel] = rel.WatchForCompaction()
	}
}

func (e *Engine) dropRelation(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rel, ok := e.relations[name]; ok {
		if w, ok := e.watchers[rel]; ok {
			w.Stop()
			delete(e.watchers, rel)
		}
	}
	delete(e.relations, name)
	delete(e.equiv, name)
}

// Close stops every background compaction watcher still running for a live
// equivalence relation. Embedders that keep an Engine around after Run or
// Call returns (to read Relation results, per the Relation doc comment)
// should call Close once they are done with it; an Engine that is simply
// dropped leaks its compaction goroutines until their relations are
// garbage collected.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for rel, w := range e.watchers {
		w.Stop()
		delete(e.watchers, rel)
	}
}

func (e *Engine) swapRelations(a, b string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.relations[a], e.relations[b] = e.relations[b], e.relations[a]
}

func (e *Engine) isEquivalence(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.equiv[name]
}

// insert adds t to the named relation, applying the reflexive/symmetric/
// transitive closure first if the relation was declared "equivalence"
// (§4.1).
func (e *Engine) insert(name string, t value.Tuple) error {
	rel, err := e.relation(name)
	if err != nil {
		return err
	}
	if e.isEquivalence(name) {
		for _, pair := range store.EquivalenceClosure(rel, t) {
			rel.Insert(pair)
		}
		return nil
	}
	rel.Insert(t)
	return nil
}

// merge unions src into dst, applying the equivalence closure on every
// tuple of src instead of a plain union if dst was declared "equivalence".
func (e *Engine) merge(src, dst string) error {
	srcRel, err := e.relation(src)
	if err != nil {
		return err
	}
	dstRel, err := e.relation(dst)
	if err != nil {
		return err
	}
	if !e.isEquivalence(dst) {
		dstRel.InsertAll(srcRel)
		return nil
	}
	var pairs []value.Tuple
	srcRel.Scan(func(t value.Tuple) bool {
		pairs = append(pairs, t.Clone())
		return true
	})
	for _, p := range pairs {
		for _, pair := range store.EquivalenceClosure(dstRel, p) {
			dstRel.Insert(pair)
		}
	}
	return nil
}

// Run executes the program's main statement to completion.
func (e *Engine) Run(ctx context.Context, prog *ram.Program) error {
	span := e.tracer.StartSpan("eval.Run")
	defer span.Finish()

	runCtx := e.withAbort(ctx)
	rb := newRootBindings(nil)
	_, err := evalStmt(runCtx, e, rb, prog.Main)
	return err
}

// withAbort wraps ctx in a cancelable context and records the cancel
// func so a concurrent call to Abort can stop the run cooperatively —
// the Go analogue of the original interpreter's raw signal handler
// (SIGSEGV/SIGFPE aborting evaluation, §5), since Go programs steer
// cancellation through context.Context rather than installing signal
// handlers for control flow.
func (e *Engine) withAbort(ctx context.Context) context.Context {
	runCtx, cancel := context.WithCancel(ctx)
	e.cancelMu.Lock()
	e.cancel = cancel
	e.cancelMu.Unlock()
	return runCtx
}

// Abort cooperatively cancels the Engine's in-flight Run or Call, if any.
// Evaluation stops at the next statement boundary (ctx.Err() is checked by
// evalStmt) rather than mid-operation; there is no partial rollback (§5).
func (e *Engine) Abort() {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Call invokes the named subroutine with the given argument values,
// returning its accumulated Return values and the parallel error-flag list
// (§6).
func (e *Engine) Call(ctx context.Context, prog *ram.Program, name string, args []value.Value) ([]value.Value, []bool, error) {
	body, ok := prog.Subroutines[name]
	if !ok {
		return nil, nil, ErrUnknownSubroutine.New(name)
	}
	span := e.tracer.StartSpan("eval.Call")
	span.SetTag("subroutine", name)
	defer span.Finish()

	runCtx := e.withAbort(ctx)
	rb := newRootBindings(args)
	if _, err := evalStmt(runCtx, e, rb, body); err != nil {
		return nil, nil, err
	}
	return rb.out.Values, rb.out.Errs, nil
}
