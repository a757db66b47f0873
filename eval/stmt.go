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

package eval

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/value"
)

// evalStmt walks one RAM statement, returning whether an ExitIf nested
// directly within it (not inside a further Loop, which absorbs its own)
// fired, so that an enclosing Sequence or Loop can react (§4.6).
func evalStmt(ctx context.Context, e *Engine, rb *Bindings, st ram.Stmt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	switch n := st.(type) {
	case ram.Sequence:
		for _, child := range n.Stmts {
			exit, err := evalStmt(ctx, e, rb, child)
			if err != nil {
				return false, err
			}
			if exit {
				return true, nil
			}
		}
		return false, nil

	case ram.Parallel:
		return evalParallel(ctx, e, rb, n)

	case ram.Loop:
		return evalLoop(ctx, e, rb, n)

	case ram.ExitIf:
		ok, err := evalCond(e, rb.forOp(), n.Cond)
		return ok, err

	case ram.Create:
		e.createRelation(n.Relation, n.Kinds, n.Equivalence)
		return false, nil

	case ram.Clear:
		rel, err := e.relation(n.Relation)
		if err != nil {
			return false, err
		}
		rel.Purge()
		return false, nil

	case ram.Drop:
		e.dropRelation(n.Relation)
		return false, nil

	case ram.Merge:
		return false, e.merge(n.Src, n.Dst)

	case ram.Swap:
		e.swapRelations(n.A, n.B)
		return false, nil

	case ram.Load:
		return false, evalLoad(e, n)

	case ram.Store:
		return false, evalStore(e, n)

	case ram.InsertQuery:
		return false, evalOp(e, rb.forOp(), n.Op)

	case ram.DebugInfo:
		e.emitRuleEvent(n.Message)
		e.logger.WithField("rule", n.Message).Debug("eval: entering rule")
		return evalStmt(ctx, e, rb, n.Inner)
	}
	panic("eval: unreachable Stmt variant")
}

// evalParallel runs every child statement concurrently via an errgroup
// (§5), reporting exit if any child observed one.
func evalParallel(ctx context.Context, e *Engine, rb *Bindings, n ram.Parallel) (bool, error) {
	g, gctx := errgroup.WithContext(ctx)
	exits := make([]bool, len(n.Stmts))
	for i, child := range n.Stmts {
		i, child := i, child
		g.Go(func() error {
			exit, err := evalStmt(gctx, e, rb, child)
			exits[i] = exit
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	for _, ex := range exits {
		if ex {
			return true, nil
		}
	}
	return false, nil
}

// evalLoop repeats Body until it reports an exit signal; the signal is
// consumed here and never propagated past the Loop itself.
func evalLoop(ctx context.Context, e *Engine, rb *Bindings, n ram.Loop) (bool, error) {
	for {
		exit, err := evalStmt(ctx, e, rb, n.Body)
		if err != nil {
			return false, err
		}
		if exit {
			return false, nil
		}
	}
}

func evalLoad(e *Engine, n ram.Load) error {
	if e.reader == nil {
		e.logger.WithField("relation", n.Relation).Warn("eval: load statement with no reader configured, skipping")
		return nil
	}
	rel, err := e.relation(n.Relation)
	if err != nil {
		return err
	}
	rows, err := e.reader.Read(n.Directives)
	if err != nil {
		return err
	}
	for _, row := range rows {
		rel.Insert(row)
	}
	return nil
}

func evalStore(e *Engine, n ram.Store) error {
	if e.writer == nil {
		e.logger.WithField("relation", n.Relation).Warn("eval: store statement with no writer configured, skipping")
		return nil
	}
	rel, err := e.relation(n.Relation)
	if err != nil {
		return err
	}
	rows := make([]value.Tuple, 0, rel.Size())
	rel.Scan(func(t value.Tuple) bool {
		rows = append(rows, t.Clone())
		return true
	})
	return e.writer.Write(n.Directives, rows)
}
