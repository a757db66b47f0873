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
	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/value"
)

// evalOp walks a RAM operation tree, binding at most one Bindings level per
// node before recursing into its Inner operation (§4.5).
func evalOp(e *Engine, b *Bindings, op ram.Op) error {
	switch n := op.(type) {
	case ram.Scan:
		return evalScan(e, b, n)
	case ram.Lookup:
		return evalLookup(e, b, n)
	case ram.Aggregate:
		return evalAggregate(e, b, n)
	case ram.Project:
		return evalProject(e, b, n)
	case ram.Return:
		return evalReturn(e, b, n)
	case ram.Search:
		return evalSearch(e, b, n)
	}
	panic("eval: unreachable Op variant")
}

func evalScan(e *Engine, b *Bindings, n ram.Scan) error {
	rel, err := e.relation(n.Relation)
	if err != nil {
		return err
	}

	if n.PureExistence {
		var lower, upper value.Tuple
		if len(n.Bound) > 0 {
			lower, upper, err = buildRangeKey(e, b, rel.Arity(), n.Bound, n.Pattern)
			if err != nil {
				return err
			}
		}
		found := false
		if len(n.Bound) == 0 {
			found = !rel.IsEmpty()
		} else {
			rel.Range(n.Bound, lower, upper, func(value.Tuple) bool {
				found = true
				return false
			})
		}
		if !found {
			return nil
		}
		return evalOp(e, b, n.Inner)
	}

	if len(n.Bound) == 0 {
		var innerErr error
		rel.Scan(func(t value.Tuple) bool {
			b.Bind(n.Level, t)
			if err := evalOp(e, b, n.Inner); err != nil {
				innerErr = err
				return false
			}
			return true
		})
		return innerErr
	}

	lower, upper, err := buildRangeKey(e, b, rel.Arity(), n.Bound, n.Pattern)
	if err != nil {
		return err
	}
	var innerErr error
	rel.Range(n.Bound, lower, upper, func(t value.Tuple) bool {
		b.Bind(n.Level, t)
		if err := evalOp(e, b, n.Inner); err != nil {
			innerErr = err
			return false
		}
		return true
	})
	return innerErr
}

func evalLookup(e *Engine, b *Bindings, n ram.Lookup) error {
	ref, err := evalExpr(e, b, n.RecordRef)
	if err != nil {
		return err
	}
	if ref == value.NullRecord {
		return nil
	}
	t := e.records.Unpack(ref, n.Arity)
	b.Bind(n.Level, t)
	return evalOp(e, b, n.Inner)
}

func evalAggregate(e *Engine, b *Bindings, n ram.Aggregate) error {
	rel, err := e.relation(n.Relation)
	if err != nil {
		return err
	}

	var lower, upper value.Tuple
	if len(n.Bound) > 0 {
		lower, upper, err = buildRangeKey(e, b, rel.Arity(), n.Bound, n.Pattern)
		if err != nil {
			return err
		}
	}

	var acc value.Value
	matched := false
	var scanErr error
	visit := func(t value.Tuple) bool {
		b.Bind(n.Level, t)
		v, err := evalExpr(e, b, n.Target)
		if err != nil {
			scanErr = err
			return false
		}
		switch n.Fn {
		case ram.AggMin:
			if !matched || v < acc {
				acc = v
			}
		case ram.AggMax:
			if !matched || v > acc {
				acc = v
			}
		case ram.AggSum:
			acc += v
		case ram.AggCount:
			acc++
		}
		matched = true
		return true
	}

	if len(n.Bound) == 0 {
		rel.Scan(visit)
	} else {
		rel.Range(n.Bound, lower, upper, visit)
	}
	if scanErr != nil {
		return scanErr
	}

	if !matched {
		switch n.Fn {
		case ram.AggMin, ram.AggMax:
			return nil
		case ram.AggCount, ram.AggSum:
			acc = 0
		}
	}

	b.Bind(n.Level, value.Tuple{acc})
	if n.Cond != nil {
		if ok, err := evalCond(e, b, n.Cond); err != nil || !ok {
			return err
		}
	}
	return evalOp(e, b, n.Inner)
}

func evalProject(e *Engine, b *Bindings, n ram.Project) error {
	t := make(value.Tuple, len(n.Values))
	for i, ve := range n.Values {
		v, err := evalExpr(e, b, ve)
		if err != nil {
			return err
		}
		t[i] = v
	}

	if n.Filter != "" {
		filterRel, err := e.relation(n.Filter)
		if err != nil {
			return err
		}
		if filterRel.Contains(t) {
			return nil
		}
	}

	return e.insert(n.Target, t)
}

func evalReturn(e *Engine, b *Bindings, n ram.Return) error {
	for _, expr := range n.Values {
		if expr == nil {
			b.out.Values = append(b.out.Values, 0)
			b.out.Errs = append(b.out.Errs, true)
			continue
		}
		v, err := evalExpr(e, b, expr)
		if err != nil {
			return err
		}
		b.out.Values = append(b.out.Values, v)
		b.out.Errs = append(b.out.Errs, false)
	}
	return nil
}

func evalSearch(e *Engine, b *Bindings, n ram.Search) error {
	ok, err := evalCond(e, b, n.Cond)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return evalOp(e, b, n.Inner)
}
