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

// evalCond reduces a RAM condition to a boolean given the current
// Bindings. And short-circuits: Right is never evaluated once Left is
// false, which matters because either side may carry side-effecting
// expressions (AutoInc).
func evalCond(e *Engine, b *Bindings, cond ram.Cond) (bool, error) {
	switch n := cond.(type) {
	case ram.And:
		left, err := evalCond(e, b, n.Left)
		if err != nil || !left {
			return false, err
		}
		return evalCond(e, b, n.Right)

	case ram.Empty:
		rel, err := e.relation(n.Relation)
		if err != nil {
			return false, err
		}
		return rel.IsEmpty(), nil

	case ram.NotExists:
		return evalNotExists(e, b, n)

	case ram.Compare:
		return evalCompare(e, b, n)
	}
	panic("eval: unreachable Cond variant")
}

func evalNotExists(e *Engine, b *Bindings, n ram.NotExists) (bool, error) {
	rel, err := e.relation(n.Relation)
	if err != nil {
		return false, err
	}

	if n.Total {
		key := make(value.Tuple, len(n.Key))
		for i, expr := range n.Key {
			v, err := evalExpr(e, b, expr)
			if err != nil {
				return false, err
			}
			key[i] = v
		}
		return !rel.Contains(key), nil
	}

	lower, upper, err := buildRangeKey(e, b, rel.Arity(), n.Bound, n.Key)
	if err != nil {
		return false, err
	}
	found := false
	rel.Range(n.Bound, lower, upper, func(value.Tuple) bool {
		found = true
		return false
	})
	return !found, nil
}

func evalCompare(e *Engine, b *Bindings, n ram.Compare) (bool, error) {
	l, err := evalExpr(e, b, n.Left)
	if err != nil {
		return false, err
	}
	r, err := evalExpr(e, b, n.Right)
	if err != nil {
		return false, err
	}

	switch n.Op {
	case ram.Eq:
		return l == r, nil
	case ram.Ne:
		return l != r, nil
	case ram.Lt:
		return l < r, nil
	case ram.Le:
		return l <= r, nil
	case ram.Gt:
		return l > r, nil
	case ram.Ge:
		return l >= r, nil
	case ram.Match:
		return evalMatch(e, r, l), nil
	case ram.NotMatch:
		return !evalMatch(e, r, l), nil
	case ram.Contains:
		return evalContains(e, l, r), nil
	case ram.NotContains:
		return !evalContains(e, l, r), nil
	}
	panic("eval: unreachable RelOp variant")
}

// buildRangeKey evaluates pattern against the positions named by bound and
// produces the full-arity (lower, upper) key pair store.Relation.Range
// expects: the bound positions hold the evaluated value on both sides, and
// every unbound position holds value.Min on the lower bound and value.Max
// on the upper.
func buildRangeKey(e *Engine, b *Bindings, arity int, bound []int, pattern []ram.Expr) (value.Tuple, value.Tuple, error) {
	lower := make(value.Tuple, arity)
	upper := make(value.Tuple, arity)
	for i := range lower {
		lower[i] = value.Min
		upper[i] = value.Max
	}
	for i, pos := range bound {
		v, err := evalExpr(e, b, pattern[i])
		if err != nil {
			return nil, nil, err
		}
		lower[pos] = v
		upper[pos] = v
	}
	return lower, upper, nil
}
