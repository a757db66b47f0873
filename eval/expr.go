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
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/value"
)

// evalExpr reduces a RAM expression to a single value given the current
// Bindings. The only errors it returns are ErrDivisionByZero (§4.3) and
// ErrSubroutineArgRange for a SubroutineArg index past the caller's
// arguments; the other edge cases (substring out of range, malformed regex) are
// handled by logging a warning and falling back to a documented value,
// matching the original engine's "soft failure" treatment of those two
// cases.
func evalExpr(e *Engine, b *Bindings, expr ram.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case ram.Const:
		return n.V, nil

	case ram.FieldRef:
		return b.Get(n.Level, n.Position), nil

	case ram.Unary:
		v, err := evalExpr(e, b, n.Arg)
		if err != nil {
			return 0, err
		}
		return evalUnary(e, n.Op, v), nil

	case ram.Binary:
		l, err := evalExpr(e, b, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(e, b, n.Right)
		if err != nil {
			return 0, err
		}
		return evalBinary(e, n.Op, l, r)

	case ram.Substring:
		return evalSubstring(e, b, n)

	case ram.Pack:
		vals := make(value.Tuple, len(n.Values))
		for i, ve := range n.Values {
			v, err := evalExpr(e, b, ve)
			if err != nil {
				return 0, err
			}
			vals[i] = v
		}
		return e.records.Pack(vals), nil

	case ram.AutoInc:
		return value.Value(atomic.AddInt64(&e.counter, 1) - 1), nil

	case ram.SubroutineArg:
		if n.Index < 0 || n.Index >= len(b.subArgs) {
			return 0, ErrSubroutineArgRange.New(n.Index, len(b.subArgs))
		}
		return b.subArgs[n.Index], nil
	}
	panic("eval: unreachable Expr variant")
}

func evalUnary(e *Engine, op ram.UnaryOp, v value.Value) value.Value {
	switch op {
	case ram.Neg:
		return -v
	case ram.BNot:
		return ^v
	case ram.LNot:
		if v == 0 {
			return 1
		}
		return 0
	case ram.Ord:
		return v
	case ram.StrLen:
		return value.Value(len(e.symbols.Resolve(v)))
	}
	panic("eval: unreachable UnaryOp variant")
}

func evalBinary(e *Engine, op ram.BinaryOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ram.Add:
		return l + r, nil
	case ram.Sub:
		return l - r, nil
	case ram.Mul:
		return l * r, nil
	case ram.Div:
		if r == 0 {
			return 0, ErrDivisionByZero.New()
		}
		return l / r, nil
	case ram.Mod:
		if r == 0 {
			return 0, ErrDivisionByZero.New()
		}
		return l % r, nil
	case ram.Exp:
		return intPow(l, r), nil
	case ram.BAnd:
		return l & r, nil
	case ram.BOr:
		return l | r, nil
	case ram.BXor:
		return l ^ r, nil
	case ram.LAnd:
		if l != 0 && r != 0 {
			return 1, nil
		}
		return 0, nil
	case ram.LOr:
		if l != 0 || r != 0 {
			return 1, nil
		}
		return 0, nil
	case ram.MinOp:
		if l < r {
			return l, nil
		}
		return r, nil
	case ram.MaxOp:
		if l > r {
			return l, nil
		}
		return r, nil
	case ram.Cat:
		s := e.symbols.Resolve(l) + e.symbols.Resolve(r)
		return e.symbols.Intern(s), nil
	}
	panic("eval: unreachable BinaryOp variant")
}

func intPow(base, exp value.Value) value.Value {
	if exp < 0 {
		return 0
	}
	result := value.Value(1)
	for i := value.Value(0); i < exp; i++ {
		result *= base
	}
	return result
}

func evalSubstring(e *Engine, b *Bindings, n ram.Substring) (value.Value, error) {
	symV, err := evalExpr(e, b, n.Sym)
	if err != nil {
		return 0, err
	}
	startV, err := evalExpr(e, b, n.Start)
	if err != nil {
		return 0, err
	}
	lenV, err := evalExpr(e, b, n.Len)
	if err != nil {
		return 0, err
	}

	s := e.symbols.Resolve(symV)
	start, length := int(startV), int(lenV)
	if start < 0 || length < 0 || start > len(s) || start+length > len(s) {
		e.logger.WithFields(map[string]interface{}{
			"string": s,
			"start":  start,
			"len":    length,
		}).Warn("eval: substring range out of bounds, returning empty string")
		return e.symbols.Intern(""), nil
	}
	return e.symbols.Intern(s[start : start+length]), nil
}

// evalMatch applies a regular expression (Pattern, resolved from a symbol
// value) against Subject, resolved likewise. A malformed pattern is a
// recoverable warning, not a fatal error: Soufflé itself treats a bad
// regex as "does not match" rather than aborting the run.
func evalMatch(e *Engine, patternV, subjectV value.Value) bool {
	pattern := e.symbols.Resolve(patternV)
	subject := e.symbols.Resolve(subjectV)
	re, err := regexp.Compile(pattern)
	if err != nil {
		e.logger.WithField("pattern", pattern).Warn("eval: invalid regular expression, treating as non-match")
		return false
	}
	return re.MatchString(subject)
}

func evalContains(e *Engine, haystackV, needleV value.Value) bool {
	return strings.Contains(e.symbols.Resolve(haystackV), e.symbols.Resolve(needleV))
}
