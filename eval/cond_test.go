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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/store"
	"github.com/soufflego/soufflego/value"
)

func TestEvalCondCompareAndShortCircuit(t *testing.T) {
	e := NewEngine()
	b := newRootBindings(nil).forOp()

	ok, err := evalCond(e, b, ram.And{
		Left:  ram.Compare{Op: ram.Lt, Left: ram.Const{V: 1}, Right: ram.Const{V: 2}},
		Right: ram.Compare{Op: ram.Eq, Left: ram.Const{V: 3}, Right: ram.Const{V: 3}},
	})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = evalCond(e, b, ram.And{
		Left:  ram.Compare{Op: ram.Gt, Left: ram.Const{V: 1}, Right: ram.Const{V: 2}},
		Right: ram.Compare{Op: ram.Eq, Left: ram.Const{V: 3}, Right: ram.Const{V: 3}},
	})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvalCondMatchAndContains(t *testing.T) {
	e := NewEngine()
	b := newRootBindings(nil).forOp()
	subject := e.symbols.Intern("hello world")
	pattern := e.symbols.Intern("^hello")
	needle := e.symbols.Intern("wor")

	ok, err := evalCond(e, b, ram.Compare{Op: ram.Match, Left: ram.Const{V: subject}, Right: ram.Const{V: pattern}})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = evalCond(e, b, ram.Compare{Op: ram.Contains, Left: ram.Const{V: subject}, Right: ram.Const{V: needle}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalCondMatchBadPatternWarnsAndReturnsFalse(t *testing.T) {
	e := NewEngine()
	b := newRootBindings(nil).forOp()
	subject := e.symbols.Intern("hello")
	pattern := e.symbols.Intern("(unterminated")

	ok, err := evalCond(e, b, ram.Compare{Op: ram.Match, Left: ram.Const{V: subject}, Right: ram.Const{V: pattern}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvalCondEmptyAndNotExists(t *testing.T) {
	e := NewEngine()
	e.createRelation("edge", []store.AttrKind{store.Number, store.Number}, false)
	b := newRootBindings(nil).forOp()

	ok, err := evalCond(e, b, ram.Empty{Relation: "edge"})
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, e.insert("edge", value.Tuple{1, 2}))

	ok, err = evalCond(e, b, ram.Empty{Relation: "edge"})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = evalCond(e, b, ram.NotExists{
		Relation: "edge",
		Key:      []ram.Expr{ram.Const{V: 1}, ram.Const{V: 2}},
		Total:    true,
	})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = evalCond(e, b, ram.NotExists{
		Relation: "edge",
		Key:      []ram.Expr{ram.Const{V: 9}, ram.Const{V: 9}},
		Total:    true,
	})
	require.NoError(t, err)
	require.True(t, ok)
}
