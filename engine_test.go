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

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soufflego/soufflego/ast"
	"github.com/soufflego/soufflego/value"
)

func pairDecl(name string) ast.RelationDecl {
	return ast.RelationDecl{Name: name, Attrs: []ast.Attribute{
		{Name: "a", Kind: ast.KindNumber},
		{Name: "b", Kind: ast.KindNumber},
	}}
}

func fact(relation string, a, b int64) ast.Clause {
	return ast.Clause{Head: ast.Atom{
		Relation: relation,
		Args:     []ast.Argument{ast.NumConst{Value: a}, ast.NumConst{Value: b}},
	}}
}

// TestEngineTransitiveClosure is §8 scenario 1 ("Transitive closure"),
// driven end to end through Compile+Run instead of directly through a
// hand-built ram.Program, exercising the embedding facade.
func TestEngineTransitiveClosure(t *testing.T) {
	src := &ast.Program{
		Relations: []ast.RelationDecl{pairDecl("E"), pairDecl("T")},
		Clauses: []ast.Clause{
			fact("E", 1, 2),
			fact("E", 2, 3),
			fact("E", 3, 4),
			{
				Head: ast.Atom{Relation: "T", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{ast.Atom{Relation: "E", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}}},
			},
			{
				Head: ast.Atom{Relation: "T", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Z"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "T", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
					ast.Atom{Relation: "E", Args: []ast.Argument{ast.Var{Name: "Y"}, ast.Var{Name: "Z"}}},
				},
			},
		},
	}

	prog, err := Compile(src)
	require.NoError(t, err)

	e := prog.NewEngine()
	require.NoError(t, prog.Run(context.Background(), e))

	tc, ok := e.Relation("T")
	require.True(t, ok)

	want := map[[2]value.Value]bool{
		{1, 2}: true, {1, 3}: true, {1, 4}: true,
		{2, 3}: true, {2, 4}: true,
		{3, 4}: true,
	}
	got := map[[2]value.Value]bool{}
	tc.Scan(func(t value.Tuple) bool {
		got[[2]value.Value{t[0], t[1]}] = true
		return true
	})
	require.Equal(t, want, got)
}

// TestEngineCyclicNegationFailsTranslation is the second half of §8
// scenario 5: adding a rule that closes a cycle through a negated atom
// makes Compile fail instead of silently producing an ill-defined plan.
func TestEngineCyclicNegationFailsTranslation(t *testing.T) {
	src := &ast.Program{
		Relations: []ast.RelationDecl{pairDecl1("E"), pairDecl1("P"), pairDecl1("Q"), pairDecl1("R")},
		Clauses: []ast.Clause{
			fact1("E", 1), fact1("E", 2), fact1("E", 3),
			{
				Head: ast.Atom{Relation: "P", Args: []ast.Argument{ast.Var{Name: "X"}}},
				Body: []ast.Literal{ast.Atom{Relation: "E", Args: []ast.Argument{ast.Var{Name: "X"}}}},
			},
			{
				Head: ast.Atom{Relation: "Q", Args: []ast.Argument{ast.Var{Name: "X"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "P", Args: []ast.Argument{ast.Var{Name: "X"}}},
					ast.Negation{Atom: ast.Atom{Relation: "R", Args: []ast.Argument{ast.Var{Name: "X"}}}},
				},
			},
			fact1("R", 1),
			{
				Head: ast.Atom{Relation: "R", Args: []ast.Argument{ast.Var{Name: "X"}}},
				Body: []ast.Literal{ast.Atom{Relation: "Q", Args: []ast.Argument{ast.Var{Name: "X"}}}},
			},
		},
	}

	_, err := Compile(src)
	require.Error(t, err)
}

func pairDecl1(name string) ast.RelationDecl {
	return ast.RelationDecl{Name: name, Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}}}
}

func fact1(relation string, a int64) ast.Clause {
	return ast.Clause{Head: ast.Atom{Relation: relation, Args: []ast.Argument{ast.NumConst{Value: a}}}}
}
