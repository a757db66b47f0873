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

package check

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soufflego/soufflego/ast"
)

func edgeDecl(name string) ast.RelationDecl {
	return ast.RelationDecl{Name: name, Attrs: []ast.Attribute{
		{Name: "a", Kind: ast.KindNumber},
		{Name: "b", Kind: ast.KindNumber},
	}}
}

func TestCheckCleanProgramProducesNoErrors(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{
			edgeDecl("edge"),
			edgeDecl("tc"),
		},
		Clauses: []ast.Clause{
			{Head: ast.Atom{Relation: "edge", Args: []ast.Argument{ast.NumConst{Value: 1}, ast.NumConst{Value: 2}}}},
			{
				Head: ast.Atom{Relation: "tc", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}}},
			},
			{
				Head: ast.Atom{Relation: "tc", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Z"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
					ast.Atom{Relation: "tc", Args: []ast.Argument{ast.Var{Name: "Y"}, ast.Var{Name: "Z"}}},
				},
			},
		},
	}
	r := Check(prog)
	require.False(t, r.HasErrors(), "unexpected errors: %v", r.Err())
}

func TestCheckUnknownRelationAndArityMismatch(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("edge")},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "tc", Args: []ast.Argument{ast.Var{Name: "X"}}},
				Body: []ast.Literal{ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}}}},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	msg := r.Err().Error()
	require.True(t, strings.Contains(msg, "unknown relation \"tc\""), msg)
	require.True(t, strings.Contains(msg, "expects 2 argument"), msg)
}

func TestCheckDuplicateRelationDeclaration(t *testing.T) {
	prog := &ast.Program{Relations: []ast.RelationDecl{edgeDecl("edge"), edgeDecl("edge")}}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, ErrDuplicateRelation.Is(unwrapFirst(r)))
}

func TestCheckUngroundedHeadVariable(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{
			edgeDecl("edge"),
			{Name: "r", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}, {Name: "b", Kind: ast.KindNumber}}},
		},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "r", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Stray"}}},
				Body: []ast.Literal{ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}}},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, strings.Contains(r.Err().Error(), "\"Stray\""))
}

func TestCheckUngroundedNegatedVariableIsFatal(t *testing.T) {
	// Q(y) :- P(y), !R(z). — z appears only inside the negated atom, so
	// no positive body atom ever binds it.
	prog := &ast.Program{
		Relations: []ast.RelationDecl{
			{Name: "p", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}}},
			{Name: "r", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}}},
			{Name: "q", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}}},
		},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "q", Args: []ast.Argument{ast.Var{Name: "y"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "p", Args: []ast.Argument{ast.Var{Name: "y"}}},
					ast.Negation{Atom: ast.Atom{Relation: "r", Args: []ast.Argument{ast.Var{Name: "z"}}}},
				},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	msg := r.Err().Error()
	require.True(t, strings.Contains(msg, "\"z\""), msg)
	require.True(t, ErrUngroundedVariable.Is(unwrapFirst(r)))
}

func TestCheckFactWithVariableIsRejected(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("edge")},
		Clauses: []ast.Clause{
			{Head: ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.NumConst{Value: 2}}}},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, ErrNonConstantFact.Is(unwrapFirst(r)))
}

func TestCheckStratificationCycleThroughNegation(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("p"), edgeDecl("q")},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "p", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{
					ast.Negation{Atom: ast.Atom{Relation: "q", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}}},
				},
			},
			{
				Head: ast.Atom{Relation: "q", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "p", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, strings.Contains(r.Err().Error(), "stratification cycle"))
}

func TestCheckAcyclicNegationIsFine(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("edge"), edgeDecl("p"), edgeDecl("q")},
		Clauses: []ast.Clause{
			{Head: ast.Atom{Relation: "edge", Args: []ast.Argument{ast.NumConst{Value: 1}, ast.NumConst{Value: 2}}}},
			{Head: ast.Atom{Relation: "q", Args: []ast.Argument{ast.NumConst{Value: 1}, ast.NumConst{Value: 2}}}},
			{
				Head: ast.Atom{Relation: "p", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
					ast.Negation{Atom: ast.Atom{Relation: "q", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}}},
				},
			},
		},
	}
	r := Check(prog)
	require.False(t, r.HasErrors(), "unexpected errors: %v", r.Err())
}

func TestCheckMalformedPlanIsNotPermutation(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("edge"), edgeDecl("r")},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "r", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "Y"}, ast.Var{Name: "X"}}},
				},
				Plan: []int{0, 0},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, ErrMalformedPlan.Is(unwrapFirst(r)))
}

func TestCheckSingleUseVariableWarnsUnlessUnderscorePrefixed(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{edgeDecl("edge"), edgeDecl("r")},
		Clauses: []ast.Clause{
			{
				Head: ast.Atom{Relation: "r", Args: []ast.Argument{ast.Var{Name: "X"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Lonely"}}},
				},
			},
		},
	}
	r := Check(prog)
	require.True(t, hasWarningContaining(r, "\"Lonely\""))

	prog.Clauses[0].Body[0] = ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "_Lonely"}}}
	r2 := Check(prog)
	require.False(t, hasWarningContaining(r2, "_Lonely"))
}

func TestCheckInlineRelationMustNotBeInput(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{
			{Name: "cfg", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}}, Inline: true, Input: true},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, strings.Contains(r.Err().Error(), "must not be declared input"))
}

func TestCheckInlineNegationMustNotIntroduceNewVariable(t *testing.T) {
	prog := &ast.Program{
		Relations: []ast.RelationDecl{
			{Name: "helper", Attrs: []ast.Attribute{{Name: "a", Kind: ast.KindNumber}, {Name: "b", Kind: ast.KindNumber}}, Inline: true},
			edgeDecl("edge"),
			edgeDecl("r"),
		},
		Clauses: []ast.Clause{
			{Head: ast.Atom{Relation: "helper", Args: []ast.Argument{ast.NumConst{Value: 1}, ast.NumConst{Value: 2}}}},
			{
				Head: ast.Atom{Relation: "r", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
				Body: []ast.Literal{
					ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Y"}}},
					ast.Negation{Atom: ast.Atom{Relation: "helper", Args: []ast.Argument{ast.Var{Name: "X"}, ast.Var{Name: "Fresh"}}}},
				},
			},
		},
	}
	r := Check(prog)
	require.True(t, r.HasErrors())
	require.True(t, strings.Contains(r.Err().Error(), "introduces new variable \"Fresh\""))
}

func TestCheckEmptyRelationWithNoRulesWarns(t *testing.T) {
	prog := &ast.Program{Relations: []ast.RelationDecl{edgeDecl("orphan")}}
	r := Check(prog)
	require.True(t, hasWarningContaining(r, "\"orphan\""))
}

func TestCheckInputRelationWithNoRulesDoesNotWarn(t *testing.T) {
	decl := edgeDecl("fedIn")
	decl.Input = true
	prog := &ast.Program{Relations: []ast.RelationDecl{decl}}
	r := Check(prog)
	require.False(t, hasWarningContaining(r, "fedIn"))
}

func hasWarningContaining(r *Report, substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func unwrapFirst(r *Report) error {
	if r.Errors == nil || len(r.Errors.Errors) == 0 {
		return nil
	}
	return r.Errors.Errors[0]
}
