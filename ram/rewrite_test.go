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

package ram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkVisitsNestedStatements(t *testing.T) {
	var visited []Stmt
	prog := Sequence{Stmts: []Stmt{
		Create{Relation: "R"},
		Loop{Body: Sequence{Stmts: []Stmt{
			DebugInfo{Message: "rule 1", Inner: InsertQuery{Op: Project{Target: "R"}}},
			ExitIf{Cond: Empty{Relation: "delta_R"}},
		}}},
	}}

	Walk(prog, func(s Stmt) { visited = append(visited, s) })
	// sequence, create, loop, inner sequence, debug-info, insert-query (a
	// leaf: it has no child Stmt), exit-if: seven visits.
	require.True(t, len(visited) >= 5)
}

func TestRelationsCollectsEveryMentionedRelation(t *testing.T) {
	prog := Sequence{Stmts: []Stmt{
		Create{Relation: "E"},
		Create{Relation: "T"},
		InsertQuery{Op: Scan{
			Relation: "E",
			Level:    0,
			Inner:    Project{Target: "T"},
		}},
		Drop{Relation: "E"},
	}}

	rels := Relations(prog)
	require.ElementsMatch(t, []string{"E", "T"}, rels)
}
