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

package translate

import (
	"sort"

	"github.com/soufflego/soufflego/ast"
	"github.com/soufflego/soufflego/check"
)

// Stratum is one evaluation layer: a set of mutually dependent relations
// computed together (by a fixpoint loop if Recursive, by straight-line
// evaluation otherwise) before later strata may depend on it.
type Stratum struct {
	Relations []string
	Recursive bool
	// SizeEstimate is a crude fact-count-based proxy for the stratum's
	// expected row volume (§9 SUPPLEMENTED FEATURES: PrecedenceGraph.cpp's
	// size annotation, here approximated from declared facts since no
	// profiling run precedes translation). No other package reads it.
	SizeEstimate int
}

// Stratify partitions prog's relations into bottom-up evaluation strata
// using the relation dependency graph's strongly connected components
// (§4.7): a component is one stratum, emitted only after every stratum it
// depends on.
func Stratify(prog *ast.Program) []Stratum {
	depGraph := prog.RelationGraph()
	plain := make(map[string][]string, len(depGraph))
	for from, deps := range depGraph {
		for _, d := range deps {
			plain[from] = append(plain[from], d.Relation)
		}
	}

	sccs := check.StronglyConnectedComponents(plain)
	strata := make([]Stratum, 0, len(sccs))
	for _, scc := range sccs {
		sort.Strings(scc)
		recursive := len(scc) > 1 || selfRecursive(plain, scc[0])
		strata = append(strata, Stratum{
			Relations: scc,
			Recursive: recursive,
			SizeEstimate: estimateSize(prog, scc, recursive),
		})
	}
	return strata
}

func selfRecursive(graph map[string][]string, node string) bool {
	for _, n := range graph[node] {
		if n == node {
			return true
		}
	}
	return false
}

func estimateSize(prog *ast.Program, relations []string, recursive bool) int {
	facts := 0
	for _, name := range relations {
		for _, c := range prog.ClausesFor(name) {
			if c.IsFact() {
				facts++
			}
		}
	}
	estimate := facts + 1
	if recursive {
		estimate *= 4
	}
	return estimate
}
