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

package ast

// RelationGraph builds the relation dependency graph §4.7/§4.8 stratify
// and cycle-check over: one node per declared relation (plus any relation
// only ever referenced, never declared — the checker flags those
// separately) and one edge per distinct (caller, callee, negated,
// aggregated) dependency a clause makes, listed under the caller. A callee
// that heads no clause still appears as a node with no outgoing edges.
func (p *Program) RelationGraph() map[string][]Dependency {
	graph := map[string][]Dependency{}
	for _, r := range p.Relations {
		if _, ok := graph[r.Name]; !ok {
			graph[r.Name] = nil
		}
	}
	type edgeKey struct {
		from, to   string
		negated    bool
		aggregated bool
	}
	seen := map[edgeKey]bool{}
	for _, c := range p.Clauses {
		for _, dep := range c.Dependencies() {
			key := edgeKey{c.Head.Relation, dep.Relation, dep.Negated, dep.Aggregated}
			if seen[key] {
				continue
			}
			seen[key] = true
			graph[c.Head.Relation] = append(graph[c.Head.Relation], dep)
			if _, ok := graph[dep.Relation]; !ok {
				graph[dep.Relation] = nil
			}
		}
	}
	return graph
}
