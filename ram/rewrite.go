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

// Walk calls visit on every Stmt in the tree rooted at s, including s
// itself, in pre-order. It is the generic traversal the design favors over
// one bespoke walker per pass (§9's "map_children" idiom); Relations is
// built on it.
func Walk(s Stmt, visit func(Stmt)) {
	if s == nil {
		return
	}
	visit(s)
	switch n := s.(type) {
	case Sequence:
		for _, c := range n.Stmts {
			Walk(c, visit)
		}
	case Parallel:
		for _, c := range n.Stmts {
			Walk(c, visit)
		}
	case Loop:
		Walk(n.Body, visit)
	case DebugInfo:
		Walk(n.Inner, visit)
	}
}

// Relations returns the distinct relation names mentioned by the RAM
// statement tree rooted at s, in first-seen order: those named by
// statements and by Scan, Aggregate and Project operations, plus the
// relation of a NotExists that is a Search's whole condition. Other
// conditions are not searched: ExitIf and Aggregate conditions, Empty
// conditions, and conditions nested inside an And add no names.
func Relations(s Stmt) []string {
	seen := map[string]bool{}
	var order []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

	var walkOp func(Op)
	walkOp = func(o Op) {
		switch n := o.(type) {
		case Scan:
			add(n.Relation)
			walkOp(n.Inner)
		case Lookup:
			walkOp(n.Inner)
		case Aggregate:
			add(n.Relation)
			walkOp(n.Inner)
		case Project:
			add(n.Target)
			if n.Filter != "" {
				add(n.Filter)
			}
		case Search:
			if ne, ok := n.Cond.(NotExists); ok {
				add(ne.Relation)
			}
			walkOp(n.Inner)
		}
	}

	Walk(s, func(st Stmt) {
		switch n := st.(type) {
		case Create:
			add(n.Relation)
		case Clear:
			add(n.Relation)
		case Drop:
			add(n.Relation)
		case Merge:
			add(n.Src)
			add(n.Dst)
		case Swap:
			add(n.A)
			add(n.B)
		case Load:
			add(n.Relation)
		case Store:
			add(n.Relation)
		case InsertQuery:
			walkOp(n.Op)
		}
	})
	return order
}
