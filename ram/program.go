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

// Program is the compiled plan: a main statement plus named subroutines
// invocable by the embedding interface (§6). It is immutable once the
// translator returns it.
type Program struct {
	Main        Stmt
	Subroutines map[string]Stmt
}

// NewProgram returns a Program with the given main statement and no
// subroutines; AddSubroutine registers additional ones.
func NewProgram(main Stmt) *Program {
	return &Program{
		Main:        main,
		Subroutines: make(map[string]Stmt),
	}
}

// AddSubroutine registers a named subroutine body, returning the Program
// for chaining during translation.
func (p *Program) AddSubroutine(name string, body Stmt) *Program {
	p.Subroutines[name] = body
	return p
}
