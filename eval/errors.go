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

import errors "gopkg.in/src-d/go-errors.v1"

// ErrDivisionByZero is raised by / and % when the right operand is zero.
// Unlike the substring and regex edge cases below, this one is fatal: it
// aborts the enclosing statement rather than degrading to a fallback value
// (§4.3, §7).
var ErrDivisionByZero = errors.NewKind("eval: division by zero")

// ErrUnknownRelation is raised when a RAM statement or operation names a
// relation that was never Created (or was already Dropped). It indicates a
// translator bug, not a data error.
var ErrUnknownRelation = errors.NewKind("eval: unknown relation %q")

// ErrUnknownSubroutine is raised by Engine.Call when the program has no
// subroutine registered under the requested name.
var ErrUnknownSubroutine = errors.NewKind("eval: unknown subroutine %q")

// ErrSubroutineArgRange is raised when a SubroutineArg expression indexes
// past the argument list the caller supplied.
var ErrSubroutineArgRange = errors.NewKind("eval: subroutine argument %d out of range (got %d arguments)")
