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

// Package iodirective defines the narrow interfaces the evaluator uses to
// delegate fact/output file I/O and profile logging to external
// collaborators. The front-end lexer/parser, the CSV/TSV readers and
// writers, the CLI, and the profile-database telemetry sink are all out of
// scope for this repository (§1); this package is the seam they plug into.
package iodirective

import "github.com/soufflego/soufflego/value"

// Directives is the key/value option map a load/store statement carries
// (delimiter, filename, headers=, quotes=, ...).
type Directives map[string]string

// Reader loads a relation's initial tuples from wherever a Load statement's
// Directives point to.
type Reader interface {
	Read(dir Directives) ([]value.Tuple, error)
}

// Writer persists a relation's final tuples to wherever a Store statement's
// Directives point to.
type Writer interface {
	Write(dir Directives, rows []value.Tuple) error
}

// PragmaSource resolves a source program's pragma directives (key/value
// pairs consumed at configuration time, §6) into a decoded settings
// struct; config.Pragmas is the concrete implementation.
type PragmaSource interface {
	Pragma(key string) (string, bool)
}

// ProfileSink receives one formatted profile-log line per event (§6): an
// `@`-prefixed keyword followed by semicolon-separated, backslash-escaped
// positional columns. A real implementation appends to the profile log
// file; NopSink and BufferSink below are the ones this repository owns.
type ProfileSink interface {
	Emit(line string)
}

// NopSink discards every line; it is the default when no profiling
// collaborator has been wired in.
type NopSink struct{}

// Emit implements ProfileSink by doing nothing.
func (NopSink) Emit(string) {}

// BufferSink accumulates lines in memory in place of a real file.
type BufferSink struct {
	Lines []string
}

// Emit implements ProfileSink by appending line to Lines.
func (s *BufferSink) Emit(line string) {
	s.Lines = append(s.Lines, line)
}
