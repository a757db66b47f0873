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

import "strings"

// profileEscape backslash-escapes the two characters that would otherwise
// be ambiguous in a semicolon-delimited profile log line: the delimiter
// itself and a literal backslash.
func profileEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	return s
}

// emitRuleEvent writes one "@t" line to the Engine's ProfileSink: the
// current rule's debug message, escaped, with no timing columns. "@t" is
// not one of the keywords iodirective.ConvertLog recognizes, so ConvertLog
// rejects a log that contains these lines.
func (e *Engine) emitRuleEvent(message string) {
	e.profile.Emit("@t;" + profileEscape(message))
}
