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

// Package config decodes a source program's pragma directives (§6: "key/value
// pairs consumed at configuration time") into a typed settings struct. The
// parser collaborator hands the evaluator a flat map[string]string
// (ast.Program.Pragmas); this package is the seam that turns that into
// something a caller can consult by field instead of by string key,
// mirroring the way the sibling pack member's TOML schema parser decodes a
// flat document into a typed struct instead of walking key/value pairs by
// hand.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/soufflego/soufflego/iodirective"
)

// Pragmas satisfies iodirective.PragmaSource so a caller can resolve
// individual pragma keys without depending on this package's concrete
// struct.
var _ iodirective.PragmaSource = Pragmas{}

// Pragmas is the decoded form of a program's pragma directives. Fields left
// at their zero value were not set by any pragma; Unknown carries any
// pragma key that does not map onto a known field so a caller can still
// inspect it (the grammar for pragma keys is the parser collaborator's
// responsibility, not this package's).
type Pragmas struct {
	// Jobs bounds how many workers a Parallel statement (§5) may fan out
	// to; 0 means "let the evaluator choose".
	Jobs int `toml:"jobs"`
	// ProfileLog is the path a real ProfileSink implementation would
	// append formatted profile-log lines to (§6); this package never
	// opens the file itself.
	ProfileLog string `toml:"profile"`
	// FactDir and OutputDir override the default directories a Reader/
	// Writer collaborator resolves Load/Store directives against.
	FactDir   string `toml:"fact-dir"`
	OutputDir string `toml:"output-dir"`
	// Provenance requests the (out-of-scope) provenance/explain
	// subsystem; carried here so an embedder can detect the request even
	// though this repository does not implement that subsystem (§1).
	Provenance bool `toml:"provenance"`

	Unknown map[string]string `toml:"-"`
}

// Pragma implements iodirective.PragmaSource, resolving a key against the
// known fields first and falling back to Unknown.
func (p Pragmas) Pragma(key string) (string, bool) {
	switch key {
	case "jobs":
		return strconv.Itoa(p.Jobs), true
	case "profile":
		return p.ProfileLog, p.ProfileLog != ""
	case "fact-dir":
		return p.FactDir, p.FactDir != ""
	case "output-dir":
		return p.OutputDir, p.OutputDir != ""
	case "provenance":
		return strconv.FormatBool(p.Provenance), true
	default:
		v, ok := p.Unknown[key]
		return v, ok
	}
}

// Decode converts a flat pragma map into Pragmas. Known keys are matched
// case-sensitively against the toml tags above, rendered one per line as
// a TOML document (see tomlValue) and decoded into the struct by the TOML
// decoder. A jobs value that is not an integer decodes as 0, and a
// provenance value other than true/false decodes as false; neither is
// reported as an error. Unrecognized keys are preserved in
// Unknown rather than rejected, since new pragma keys are a parser-level
// concern this package should not need to track.
func Decode(raw map[string]string) (Pragmas, error) {
	var doc strings.Builder
	known := map[string]bool{
		"jobs": true, "profile": true, "fact-dir": true,
		"output-dir": true, "provenance": true,
	}
	unknown := make(map[string]string)

	for k, v := range raw {
		if !known[k] {
			unknown[k] = v
			continue
		}
		fmt.Fprintf(&doc, "%s = %s\n", tomlKey(k), tomlValue(k, v))
	}

	var p Pragmas
	if _, err := toml.Decode(doc.String(), &p); err != nil {
		return Pragmas{}, fmt.Errorf("config: decode pragmas: %w", err)
	}
	p.Unknown = unknown
	return p, nil
}

// tomlKey quotes a pragma key so hyphenated keys (fact-dir, output-dir)
// parse as valid TOML bare-or-quoted keys.
func tomlKey(k string) string {
	return strconv.Quote(k)
}

// tomlValue renders a raw pragma value as a TOML scalar literal matching
// the destination field's kind: quoted string for everything except the
// boolean and integer fields, which accept bare true/false/digits.
func tomlValue(key, v string) string {
	switch key {
	case "jobs":
		if _, err := strconv.Atoi(v); err == nil {
			return v
		}
		return "0"
	case "provenance":
		if v == "true" || v == "false" {
			return v
		}
		return "false"
	default:
		return strconv.Quote(v)
	}
}
