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

package iodirective

import (
	"fmt"
	"sort"
	"strings"
)

// logSchema maps a profile-log event keyword (§6) to the names of the
// columns its positional fields occupy in the normalized CSV schema. An
// empty slice (as for "@start-debug") means the keyword carries no
// positional columns at all. This mirrors the out-of-pack reference
// converter's schema table, extended with the iteration-boundary keywords
// the "start-time"/"end-time" columns of the fixed superset schema belong
// to.
var logSchema = map[string][]string{
	"@start-debug":             {},
	"@t-nonrecursive-relation": {"relation", "src-locator", "time"},
	"@n-nonrecursive-relation": {"relation", "src-locator", "tuples"},
	"@t-nonrecursive-rule":     {"relation", "src-locator", "rule", "time"},
	"@n-nonrecursive-rule":     {"relation", "src-locator", "rule", "tuples"},
	"@t-recursive-rule":        {"relation", "version", "src-locator", "rule", "time"},
	"@n-recursive-rule":        {"relation", "version", "src-locator", "rule", "tuples"},
	"@t-recursive-relation":    {"relation", "src-locator", "time"},
	"@n-recursive-relation":    {"relation", "src-locator", "tuples"},
	"@c-recursive-relation":    {"relation", "src-locator", "copy-time"},
	"@runtime":                 {"total-time"},
	"@start-iteration":         {"start-time"},
	"@end-iteration":           {"end-time"},
}

// csvHeader is the fixed superset schema column order (§6), computed once
// from logSchema's column names in lexicographic order with "@" fixed at
// position 0 — the same order a sorted-set-of-strings schema derivation
// produces.
var csvHeader = func() []string {
	seen := make(map[string]bool)
	for _, cols := range logSchema {
		for _, c := range cols {
			seen[c] = true
		}
	}
	names := make([]string, 0, len(seen))
	for c := range seen {
		names = append(names, c)
	}
	sort.Strings(names)
	return append([]string{"@"}, names...)
}()

// ParseLogLine splits one profile-log line into its semicolon-separated
// columns, un-escaping a backslash-escaped semicolon or backslash (§6).
// The first returned column is always the "@"-prefixed event keyword.
func ParseLogLine(line string) []string {
	var cols []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			cols = append(cols, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cols = append(cols, cur.String())
	return cols
}

// ConvertLog renders a full profile log (one event per line) as a CSV
// document matching the fixed superset schema of §6 (scenario 6 of §8).
// headers controls whether the header row is emitted; quotes controls
// whether every column, including empty ones, is single-quoted with
// backslash-escaped embedded quotes.
func ConvertLog(lines []string, headers, quotes bool) (string, error) {
	var out strings.Builder

	if headers {
		writeCSVRow(&out, csvHeader, quotes)
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := ParseLogLine(line)
		keyword := cols[0]
		fields, ok := logSchema[keyword]
		if !ok {
			return "", fmt.Errorf("iodirective: unknown profile event keyword %q", keyword)
		}
		if len(cols)-1 != len(fields) {
			return "", fmt.Errorf("iodirective: event %q expects %d column(s), got %d", keyword, len(fields), len(cols)-1)
		}

		row := make([]string, len(csvHeader))
		row[0] = keyword
		for i, name := range fields {
			idx := headerIndex(name)
			row[idx] = cols[i+1]
		}
		writeCSVRow(&out, row, quotes)
	}

	return out.String(), nil
}

func headerIndex(name string) int {
	for i, h := range csvHeader {
		if h == name {
			return i
		}
	}
	return -1
}

func writeCSVRow(out *strings.Builder, row []string, quotes bool) {
	for i, col := range row {
		if i > 0 {
			out.WriteByte(',')
		}
		if quotes {
			out.WriteByte('\'')
			out.WriteString(strings.ReplaceAll(col, "'", `\'`))
			out.WriteByte('\'')
		} else {
			out.WriteString(col)
		}
	}
	out.WriteByte('\n')
}
