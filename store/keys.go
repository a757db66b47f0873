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

package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/soufflego/soufflego/store/indexselect"
)

// patternKey canonicalizes a set of bound attribute positions (order does
// not distinguish patterns) into a comparable string key for deduplication.
func patternKey(bound []int) string {
	sorted := append([]int(nil), bound...)
	sort.Ints(sorted)
	return joinInts(sorted)
}

func decodePatternKey(k string) indexselect.Pattern {
	if k == "" {
		return indexselect.Pattern{}
	}
	parts := strings.Split(k, ",")
	out := make(indexselect.Pattern, len(parts))
	for i, p := range parts {
		n, _ := strconv.Atoi(p)
		out[i] = n
	}
	return out
}

// permKeyOrdered canonicalizes a full permutation (order distinguishes
// permutations) into a comparable string key for map lookups.
func permKeyOrdered(perm []int) string {
	return joinInts(perm)
}

func joinInts(xs []int) string {
	var b strings.Builder
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}
