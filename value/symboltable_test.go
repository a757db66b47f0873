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

package value

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolTableRoundTrip(t *testing.T) {
	require := require.New(t)
	st := NewSymbolTable()

	a := st.Intern("alpha")
	b := st.Intern("beta")
	a2 := st.Intern("alpha")

	require.Equal(a, a2)
	require.NotEqual(a, b)
	require.Equal("alpha", st.Resolve(a))
	require.Equal("beta", st.Resolve(b))
}

func TestSymbolTableIdsAreStableInsertionOrder(t *testing.T) {
	require := require.New(t)
	st := NewSymbolTable()

	first := st.Intern("x")
	second := st.Intern("y")
	require.Equal(Value(0), first)
	require.Equal(Value(1), second)
	require.Equal(2, st.Len())
}

func TestSymbolTableConcurrentIntern(t *testing.T) {
	st := NewSymbolTable()
	var wg sync.WaitGroup
	results := make([]Value, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = st.Intern("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("expected all concurrent interns of the same string to agree, got %v and %v", results[0], results[i])
		}
	}
}

func TestTupleEqualAndLess(t *testing.T) {
	require := require.New(t)
	a := Tuple{1, 2, 3}
	b := a.Clone()
	require.True(a.Equal(b))

	require.True(Less(Tuple{1, 2}, Tuple{1, 3}))
	require.False(Less(Tuple{1, 3}, Tuple{1, 2}))
	require.True(Less(Tuple{1}, Tuple{1, 0}))
}
