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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soufflego/soufflego/store"
)

func TestCreateRelationStartsCompactionWatcherOnlyForEquivalence(t *testing.T) {
	e := NewEngine()
	e.createRelation("plain", []store.AttrKind{store.Number}, false)
	e.createRelation("eq", []store.AttrKind{store.Number, store.Number}, true)

	require.Len(t, e.watchers, 1)

	plain, ok := e.Relation("plain")
	require.True(t, ok)
	_, watched := e.watchers[plain]
	require.False(t, watched)

	eq, ok := e.Relation("eq")
	require.True(t, ok)
	_, watched = e.watchers[eq]
	require.True(t, watched)
}

func TestDropRelationStopsItsCompactionWatcher(t *testing.T) {
	e := NewEngine()
	e.createRelation("eq", []store.AttrKind{store.Number, store.Number}, true)
	require.Len(t, e.watchers, 1)

	e.dropRelation("eq")
	require.Empty(t, e.watchers)
}

func TestCloseStopsEveryRemainingCompactionWatcher(t *testing.T) {
	e := NewEngine()
	e.createRelation("eq1", []store.AttrKind{store.Number, store.Number}, true)
	e.createRelation("eq2", []store.AttrKind{store.Number, store.Number}, true)
	require.Len(t, e.watchers, 2)

	e.Close()
	require.Empty(t, e.watchers)
}
