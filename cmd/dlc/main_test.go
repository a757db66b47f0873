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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunConvertWritesCSV(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	outPath := filepath.Join(dir, "run.csv")

	require.NoError(t, os.WriteFile(logPath, []byte("@start-debug\n@runtime;0.01\n"), 0o644))

	code := run([]string{"-o", outPath, logPath}, os.Stdout, os.Stderr)
	require.Equal(t, 0, code)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(got), "@,copy-time,end-time,relation,rule,src-locator,start-time,time,total-time,tuples,version\n")
	require.Contains(t, string(got), "@runtime,,,,,,,,0.01,,\n")
}

func TestRunWithoutArgsReportsOutOfScope(t *testing.T) {
	code := run(nil, os.Stdout, os.Stderr)
	require.Equal(t, 1, code)
}

func TestRunConvertMissingLogPath(t *testing.T) {
	code := run([]string{"-o", "out.csv"}, os.Stdout, os.Stderr)
	require.Equal(t, 2, code)
}
