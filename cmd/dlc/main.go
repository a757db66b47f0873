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

// Command dlc is the interface stub for the packaged engine's CLI (§6).
// The CLI itself — argument parsing conventions, the GUI bundle, the
// live-tail viewer — is an explicit out-of-scope collaborator (§1); this
// binary only wires up the flag surface spec.md names and the one piece
// of §6 that is in scope regardless of front end, the log→CSV converter
// (§8 scenario 6). Parsing a .dl source file requires the front-end
// lexer/parser this repository does not implement, so -c/-j/-l print a
// diagnostic instead of running a program. Flags are parsed with the
// standard library, not a third-party CLI framework: there is no real
// command surface behind most of them, and pulling in a framework for a
// stub would contradict the honesty of "this is out of scope" (see
// DESIGN.md).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/soufflego/soufflego/iodirective"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("dlc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	command := fs.String("c", "", "single-shot analysis command (not implemented: front-end parser is out of scope)")
	gui := fs.Bool("j", false, "emit a GUI bundle (not implemented: out of scope)")
	live := fs.Bool("l", false, "live tail (not implemented: out of scope)")
	convert := fs.String("o", "", "convert a profile log to CSV: -o FILE.csv [k=v,...]")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *convert != "" {
		return runConvert(fs.Args(), *convert, stdout, stderr)
	}
	if *command != "" || *gui || *live || fs.NArg() == 0 {
		fmt.Fprintln(stderr, "dlc: running a Datalog program requires the front-end parser, which is out of scope for this engine (see spec.md §1)")
		return 1
	}
	fmt.Fprintln(stderr, "dlc: unrecognized arguments")
	return 2
}

// runConvert reads the positional log path as a profile log and writes
// its CSV conversion to outPath, applying any headers=/quotes= option
// pairs found among args.
func runConvert(args []string, outPath string, stdout, stderr *os.File) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "dlc: -o requires a log file path")
		return 2
	}
	logPath := args[0]

	headers, quotes := true, false
	for _, kv := range args[1:] {
		k, v, _ := strings.Cut(kv, "=")
		switch k {
		case "headers":
			headers = v == "true"
		case "quotes":
			quotes = v == "true"
		}
	}

	f, err := os.Open(logPath)
	if err != nil {
		fmt.Fprintf(stderr, "dlc: %v\n", err)
		return 1
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "dlc: %v\n", err)
		return 1
	}

	csv, err := iodirective.ConvertLog(lines, headers, quotes)
	if err != nil {
		fmt.Fprintf(stderr, "dlc: %v\n", err)
		return 1
	}

	if err := os.WriteFile(outPath, []byte(csv), 0o644); err != nil {
		fmt.Fprintf(stderr, "dlc: %v\n", err)
		return 1
	}
	return 0
}
