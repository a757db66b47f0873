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

// Package engine is the embedding facade: it ties the AST-level checker
// (check), the AST→RAM translator (translate) and the semi-naive
// evaluator (eval) together behind the single entry point most callers
// actually want — compile a parsed source program once, then Run it or
// Call one of its subroutines any number of times against a fresh
// eval.Engine, the way the teacher's own root-level sqle.Engine sits in
// front of its analyzer and executor (see the teacher's engine.go).
package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/soufflego/soufflego/ast"
	"github.com/soufflego/soufflego/config"
	"github.com/soufflego/soufflego/eval"
	"github.com/soufflego/soufflego/ram"
	"github.com/soufflego/soufflego/translate"
	"github.com/soufflego/soufflego/value"
)

// Program is a checked, translated, immutable compiled program together
// with the symbol table its constants were interned against and the
// decoded pragma settings its source declared. Every run of a Program is
// tagged with its own uuid, logged at start and end, so that "no resource
// is shared between distinct Program runs" (§5) is externally auditable
// from the log stream alone.
type Program struct {
	Source  *ast.Program
	Ram     *ram.Program
	Symbols *value.SymbolTable
	Pragmas config.Pragmas
}

// Compile decodes src's pragmas, then checks and translates it to a RAM
// program (translate.Translate runs the checker first). A non-nil error is
// a pragma decoding failure, check.Report.Err()'s accumulated diagnostics,
// or a translation failure, wrapped with the stage that produced it.
func Compile(src *ast.Program) (*Program, error) {
	pragmas, err := config.Decode(src.Pragmas)
	if err != nil {
		return nil, errors.Wrap(err, "engine: decode pragmas")
	}

	symbols := value.NewSymbolTable()
	prog, err := translate.Translate(src, symbols)
	if err != nil {
		return nil, errors.Wrap(err, "engine: translate")
	}

	return &Program{
		Source:  src,
		Ram:     prog,
		Symbols: symbols,
		Pragmas: pragmas,
	}, nil
}

// NewEngine returns an eval.Engine preconfigured to run p: it shares p's
// symbol table so any facts an embedder loads independently intern against
// the same ids the compiled constants use. Callers that want a Reader,
// Writer, or ProfileSink wired in — e.g. one honoring p.Pragmas.ProfileLog
// — pass the matching eval.Option alongside.
func (p *Program) NewEngine(opts ...eval.Option) *eval.Engine {
	base := []eval.Option{eval.WithSymbols(p.Symbols)}
	return eval.NewEngine(append(base, opts...)...)
}

// Run executes p's main statement against e, logging the run's uuid at
// start and completion (or failure) via the ambient logrus logger.
func (p *Program) Run(ctx context.Context, e *eval.Engine) error {
	id := uuid.NewV4()
	logrus.WithField("run", id).Debug("engine: run starting")
	err := e.Run(ctx, p.Ram)
	if err != nil {
		logrus.WithField("run", id).WithError(err).Debug("engine: run failed")
		return errors.Wrap(err, "engine: run")
	}
	logrus.WithField("run", id).Debug("engine: run completed")
	return nil
}

// Call invokes the named subroutine (§6: "execute a named subroutine with
// a list of argument values") and returns its flat output values and the
// parallel error-flag list, one per output value.
func (p *Program) Call(ctx context.Context, e *eval.Engine, name string, args []value.Value) ([]value.Value, []bool, error) {
	out, errs, err := e.Call(ctx, p.Ram, name, args)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "engine: call %q", name)
	}
	return out, errs, nil
}
