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

package check

import "github.com/hashicorp/go-multierror"

// Report is the checker's accumulated result: fatal errors (the
// translator refuses to run while any are present) and informational
// warnings, mirroring spec.md §7's ErrorReport.
type Report struct {
	Errors   *multierror.Error
	Warnings []string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// addError accumulates a fatal diagnostic.
func (r *Report) addError(err error) {
	r.Errors = multierror.Append(r.Errors, err)
}

// addWarning records an informational diagnostic.
func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasErrors reports whether any fatal diagnostic was recorded.
func (r *Report) HasErrors() bool {
	return r.Errors != nil && r.Errors.Len() > 0
}

// Err returns the accumulated fatal errors as a single error, or nil if
// the report is clean.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return r.Errors.ErrorOrNil()
}
