// Copyright 2026 The GXCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gxcore

import (
	"errors"
	"fmt"
)

// ErrSourceExhausted wraps any failure to read a record source. A source
// read failure is the only error that aborts a validation run; the caller
// receives it instead of a partial result.
var ErrSourceExhausted = errors.New("record source could not be read")

// InvalidExpectationConfigError reports malformed expectation parameters.
// It is raised when the expectation is added to a suite, never mid-scan.
type InvalidExpectationConfigError struct {
	Kind   ExpectationKind
	Column string
	Reason string
}

func (e *InvalidExpectationConfigError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("invalid expectation config for %s(%s): %s", e.Kind, e.Column, e.Reason)
	}
	return fmt.Sprintf("invalid expectation config for %s: %s", e.Kind, e.Reason)
}

func newInvalidConfigError(exp Expectation, reason string) *InvalidExpectationConfigError {
	return &InvalidExpectationConfigError{
		Kind:   exp.Kind,
		Column: exp.Column,
		Reason: reason,
	}
}

// DuplicateExpectationError is returned by ExpectationSuite.Add when strict
// uniqueness is enabled and the expectation is already present.
type DuplicateExpectationError struct {
	SuiteName  string
	Expression string
}

func (e *DuplicateExpectationError) Error() string {
	return fmt.Sprintf("suite %q already contains expectation %s", e.SuiteName, e.Expression)
}

// SchemaMismatchError marks a column-bound expectation whose target column
// is absent from the source schema. It is recorded in that expectation's
// outcome and never aborts the run.
type SchemaMismatchError struct {
	Column   string
	SourceID string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("column %q not found in schema of source %q", e.Column, e.SourceID)
}

// IsInvalidConfigError reports whether err is (or wraps) an
// InvalidExpectationConfigError.
func IsInvalidConfigError(err error) bool {
	var ce *InvalidExpectationConfigError
	return errors.As(err, &ce)
}

// IsDuplicateExpectationError reports whether err is (or wraps) a
// DuplicateExpectationError.
func IsDuplicateExpectationError(err error) bool {
	var de *DuplicateExpectationError
	return errors.As(err, &de)
}
