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
	"fmt"
	"strconv"
	"strings"
)

// ExpectationKind identifies one of the closed set of supported checks.
type ExpectationKind string

const (
	KindColumnExists      ExpectationKind = "column_exists"
	KindValuesNotNull     ExpectationKind = "values_not_null"
	KindValuesOfType      ExpectationKind = "values_of_type"
	KindValuesBetween     ExpectationKind = "values_between"
	KindValuesMatchFormat ExpectationKind = "values_match_format"
)

// ValueType is the target type for values_of_type expectations.
type ValueType string

const (
	ValueTypeInteger ValueType = "integer"
	ValueTypeString  ValueType = "string"
)

type ExpectationScope string

const (
	ScopeSchema ExpectationScope = "schema"
	ScopeColumn ExpectationScope = "column"
)

type OnFailAction string

const (
	OnFailActionWarn  OnFailAction = "warn"
	OnFailActionError OnFailAction = "error"
)

var schemaScopeKinds = map[ExpectationKind]bool{
	KindColumnExists: true,
}

var columnScopeKinds = map[ExpectationKind]bool{
	KindValuesNotNull:     true,
	KindValuesOfType:      true,
	KindValuesBetween:     true,
	KindValuesMatchFormat: true,
}

// ExpectationParams holds the per-kind configuration. Only the fields
// recognized by the expectation's kind are consulted; the rest stay zero.
type ExpectationParams struct {
	ExpectedType ValueType `json:"expected_type,omitempty" yaml:"expected_type,omitempty"`
	Min          *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max          *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern      string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// CalendarCheck requires values_match_format values to also be real
	// calendar dates, not just the right lexical shape.
	CalendarCheck bool `json:"calendar_check,omitempty" yaml:"calendar_check,omitempty"`
}

// Expectation is a single declarative data-quality rule bound to a column.
// Expectations are immutable value objects; two expectations are considered
// the same rule when kind, column and params all match.
type Expectation struct {
	Kind   ExpectationKind   `json:"kind" yaml:"kind"`
	Column string            `json:"column" yaml:"column"`
	Params ExpectationParams `json:"params,omitempty" yaml:"params,omitempty"`

	// Description and OnFail are presentation metadata carried from suite
	// files. They do not participate in structural equality.
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	OnFail      OnFailAction `json:"on_fail,omitempty" yaml:"on_fail,omitempty"`
}

func (e Expectation) Scope() ExpectationScope {
	if schemaScopeKinds[e.Kind] {
		return ScopeSchema
	}
	return ScopeColumn
}

// Equal reports structural identity over (kind, column, params).
func (e Expectation) Equal(other Expectation) bool {
	if e.Kind != other.Kind || e.Column != other.Column {
		return false
	}
	if e.Params.ExpectedType != other.Params.ExpectedType ||
		e.Params.Pattern != other.Params.Pattern ||
		e.Params.CalendarCheck != other.Params.CalendarCheck {
		return false
	}
	return floatPtrEqual(e.Params.Min, other.Params.Min) &&
		floatPtrEqual(e.Params.Max, other.Params.Max)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// String renders the expectation in the expression syntax accepted by
// ParseExpectationExpression.
func (e Expectation) String() string {
	switch e.Kind {
	case KindValuesOfType:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Column, e.Params.ExpectedType)
	case KindValuesBetween:
		return fmt.Sprintf("%s(%s) between %s and %s",
			e.Kind, e.Column, formatBound(e.Params.Min), formatBound(e.Params.Max))
	case KindValuesMatchFormat:
		if e.Params.CalendarCheck {
			return fmt.Sprintf("%s(%s, %s, calendar)", e.Kind, e.Column, e.Params.Pattern)
		}
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Column, e.Params.Pattern)
	default:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Column)
	}
}

func formatBound(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Validate checks the expectation's configuration. Malformed parameters are
// rejected here, before any row is ever scanned.
func (e Expectation) Validate() error {
	if !schemaScopeKinds[e.Kind] && !columnScopeKinds[e.Kind] {
		return newInvalidConfigError(e, fmt.Sprintf("unknown expectation kind: %s", e.Kind))
	}

	if strings.TrimSpace(e.Column) == "" {
		return newInvalidConfigError(e, "column name is required")
	}

	switch e.Kind {
	case KindValuesOfType:
		if e.Params.ExpectedType != ValueTypeInteger && e.Params.ExpectedType != ValueTypeString {
			return newInvalidConfigError(e,
				fmt.Sprintf("unsupported expected_type: %q", e.Params.ExpectedType))
		}
	case KindValuesBetween:
		if e.Params.Min == nil || e.Params.Max == nil {
			return newInvalidConfigError(e, "values_between requires both min and max")
		}
		if *e.Params.Min > *e.Params.Max {
			return newInvalidConfigError(e,
				fmt.Sprintf("min (%v) is greater than max (%v)", *e.Params.Min, *e.Params.Max))
		}
	case KindValuesMatchFormat:
		if e.Params.Pattern == "" {
			return newInvalidConfigError(e, "values_match_format requires a pattern")
		}
		compiled, err := compileFormatPattern(e.Params.Pattern)
		if err != nil {
			return newInvalidConfigError(e, err.Error())
		}
		if e.Params.CalendarCheck && !compiled.supportsCalendarCheck() {
			return newInvalidConfigError(e,
				fmt.Sprintf("pattern %q cannot be calendar-checked: needs YYYY, MM and DD tokens", e.Params.Pattern))
		}
	}

	return nil
}
