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
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isNullCell treats a missing key, a nil value and a blank string as null.
func isNullCell(row Row, column string) bool {
	value, ok := row[column]
	if !ok || value == nil {
		return true
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// cellFloat coerces a raw cell to a float64 for range checks.
func cellFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case []byte:
		return cellFloat(string(v))
	default:
		return 0, false
	}
}

// cellIsInteger reports whether a raw cell holds an integer without
// information loss: "25" passes, "25.5" and "abc" fail, float64(25) passes.
func cellIsInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return v == math.Trunc(v) && !math.IsInf(v, 0) && !math.IsNaN(v)
	case float32:
		return cellIsInteger(float64(v))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	case []byte:
		return cellIsInteger(string(v))
	default:
		return false
	}
}

// cellRaw renders the value for unexpected_examples, keeping the raw string
// form a human would recognize from the source.
func cellRaw(row Row, column string) any {
	value, ok := row[column]
	if !ok {
		return nil
	}
	return value
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatPattern is a compiled values_match_format pattern. The pattern
// language is date-shape tokens (YYYY, MM, DD), with every other character
// matched literally: "YYYY-MM-DD" accepts "2024-01-15" and rejects
// "invalid-date". When calendar checking is requested the same tokens are
// mapped onto a time layout and the value must parse as a real date.
type formatPattern struct {
	re     *regexp.Regexp
	layout string

	hasYear  bool
	hasMonth bool
	hasDay   bool
}

var formatTokens = []struct {
	token  string
	regex  string
	layout string
}{
	{"YYYY", `\d{4}`, "2006"},
	{"MM", `\d{2}`, "01"},
	{"DD", `\d{2}`, "02"},
}

func compileFormatPattern(pattern string) (*formatPattern, error) {
	var regexBuf, layoutBuf strings.Builder
	fp := &formatPattern{}

	regexBuf.WriteString("^")

	rest := pattern
	for rest != "" {
		matched := false
		for _, tok := range formatTokens {
			if strings.HasPrefix(rest, tok.token) {
				regexBuf.WriteString(tok.regex)
				layoutBuf.WriteString(tok.layout)
				switch tok.token {
				case "YYYY":
					fp.hasYear = true
				case "MM":
					fp.hasMonth = true
				case "DD":
					fp.hasDay = true
				}
				rest = rest[len(tok.token):]
				matched = true
				break
			}
		}
		if !matched {
			regexBuf.WriteString(regexp.QuoteMeta(rest[:1]))
			layoutBuf.WriteString(rest[:1])
			rest = rest[1:]
		}
	}

	regexBuf.WriteString("$")

	re, err := regexp.Compile(regexBuf.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}

	fp.re = re
	fp.layout = layoutBuf.String()
	return fp, nil
}

func (fp *formatPattern) supportsCalendarCheck() bool {
	return fp.hasYear && fp.hasMonth && fp.hasDay
}

func (fp *formatPattern) matches(value string, calendarCheck bool) bool {
	if !fp.re.MatchString(value) {
		return false
	}
	if calendarCheck {
		if _, err := time.Parse(fp.layout, value); err != nil {
			return false
		}
	}
	return true
}

// evaluateExpectation applies one expectation to the materialized source.
// It never returns an error: schema mismatches and configuration problems
// are recorded in the outcome so that one bad expectation cannot abort the
// rest of the run.
func evaluateExpectation(exp Expectation, sourceID string, columns map[string]bool, rows []Row, sampleLimit int) ValidationOutcome {
	outcome := ValidationOutcome{Expectation: exp}

	if err := exp.Validate(); err != nil {
		outcome.Exception = err.Error()
		return outcome
	}

	if exp.Scope() == ScopeSchema {
		// schema checks inspect the column set once, not the rows
		outcome.ObservedCount = 1
		outcome.Success = columns[exp.Column]
		if !outcome.Success {
			outcome.UnexpectedCount = 1
		}
		return outcome
	}

	if !columns[exp.Column] {
		err := &SchemaMismatchError{Column: exp.Column, SourceID: sourceID}
		outcome.Exception = err.Error()
		return outcome
	}

	predicate := rowPredicate(exp)
	outcome.ObservedCount = len(rows)

	for i, row := range rows {
		if predicate(row) {
			continue
		}
		outcome.UnexpectedCount++
		if len(outcome.UnexpectedExamples) < sampleLimit {
			outcome.UnexpectedExamples = append(outcome.UnexpectedExamples, UnexpectedValue{
				RowIndex: i,
				Value:    cellRaw(row, exp.Column),
			})
		}
	}

	outcome.Success = outcome.UnexpectedCount == 0
	return outcome
}

// rowPredicate returns the per-row check for a column-scope expectation.
// The expectation has already been validated. Each predicate applies its
// own missing-value policy: values_of_type exempts nulls, values_between
// and values_match_format count them as unexpected, values_not_null fails
// on them by definition.
func rowPredicate(exp Expectation) func(Row) bool {
	switch exp.Kind {
	case KindValuesNotNull:
		return func(row Row) bool {
			return !isNullCell(row, exp.Column)
		}

	case KindValuesOfType:
		expected := exp.Params.ExpectedType
		return func(row Row) bool {
			if isNullCell(row, exp.Column) {
				return true
			}
			if expected == ValueTypeString {
				// every present raw cell has a lexical string form
				return true
			}
			return cellIsInteger(row[exp.Column])
		}

	case KindValuesBetween:
		min, max := *exp.Params.Min, *exp.Params.Max
		return func(row Row) bool {
			if isNullCell(row, exp.Column) {
				return false
			}
			value, ok := cellFloat(row[exp.Column])
			if !ok {
				return false
			}
			return value >= min && value <= max
		}

	case KindValuesMatchFormat:
		// pattern already passed Validate, recompile cannot fail
		fp, _ := compileFormatPattern(exp.Params.Pattern)
		calendar := exp.Params.CalendarCheck
		return func(row Row) bool {
			if isNullCell(row, exp.Column) {
				return false
			}
			return fp.matches(cellString(row[exp.Column]), calendar)
		}

	default:
		return func(Row) bool {
			return false
		}
	}
}
