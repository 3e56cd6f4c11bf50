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
	"reflect"
	"testing"
)

func TestValuesBetweenPredicate(t *testing.T) {
	exp := Expectation{
		Kind:   KindValuesBetween,
		Column: "minutes_played",
		Params: ExpectationParams{Min: floatPtr(0), Max: floatPtr(48)},
	}
	predicate := rowPredicate(exp)

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "at max boundary", value: "48", expected: true},
		{name: "above max", value: "49", expected: false},
		{name: "below min", value: "-1", expected: false},
		{name: "at min boundary", value: "0", expected: true},
		{name: "within range", value: "36", expected: true},
		{name: "non-numeric string", value: "abc", expected: false},
		{name: "numeric float64", value: float64(36), expected: true},
		{name: "numeric int out of range", value: 999, expected: false},
		{name: "null", value: nil, expected: false},
		{name: "empty string", value: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{"minutes_played": tt.value}
			if got := predicate(row); got != tt.expected {
				t.Errorf("predicate(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}

	t.Run("missing cell", func(t *testing.T) {
		if predicate(Row{}) {
			t.Error("predicate on a missing cell should fail")
		}
	})
}

func TestValuesOfTypePredicate(t *testing.T) {
	integerExp := Expectation{
		Kind:   KindValuesOfType,
		Column: "points",
		Params: ExpectationParams{ExpectedType: ValueTypeInteger},
	}
	stringExp := Expectation{
		Kind:   KindValuesOfType,
		Column: "team",
		Params: ExpectationParams{ExpectedType: ValueTypeString},
	}

	tests := []struct {
		name     string
		exp      Expectation
		row      Row
		expected bool
	}{
		{name: "integer from digits", exp: integerExp, row: Row{"points": "25"}, expected: true},
		{name: "integer from invalid text", exp: integerExp, row: Row{"points": "invalid"}, expected: false},
		{name: "integer from decimal string", exp: integerExp, row: Row{"points": "25.5"}, expected: false},
		{name: "integer from integral float", exp: integerExp, row: Row{"points": float64(25)}, expected: true},
		{name: "integer from fractional float", exp: integerExp, row: Row{"points": 25.5}, expected: false},
		{name: "integer from int64", exp: integerExp, row: Row{"points": int64(25)}, expected: true},
		{name: "integer null is exempt", exp: integerExp, row: Row{"points": nil}, expected: true},
		{name: "integer missing cell is exempt", exp: integerExp, row: Row{}, expected: true},
		{name: "string accepts any text", exp: stringExp, row: Row{"team": "Lakers"}, expected: true},
		{name: "string accepts digits", exp: stringExp, row: Row{"team": "42"}, expected: true},
		{name: "string null is exempt", exp: stringExp, row: Row{"team": nil}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowPredicate(tt.exp)(tt.row); got != tt.expected {
				t.Errorf("predicate(%v) = %v, expected %v", tt.row, got, tt.expected)
			}
		})
	}
}

func TestValuesNotNullPredicate(t *testing.T) {
	predicate := rowPredicate(Expectation{Kind: KindValuesNotNull, Column: "player_name"})

	tests := []struct {
		name     string
		row      Row
		expected bool
	}{
		{name: "present value", row: Row{"player_name": "LeBron James"}, expected: true},
		{name: "empty string", row: Row{"player_name": ""}, expected: false},
		{name: "whitespace only", row: Row{"player_name": "   "}, expected: false},
		{name: "nil value", row: Row{"player_name": nil}, expected: false},
		{name: "missing cell", row: Row{}, expected: false},
		{name: "zero is not null", row: Row{"player_name": 0}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := predicate(tt.row); got != tt.expected {
				t.Errorf("predicate(%v) = %v, expected %v", tt.row, got, tt.expected)
			}
		})
	}
}

func TestValuesMatchFormatPredicate(t *testing.T) {
	exp := Expectation{
		Kind:   KindValuesMatchFormat,
		Column: "game_date",
		Params: ExpectationParams{Pattern: "YYYY-MM-DD"},
	}
	predicate := rowPredicate(exp)

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "valid iso date", value: "2024-01-15", expected: true},
		{name: "invalid text", value: "invalid-date", expected: false},
		{name: "wrong separator", value: "2024/01/15", expected: false},
		{name: "missing day", value: "2024-01", expected: false},
		{name: "trailing garbage", value: "2024-01-15x", expected: false},
		{name: "null", value: nil, expected: false},
		{name: "empty string", value: "", expected: false},
		{name: "shape only, not calendar validity", value: "2024-13-45", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{"game_date": tt.value}
			if got := predicate(row); got != tt.expected {
				t.Errorf("predicate(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}

	t.Run("calendar check rejects impossible dates", func(t *testing.T) {
		calendarExp := exp
		calendarExp.Params.CalendarCheck = true
		calendarPredicate := rowPredicate(calendarExp)

		if !calendarPredicate(Row{"game_date": "2024-01-15"}) {
			t.Error("calendar check rejected a valid date")
		}
		if calendarPredicate(Row{"game_date": "2024-13-45"}) {
			t.Error("calendar check accepted month 13")
		}
		if calendarPredicate(Row{"game_date": "2023-02-29"}) {
			t.Error("calendar check accepted Feb 29 in a non-leap year")
		}
	})
}

func TestCompileFormatPattern(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		value    string
		expected bool
	}{
		{name: "year only match", pattern: "YYYY", value: "2024", expected: true},
		{name: "year only mismatch", pattern: "YYYY", value: "24", expected: false},
		{name: "month slash day", pattern: "MM/DD", value: "01/15", expected: true},
		{name: "literal dot escaped", pattern: "YYYY.MM", value: "2024.01", expected: true},
		{name: "literal dot not wildcard", pattern: "YYYY.MM", value: "2024x01", expected: false},
		{name: "literal text prefix", pattern: "game-YYYY", value: "game-2024", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := compileFormatPattern(tt.pattern)
			if err != nil {
				t.Fatalf("compileFormatPattern(%q) unexpected error: %v", tt.pattern, err)
			}
			if got := fp.matches(tt.value, false); got != tt.expected {
				t.Errorf("pattern %q on %q = %v, expected %v", tt.pattern, tt.value, got, tt.expected)
			}
		})
	}
}

func TestEvaluateExpectationSchemaScope(t *testing.T) {
	columns := map[string]bool{"player_id": true, "team": true}

	t.Run("column present", func(t *testing.T) {
		outcome := evaluateExpectation(
			Expectation{Kind: KindColumnExists, Column: "team"},
			"src", columns, nil, DefaultUnexpectedSampleLimit)

		if !outcome.Success {
			t.Error("expected success for existing column")
		}
		if outcome.ObservedCount != 1 {
			t.Errorf("ObservedCount = %d, expected 1", outcome.ObservedCount)
		}
	})

	t.Run("column absent", func(t *testing.T) {
		outcome := evaluateExpectation(
			Expectation{Kind: KindColumnExists, Column: "salary"},
			"src", columns, nil, DefaultUnexpectedSampleLimit)

		if outcome.Success {
			t.Error("expected failure for missing column")
		}
		if outcome.UnexpectedCount != 1 {
			t.Errorf("UnexpectedCount = %d, expected 1", outcome.UnexpectedCount)
		}
		if outcome.Exception != "" {
			t.Errorf("column_exists failure is not an exception, got %q", outcome.Exception)
		}
	})
}

func TestEvaluateExpectationRecordsSchemaMismatch(t *testing.T) {
	columns := map[string]bool{"player_id": true}
	rows := []Row{{"player_id": "1"}}

	outcome := evaluateExpectation(
		Expectation{Kind: KindValuesNotNull, Column: "salary"},
		"nba_stats", columns, rows, DefaultUnexpectedSampleLimit)

	if outcome.Success {
		t.Error("expected failure for column-bound expectation on a missing column")
	}
	if outcome.Exception == "" {
		t.Fatal("expected a recorded exception")
	}

	want := (&SchemaMismatchError{Column: "salary", SourceID: "nba_stats"}).Error()
	if outcome.Exception != want {
		t.Errorf("Exception = %q, expected %q", outcome.Exception, want)
	}
}

func TestEvaluateExpectationSampleCap(t *testing.T) {
	columns := map[string]bool{"points": true}
	rows := make([]Row, 50)
	for i := range rows {
		rows[i] = Row{"points": "invalid"}
	}

	outcome := evaluateExpectation(
		Expectation{
			Kind:   KindValuesOfType,
			Column: "points",
			Params: ExpectationParams{ExpectedType: ValueTypeInteger},
		},
		"src", columns, rows, 5)

	if outcome.UnexpectedCount != 50 {
		t.Errorf("UnexpectedCount = %d, expected exact count 50", outcome.UnexpectedCount)
	}
	if len(outcome.UnexpectedExamples) != 5 {
		t.Errorf("len(UnexpectedExamples) = %d, expected capped 5", len(outcome.UnexpectedExamples))
	}

	expectedFirst := []UnexpectedValue{
		{RowIndex: 0, Value: "invalid"},
		{RowIndex: 1, Value: "invalid"},
		{RowIndex: 2, Value: "invalid"},
		{RowIndex: 3, Value: "invalid"},
		{RowIndex: 4, Value: "invalid"},
	}
	if !reflect.DeepEqual(outcome.UnexpectedExamples, expectedFirst) {
		t.Errorf("UnexpectedExamples = %+v, expected first failing rows in order", outcome.UnexpectedExamples)
	}
}
