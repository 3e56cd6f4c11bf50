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
	"regexp"
	"strconv"
	"strings"
)

var (
	betweenRegex      = regexp.MustCompile(`^(\w+)\((.*?)\)\s+between\s+(.+)\s+and\s+(.+)$`)
	functionOnlyRegex = regexp.MustCompile(`^(\w+)\((.*?)\)$`)
)

// ParseExpectationExpression parses the textual expectation syntax used in
// suite files:
//
//	column_exists(team)
//	values_not_null(player_name)
//	values_of_type(points, integer)
//	values_between(minutes_played) between 0 and 48
//	values_match_format(game_date, YYYY-MM-DD)
//	values_match_format(game_date, YYYY-MM-DD, calendar)
//
// The returned expectation has already passed Validate.
func ParseExpectationExpression(expression string) (Expectation, error) {
	expression = strings.TrimSpace(expression)

	if expression == "" {
		return Expectation{}, fmt.Errorf("empty expression")
	}

	var exp Expectation

	if matches := betweenRegex.FindStringSubmatch(expression); matches != nil {
		params := parseParameters(matches[2])
		if matches[1] != string(KindValuesBetween) {
			return Expectation{}, fmt.Errorf("function %q does not take a between range", matches[1])
		}
		if len(params) != 1 {
			return Expectation{}, fmt.Errorf("values_between takes exactly one column, got %d parameters", len(params))
		}

		minVal, err := parseNumericLiteral(matches[3])
		if err != nil {
			return Expectation{}, fmt.Errorf("failed to parse min value: %v", err)
		}

		maxVal, err := parseNumericLiteral(matches[4])
		if err != nil {
			return Expectation{}, fmt.Errorf("failed to parse max value: %v", err)
		}

		exp = Expectation{
			Kind:   KindValuesBetween,
			Column: params[0],
			Params: ExpectationParams{Min: &minVal, Max: &maxVal},
		}

	} else if matches := functionOnlyRegex.FindStringSubmatch(expression); matches != nil {
		var err error
		exp, err = buildFunctionExpectation(matches[1], parseParameters(matches[2]))
		if err != nil {
			return Expectation{}, err
		}

	} else {
		return Expectation{}, fmt.Errorf("invalid expression format: %s", expression)
	}

	if err := exp.Validate(); err != nil {
		return Expectation{}, err
	}

	return exp, nil
}

func buildFunctionExpectation(functionName string, params []string) (Expectation, error) {
	kind := ExpectationKind(functionName)

	switch kind {
	case KindColumnExists, KindValuesNotNull:
		if len(params) != 1 {
			return Expectation{}, fmt.Errorf("%s takes exactly one column, got %d parameters", kind, len(params))
		}
		return Expectation{Kind: kind, Column: params[0]}, nil

	case KindValuesOfType:
		if len(params) != 2 {
			return Expectation{}, fmt.Errorf("values_of_type takes a column and a type, got %d parameters", len(params))
		}
		return Expectation{
			Kind:   kind,
			Column: params[0],
			Params: ExpectationParams{ExpectedType: ValueType(params[1])},
		}, nil

	case KindValuesMatchFormat:
		if len(params) < 2 || len(params) > 3 {
			return Expectation{}, fmt.Errorf("values_match_format takes a column and a pattern, got %d parameters", len(params))
		}
		exp := Expectation{
			Kind:   kind,
			Column: params[0],
			Params: ExpectationParams{Pattern: params[1]},
		}
		if len(params) == 3 {
			if params[2] != "calendar" {
				return Expectation{}, fmt.Errorf("unknown values_match_format option: %q", params[2])
			}
			exp.Params.CalendarCheck = true
		}
		return exp, nil

	case KindValuesBetween:
		return Expectation{}, fmt.Errorf("values_between requires a between range: values_between(col) between <min> and <max>")

	default:
		return Expectation{}, fmt.Errorf("unknown expectation function: %s", functionName)
	}
}

func parseParameters(paramStr string) []string {
	if paramStr == "" {
		return []string{}
	}

	params := strings.Split(paramStr, ",")
	for i, param := range params {
		params[i] = strings.TrimSpace(param)
	}

	return params
}

func parseNumericLiteral(valueStr string) (float64, error) {
	valueStr = strings.TrimSpace(valueStr)

	if valueStr == "" {
		return 0, fmt.Errorf("empty value")
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", valueStr)
	}

	return value, nil
}
