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

// DefaultUnexpectedSampleLimit caps UnexpectedExamples per outcome.
// UnexpectedCount stays exact regardless of the cap.
const DefaultUnexpectedSampleLimit = 20

// UnexpectedValue is one failing cell: its zero-based row index and the raw
// value as read from the source.
type UnexpectedValue struct {
	RowIndex int `json:"row_index"`
	Value    any `json:"value"`
}

// ValidationOutcome is the result of evaluating a single expectation.
type ValidationOutcome struct {
	Expectation        Expectation       `json:"expectation"`
	Success            bool              `json:"success"`
	ObservedCount      int               `json:"observed_count"`
	UnexpectedCount    int               `json:"unexpected_count"`
	UnexpectedExamples []UnexpectedValue `json:"unexpected_examples,omitempty"`
	Exception          string            `json:"exception,omitempty"`
}

// ValidationStatistics aggregates outcome counts for a run.
type ValidationStatistics struct {
	EvaluatedExpectations    int     `json:"evaluated_expectations"`
	SuccessfulExpectations   int     `json:"successful_expectations"`
	UnsuccessfulExpectations int     `json:"unsuccessful_expectations"`
	SuccessPercent           float64 `json:"success_percent"`
}

// ValidationResult is the complete report of one validation run. Outcomes
// preserve suite order. Success is the AND of all non-advisory outcomes;
// expectations marked on_fail=warn are reported but never flip the
// aggregate to false.
type ValidationResult struct {
	SuiteName  string               `json:"suite_name"`
	SourceID   string               `json:"source_id"`
	Outcomes   []ValidationOutcome  `json:"outcomes"`
	Success    bool                 `json:"success"`
	Statistics ValidationStatistics `json:"statistics"`
}

func newValidationResult(suiteName string, sourceID string, outcomes []ValidationOutcome) *ValidationResult {
	result := &ValidationResult{
		SuiteName: suiteName,
		SourceID:  sourceID,
		Outcomes:  outcomes,
		Success:   true,
	}

	stats := ValidationStatistics{
		EvaluatedExpectations: len(outcomes),
	}

	for _, outcome := range outcomes {
		if outcome.Success {
			stats.SuccessfulExpectations++
			continue
		}
		stats.UnsuccessfulExpectations++
		if outcome.Expectation.OnFail != OnFailActionWarn {
			result.Success = false
		}
	}

	if stats.EvaluatedExpectations == 0 {
		stats.SuccessPercent = 100.0
	} else {
		stats.SuccessPercent = 100.0 * float64(stats.SuccessfulExpectations) / float64(stats.EvaluatedExpectations)
	}

	result.Statistics = stats
	return result
}
