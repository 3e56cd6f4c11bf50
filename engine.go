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
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DataValidator is the interface that wraps the validation engine.
type DataValidator interface {
	// Validate evaluates every expectation in the suite against the source,
	// in suite order, each one independently. Per-expectation problems are
	// recorded in their outcomes; only a failure to read the source aborts
	// the run, in which case no partial result is returned.
	Validate(ctx context.Context, suite *ExpectationSuite, source RecordSource) (*ValidationResult, error)
}

type ValidatorOption func(*DataValidatorImpl)

// WithUnexpectedSampleLimit overrides the per-outcome cap on collected
// unexpected examples.
func WithUnexpectedSampleLimit(limit int) ValidatorOption {
	return func(d *DataValidatorImpl) {
		if limit >= 0 {
			d.sampleLimit = limit
		}
	}
}

// WithMaxConcurrent evaluates expectations on up to maxConcurrent
// goroutines. Outcomes keep suite order regardless of completion order.
func WithMaxConcurrent(maxConcurrent int) ValidatorOption {
	return func(d *DataValidatorImpl) {
		if maxConcurrent > 1 {
			d.maxConcurrent = maxConcurrent
		}
	}
}

func NewDataValidator(logger *slog.Logger, opts ...ValidatorOption) DataValidator {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	validator := &DataValidatorImpl{
		logger:        logger,
		sampleLimit:   DefaultUnexpectedSampleLimit,
		maxConcurrent: 1,
	}
	for _, opt := range opts {
		opt(validator)
	}
	return validator
}

type DataValidatorImpl struct {
	logger        *slog.Logger
	sampleLimit   int
	maxConcurrent int
}

func (d *DataValidatorImpl) Validate(ctx context.Context, suite *ExpectationSuite, source RecordSource) (*ValidationResult, error) {
	if suite == nil {
		return nil, fmt.Errorf("expectation suite is not provided")
	}
	if source == nil {
		return nil, fmt.Errorf("record source is not provided")
	}

	columns, err := source.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read schema of %s: %v", ErrSourceExhausted, source.ID(), err)
	}

	startTime := time.Now()
	rows, err := source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch rows from %s: %v", ErrSourceExhausted, source.ID(), err)
	}

	d.logger.Debug("fetched rows from source",
		"source_id", source.ID(),
		"row_count", len(rows),
		"duration_ms", time.Since(startTime).Milliseconds())

	columnSet := make(map[string]bool, len(columns))
	for _, column := range columns {
		columnSet[column] = true
	}

	expectations := suite.Expectations()
	outcomes := make([]ValidationOutcome, len(expectations))

	if d.maxConcurrent > 1 {
		pool := newTaskPool(d.maxConcurrent, d.logger)
		for i, exp := range expectations {
			pool.Enqueue(fmt.Sprintf("expectation:%d:%s", i, exp.Kind), func() {
				outcomes[i] = d.runExpectation(exp, source.ID(), columnSet, rows)
			})
		}
		pool.Join()
	} else {
		for i, exp := range expectations {
			outcomes[i] = d.runExpectation(exp, source.ID(), columnSet, rows)
		}
	}

	result := newValidationResult(suite.Name(), source.ID(), outcomes)

	d.logger.Debug("validation run completed",
		"suite", suite.Name(),
		"source_id", source.ID(),
		"evaluated", result.Statistics.EvaluatedExpectations,
		"unsuccessful", result.Statistics.UnsuccessfulExpectations,
		"success", result.Success)

	return result, nil
}

func (d *DataValidatorImpl) runExpectation(exp Expectation, sourceID string, columnSet map[string]bool, rows []Row) ValidationOutcome {
	startTime := time.Now()
	outcome := evaluateExpectation(exp, sourceID, columnSet, rows, d.sampleLimit)
	elapsed := time.Since(startTime).Milliseconds()

	d.logger.Debug("evaluated expectation",
		"expectation", exp.String(),
		"success", outcome.Success,
		"unexpected_count", outcome.UnexpectedCount,
		"duration_ms", elapsed)

	return outcome
}
