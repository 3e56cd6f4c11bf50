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

// ExpectationSuite is an ordered, named collection of expectations. By
// default duplicate expectations are allowed and evaluated independently;
// WithStrictUniqueness makes Add reject structural duplicates instead.
type ExpectationSuite struct {
	name         string
	strict       bool
	expectations []Expectation
}

type SuiteOption func(*ExpectationSuite)

func WithStrictUniqueness() SuiteOption {
	return func(s *ExpectationSuite) {
		s.strict = true
	}
}

func NewExpectationSuite(name string, opts ...SuiteOption) *ExpectationSuite {
	s := &ExpectationSuite{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExpectationSuite) Name() string {
	return s.name
}

// Add validates the expectation's configuration and appends it to the
// suite, returning the suite for chaining. A rejected expectation leaves
// the suite unchanged; the suite itself stays usable.
func (s *ExpectationSuite) Add(exp Expectation) (*ExpectationSuite, error) {
	if err := exp.Validate(); err != nil {
		return s, err
	}

	if s.strict {
		for _, existing := range s.expectations {
			if existing.Equal(exp) {
				return s, &DuplicateExpectationError{
					SuiteName:  s.name,
					Expression: exp.String(),
				}
			}
		}
	}

	s.expectations = append(s.expectations, exp)
	return s, nil
}

// Expectations returns the expectations in insertion order. The returned
// slice is a copy; mutating it does not affect the suite.
func (s *ExpectationSuite) Expectations() []Expectation {
	out := make([]Expectation, len(s.expectations))
	copy(out, s.expectations)
	return out
}

func (s *ExpectationSuite) Len() int {
	return len(s.expectations)
}
