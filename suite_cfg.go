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
	"os"

	"gopkg.in/yaml.v3"
)

// SuitesFileConfig is the on-disk suite definition format:
//
//	version: 1
//	suites:
//	  - name: nba_player_stats_suite
//	    expectations:
//	      - column_exists(player_id)
//	      - values_of_type(points, integer)
//	      - values_between(minutes_played) between 0 and 48
//	      - values_match_format(game_date, YYYY-MM-DD):
//	          desc: game dates must be ISO formatted
//	          on_fail: warn
type SuitesFileConfig struct {
	Version string            `yaml:"version"`
	Suites  []SuiteDefinition `yaml:"suites"`
}

type SuiteDefinition struct {
	Name         string             `yaml:"name"`
	Strict       bool               `yaml:"strict,omitempty"`
	Expectations []SuiteExpectation `yaml:"expectations"`
}

type SuiteExpectation struct {
	Expression  string       `yaml:"-"`
	Description string       `yaml:"desc,omitempty"`
	OnFail      OnFailAction `yaml:"on_fail,omitempty"`

	Parsed *Expectation `yaml:"-"`
}

func (c *SuiteExpectation) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode:
		c.Expression = node.Value

	case node.Kind == yaml.MappingNode && len(node.Content) >= 2:
		c.Expression = node.Content[0].Value
		value := node.Content[1]

		if value.Kind == yaml.MappingNode {
			var details struct {
				Desc   string       `yaml:"desc,omitempty"`
				OnFail OnFailAction `yaml:"on_fail,omitempty"`
			}
			if err := value.Decode(&details); err != nil {
				return err
			}
			c.Description = details.Desc
			c.OnFail = details.OnFail
		}

	default:
		return fmt.Errorf("expectation entry must be an expression or a single-key mapping")
	}

	parsed, err := ParseExpectationExpression(c.Expression)
	if err != nil {
		return err
	}
	parsed.Description = c.Description
	parsed.OnFail = c.OnFail
	c.Parsed = &parsed

	return nil
}

// BuildSuite assembles an ExpectationSuite from a parsed definition.
func (d SuiteDefinition) BuildSuite() (*ExpectationSuite, error) {
	var opts []SuiteOption
	if d.Strict {
		opts = append(opts, WithStrictUniqueness())
	}

	suite := NewExpectationSuite(d.Name, opts...)
	for _, entry := range d.Expectations {
		if entry.Parsed == nil {
			return nil, fmt.Errorf("suite %q contains an unparsed expectation: %s", d.Name, entry.Expression)
		}
		if _, err := suite.Add(*entry.Parsed); err != nil {
			return nil, err
		}
	}

	return suite, nil
}

func LoadSuitesFileConfig(fileName string) (*SuitesFileConfig, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg SuitesFileConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
