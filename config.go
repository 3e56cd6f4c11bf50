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
	"os"

	"gopkg.in/yaml.v3"
)

type DataSourceType string

const (
	DataSourceTypeCsv        DataSourceType = "csv"
	DataSourceTypeClickhouse DataSourceType = "clickhouse"
	DataSourceTypePostgresql DataSourceType = "postgresql"
	DataSourceTypeMysql      DataSourceType = "mysql"
)

// DataSource describes where validated rows come from. For SQL-backed
// sources Dataset is the table to read (optionally schema-qualified); for
// csv sources Configuration.FilePath points at the file.
type DataSource struct {
	Name          string           `yaml:"name"`
	Type          DataSourceType   `yaml:"type"`
	Dataset       string           `yaml:"dataset,omitempty"`
	Configuration ConnectionConfig `yaml:"configuration"`
}

type ConnectionConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Database string `yaml:"database,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

type DataSourcesFileConfig struct {
	Version     string       `yaml:"version"`
	DataSources []DataSource `yaml:"data_sources"`
}

func LoadDataSourcesFileConfig(fileName string) (*DataSourcesFileConfig, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg DataSourcesFileConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
