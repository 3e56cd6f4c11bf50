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

package gxc

import (
	"fmt"
	"log/slog"

	"github.com/ynaung24/gxcore"
	"github.com/ynaung24/gxcore/cnn"
	"github.com/ynaung24/gxcore/sources"
)

const (
	Version = "v0.1.0"

	defaultSQLPoolSize = 16
)

func GetGxCoreLibVersion() string {
	return Version
}

// NewRecordSource builds a record source for a configured data source.
func NewRecordSource(dataSource *gxcore.DataSource, logger *slog.Logger) (gxcore.RecordSource, error) {
	switch dataSource.Type {
	case gxcore.DataSourceTypeCsv:
		if dataSource.Configuration.FilePath == "" {
			return nil, fmt.Errorf("csv data source %q requires a file_path", dataSource.Name)
		}
		return sources.NewCsvRecordSource(dataSource.Name, dataSource.Configuration.FilePath, logger), nil
	case gxcore.DataSourceTypeClickhouse:
		connection, err := cnn.NewClickhouseConnection(dataSource.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
		}
		return sources.NewClickhouseRecordSource(dataSource.Name, connection, dataSource.Dataset, logger), nil
	case gxcore.DataSourceTypePostgresql:
		connection, err := cnn.NewPostgresqlConnection(dataSource.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgresql connection: %w", err)
		}
		return sources.NewSqlRecordSource(dataSource.Name, connection, dataSource.Dataset, logger), nil
	case gxcore.DataSourceTypeMysql:
		connection, err := cnn.NewMysqlConnection(dataSource.Configuration, defaultSQLPoolSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create mysql connection: %w", err)
		}
		return sources.NewSqlRecordSource(dataSource.Name, connection, dataSource.Dataset, logger), nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}
}

// NewValidator builds the validation engine.
func NewValidator(logger *slog.Logger, opts ...gxcore.ValidatorOption) gxcore.DataValidator {
	return gxcore.NewDataValidator(logger, opts...)
}
