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

package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ynaung24/gxcore"
)

// ClickhouseRecordSource reads a ClickHouse table over the native protocol.
type ClickhouseRecordSource struct {
	id      string
	cnn     driver.Conn
	dataset string
	logger  *slog.Logger
}

func NewClickhouseRecordSource(id string, cnn driver.Conn, dataset string, logger *slog.Logger) *ClickhouseRecordSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ClickhouseRecordSource{
		id:      id,
		cnn:     cnn,
		dataset: dataset,
		logger:  logger,
	}
}

func (c *ClickhouseRecordSource) ID() string {
	return c.id
}

func (c *ClickhouseRecordSource) Columns(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("select * from %s limit 0", c.dataset)
	rows, err := c.cnn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", c.dataset, err)
	}
	defer rows.Close()

	return rows.Columns(), nil
}

func (c *ClickhouseRecordSource) FetchRows(ctx context.Context) ([]gxcore.Row, error) {
	query := fmt.Sprintf("select * from %s", c.dataset)

	startTime := time.Now()
	rows, err := c.cnn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.dataset, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			c.logger.Warn("failed to close rows", "error", closeErr)
		}
	}()

	var allRows []gxcore.Row
	for rows.Next() {
		scanArgs := make([]interface{}, len(rows.Columns()))
		for i, colType := range rows.ColumnTypes() {
			scanType := colType.ScanType()
			valuePtr := reflect.New(scanType).Interface()
			scanArgs[i] = valuePtr
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rowData := make(gxcore.Row, len(rows.Columns()))
		for i, colName := range rows.Columns() {
			scannedValue := reflect.ValueOf(scanArgs[i]).Elem().Interface()
			rowData[colName] = scannedValue
		}

		allRows = append(allRows, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}

	c.logger.Debug("fetched table rows",
		"dataset", c.dataset,
		"row_count", len(allRows),
		"duration_ms", time.Since(startTime).Milliseconds())

	return allRows, nil
}
