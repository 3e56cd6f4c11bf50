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
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ynaung24/gxcore"
)

// SqlRecordSource reads every row of a table through database/sql. It works
// for any registered driver; PostgreSQL (lib/pq) and MySQL
// (go-sql-driver/mysql) connections come from the cnn package. Text cells
// arrive as []byte from most drivers and are normalized to string.
type SqlRecordSource struct {
	id      string
	db      *sql.DB
	dataset string
	logger  *slog.Logger
}

func NewSqlRecordSource(id string, db *sql.DB, dataset string, logger *slog.Logger) *SqlRecordSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SqlRecordSource{
		id:      id,
		db:      db,
		dataset: dataset,
		logger:  logger,
	}
}

func (s *SqlRecordSource) ID() string {
	return s.id
}

func (s *SqlRecordSource) Columns(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT 0", s.dataset)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", s.dataset, err)
	}
	defer rows.Close()

	return rows.Columns()
}

func (s *SqlRecordSource) FetchRows(ctx context.Context) ([]gxcore.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s", s.dataset)

	startTime := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.dataset, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", "error", closeErr)
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var allRows []gxcore.Row
	for rows.Next() {
		columns := make([]interface{}, len(cols))
		columnPointers := make([]interface{}, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		rowData := make(gxcore.Row, len(cols))
		for i, colName := range cols {
			val := columnPointers[i].(*interface{})
			rowData[colName] = normalizeSQLCell(*val)
		}
		allRows = append(allRows, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}

	s.logger.Debug("fetched table rows",
		"dataset", s.dataset,
		"row_count", len(allRows),
		"duration_ms", time.Since(startTime).Milliseconds())

	return allRows, nil
}

func normalizeSQLCell(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
