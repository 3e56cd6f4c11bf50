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
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ynaung24/gxcore"
)

// CsvRecordSource reads a delimited text file with a header row. The header
// defines the schema; every cell is kept as its raw string, so an empty
// field is the null marker.
type CsvRecordSource struct {
	id     string
	path   string
	logger *slog.Logger
}

func NewCsvRecordSource(id string, path string, logger *slog.Logger) *CsvRecordSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &CsvRecordSource{
		id:     id,
		path:   path,
		logger: logger,
	}
}

func (c *CsvRecordSource) ID() string {
	return c.id
}

func (c *CsvRecordSource) Columns(_ context.Context) ([]string, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", c.path, err)
	}

	return header, nil
}

func (c *CsvRecordSource) FetchRows(_ context.Context) ([]gxcore.Row, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", c.path, err)
	}

	startTime := time.Now()
	var rows []gxcore.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d of %s: %w", len(rows)+1, c.path, err)
		}

		row := make(gxcore.Row, len(header))
		for i, column := range header {
			row[column] = record[i]
		}
		rows = append(rows, row)
	}

	c.logger.Debug("loaded csv file",
		"path", c.path,
		"row_count", len(rows),
		"duration_ms", time.Since(startTime).Milliseconds())

	return rows, nil
}
