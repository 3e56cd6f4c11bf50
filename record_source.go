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

import "context"

// Row maps column names to raw cell values as read from the source.
// A missing key, a nil value and an empty string all mean "null".
type Row map[string]any

// RecordSource supplies an ordered, finite sequence of rows plus the known
// column names. The engine reads a source exactly once per validation run,
// so implementations do not need to be replayable.
type RecordSource interface {
	// ID identifies the source in validation results, e.g. a file path or
	// a db.table name.
	ID() string

	// Columns enumerates the source schema.
	Columns(ctx context.Context) ([]string, error)

	// FetchRows materializes all rows in source order. Row indices in
	// validation outcomes refer to zero-based positions in this slice.
	FetchRows(ctx context.Context) ([]Row, error)
}
