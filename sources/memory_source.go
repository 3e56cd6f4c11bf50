package sources

import (
	"context"

	"github.com/ynaung24/gxcore"
)

// MemoryRecordSource serves rows from an in-memory slice. Useful for tests
// and for callers that already hold their data.
type MemoryRecordSource struct {
	id      string
	columns []string
	rows    []gxcore.Row
}

func NewMemoryRecordSource(id string, columns []string, rows []gxcore.Row) *MemoryRecordSource {
	return &MemoryRecordSource{
		id:      id,
		columns: columns,
		rows:    rows,
	}
}

func (m *MemoryRecordSource) ID() string {
	return m.id
}

func (m *MemoryRecordSource) Columns(_ context.Context) ([]string, error) {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out, nil
}

func (m *MemoryRecordSource) FetchRows(_ context.Context) ([]gxcore.Row, error) {
	out := make([]gxcore.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}
