package onedb

import (
	"context"
	"database/sql"
)

// Row maps column names to values for one result row.
type Row map[string]any

// FetchAll runs the query and returns every row as a column-name-to-value
// map, in server order. A query matching no rows returns an empty, non-nil
// slice.
func (m *Manager) FetchAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	st, err := m.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return scanRows(st.Rows())
}

// FetchOne runs the query and returns the first row, or a nil Row (and nil
// error) when nothing matched.
func (m *Manager) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	st, err := m.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	rows, err := scanRows(st.Rows())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func scanRows(rs *sql.Rows) ([]Row, error) {
	out := make([]Row, 0, 8)
	if rs == nil {
		return out, nil
	}
	cols, err := rs.Columns()
	if err != nil {
		return nil, &ExecuteError{Err: err}
	}
	buf := make([]any, len(cols))
	scan := make([]any, len(cols))
	for i := range buf {
		scan[i] = &buf[i]
	}
	for rs.Next() {
		if err := rs.Scan(scan...); err != nil {
			return nil, &ExecuteError{Err: err}
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(buf[i])
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, &ExecuteError{Err: err}
	}
	return out, nil
}

// normalizeValue surfaces text columns as string; the mysql driver hands
// them back as []byte unless interpolation is on.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
