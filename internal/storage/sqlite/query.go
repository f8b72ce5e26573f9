package sqlite

import (
	"context"

	"github.com/hetulpatel/moviecatalog/internal/models"
)

// Query runs one read-only statement and returns every row in column order.
// The statement runs inside a transaction that is always rolled back, so a
// catalog entry can never persist a write. Failures are *QueryError.
func (s *Store) Query(ctx context.Context, query string) (*models.ResultSet, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}

	out := &models.ResultSet{Columns: cols, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{SQL: query, Err: err}
		}
		out.Rows = append(out.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	return out, nil
}
