package models

// ResultSet is an ordered sequence of rows sharing one column list.
// Values keep the driver's types: int64, float64, string, []byte or nil.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the set has no rows.
func (r *ResultSet) Empty() bool {
	return r.Len() == 0
}

// Head returns a view over the first n rows. n <= 0 means no truncation.
func (r *ResultSet) Head(n int) *ResultSet {
	if r == nil || n <= 0 || n >= len(r.Rows) {
		return r
	}
	return &ResultSet{Columns: r.Columns, Rows: r.Rows[:n]}
}

// Value returns the value of column name in row i.
func (r *ResultSet) Value(i int, name string) (any, bool) {
	if r == nil || i < 0 || i >= len(r.Rows) {
		return nil, false
	}
	for j, col := range r.Columns {
		if col == name {
			return r.Rows[i][j], true
		}
	}
	return nil, false
}

// Record returns row i as a column-name map.
func (r *ResultSet) Record(i int) map[string]any {
	if r == nil || i < 0 || i >= len(r.Rows) {
		return nil
	}
	out := make(map[string]any, len(r.Columns))
	for j, col := range r.Columns {
		out[col] = r.Rows[i][j]
	}
	return out
}
