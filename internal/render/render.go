// Package render formats result sets as tab-separated text: a header line of
// column names followed by one line per row. Downstream scripts parse this
// output, so the format is stable.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hetulpatel/moviecatalog/internal/models"
)

const (
	// NoRows replaces the header and rows when a result set is empty.
	NoRows = "(no rows)"
	// Null is printed for SQL NULL.
	Null = "NULL"
)

// Render returns the text form of rs without a trailing newline.
func Render(rs *models.ResultSet) string {
	if rs.Empty() {
		return NoRows
	}
	var b strings.Builder
	b.WriteString(strings.Join(rs.Columns, "\t"))
	cells := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i := range cells {
			var v any
			if i < len(row) {
				v = row[i]
			}
			cells[i] = Value(v)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, "\t"))
	}
	return b.String()
}

// Write renders rs to w followed by a newline.
func Write(w io.Writer, rs *models.ResultSet) error {
	_, err := fmt.Fprintln(w, Render(rs))
	return err
}

// Value converts a single driver value to its cell text.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return Null
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
