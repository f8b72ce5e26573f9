package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *ResultSet {
	return &ResultSet{
		Columns: []string{"name", "total_budget"},
		Rows: [][]any{
			{"Alice", int64(2500000)},
			{"Bob", int64(1050000)},
			{"Charlie", int64(500000)},
		},
	}
}

func TestHead(t *testing.T) {
	rs := sample()
	assert.Equal(t, 2, rs.Head(2).Len())
	assert.Equal(t, 3, rs.Head(0).Len())
	assert.Equal(t, 3, rs.Head(10).Len())
	assert.Equal(t, rs.Columns, rs.Head(1).Columns)

	var nilSet *ResultSet
	assert.True(t, nilSet.Empty())
	assert.Nil(t, nilSet.Head(3))
}

func TestValueAndRecord(t *testing.T) {
	rs := sample()

	v, ok := rs.Value(1, "total_budget")
	assert.True(t, ok)
	assert.Equal(t, int64(1050000), v)

	_, ok = rs.Value(1, "missing")
	assert.False(t, ok)
	_, ok = rs.Value(7, "name")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"name": "Charlie", "total_budget": int64(500000)}, rs.Record(2))
	assert.Nil(t, rs.Record(-1))
}
