package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/moviecatalog/internal/catalog"
	"github.com/hetulpatel/moviecatalog/internal/models"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestPublishResults(t *testing.T) {
	c := NewCollector(catalog.ReportsName)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	c.Observe(context.Background(), 2, catalog.Entry{Name: "total_budget_per_director", SQL: "SELECT 1"}, &models.ResultSet{
		Columns: []string{"name", "total_budget"},
		Rows:    [][]any{{"Alice", int64(2500000)}},
	})
	c.Observe(context.Background(), 4, catalog.Entry{Name: "genre_count_per_movie", SQL: "SELECT 2"}, &models.ResultSet{Columns: []string{"title"}})

	w := &recordingWriter{}
	require.NoError(t, PublishResults(context.Background(), w, c))
	require.Len(t, w.msgs, 2)
	assert.Equal(t, c.RunID()+"-2", string(w.msgs[0].Key))
	assert.Equal(t, c.RunID()+"-4", string(w.msgs[1].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, c.RunID(), got["run_id"])
	assert.Equal(t, "reports", got["catalog"])
	assert.Equal(t, "total_budget_per_director", got["name"])
	assert.Equal(t, []any{"name", "total_budget"}, got["columns"])
	assert.Equal(t, []any{[]any{"Alice", float64(2500000)}}, got["rows"])
	assert.Equal(t, "2026-01-02T03:04:05Z", got["captured_at"])
}

func TestPublishResultsNothingToSend(t *testing.T) {
	w := &recordingWriter{err: errors.New("should not be called")}
	assert.NoError(t, PublishResults(context.Background(), w, NewCollector("reports")))
	assert.NoError(t, PublishResults(context.Background(), nil, nil))
	assert.Empty(t, w.msgs)
}

func TestPublishResultsPropagatesWriterError(t *testing.T) {
	c := NewCollector("reports")
	c.Observe(context.Background(), 1, catalog.Entry{Name: "x"}, nil)

	err := PublishResults(context.Background(), &recordingWriter{err: errors.New("leader not available")}, c)
	require.Error(t, err)
}

func TestRunIDsDiffer(t *testing.T) {
	assert.NotEqual(t, NewCollector("a").RunID(), NewCollector("a").RunID())
}
