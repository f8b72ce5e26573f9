package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/moviecatalog/internal/catalog"
	"github.com/hetulpatel/moviecatalog/internal/models"
)

// ResultMessage is the payload placed on the reports topic, one per catalog entry.
type ResultMessage struct {
	RunID      string    `json:"run_id"`
	Catalog    string    `json:"catalog"`
	Index      int       `json:"index"`
	Name       string    `json:"name"`
	SQL        string    `json:"sql"`
	Columns    []string  `json:"columns"`
	Rows       [][]any   `json:"rows"`
	CapturedAt time.Time `json:"captured_at"`
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Collector gathers successful results of one run for publication.
type Collector struct {
	runID   string
	catalog string
	now     func() time.Time
	results []ResultMessage
}

func NewCollector(catalogName string) *Collector {
	return &Collector{
		runID:   uuid.NewString(),
		catalog: catalogName,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RunID identifies this run in every message key and payload.
func (c *Collector) RunID() string {
	return c.runID
}

// Observe records a result. Its signature matches runner.Observer.
func (c *Collector) Observe(_ context.Context, index int, entry catalog.Entry, rs *models.ResultSet) {
	msg := ResultMessage{
		RunID:      c.runID,
		Catalog:    c.catalog,
		Index:      index,
		Name:       entry.Name,
		SQL:        entry.SQL,
		CapturedAt: c.now(),
	}
	if rs != nil {
		msg.Columns = rs.Columns
		msg.Rows = rs.Rows
	}
	c.results = append(c.results, msg)
}

func (c *Collector) Len() int {
	return len(c.results)
}

// Messages encodes the collected results keyed "{run_id}-{index}".
func (c *Collector) Messages() ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(c.results))
	for _, r := range c.results {
		payload, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal result %s: %w", r.Name, err)
		}
		key := fmt.Sprintf("%s-%d", r.RunID, r.Index)
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}
	return msgs, nil
}

// PublishResults writes everything the collector saw in one batch.
func PublishResults(ctx context.Context, writer MessageWriter, c *Collector) error {
	if writer == nil || c == nil || c.Len() == 0 {
		return nil
	}
	msgs, err := c.Messages()
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msgs...)
}
