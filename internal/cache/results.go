package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hetulpatel/moviecatalog/internal/models"
	"github.com/hetulpatel/moviecatalog/internal/render"
)

// ResultCache stores query results by key.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.ResultSet, bool, error)
	Set(ctx context.Context, key string, rs *models.ResultSet) error
	Close() error
}

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisResultCache builds a cache with the given addr/password/db.
func NewRedisResultCache(addr, password string, db int, ttl time.Duration, prefix string) (ResultCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if prefix == "" {
		prefix = "moviequery"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisResultCache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}, nil
}

func (c *redisResultCache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

func (c *redisResultCache) Get(ctx context.Context, key string) (*models.ResultSet, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rs, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return rs, true, nil
}

func (c *redisResultCache) Set(ctx context.Context, key string, rs *models.ResultSet) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := Encode(rs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *redisResultCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Encode serializes a result set for storage. Every non-NULL cell is stored
// as its rendered text, so a cached result prints exactly like a fresh one.
// Cached rows lose their driver types; NULL survives as JSON null.
func Encode(rs *models.ResultSet) ([]byte, error) {
	rows := make([][]any, len(rs.Rows))
	for i, row := range rs.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = render.Value(v)
			}
		}
		rows[i] = cells
	}
	return json.Marshal(&models.ResultSet{Columns: rs.Columns, Rows: rows})
}

// Decode reverses Encode.
func Decode(data []byte) (*models.ResultSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rs models.ResultSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode result set: %w", err)
	}
	return &rs, nil
}
