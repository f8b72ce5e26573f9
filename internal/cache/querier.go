package cache

import (
	"context"

	"github.com/hetulpatel/moviecatalog/internal/hashutil"
	"github.com/hetulpatel/moviecatalog/internal/logging"
	"github.com/hetulpatel/moviecatalog/internal/models"
)

// Querier is the executor being cached.
type Querier interface {
	Query(ctx context.Context, query string) (*models.ResultSet, error)
}

// Source is a Querier that can describe the current state of its data.
// Fingerprint must change whenever a query could return different rows.
type Source interface {
	Querier
	Fingerprint() (string, error)
}

// CachedQuerier serves repeated queries from a ResultCache. Keys combine the
// source fingerprint with the query text, so a write or a different database
// file never hits an old entry. Cache errors are logged and the query falls
// through to the wrapped Source.
type CachedQuerier struct {
	next  Source
	cache ResultCache
}

func NewCachedQuerier(next Source, cache ResultCache) *CachedQuerier {
	return &CachedQuerier{next: next, cache: cache}
}

func (q *CachedQuerier) Query(ctx context.Context, query string) (*models.ResultSet, error) {
	if q.cache == nil {
		return q.next.Query(ctx, query)
	}
	scope, err := q.next.Fingerprint()
	if err != nil {
		logging.Errorf("[cache] fingerprint: %v", err)
		return q.next.Query(ctx, query)
	}
	key := hashutil.QueryKey(scope, query)
	rs, ok, err := q.cache.Get(ctx, key)
	if err != nil {
		logging.Errorf("[cache] get %s: %v", key, err)
	} else if ok {
		logging.Debugf("[cache] hit %s", key)
		return rs, nil
	}

	rs, err = q.next.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := q.cache.Set(ctx, key, rs); err != nil {
		logging.Errorf("[cache] set %s: %v", key, err)
	}
	return rs, nil
}
