package cache

import (
	"strings"

	"github.com/hetulpatel/moviecatalog/internal/config"
	"github.com/hetulpatel/moviecatalog/internal/logging"
)

// Wrap puts a redis cache in front of next when an address is configured.
// The returned func releases the cache and is never nil.
func Wrap(next Source, cfg config.RedisConfig) (Querier, func(), error) {
	if !cfg.Enabled() {
		return next, func() {}, nil
	}
	addr := strings.TrimSpace(cfg.Addr)
	rc, err := NewRedisResultCache(addr, cfg.Password, cfg.DB, cfg.TTL, cfg.Prefix)
	if err != nil {
		return nil, nil, err
	}
	logging.Infof("[cache] caching results in redis at %s (ttl=%s)", addr, cfg.TTL)
	closeFn := func() {
		if err := rc.Close(); err != nil {
			logging.Errorf("[cache] close: %v", err)
		}
	}
	return NewCachedQuerier(next, rc), closeFn, nil
}
