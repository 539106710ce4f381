package knowledge

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
)

// CachedClient remembers found results in Redis. Sentinel results are never
// cached, so a transient outage does not stick. Redis errors count as misses.
type CachedClient struct {
	next   Looker
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedClient(next Looker, client *redis.Client, prefix string, ttl time.Duration) *CachedClient {
	if prefix == "" {
		prefix = "lookup:"
	}
	return &CachedClient{next: next, client: client, prefix: prefix, ttl: ttl}
}

func (c *CachedClient) key(query string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(query))
}

// Cached returns the stored result for query, if any.
func (c *CachedClient) Cached(ctx context.Context, query string) (Result, bool) {
	b, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warnf("lookup cache get failed: %v", err)
		}
		return Result{}, false
	}
	var r Result
	if err := json.Unmarshal(b, &r); err != nil || !r.OK() {
		return Result{}, false
	}
	r.FromCache = true
	return r, true
}

func (c *CachedClient) Lookup(ctx context.Context, query string) Result {
	if r, ok := c.Cached(ctx, query); ok {
		return r
	}
	r := c.next.Lookup(ctx, query)
	if !r.OK() {
		return r
	}
	b, err := json.Marshal(r)
	if err == nil {
		err = c.client.Set(context.WithoutCancel(ctx), c.key(query), b, c.ttl).Err()
	}
	if err != nil {
		logger.Warnf("lookup cache set failed: %v", err)
	}
	return r
}
