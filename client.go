package edgedb

import (
	"context"
	"sync"
	"time"

	"github.com/quinchs/EdgeDBClient/edgeql"
)

// Client pairs a Server with the builder/introspection plumbing most
// callers want on every query: a shared SchemaCache so repeated
// queries against the same types skip re-introspecting, and the
// statistics/slow-query instrumentation in stats.go. Using the
// edgeql.Builder API directly remains entirely supported; Client is a
// convenience layer on top of it, not a requirement for using the core.
type Client struct {
	srv   Server
	cache edgeql.SchemaCache

	stats         QueryStats
	slowThreshold time.Duration
	slowHook      SlowBuildHook
	resultCache   ResultCache
	resultTTL     time.Duration
	mu            sync.RWMutex
}

// NewClient returns a Client backed by srv, with an in-process
// SchemaCache and a 100ms slow-build threshold.
func NewClient(srv Server, opts ...StatsOption) *Client {
	c := &Client{
		srv:           srv,
		cache:         edgeql.NewMemorySchemaCache(),
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Builder returns a new edgeql.Builder sharing this Client's Server
// and SchemaCache.
func (c *Client) Builder() *edgeql.Builder {
	return edgeql.NewBuilderWithCache(c.srv, c.cache)
}

// Run builds b and executes the resulting query against the Server,
// recording statistics for the combined round trip. When a ResultCache
// is configured and the query is safe to reuse (IOFormatJSON, any
// cardinality, capabilities without CapabilityModifications), a hit
// skips Execute entirely.
func (c *Client) Run(ctx context.Context, b *edgeql.Builder, cardinality Cardinality, ioFormat IOFormat, capabilities Capabilities) (any, error) {
	start := time.Now()
	query, vars, buildErr := b.Build(ctx)
	if buildErr != nil {
		c.recordBuild(ctx, "", start, buildErr, nil)
		return nil, buildErr
	}

	c.mu.RLock()
	rc, ttl := c.resultCache, c.resultTTL
	c.mu.RUnlock()

	if rc != nil && ioFormat == IOFormatJSON && !capabilities.Has(CapabilityModifications) {
		key := ResultCacheKey(query, vars)
		if cached, err := rc.Get(ctx, key); err == nil && cached != nil {
			c.recordBuild(ctx, query, start, nil, nil)
			return cached, nil
		}
		result, execErr := c.srv.Execute(ctx, query, vars, cardinality, ioFormat, capabilities)
		c.recordBuild(ctx, query, start, nil, execErr)
		if execErr == nil {
			if raw, ok := result.([]byte); ok {
				_ = rc.Set(ctx, key, raw, ttl)
			}
		}
		return result, execErr
	}

	result, execErr := c.srv.Execute(ctx, query, vars, cardinality, ioFormat, capabilities)
	c.recordBuild(ctx, query, start, nil, execErr)
	return result, execErr
}

// Stats returns a snapshot of this Client's running statistics.
func (c *Client) Stats() StatsSnapshot {
	return c.stats.Stats()
}

// SetSlowThreshold updates the duration above which a round trip
// counts as slow.
func (c *Client) SetSlowThreshold(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slowThreshold = d
}
