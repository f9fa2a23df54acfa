package edgeql

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/quinchs/EdgeDBClient/schema"

	"golang.org/x/sync/singleflight"
)

// SchemaDescriber is the subset of Server a Builder needs to fetch
// ObjectInfo for the types it is about to build conflict clauses or
// depth-map links for. The root package's Server interface satisfies
// this without edgeql importing it back.
type SchemaDescriber interface {
	DescribeSchema(ctx context.Context, typeNames []string) (*schema.SchemaInfo, error)
}

// SchemaCache lets a caller reuse ObjectInfo across builds instead of
// round-tripping to the server for every query that touches the same
// types. Implement it against Redis, Memcached, or any other store;
// NewMemorySchemaCache covers the common in-process case.
type SchemaCache interface {
	Get(ctx context.Context, key string) (*schema.SchemaInfo, bool)
	Set(ctx context.Context, key string, info *schema.SchemaInfo)
}

type memorySchemaCache struct {
	mu      sync.RWMutex
	entries map[string]*schema.SchemaInfo
}

// NewMemorySchemaCache returns a SchemaCache backed by a plain map,
// safe for concurrent use by multiple builders sharing it.
func NewMemorySchemaCache() SchemaCache {
	return &memorySchemaCache{entries: make(map[string]*schema.SchemaInfo)}
}

func (c *memorySchemaCache) Get(_ context.Context, key string) (*schema.SchemaInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.entries[key]
	return info, ok
}

func (c *memorySchemaCache) Set(_ context.Context, key string, info *schema.SchemaInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = info
}

// Introspector fetches ObjectInfo for a set of type names, coalescing
// concurrent requests for the same set via singleflight and optionally
// caching results across calls.
type Introspector struct {
	srv   SchemaDescriber
	cache SchemaCache
	group singleflight.Group
}

// NewIntrospector returns an Introspector backed by srv. cache may be
// nil, in which case every Describe call round-trips to srv.
func NewIntrospector(srv SchemaDescriber, cache SchemaCache) *Introspector {
	return &Introspector{srv: srv, cache: cache}
}

// Describe returns the ObjectInfo for every named type. Results are
// cached per exact set of type names; a set that matches no cached
// entry is fetched from the server in full.
func (in *Introspector) Describe(ctx context.Context, typeNames []string) (*schema.SchemaInfo, error) {
	if in.srv == nil {
		return nil, NewSchemaRequiredError("introspection")
	}
	key := cacheKey(typeNames)
	if in.cache != nil {
		if info, ok := in.cache.Get(ctx, key); ok {
			return info, nil
		}
	}

	v, err, _ := in.group.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return nil, ErrCancelledOrTimedOut
		default:
		}
		info, err := in.srv.DescribeSchema(ctx, typeNames)
		if err != nil {
			return nil, err
		}
		if in.cache != nil {
			in.cache.Set(ctx, key, info)
		}
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.SchemaInfo), nil
}

func cacheKey(typeNames []string) string {
	sorted := append([]string(nil), typeNames...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
