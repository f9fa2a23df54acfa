package edgedb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

// ResultCache is the interface for caching the decoded result of a
// query a Client executes. Callers implement it with whatever backing
// store they already run (Redis, Memcached, an in-process LRU); Client
// only needs Get/Set/Delete/Clear.
type ResultCache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

var generatedNamePattern = regexp.MustCompile(`v_[0-9a-f]+`)

// ResultCacheKey derives a cache key from a built query's text and its
// bound variables. Every Build call allocates fresh, random
// variable/global names, so two builds of the same logical query never
// share raw text; this rewrites each generated name to a sequential
// placeholder (in order of first appearance) before hashing, and hashes
// the corresponding values in that same order, so two builds of the
// same shape with the same argument values collide on one key.
func ResultCacheKey(query string, vars map[string]any) string {
	seen := make(map[string]int)
	order := make([]string, 0, len(vars))
	normalized := generatedNamePattern.ReplaceAllStringFunc(query, func(name string) string {
		idx, ok := seen[name]
		if !ok {
			idx = len(order)
			seen[name] = idx
			order = append(order, name)
		}
		return fmt.Sprintf("$V%d", idx)
	})

	h := sha256.New()
	h.Write([]byte(normalized))
	for _, name := range order {
		fmt.Fprintf(h, "|%v", vars[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}
