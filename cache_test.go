package edgedb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	edgedb "github.com/quinchs/EdgeDBClient"
)

func TestResultCacheKey_SameShapeAndValuesCollide(t *testing.T) {
	keyA := edgedb.ResultCacheKey(
		`insert Person { name := <str>$v_aaaa111, age := <int64>$v_bbbb222 }`,
		map[string]any{"v_aaaa111": "Alice", "v_bbbb222": int64(30)},
	)
	keyB := edgedb.ResultCacheKey(
		`insert Person { name := <str>$v_cccc333, age := <int64>$v_dddd444 }`,
		map[string]any{"v_cccc333": "Alice", "v_dddd444": int64(30)},
	)

	assert.Equal(t, keyA, keyB, "two builds of the same query shape with the same values must share a cache key")
}

func TestResultCacheKey_DifferentValuesDiverge(t *testing.T) {
	keyA := edgedb.ResultCacheKey(
		`insert Person { name := <str>$v_aaaa111 }`,
		map[string]any{"v_aaaa111": "Alice"},
	)
	keyB := edgedb.ResultCacheKey(
		`insert Person { name := <str>$v_cccc333 }`,
		map[string]any{"v_cccc333": "Bob"},
	)

	assert.NotEqual(t, keyA, keyB)
}

func TestResultCacheKey_DifferentShapeDiverges(t *testing.T) {
	keyA := edgedb.ResultCacheKey(`select Person { name }`, nil)
	keyB := edgedb.ResultCacheKey(`select Person { name, age }`, nil)

	assert.NotEqual(t, keyA, keyB)
}
