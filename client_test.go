package edgedb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	edgedb "github.com/quinchs/EdgeDBClient"
	"github.com/quinchs/EdgeDBClient/schema"
)

type Person struct {
	Name string `edgedb:"name,exclusive"`
	Age  int64  `edgedb:"age"`
}

type fakeServer struct {
	execResult any
	execErr    error
	execDelay  time.Duration
	execCalls  int
}

func (s *fakeServer) Parse(ctx context.Context, query string, cardinality edgedb.Cardinality, ioFormat edgedb.IOFormat, capabilities edgedb.Capabilities) (*edgedb.PreparedStatement, error) {
	return &edgedb.PreparedStatement{Cardinality: cardinality, Capabilities: capabilities}, nil
}

func (s *fakeServer) Execute(ctx context.Context, query string, variables map[string]any, cardinality edgedb.Cardinality, ioFormat edgedb.IOFormat, capabilities edgedb.Capabilities) (any, error) {
	s.execCalls++
	if s.execDelay > 0 {
		time.Sleep(s.execDelay)
	}
	if s.execErr != nil {
		return nil, s.execErr
	}
	return s.execResult, nil
}

func (s *fakeServer) DescribeSchema(ctx context.Context, typeNames []string) (*schema.SchemaInfo, error) {
	info := schema.NewSchemaInfo()
	for _, name := range typeNames {
		info.Set(name, &schema.ObjectInfo{Exclusives: [][]string{{"name"}}})
	}
	return info, nil
}

func TestClient_RunRecordsStats(t *testing.T) {
	srv := &fakeServer{execResult: "ok"}
	c := edgedb.NewClient(srv)

	b := c.Builder()
	b.Insert(Person{Name: "Alice", Age: 30})

	result, err := c.Run(context.Background(), b, edgedb.CardinalityOne, edgedb.IOFormatBinary, edgedb.CapabilityModifications)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	snap := c.Stats()
	assert.Equal(t, int64(1), snap.TotalBuilds)
	assert.Equal(t, int64(1), snap.TotalExecs)
	assert.Equal(t, int64(0), snap.ConstructErrors)
}

func TestClient_RunBuildsAutoConflictAndExecutesOnce(t *testing.T) {
	srv := &fakeServer{}
	c := edgedb.NewClient(srv)

	b := c.Builder()
	b.Insert(Person{Name: "Dan", Age: 1}).UnlessConflict()

	_, err := c.Run(context.Background(), b, edgedb.CardinalityOne, edgedb.IOFormatBinary, edgedb.CapabilityModifications)
	require.NoError(t, err, "UnlessConflict with a declared exclusive constraint should build fine here")
	assert.Equal(t, 1, srv.execCalls)
}

func TestClient_SlowBuildHookFires(t *testing.T) {
	srv := &fakeServer{execResult: "ok", execDelay: 5 * time.Millisecond}
	var hookCalls int
	c := edgedb.NewClient(srv, edgedb.WithSlowThreshold(time.Millisecond), edgedb.WithSlowBuildHook(func(_ context.Context, query string, d time.Duration) {
		hookCalls++
	}))

	b := c.Builder()
	b.Insert(Person{Name: "Eve", Age: 21})
	_, err := c.Run(context.Background(), b, edgedb.CardinalityOne, edgedb.IOFormatBinary, edgedb.CapabilityModifications)
	require.NoError(t, err)

	assert.Equal(t, 1, hookCalls)
	assert.Equal(t, int64(1), c.Stats().SlowBuilds)
}

func TestClient_SetSlowThreshold(t *testing.T) {
	srv := &fakeServer{execResult: "ok"}
	c := edgedb.NewClient(srv)
	c.SetSlowThreshold(time.Hour)

	b := c.Builder()
	b.Insert(Person{Name: "Fay", Age: 19})
	_, err := c.Run(context.Background(), b, edgedb.CardinalityOne, edgedb.IOFormatBinary, edgedb.CapabilityModifications)
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.Stats().SlowBuilds)
}

type fakeResultCache struct {
	store map[string][]byte
}

func newFakeResultCache() *fakeResultCache { return &fakeResultCache{store: map[string][]byte{}} }

func (c *fakeResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.store[key], nil
}

func (c *fakeResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *fakeResultCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *fakeResultCache) Clear(ctx context.Context) error {
	c.store = map[string][]byte{}
	return nil
}

func TestClient_RunUsesResultCacheForReadOnlyJSON(t *testing.T) {
	srv := &fakeServer{execResult: []byte(`{"ok":true}`)}
	rc := newFakeResultCache()
	c := edgedb.NewClient(srv, edgedb.WithResultCache(rc, time.Minute))

	run := func() (any, error) {
		b := c.Builder()
		b.Select("Person").Fields("name")
		return c.Run(context.Background(), b, edgedb.CardinalityMany, edgedb.IOFormatJSON, 0)
	}

	first, err := run()
	require.NoError(t, err)
	second, err := run()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.execCalls, "the second identical read-only query should hit the cache instead of Execute")
}

func TestClient_RunSkipsResultCacheForModifications(t *testing.T) {
	srv := &fakeServer{execResult: []byte(`{"ok":true}`)}
	rc := newFakeResultCache()
	c := edgedb.NewClient(srv, edgedb.WithResultCache(rc, time.Minute))

	run := func() (any, error) {
		b := c.Builder()
		b.Insert(Person{Name: "Gia", Age: 5})
		return c.Run(context.Background(), b, edgedb.CardinalityOne, edgedb.IOFormatJSON, edgedb.CapabilityModifications)
	}

	_, err := run()
	require.NoError(t, err)
	_, err = run()
	require.NoError(t, err)

	assert.Equal(t, 2, srv.execCalls, "modifying queries are never served from the result cache")
}
