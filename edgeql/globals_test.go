package edgeql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinchs/EdgeDBClient/edgeql"
	"github.com/quinchs/EdgeDBClient/schema"
)

func TestGlobals_GetOrAddDedupesByIdentity(t *testing.T) {
	g := edgeql.NewGlobals()
	ref := &struct{ X int }{X: 1}

	a := g.GetOrAdd(ref, edgeql.ReadySubQuery("select 1"))
	b := g.GetOrAdd(ref, edgeql.ReadySubQuery("select 2"))
	assert.Equal(t, a, b, "the same pointer identity must collapse into one global")
	assert.Equal(t, 1, g.Len())
}

func TestGlobals_GetOrAddDistinctPointersStayDistinct(t *testing.T) {
	g := edgeql.NewGlobals()
	a := g.GetOrAdd(&struct{ X int }{X: 1}, edgeql.ReadySubQuery("select 1"))
	b := g.GetOrAdd(&struct{ X int }{X: 1}, edgeql.ReadySubQuery("select 1"))
	assert.NotEqual(t, a, b, "equal but distinct pointers are not deduplicated")
	assert.Equal(t, 2, g.Len())
}

func TestGlobals_AddNamedBypassesDedup(t *testing.T) {
	g := edgeql.NewGlobals()
	g.AddNamed("T_d2", edgeql.ReadySubQuery("a"))
	g.AddNamed("T_d1", edgeql.ReadySubQuery("b"))

	require.NoError(t, g.MaterializeAll(nil))
	entries := g.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "T_d2", entries[0].Name)
	assert.Equal(t, "T_d1", entries[1].Name)
}

// MaterializeAll's index-based loop re-reads g's length on every pass,
// so a deferred global that itself registers a further global (a
// nested insert discovering another nested insert) is resolved in the
// same call without the caller looping.
func TestGlobals_MaterializeAllPicksUpNestedRegistrations(t *testing.T) {
	g := edgeql.NewGlobals()
	g.AddNamed("outer", edgeql.DeferredSubQuery(func(info *schema.SchemaInfo) (string, error) {
		g.AddNamed("inner", edgeql.ReadySubQuery("nested"))
		return "wraps(inner)", nil
	}))

	require.NoError(t, g.MaterializeAll(nil))
	entries := g.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "outer", entries[0].Name)
	assert.Equal(t, "wraps(inner)", entries[0].Text)
	assert.Equal(t, "inner", entries[1].Name)
	assert.Equal(t, "nested", entries[1].Text)
}
