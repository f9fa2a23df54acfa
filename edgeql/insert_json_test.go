package edgeql_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinchs/EdgeDBClient/edgeql"
	"github.com/quinchs/EdgeDBClient/schema"
)

type Pet struct {
	Name string `edgedb:"name,exclusive"`
}

type Child struct {
	Name string `edgedb:"name,exclusive"`
	Pet  *Pet   `edgedb:"pet"`
}

type Parent struct {
	Name  string `edgedb:"name,exclusive"`
	Child *Child `edgedb:"child"`
}

type ParentBatch struct {
	Parents []Parent `edgedb:"parents"`
}

// A JSON depth-2 insert builds a root referencing depth-1 plus two
// per-depth globals; invariant 6 forces the deepest node's link field
// empty regardless of what the supplied depth map says.
func TestInsertJSON_DepthTwo(t *testing.T) {
	rootTD, err := schema.Describe(ParentBatch{})
	require.NoError(t, err)
	parentTD, err := schema.Describe(Parent{})
	require.NoError(t, err)
	childTD, err := schema.Describe(Child{})
	require.NoError(t, err)

	depths := []*edgeql.JSONDepthSpec{
		{
			Type: parentTD,
			Data: json.RawMessage(`[{"name":"Alice","child":{"depth_index":0}}]`),
			Links: map[string]edgeql.JSONLinkRef{
				"child": {Kind: edgeql.JSONLinkSingle, JSONKey: "child"},
			},
		},
		{
			Type: childTD,
			Data: json.RawMessage(`[{"name":"Bob","pet":{"depth_index":0}}]`),
			Links: map[string]edgeql.JSONLinkRef{
				"pet": {Kind: edgeql.JSONLinkSingle, JSONKey: "pet"},
			},
		},
	}
	bulk := &edgeql.JSONBulkValue{
		RootType: rootTD,
		RootLinks: map[string]edgeql.JSONRootLinkRef{
			"parents": {Kind: edgeql.JSONLinkMulti, From: 0, To: 1},
		},
		Depths: depths,
	}

	srv := &fakeServer{types: []*schema.TypeDescriptor{rootTD, parentTD, childTD}}
	b := edgeql.NewBuilder(srv)
	b.InsertJSON(bulk)

	query, vars, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, vars, 2)

	assert.True(t, strings.Index(query, "T_d2 := (") < strings.Index(query, "T_d1 := ("),
		"T_d2 must be declared before T_d1 so the with clause reads before it is used")

	assert.Contains(t, query, "insert Parent")
	assert.Contains(t, query, "unless conflict on .name")
	assert.Contains(t, query, "child := T_d2[<int64>json_get(iter, 'child', 'depth_index')]")
	assert.Contains(t, query, "pet := {}", "the deepest depth's link fields always render empty")
	assert.Contains(t, query, "insert ParentBatch { parents := distinct array_unpack(T_d1[0:1]) }")
}
