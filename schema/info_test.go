package schema_test

import (
	"testing"

	"github.com/quinchs/EdgeDBClient/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaInfo_ConflictTarget(t *testing.T) {
	info := schema.NewSchemaInfo()
	info.Set("Person", &schema.ObjectInfo{Exclusives: [][]string{{"name"}}})
	info.Set("Team", &schema.ObjectInfo{Exclusives: [][]string{{"a", "b"}}})
	info.Set("NoExclusives", &schema.ObjectInfo{})

	obj, ok := info.Get("Person")
	require.True(t, ok)
	target, ok := obj.ConflictTarget()
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, target)

	obj, ok = info.Get("Team")
	require.True(t, ok)
	target, ok = obj.ConflictTarget()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, target)

	obj, ok = info.Get("NoExclusives")
	require.True(t, ok)
	_, ok = obj.ConflictTarget()
	assert.False(t, ok)

	_, ok = info.Get("Missing")
	assert.False(t, ok)
}

func TestSchemaInfo_Merge(t *testing.T) {
	a := schema.NewSchemaInfo()
	a.Set("Person", &schema.ObjectInfo{Exclusives: [][]string{{"name"}}})

	b := schema.NewSchemaInfo()
	b.Set("Team", &schema.ObjectInfo{Exclusives: [][]string{{"slug"}}})

	a.Merge(b)
	_, ok := a.Get("Person")
	assert.True(t, ok)
	_, ok = a.Get("Team")
	assert.True(t, ok)
}
