package edgeql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quinchs/EdgeDBClient/edgeql"
)

func TestVariables_AddAllocatesUniqueNames(t *testing.T) {
	v := edgeql.NewVariables()
	a := v.Add("alice")
	b := v.Add("alice")
	assert.NotEqual(t, a, b, "two Add calls never reuse a name, even for an identical value")
	assert.Len(t, v.Map(), 2)
	assert.ElementsMatch(t, []string{a, b}, v.Names())
}

func TestVariables_MapReflectsBoundValues(t *testing.T) {
	v := edgeql.NewVariables()
	name := v.Add(42)
	assert.Equal(t, 42, v.Map()[name])
}
