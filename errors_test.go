package edgedb_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	edgedb "github.com/quinchs/EdgeDBClient"
)

func TestNewAggregateError_CollapsesSingleAndEmpty(t *testing.T) {
	assert.Nil(t, edgedb.NewAggregateError())
	assert.Nil(t, edgedb.NewAggregateError(nil, nil))

	single := errors.New("boom")
	assert.Equal(t, single, edgedb.NewAggregateError(single, nil))

	agg := edgedb.NewAggregateError(errors.New("one"), errors.New("two"))
	require.Error(t, agg)
	var target *edgedb.AggregateError
	require.True(t, errors.As(agg, &target))
	assert.Len(t, target.Errors, 2)
}

func TestIsNoExclusiveConstraints_MatchesThroughAlias(t *testing.T) {
	err := edgedb.ErrNoExclusiveConstraints
	assert.True(t, edgedb.IsNoExclusiveConstraints(err))
	assert.False(t, edgedb.IsNoExclusiveConstraints(errors.New("unrelated")))
}

func TestIsSchemaRequired_MatchesThroughAlias(t *testing.T) {
	assert.True(t, edgedb.IsSchemaRequired(edgedb.ErrSchemaRequired))
}
