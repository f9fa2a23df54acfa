package edgedb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	edgedb "github.com/quinchs/EdgeDBClient"
)

func TestCardinality_String(t *testing.T) {
	cases := map[edgedb.Cardinality]string{
		edgedb.CardinalityNoResult:  "NoResult",
		edgedb.CardinalityAtMostOne: "AtMostOne",
		edgedb.CardinalityOne:       "One",
		edgedb.CardinalityMany:      "Many",
		edgedb.Cardinality(99):      "Unknown",
	}
	for c, want := range cases {
		assert.Equal(t, want, c.String())
	}
}

func TestCapabilities_Has(t *testing.T) {
	caps := edgedb.CapabilityModifications | edgedb.CapabilityDDL

	assert.True(t, caps.Has(edgedb.CapabilityModifications))
	assert.True(t, caps.Has(edgedb.CapabilityDDL))
	assert.False(t, caps.Has(edgedb.CapabilityTransaction))
	assert.True(t, caps.Has(edgedb.CapabilityModifications|edgedb.CapabilityDDL))
}
