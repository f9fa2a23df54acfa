package schema_test

import (
	"testing"

	"github.com/quinchs/EdgeDBClient/schema"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Person struct {
	ID      uuid.UUID `edgedb:"id,id"`
	Name    string    `edgedb:"name,exclusive"`
	Age     int
	private string //nolint:unused
}

type Post struct {
	ID     uuid.UUID `edgedb:"id,id"`
	Title  string
	Author Person
}

type Team struct {
	ID      uuid.UUID `edgedb:"id,id"`
	Members []Person
}

func TestDescribe_ScalarAndID(t *testing.T) {
	td, err := schema.Describe(Person{})
	require.NoError(t, err)
	assert.Equal(t, "Person", td.EdgeDBName)

	idProp, ok := td.IDProperty()
	require.True(t, ok)
	assert.True(t, idProp.IsID)

	nameProp, ok := td.Property("name")
	require.True(t, ok)
	assert.True(t, nameProp.IsExclusive)
	assert.False(t, nameProp.IsLink)

	ageProp, ok := td.Property("age")
	require.True(t, ok)
	assert.False(t, ageProp.IsLink)
	assert.Equal(t, "Age", ageProp.SourceName)
}

func TestDescribe_SingleLink(t *testing.T) {
	td, err := schema.Describe(Post{})
	require.NoError(t, err)

	author, ok := td.Property("author")
	require.True(t, ok)
	assert.True(t, author.IsLink)
	assert.False(t, author.IsMultiLink)
	require.NotNil(t, author.LinkTarget)
	assert.Equal(t, "Person", author.LinkTarget.EdgeDBName)
}

func TestDescribe_MultiLink(t *testing.T) {
	td, err := schema.Describe(Team{})
	require.NoError(t, err)

	members, ok := td.Property("members")
	require.True(t, ok)
	assert.True(t, members.IsLink)
	assert.True(t, members.IsMultiLink)
	require.NotNil(t, members.LinkTarget)
	assert.Equal(t, "Person", members.LinkTarget.EdgeDBName)
}

func TestDescribe_ShapePropertiesExcludesID(t *testing.T) {
	td, err := schema.Describe(Person{})
	require.NoError(t, err)

	shape := td.ShapeProperties()
	for _, p := range shape {
		assert.False(t, p.IsID)
	}
	assert.Len(t, shape, 2) // name, age
}

func TestDescribe_Caching(t *testing.T) {
	td1, err := schema.Describe(Person{})
	require.NoError(t, err)
	td2, err := schema.Describe(Person{})
	require.NoError(t, err)
	assert.Same(t, td1, td2)
}

func TestDescribe_ReservedIdentifierRejected(t *testing.T) {
	type Bad struct {
		Type string `edgedb:"__type__"`
	}
	_, err := schema.Describe(Bad{})
	require.Error(t, err)
}

func TestDescribe_IgnoredField(t *testing.T) {
	type WithIgnored struct {
		ID      uuid.UUID `edgedb:"id,id"`
		Name    string
		Skipped string `edgedb:"-"`
	}
	td, err := schema.Describe(WithIgnored{})
	require.NoError(t, err)
	_, ok := td.Property("skipped")
	assert.False(t, ok)
}
