package schema_test

import (
	"reflect"
	"testing"

	"github.com/quinchs/EdgeDBClient/schema"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLookupScalar_Builtins(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{"", "str"},
		{int64(0), "int64"},
		{int32(0), "int32"},
		{int16(0), "int16"},
		{float64(0), "float64"},
		{false, "bool"},
		{[]byte(nil), "bytes"},
		{uuid.UUID{}, "uuid"},
		{apd.Decimal{}, "decimal"},
	}
	for _, tt := range tests {
		name, ok := schema.LookupScalar(reflect.TypeOf(tt.v))
		assert.True(t, ok, "%T should be a known scalar", tt.v)
		assert.Equal(t, tt.want, name)
	}
}

func TestLookupScalar_HomogeneousArray(t *testing.T) {
	name, ok := schema.LookupScalar(reflect.TypeOf([]int64(nil)))
	assert.True(t, ok)
	assert.Equal(t, "array<int64>", name)

	name, ok = schema.LookupScalar(reflect.TypeOf([]string(nil)))
	assert.True(t, ok)
	assert.Equal(t, "array<str>", name)

	name, ok = schema.LookupScalar(reflect.TypeOf([]byte(nil)))
	assert.True(t, ok)
	assert.Equal(t, "bytes", name, "[]byte keeps its dedicated bytes mapping, not array<int32>")
}

func TestLookupScalar_Unregistered(t *testing.T) {
	type Unmapped struct{ X int }
	_, ok := schema.LookupScalar(reflect.TypeOf(Unmapped{}))
	assert.False(t, ok)
}

func TestLookupScalar_NamedIntFallsBackToInt64(t *testing.T) {
	type Count int
	name, ok := schema.LookupScalar(reflect.TypeOf(Count(0)))
	assert.True(t, ok)
	assert.Equal(t, "int64", name, "a named int should map the same as the registry's plain int entry")
}

func TestRegisterScalar_CustomEnum(t *testing.T) {
	type Status int32
	schema.RegisterScalar(reflect.TypeOf(Status(0)), "Status")
	name, ok := schema.LookupScalar(reflect.TypeOf(Status(0)))
	assert.True(t, ok)
	assert.Equal(t, "Status", name)
}
