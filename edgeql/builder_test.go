package edgeql_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinchs/EdgeDBClient/edgeql"
	"github.com/quinchs/EdgeDBClient/expr"
)

var generatedNameRE = regexp.MustCompile(`v_[0-9a-f]+`)

func TestBuilder_SelectFilterOrderLimitOffset(t *testing.T) {
	b := edgeql.NewBuilder(nil)
	b.Select("Person").
		Fields("name", "age").
		Filter(expr.Lambda(func(it expr.Param) expr.Expr {
			return expr.Gt(it.Member("age"), expr.Const(18))
		})).
		OrderBy(expr.Lambda(func(it expr.Param) expr.Expr { return it.Member("name") }), false).
		Limit(10).
		Offset(5)

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "select Person { name, age } filter .age > 18 order by .name offset 5 limit 10", query)
}

func TestBuilder_UpdateSetsFields(t *testing.T) {
	b := edgeql.NewBuilder(nil)
	b.Update("Person").
		Filter(expr.Lambda(func(it expr.Param) expr.Expr { return expr.Eq(it.Member("name"), expr.Const("Alice")) })).
		Set("age", expr.Const(31))

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `update Person filter .name = "Alice" set { age := 31 }`, query)
}

func TestBuilder_Delete(t *testing.T) {
	b := edgeql.NewBuilder(nil)
	b.Delete("Person").Filter(expr.Lambda(func(it expr.Param) expr.Expr {
		return expr.Eq(it.Member("name"), expr.Const("Alice"))
	}))

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `delete Person filter .name = "Alice"`, query)
}

func TestBuilder_For(t *testing.T) {
	b := edgeql.NewBuilder(nil)
	b.For([]string{"a", "b"}, expr.Lambda(func(it expr.Param) expr.Expr {
		return it.Member("name")
	}))

	query, vars, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, vars, 1)
	for name := range vars {
		assert.Contains(t, query, "for it in json_array_unpack(<json>$"+name+") union (.name)")
	}
}

// With compiles named sub-builders as `with` bindings ahead of a body,
// sharing the same variable/global namespace.
func TestBuilder_WithBindingsAndBody(t *testing.T) {
	b := edgeql.NewBuilder(nil)
	sub := edgeql.NewBuilder(nil)
	sub.Select("Person")

	body := edgeql.NewBuilder(nil)
	body.Select("Post")

	b.With().Bind("people", sub).Body(body)

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "with people := (select Person) select Post", query)
}

// With propagates a bound builder's need for introspection up to the
// outer Build call, and that builder's own Finalize (where the
// auto-generated conflict clause is synthesized) only runs once
// SchemaInfo is available — the bug this guards against is a WithNode
// that compiles (Visit+Finalize) its binding during its own Visit,
// before the outer Build call has decided whether to introspect at all.
func TestBuilder_WithBindingRequiringIntrospection(t *testing.T) {
	srv := &fakeServer{types: describeAll(t, Person{})}
	b := edgeql.NewBuilder(srv)
	sub := edgeql.NewBuilderWithCache(srv, nil)
	sub.Insert(Person{Name: "Gina", Age: 28}).UnlessConflict()

	body := edgeql.NewBuilder(nil)
	body.Select("Person")

	b.With().Bind("inserted", sub).Body(body)

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, query, "inserted := (insert Person")
	assert.Contains(t, query, "unless conflict on .name")
}

// Invariant 4: within one Insert node, no two inlined sub-queries
// target the same object type — a second link to the same type is
// promoted to a global instead of inlined again.
func TestInsert_SecondLinkOfSameTypeIsPromotedToGlobal(t *testing.T) {
	type Couple struct {
		A Person `edgedb:"a"`
		B Person `edgedb:"b"`
	}
	srv := &fakeServer{types: describeAll(t, Couple{}, Person{})}
	b := edgeql.NewBuilder(srv)
	b.Insert(Couple{A: Person{Name: "Ann", Age: 1}, B: Person{Name: "Ben", Age: 2}})

	query, _, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Contains(t, query, "with ", "the second Person link must be promoted to a global, producing a with clause")
	assert.Contains(t, query, ":= (insert Person", "both links need introspection for their own conflict clause, so neither is ever inlined — each field references a global by name")
	assert.Regexp(t, `a := v_[0-9a-f]+`, query)
	assert.Regexp(t, `b := v_[0-9a-f]+`, query)
}

// Invariant 5: re-building an unmutated builder is deterministic modulo
// variable/global names.
func TestBuilder_BuildIsDeterministicModuloNames(t *testing.T) {
	srv := &fakeServer{types: describeAll(t, Post{}, Person{})}

	build := func() string {
		b := edgeql.NewBuilder(srv)
		b.Insert(Post{Title: "Hello", Author: Person{Name: "Bob", Age: 40}})
		query, _, err := b.Build(context.Background())
		require.NoError(t, err)
		return query
	}

	a := build()
	c := build()
	assert.Equal(t, stripNames(a), stripNames(c))
}

// stripNames erases generated variable and global names (both follow
// the "v_<hex>" pattern from generateVariableName) so two builds of the
// same unmutated builder compare equal (invariant 5).
func stripNames(query string) string {
	return generatedNameRE.ReplaceAllString(query, "V")
}
