// Package schema describes the entity types the query builder operates
// on: TypeDescriptor and PropertyDescriptor, the scalar type registry
// used to render EdgeQL literals, and SchemaInfo, the shape returned by
// database introspection.
//
// Descriptors are produced once per Go type, by reflection over struct
// fields and an `edgedb:"..."` tag, and cached for the lifetime of the
// process:
//
//	type Person struct {
//	    ID   uuid.UUID `edgedb:"id,id"`
//	    Name string    `edgedb:"name,exclusive"`
//	    Age  int       `edgedb:"age"`
//	}
//
// A field with no tag is still described: its EdgeQL name is derived
// from its Go name (CamelCase to snake_case), and a field named ID with
// no explicit tag is treated as the object id.
package schema
