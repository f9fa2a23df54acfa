// Package edgedb is the core of an EdgeDB client library: it builds
// EdgeQL statements from a strongly-typed, expression-based object
// model and hands them, together with their bound variables, to a
// transport-level Server for execution.
//
// The package does not speak the EdgeDB binary protocol itself. It
// treats the transport, connection pool, and result codec subsystem as
// an external collaborator exposed through the Server interface. What
// lives here is the query construction pipeline: the node-graph query
// builder in the edgeql package, the schema descriptors in the schema
// package, and the expression translator in the expr package.
//
// # Sub-packages
//
//   - schema: type and property descriptors, the scalar type registry,
//     and the SchemaInfo contract returned by introspection.
//   - expr: the expression tree and the translator that renders it to
//     EdgeQL fragments.
//   - edgeql: the node graph, the builder, and the Insert/Select/
//     Update/Delete/With/For nodes that assemble a statement.
//
// # Usage
//
//	client := edgedb.NewClient(srv)
//	b := client.Builder()
//	b.Insert(Person{Name: "Alice"})
//	result, err := client.Run(ctx, b, edgedb.CardinalityOne, edgedb.IOFormatBinary, edgedb.CapabilityModifications)
package edgedb
