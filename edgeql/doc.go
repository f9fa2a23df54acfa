// Package edgeql assembles EdgeQL query text from a graph of statement
// nodes. A Builder chains Insert/Select/Update/Delete/With/For calls,
// each producing a Node; Build walks the graph in the fixed order laid
// out in node.go — visit, introspect, finalize, materialize globals,
// assemble — and returns the finished query text alongside the bound
// variables a client sends alongside it.
//
//	b := edgeql.NewBuilder(srv)
//	b.Insert(Person{Name: "Alice"})
//	text, vars, err := b.Build(ctx)
package edgeql
