package edgeql

import (
	"context"
	"strings"

	"github.com/quinchs/EdgeDBClient/expr"
	"github.com/quinchs/EdgeDBClient/schema"
)

// Builder assembles one EdgeQL statement (or a small graph of them,
// chained through With/Else) into final query text and the variables
// to send alongside it. Build walks the graph in five fixed steps:
// visit every node, introspect the schema if any node asked for it,
// finalize every node, materialize deferred globals, then concatenate.
type Builder struct {
	srv   SchemaDescriber
	cache SchemaCache
	nodes []Node
}

// NewBuilder returns a Builder that introspects through srv when a
// node needs SchemaInfo. srv may be nil if the caller never chains an
// operation that needs introspection.
func NewBuilder(srv SchemaDescriber) *Builder {
	return &Builder{srv: srv}
}

// NewBuilderWithCache is NewBuilder plus a SchemaCache shared across
// builds, so repeated queries against the same types skip the round
// trip to srv.
func NewBuilderWithCache(srv SchemaDescriber, cache SchemaCache) *Builder {
	return &Builder{srv: srv, cache: cache}
}

// Insert chains an insert of a typed Go object, described via
// schema.Describe.
func (b *Builder) Insert(value any) *InsertNode {
	td, err := schema.Describe(value)
	n := newInsertFromValue(td, value, err)
	b.nodes = append(b.nodes, n)
	return n
}

// InsertShape chains an insert built from a lambda shape literal
// instead of a typed Go object.
func (b *Builder) InsertShape(shape *expr.NewObjectExpr) *InsertNode {
	n := newInsertFromLambda(shape)
	b.nodes = append(b.nodes, n)
	return n
}

// InsertJSON chains a batch insert from a pre-serialized JSON document
// with a depth map.
func (b *Builder) InsertJSON(bulk *JSONBulkValue) *InsertNode {
	n := newInsertFromJSON(bulk)
	b.nodes = append(b.nodes, n)
	return n
}

// Select chains a select of the named type.
func (b *Builder) Select(typeName string) *SelectNode {
	n := newSelectNode(typeName)
	b.nodes = append(b.nodes, n)
	return n
}

// Update chains an update of the named type.
func (b *Builder) Update(typeName string) *UpdateNode {
	n := newUpdateNode(typeName)
	b.nodes = append(b.nodes, n)
	return n
}

// Delete chains a delete of the named type.
func (b *Builder) Delete(typeName string) *DeleteNode {
	n := newDeleteNode(typeName)
	b.nodes = append(b.nodes, n)
	return n
}

// With starts a node that compiles named sub-builders as `with`
// bindings ahead of a body builder.
func (b *Builder) With() *WithNode {
	n := newWithNode()
	b.nodes = append(b.nodes, n)
	return n
}

// For chains a `for x in json_array_unpack(...) union (...)` statement
// iterating data, with body's bound parameter standing for each
// element.
func (b *Builder) For(data any, body *expr.LambdaExpr) *ForNode {
	n := newForNode(data, body)
	b.nodes = append(b.nodes, n)
	return n
}

// forceGlobalOff clears SetAsGlobal on every node of an else-clause
// child builder. A builder's nodes slice only ever holds that
// builder's own primary chain (With's bindings and body live on their
// own separate *Builder, never folded into another builder's nodes),
// so there is nothing else here to filter — this is the one piece of
// state an else child must not carry over from however its caller built it.
func forceGlobalOff(b *Builder) {
	for _, n := range b.nodes {
		n.clearGlobal()
	}
}

// compile visits and finalizes this builder's own nodes against a
// context the caller already owns (shared Vars/Globals/Schema), and
// returns their concatenated text. Else uses it to nest a child
// builder's statement once introspection has already run for every
// type the child's own nodes need (collectTypeNames walks elseBuilder
// ahead of time), so running both phases back to back here is safe.
func (b *Builder) compile(ctx *BuildContext) (string, error) {
	if err := b.visitNodes(ctx); err != nil {
		return "", err
	}
	if err := b.finalizeNodes(ctx); err != nil {
		return "", err
	}
	return b.joinText(), nil
}

// visitNodes and finalizeNodes split compile's two phases apart. With
// uses them directly instead of compile: a binding's own Visit must run
// before the outer Build call decides whether to introspect, but its
// Finalize must wait until after — collapsing both into one call (as
// compile does) would let an auto-generated conflict clause synthesize
// against a nil SchemaInfo.
func (b *Builder) visitNodes(ctx *BuildContext) error {
	for _, n := range b.nodes {
		if err := n.Visit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) finalizeNodes(ctx *BuildContext) error {
	for _, n := range b.nodes {
		if err := n.Finalize(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) joinText() string {
	var texts []string
	for _, n := range b.nodes {
		if t := n.Text(); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "; ")
}

// requiresIntrospection reports whether any of this builder's own nodes
// asked for introspection during Visit.
func (b *Builder) requiresIntrospection() bool {
	return b.anyNodeRequiresIntrospection()
}

// Build runs the five-step pipeline and returns the finished query
// text alongside the bound variables.
func (b *Builder) Build(ctx context.Context) (string, map[string]any, error) {
	bctx := &BuildContext{
		Vars:       NewVariables(),
		Globals:    NewGlobals(),
		Translator: expr.NewTranslator(),
	}

	var visitErrs []error
	for _, n := range b.nodes {
		if err := n.Visit(bctx); err != nil {
			visitErrs = append(visitErrs, err)
		}
	}
	if len(visitErrs) > 0 {
		return "", nil, NewAggregateError(visitErrs...)
	}

	if b.anyNodeRequiresIntrospection() {
		intro := NewIntrospector(b.srv, b.cache)
		info, err := intro.Describe(ctx, collectTypeNames(b.nodes))
		if err != nil {
			return "", nil, err
		}
		bctx.Schema = info
	}

	var finalizeErrs []error
	for _, n := range b.nodes {
		if err := n.Finalize(bctx); err != nil {
			finalizeErrs = append(finalizeErrs, err)
		}
	}
	if len(finalizeErrs) > 0 {
		return "", nil, NewAggregateError(finalizeErrs...)
	}

	if err := bctx.Globals.MaterializeAll(bctx.Schema); err != nil {
		return "", nil, err
	}

	return assembleQuery(bctx, b.nodes), bctx.Vars.Map(), nil
}

func (b *Builder) anyNodeRequiresIntrospection() bool {
	for _, n := range b.nodes {
		if n.RequiresIntrospection() {
			return true
		}
	}
	return false
}

func assembleQuery(bctx *BuildContext, nodes []Node) string {
	var sb strings.Builder
	entries := bctx.Globals.Entries()
	if len(entries) > 0 {
		sb.WriteString("with ")
		for i, e := range entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Name)
			sb.WriteString(" := (")
			sb.WriteString(e.Text)
			sb.WriteString(")")
		}
		sb.WriteString(" ")
	}
	var stmts []string
	for _, n := range nodes {
		if t := n.Text(); t != "" {
			stmts = append(stmts, t)
		}
	}
	sb.WriteString(strings.Join(stmts, "; "))
	return sb.String()
}

// collectTypeNames walks every insert node's operating type (and, for
// a JSON bulk insert, every depth's type) through its link graph, plus
// any Else-chained child builder, so a single DescribeSchema call
// covers every type an auto-conflict or nested insert might need.
func collectTypeNames(nodes []Node) []string {
	seen := map[string]bool{}
	var out []string

	var walkTD func(td *schema.TypeDescriptor)
	walkTD = func(td *schema.TypeDescriptor) {
		if td == nil || seen[td.EdgeDBName] {
			return
		}
		seen[td.EdgeDBName] = true
		out = append(out, td.EdgeDBName)
		for _, p := range td.Properties {
			if p.IsLink {
				walkTD(p.LinkTarget)
			}
		}
	}

	var walkNodes func(ns []Node)
	walkNodes = func(ns []Node) {
		for _, n := range ns {
			switch tn := n.(type) {
			case *InsertNode:
				walkTD(tn.operatingType)
				if tn.bulk != nil {
					for _, d := range tn.bulk.Depths {
						walkTD(d.Type)
					}
				}
				if tn.elseBuilder != nil {
					walkNodes(tn.elseBuilder.nodes)
				}
			case *WithNode:
				for _, binding := range tn.bindings {
					walkNodes(binding.builder.nodes)
				}
				if tn.body != nil {
					walkNodes(tn.body.nodes)
				}
			}
		}
	}
	walkNodes(nodes)
	return out
}
