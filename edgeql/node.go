package edgeql

import (
	"strings"

	"github.com/quinchs/EdgeDBClient/expr"
	"github.com/quinchs/EdgeDBClient/schema"
)

// NodeKind identifies which EdgeQL statement a Node renders.
type NodeKind string

const (
	KindInsert NodeKind = "insert"
	KindSelect NodeKind = "select"
	KindUpdate NodeKind = "update"
	KindDelete NodeKind = "delete"
	KindWith   NodeKind = "with"
	KindFor    NodeKind = "for"
)

// NodeContext carries the per-node settings every node kind accepts,
// independent of what it actually builds: the Go value or expression
// it operates on, whether that value arrived as a pre-serialized JSON
// document, and whether the finished statement should be registered
// as a global rather than inlined where it was chained.
type NodeContext struct {
	Value          any
	IsJSONVariable bool
	SetAsGlobal    bool
	GlobalName     string
}

// Node is one statement in a Builder's graph. Build walks every node
// through Visit, then (if any node or sub-query required it) fetches
// SchemaInfo, then Finalize, then materializes deferred globals, then
// concatenates node text in chain order.
type Node interface {
	Kind() NodeKind
	Visit(ctx *BuildContext) error
	Finalize(ctx *BuildContext) error
	Text() string
	RequiresIntrospection() bool
	clearGlobal()
}

// baseNode holds the state every concrete node shares. Concrete node
// types embed it and fill in Visit/Finalize themselves.
type baseNode struct {
	kind                  NodeKind
	nodeCtx               NodeContext
	operatingType         *schema.TypeDescriptor
	buf                   strings.Builder
	requiresIntrospection bool
}

func (n *baseNode) Kind() NodeKind             { return n.kind }
func (n *baseNode) Text() string               { return n.buf.String() }
func (n *baseNode) RequiresIntrospection() bool { return n.requiresIntrospection }

// clearGlobal forces SetAsGlobal off. An else-clause child builder's
// nodes never promote themselves to the parent's with clause — only
// the outer chain they were attached to may do that.
func (n *baseNode) clearGlobal() { n.nodeCtx.SetAsGlobal = false }

// BuildContext is threaded through every node's Visit and Finalize. It
// carries the shared variable/global namespaces, the resolved schema
// (nil until the introspection step has run), and the expression
// translator nodes use to render lambda-built shapes and filters.
type BuildContext struct {
	Vars       *Variables
	Globals    *Globals
	Schema     *schema.SchemaInfo
	Translator *expr.Translator
}
