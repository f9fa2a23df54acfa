package edgeql

import (
	"fmt"

	"github.com/quinchs/EdgeDBClient/expr"
)

// DeleteNode builds an EdgeQL `delete` statement.
type DeleteNode struct {
	baseNode

	typeName string
	filter   expr.Expr
}

func newDeleteNode(typeName string) *DeleteNode {
	return &DeleteNode{baseNode: baseNode{kind: KindDelete}, typeName: typeName}
}

// Filter sets the `filter` clause that selects the objects to delete.
func (n *DeleteNode) Filter(e expr.Expr) *DeleteNode {
	n.filter = e
	return n
}

// AsGlobal promotes the finished statement to a `with` binding.
func (n *DeleteNode) AsGlobal(name string) *DeleteNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}

func (n *DeleteNode) Visit(ctx *BuildContext) error {
	fmt.Fprintf(&n.buf, "delete %s", n.typeName)
	if n.filter != nil {
		text, err := ctx.Translator.Translate(n.filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(&n.buf, " filter %s", text)
	}
	return nil
}

func (n *DeleteNode) Finalize(ctx *BuildContext) error {
	if n.nodeCtx.SetAsGlobal {
		name := n.nodeCtx.GlobalName
		if name == "" {
			name = generateVariableName()
		}
		ctx.Globals.AddNamed(name, ReadySubQuery(n.buf.String()))
		n.buf.Reset()
		n.buf.WriteString(name)
	}
	return nil
}
