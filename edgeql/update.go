package edgeql

import (
	"fmt"
	"strings"

	"github.com/quinchs/EdgeDBClient/expr"
)

// UpdateNode builds an EdgeQL `update ... set { ... }` statement.
type UpdateNode struct {
	baseNode

	typeName   string
	filter     expr.Expr
	setFields  map[string]expr.Expr
	setOrder   []string
}

func newUpdateNode(typeName string) *UpdateNode {
	return &UpdateNode{baseNode: baseNode{kind: KindUpdate}, typeName: typeName, setFields: map[string]expr.Expr{}}
}

// Filter sets the `filter` clause that selects the objects to update.
func (n *UpdateNode) Filter(e expr.Expr) *UpdateNode {
	n.filter = e
	return n
}

// Set adds one `set` field.
func (n *UpdateNode) Set(name string, value expr.Expr) *UpdateNode {
	if _, exists := n.setFields[name]; !exists {
		n.setOrder = append(n.setOrder, name)
	}
	n.setFields[name] = value
	return n
}

// AsGlobal promotes the finished statement to a `with` binding.
func (n *UpdateNode) AsGlobal(name string) *UpdateNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}

func (n *UpdateNode) Visit(ctx *BuildContext) error {
	fmt.Fprintf(&n.buf, "update %s", n.typeName)
	if n.filter != nil {
		text, err := ctx.Translator.Translate(n.filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(&n.buf, " filter %s", text)
	}
	parts := make([]string, 0, len(n.setOrder))
	for _, name := range n.setOrder {
		text, err := ctx.Translator.Translate(n.setFields[name])
		if err != nil {
			return err
		}
		parts = append(parts, fmt.Sprintf("%s := %s", name, text))
	}
	fmt.Fprintf(&n.buf, " set { %s }", strings.Join(parts, ", "))
	return nil
}

func (n *UpdateNode) Finalize(ctx *BuildContext) error {
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
