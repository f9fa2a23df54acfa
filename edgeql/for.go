package edgeql

import (
	"encoding/json"
	"fmt"

	"github.com/quinchs/EdgeDBClient/expr"
)

// ForNode builds an EdgeQL `for x in json_array_unpack(<json>$v) union
// (...)` statement: data is bound as a JSON-encoded query variable,
// and body's bound parameter stands for each element.
type ForNode struct {
	baseNode

	data any
	body *expr.LambdaExpr
}

func newForNode(data any, body *expr.LambdaExpr) *ForNode {
	return &ForNode{baseNode: baseNode{kind: KindFor}, data: data, body: body}
}

// AsGlobal promotes the finished statement to a `with` binding.
func (n *ForNode) AsGlobal(name string) *ForNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}

func (n *ForNode) Visit(ctx *BuildContext) error {
	raw, err := json.Marshal(n.data)
	if err != nil {
		return err
	}
	varName := ctx.Vars.Add(json.RawMessage(raw))
	bodyText, err := ctx.Translator.Translate(n.body)
	if err != nil {
		return err
	}
	fmt.Fprintf(&n.buf, "for %s in json_array_unpack(<json>$%s) union (%s)", n.body.Param.Name(), varName, bodyText)
	return nil
}

func (n *ForNode) Finalize(ctx *BuildContext) error {
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
