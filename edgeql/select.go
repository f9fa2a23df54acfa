package edgeql

import (
	"fmt"
	"strings"

	"github.com/quinchs/EdgeDBClient/expr"
)

type orderSpec struct {
	expr expr.Expr
	desc bool
}

// SelectNode builds an EdgeQL `select` statement.
type SelectNode struct {
	baseNode

	typeName string
	fields   []string
	filter   expr.Expr
	orderBy  []orderSpec
	limit    *int
	offset   *int
}

func newSelectNode(typeName string) *SelectNode {
	return &SelectNode{baseNode: baseNode{kind: KindSelect}, typeName: typeName}
}

// Fields restricts the shape to the named properties. With no fields
// set, Visit renders a bare `select Type` with no shape at all.
func (n *SelectNode) Fields(names ...string) *SelectNode {
	n.fields = names
	return n
}

// Filter sets the `filter` clause.
func (n *SelectNode) Filter(e expr.Expr) *SelectNode {
	n.filter = e
	return n
}

// OrderBy appends one `order by` term.
func (n *SelectNode) OrderBy(e expr.Expr, desc bool) *SelectNode {
	n.orderBy = append(n.orderBy, orderSpec{expr: e, desc: desc})
	return n
}

// Limit sets the `limit` clause.
func (n *SelectNode) Limit(v int) *SelectNode {
	n.limit = &v
	return n
}

// Offset sets the `offset` clause.
func (n *SelectNode) Offset(v int) *SelectNode {
	n.offset = &v
	return n
}

// AsGlobal promotes the finished statement to a `with` binding.
func (n *SelectNode) AsGlobal(name string) *SelectNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}

func (n *SelectNode) Visit(ctx *BuildContext) error {
	if len(n.fields) > 0 {
		shape := "{ " + strings.Join(n.fields, ", ") + " }"
		fmt.Fprintf(&n.buf, "select %s %s", n.typeName, shape)
	} else {
		fmt.Fprintf(&n.buf, "select %s", n.typeName)
	}

	if n.filter != nil {
		text, err := ctx.Translator.Translate(n.filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(&n.buf, " filter %s", text)
	}
	if len(n.orderBy) > 0 {
		terms := make([]string, 0, len(n.orderBy))
		for _, o := range n.orderBy {
			text, err := ctx.Translator.Translate(o.expr)
			if err != nil {
				return err
			}
			if o.desc {
				text += " desc"
			}
			terms = append(terms, text)
		}
		fmt.Fprintf(&n.buf, " order by %s", strings.Join(terms, ", "))
	}
	if n.offset != nil {
		fmt.Fprintf(&n.buf, " offset %d", *n.offset)
	}
	if n.limit != nil {
		fmt.Fprintf(&n.buf, " limit %d", *n.limit)
	}
	return nil
}

func (n *SelectNode) Finalize(ctx *BuildContext) error {
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
