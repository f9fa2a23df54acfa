package edgeql

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/quinchs/EdgeDBClient/expr"
	"github.com/quinchs/EdgeDBClient/schema"
)

type insertMode int

const (
	insertFromValue insertMode = iota
	insertFromLambda
	insertFromJSON
)

// InsertNode builds an EdgeQL `insert` statement. It supports three
// shapes of input: a typed Go object walked via its schema.TypeDescriptor,
// a lambda-built expr.NewObjectExpr literal, or a pre-serialized JSON
// document with a depth map for batch insertion.
type InsertNode struct {
	baseNode

	mode  insertMode
	value any
	shape *expr.NewObjectExpr
	bulk  *JSONBulkValue

	describeErr error

	// subQueryMap tracks which linked entity types this node has already
	// inlined a sub-query for. A type's second occurrence is always
	// promoted to a global instead of inlined again: no two inlined
	// sub-queries in one node target the same object type.
	subQueryMap map[string]bool

	autoConflict         bool
	conflictSelector     expr.Expr
	conflictSelectorText string
	elseDefault          bool
	elseBuilder          *Builder
}

func newInsertFromValue(td *schema.TypeDescriptor, value any, describeErr error) *InsertNode {
	return &InsertNode{
		baseNode:    baseNode{kind: KindInsert, operatingType: td, nodeCtx: NodeContext{Value: value}},
		mode:        insertFromValue,
		value:       value,
		describeErr: describeErr,
		subQueryMap: map[string]bool{},
	}
}

func newInsertFromLambda(shape *expr.NewObjectExpr) *InsertNode {
	return &InsertNode{
		baseNode:    baseNode{kind: KindInsert, nodeCtx: NodeContext{Value: shape}},
		mode:        insertFromLambda,
		shape:       shape,
		subQueryMap: map[string]bool{},
	}
}

func newInsertFromJSON(bulk *JSONBulkValue) *InsertNode {
	return &InsertNode{
		baseNode:    baseNode{kind: KindInsert, operatingType: bulk.RootType, nodeCtx: NodeContext{Value: bulk, IsJSONVariable: true}},
		mode:        insertFromJSON,
		bulk:        bulk,
		subQueryMap: map[string]bool{},
	}
}

// UnlessConflict requests an autogenerated "unless conflict on"
// clause, synthesized at Finalize from the operating type's exclusive
// constraints. It requires a schema round trip.
func (n *InsertNode) UnlessConflict() *InsertNode {
	n.autoConflict = true
	n.requiresIntrospection = true
	return n
}

// UnlessConflictOn appends an explicit conflict selector, translated
// immediately — it needs no introspection.
func (n *InsertNode) UnlessConflictOn(selector expr.Expr) *InsertNode {
	n.conflictSelector = selector
	return n
}

// ElseDefault appends `else (select <OperatingType>)`.
func (n *InsertNode) ElseDefault() *InsertNode {
	n.elseDefault = true
	return n
}

// Else appends `else (<child>)`, where child is compiled against this
// node's own builder context so variables and globals stay shared.
func (n *InsertNode) Else(child *Builder) *InsertNode {
	n.elseBuilder = child
	return n
}

// AsGlobal promotes the entire finished statement to a `with` binding
// instead of leaving it inline, so other nodes in the same Build call
// can reference it by name.
func (n *InsertNode) AsGlobal(name string) *InsertNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}

func (n *InsertNode) typeName() string {
	switch {
	case n.operatingType != nil:
		return n.operatingType.EdgeDBName
	case n.shape != nil:
		return n.shape.TypeName
	default:
		return ""
	}
}

func (n *InsertNode) Visit(ctx *BuildContext) error {
	if n.describeErr != nil {
		return n.describeErr
	}

	var shapeText string
	var err error
	switch n.mode {
	case insertFromValue:
		shapeText, err = n.renderShape(ctx, n.operatingType, n.value)
	case insertFromLambda:
		shapeText, err = ctx.Translator.Translate(n.shape)
	case insertFromJSON:
		shapeText, err = n.renderJSONBulk(ctx, n.bulk)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(&n.buf, "insert %s %s", n.typeName(), shapeText)

	if n.conflictSelector != nil {
		text, err := ctx.Translator.Translate(n.conflictSelector)
		if err != nil {
			return err
		}
		n.conflictSelectorText = text
	}
	return nil
}

func (n *InsertNode) Finalize(ctx *BuildContext) error {
	var clause string
	switch {
	case n.autoConflict:
		c, err := renderAutoConflictClause(ctx.Schema, n.typeName())
		if err != nil {
			return err
		}
		clause = c
	case n.conflictSelectorText != "":
		clause = "unless conflict on " + n.conflictSelectorText
	}
	if clause != "" {
		n.buf.WriteString(" ")
		n.buf.WriteString(clause)
	}

	switch {
	case n.elseBuilder != nil:
		forceGlobalOff(n.elseBuilder)
		childText, err := n.elseBuilder.compile(ctx)
		if err != nil {
			return err
		}
		n.buf.WriteString(" else (")
		n.buf.WriteString(childText)
		n.buf.WriteString(")")
	case n.elseDefault:
		n.buf.WriteString(" else (select ")
		n.buf.WriteString(n.typeName())
		n.buf.WriteString(")")
	}

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

// renderShape walks td's shape properties against value's fields,
// emitting "name := <scalar>$var" for scalars and resolving links via
// renderLinkProperty.
func (n *InsertNode) renderShape(ctx *BuildContext, td *schema.TypeDescriptor, value any) (string, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	props := td.ShapeProperties()
	parts := make([]string, 0, len(props))
	for _, p := range props {
		fv := rv.FieldByName(p.SourceName)
		var rendered string
		var err error
		if p.IsLink {
			rendered, err = n.renderLinkProperty(ctx, p, fv)
		} else {
			rendered, err = n.renderScalarProperty(td, p, fv, ctx)
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func (n *InsertNode) renderScalarProperty(td *schema.TypeDescriptor, p *schema.PropertyDescriptor, fv reflect.Value, ctx *BuildContext) (string, error) {
	scalarName, ok := schema.LookupScalar(p.ValueType)
	if !ok {
		return "", NewUnserializableTypeError(td.EdgeDBName, p.ValueType.String())
	}
	varName := ctx.Vars.Add(fv.Interface())
	return fmt.Sprintf("%s := <%s>$%s", p.EdgeDBName, scalarName, varName), nil
}

func (n *InsertNode) renderLinkProperty(ctx *BuildContext, p *schema.PropertyDescriptor, fv reflect.Value) (string, error) {
	if p.IsMultiLink {
		if fv.Kind() != reflect.Slice || fv.Len() == 0 {
			return fmt.Sprintf("%s := {}", p.EdgeDBName), nil
		}
		refs := make([]string, 0, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			text, err := n.resolveLinkTarget(ctx, p.LinkTarget, fv.Index(i))
			if err != nil {
				return "", err
			}
			refs = append(refs, text)
		}
		return fmt.Sprintf("%s := { %s }", p.EdgeDBName, strings.Join(refs, ", ")), nil
	}

	elem := fv
	if elem.Kind() == reflect.Ptr {
		if elem.IsNil() {
			return fmt.Sprintf("%s := {}", p.EdgeDBName), nil
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct && elem.IsZero() {
		return fmt.Sprintf("%s := {}", p.EdgeDBName), nil
	}

	text, err := n.resolveLinkTarget(ctx, p.LinkTarget, fv)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s := %s", p.EdgeDBName, text), nil
}

// resolveLinkTarget decides whether fv refers to an already-persisted
// object (rendered as a select-by-id, safe to inline or reuse as a
// ready global) or needs its own nested insert (deferred, since its
// "unless conflict on" clause needs introspection — always promoted
// to a global per inline_or_global).
func (n *InsertNode) resolveLinkTarget(ctx *BuildContext, targetTD *schema.TypeDescriptor, fv reflect.Value) (string, error) {
	reference := referenceFor(fv)

	target := fv
	for target.Kind() == reflect.Ptr {
		target = target.Elem()
	}

	idProp, hasID := targetTD.IDProperty()
	var hasConcreteID bool
	var idValue reflect.Value
	if hasID {
		idValue = target.FieldByName(idProp.SourceName)
		hasConcreteID = idValue.IsValid() && !idValue.IsZero()
	}

	if hasConcreteID {
		varName := ctx.Vars.Add(idValue.Interface())
		text := fmt.Sprintf("(select %s filter .id = <uuid>$%s)", targetTD.EdgeDBName, varName)
		name, err := n.inlineOrGlobal(ctx, targetTD.EdgeDBName, ReadySubQuery(text), reference)
		return name, err
	}

	targetValue := fv.Interface()
	n.requiresIntrospection = true
	sq := DeferredSubQuery(func(info *schema.SchemaInfo) (string, error) {
		return n.renderNestedInsert(ctx, targetTD, targetValue, info)
	})
	return n.inlineOrGlobal(ctx, targetTD.EdgeDBName, sq, reference)
}

// inlineOrGlobal implements the dedup rule: a sub-query is
// inlined the first time its entity type appears in this node, so long
// as it needs no introspection; any later occurrence of the same type,
// or any sub-query that does need introspection, is promoted to a
// global instead.
func (n *InsertNode) inlineOrGlobal(ctx *BuildContext, typeName string, sq SubQuery, reference any) (string, error) {
	if sq.RequiresIntrospection() || n.subQueryMap[typeName] {
		return ctx.Globals.GetOrAdd(reference, sq), nil
	}
	n.subQueryMap[typeName] = true
	return sq.Resolve(nil)
}

func (n *InsertNode) renderNestedInsert(ctx *BuildContext, td *schema.TypeDescriptor, value any, info *schema.SchemaInfo) (string, error) {
	shape, err := n.renderShape(ctx, td, value)
	if err != nil {
		return "", err
	}
	// Always rendered as a global's text (it is deferred, so inlineOrGlobal
	// never inlines it); the `name := (...)` binding supplies the parentheses.
	clause := renderOptionalConflictClause(info, td.EdgeDBName)
	if clause == "" {
		return fmt.Sprintf("insert %s %s else (select %s)", td.EdgeDBName, shape, td.EdgeDBName), nil
	}
	return fmt.Sprintf("insert %s %s %s else (select %s)", td.EdgeDBName, shape, clause, td.EdgeDBName), nil
}

// renderOptionalConflictClause synthesizes a link resolver's conflict
// clause from the target type's exclusive properties, omitting it
// entirely when the type declares none. Unlike renderAutoConflictClause,
// a deferred nested-link insert never fails the build over a missing
// exclusive — there was no explicit request for one.
func renderOptionalConflictClause(info *schema.SchemaInfo, typeName string) string {
	obj, ok := info.Get(typeName)
	if !ok {
		return ""
	}
	target, ok := obj.ConflictTarget()
	if !ok {
		return ""
	}
	return renderConflictOn(target)
}

// renderAutoConflictClause synthesizes the top-level UnlessConflict()
// conflict clause. The caller explicitly asked for one, so a target type
// with no exclusive constraints is an error rather than a silent omission.
func renderAutoConflictClause(info *schema.SchemaInfo, typeName string) (string, error) {
	obj, ok := info.Get(typeName)
	if !ok {
		return "", NewNoExclusiveConstraintsError(typeName)
	}
	target, ok := obj.ConflictTarget()
	if !ok {
		return "", NewNoExclusiveConstraintsError(typeName)
	}
	return renderConflictOn(target), nil
}

func renderConflictOn(props []string) string {
	if len(props) == 1 {
		return "unless conflict on ." + props[0]
	}
	dotted := make([]string, len(props))
	for i, p := range props {
		dotted[i] = "." + p
	}
	return "unless conflict on (" + strings.Join(dotted, ", ") + ")"
}

// referenceFor returns the value GetOrAdd should key identity off of:
// the pointer itself for a pointer field, or the value's address when
// it is addressable (a slice element), or the bare value when neither
// applies — which simply disables dedup for that occurrence, since Go
// gives no identity to a freestanding struct value (see globals.go).
func referenceFor(fv reflect.Value) any {
	if fv.Kind() == reflect.Ptr {
		return fv.Interface()
	}
	if fv.CanAddr() {
		return fv.Addr().Interface()
	}
	return fv.Interface()
}
