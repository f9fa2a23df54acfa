package edgeql

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quinchs/EdgeDBClient/schema"
)

func depthGlobalName(d int) string { return fmt.Sprintf("T_d%d", d) }

// renderJSONBulk builds the outermost insert's shape for a JSON bulk
// value: scalar fields come straight from RootScalars, link fields
// index into the depth-1 global. It also registers one
// deferred global per depth, deepest first, so each later depth's
// text can reference the next depth's (already-named) global.
func (n *InsertNode) renderJSONBulk(ctx *BuildContext, bulk *JSONBulkValue) (string, error) {
	n.requiresIntrospection = true

	if len(bulk.Depths) > 0 {
		if err := n.registerDepthGlobals(ctx, bulk); err != nil {
			return "", err
		}
	}

	props := bulk.RootType.ShapeProperties()
	parts := make([]string, 0, len(props))
	for _, p := range props {
		if p.IsLink {
			ref, ok := bulk.RootLinks[p.EdgeDBName]
			if !ok || len(bulk.Depths) == 0 {
				parts = append(parts, fmt.Sprintf("%s := {}", p.EdgeDBName))
				continue
			}
			parts = append(parts, renderRootLinkField(p, ref, depthGlobalName(1)))
			continue
		}
		value, ok := bulk.RootScalars[p.EdgeDBName]
		if !ok {
			return "", NewUnserializablePropertyError(bulk.RootType.EdgeDBName, p.EdgeDBName, "no root value supplied for this property")
		}
		scalarName, ok := schema.LookupScalar(p.ValueType)
		if !ok {
			return "", NewUnserializableTypeError(bulk.RootType.EdgeDBName, p.ValueType.String())
		}
		varName := ctx.Vars.Add(value)
		parts = append(parts, fmt.Sprintf("%s := <%s>$%s", p.EdgeDBName, scalarName, varName))
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func renderRootLinkField(p *schema.PropertyDescriptor, ref JSONRootLinkRef, globalName string) string {
	if ref.Kind == JSONLinkMulti {
		return fmt.Sprintf("%s := distinct array_unpack(%s[%d:%d])", p.EdgeDBName, globalName, ref.From, ref.To)
	}
	return fmt.Sprintf("%s := %s[%d]", p.EdgeDBName, globalName, ref.Index)
}

// registerDepthGlobals binds each depth's JSON array to its own
// variable and registers its T_d<d> global as a deferred sub-query,
// deepest depth first, so the `with` clause declares each binding
// before the shallower one that references it.
func (n *InsertNode) registerDepthGlobals(ctx *BuildContext, bulk *JSONBulkValue) error {
	depth := len(bulk.Depths)
	varNames := make([]string, depth+1)
	for d := 1; d <= depth; d++ {
		varNames[d] = ctx.Vars.Add(json.RawMessage(bulk.Depths[d-1].Data))
	}

	for d := depth; d >= 1; d-- {
		spec := bulk.Depths[d-1]
		varName := varNames[d]
		isDeepest := d == depth
		childGlobal := ""
		if !isDeepest {
			childGlobal = depthGlobalName(d + 1)
		}
		sq := DeferredSubQuery(func(info *schema.SchemaInfo) (string, error) {
			return n.renderDepthGlobalText(spec, varName, childGlobal, isDeepest, info)
		})
		ctx.Globals.AddNamed(depthGlobalName(d), sq)
	}
	return nil
}

func (n *InsertNode) renderDepthGlobalText(spec *JSONDepthSpec, varName, childGlobal string, isDeepest bool, info *schema.SchemaInfo) (string, error) {
	props := spec.Type.ShapeProperties()
	parts := make([]string, 0, len(props))
	for _, p := range props {
		if p.IsLink {
			// Terminal invariant: the deepest depth's links are always
			// empty, regardless of whether the caller declared a ref.
			if isDeepest {
				parts = append(parts, fmt.Sprintf("%s := {}", p.EdgeDBName))
				continue
			}
			ref, ok := spec.Links[p.EdgeDBName]
			if !ok {
				parts = append(parts, fmt.Sprintf("%s := {}", p.EdgeDBName))
				continue
			}
			parts = append(parts, renderDepthLinkField(p, ref, childGlobal))
			continue
		}
		scalarName, ok := schema.LookupScalar(p.ValueType)
		if !ok {
			return "", NewUnserializableTypeError(spec.Type.EdgeDBName, p.ValueType.String())
		}
		parts = append(parts, fmt.Sprintf("%s := <%s>json_get(iter, '%s')", p.EdgeDBName, scalarName, p.EdgeDBName))
	}

	clause := renderOptionalConflictClause(info, spec.Type.EdgeDBName)
	shape := "{ " + strings.Join(parts, ", ") + " }"
	insert := fmt.Sprintf("insert %s %s", spec.Type.EdgeDBName, shape)
	if clause != "" {
		insert += " " + clause
	}
	return fmt.Sprintf(
		"array_agg((for iter in json_array_unpack(<json>$%s) union (%s else (select %s))))",
		varName, insert, spec.Type.EdgeDBName,
	), nil
}

func renderDepthLinkField(p *schema.PropertyDescriptor, ref JSONLinkRef, globalName string) string {
	if ref.Kind == JSONLinkMulti {
		return fmt.Sprintf(
			"%s := distinct array_unpack(%s[<int64>json_get(iter, '%s', 'depth_from'):<int64>json_get(iter, '%s', 'depth_to')])",
			p.EdgeDBName, globalName, ref.JSONKey, ref.JSONKey,
		)
	}
	return fmt.Sprintf(
		"%s := %s[<int64>json_get(iter, '%s', 'depth_index')] if json_get(iter, '%s') ?!= <json>{} else <%s>{}",
		p.EdgeDBName, globalName, ref.JSONKey, ref.JSONKey, p.LinkTarget.EdgeDBName,
	)
}
