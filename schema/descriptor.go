package schema

import "reflect"

// PropertyDescriptor describes one property of a TypeDescriptor: a
// scalar field, a single link, or a multi (set-valued) link.
type PropertyDescriptor struct {
	// SourceName is the Go struct field name.
	SourceName string
	// EdgeDBName is the property or link name as it appears in EdgeQL.
	EdgeDBName string
	// ValueType is the Go type carried by the field. For a single link
	// it is the (possibly pointer) struct type; for a multi link it is
	// the slice's element type.
	ValueType reflect.Type
	// IsLink reports whether this property is a link to another object
	// type, rather than a scalar.
	IsLink bool
	// IsMultiLink reports whether the link is set-valued.
	IsMultiLink bool
	// LinkTarget is the descriptor of the linked type. Nil for scalars.
	LinkTarget *TypeDescriptor
	// IsExclusive reports whether the schema author declared this
	// property exclusive via the struct tag. ToObjectInfo reads it;
	// conflict synthesis during a Build uses introspected SchemaInfo only.
	IsExclusive bool
	// IsID reports whether this is the object's id property. Id
	// properties are never emitted as insert shape keys.
	IsID bool
	// Ignored properties are skipped entirely by the shape builder.
	Ignored bool
}

// TypeDescriptor describes one entity type: its EdgeQL name and the
// properties the insert shape builder and expression translator walk.
type TypeDescriptor struct {
	// EdgeDBName is the type name as it appears in EdgeQL, e.g. "Person".
	EdgeDBName string
	// GoType is the Go struct type the descriptor was derived from.
	GoType reflect.Type
	// Properties lists every non-ignored field, including the id
	// property (callers that need to skip it use IDProperty/Properties
	// together, matching the shape builder's own filtering).
	Properties []*PropertyDescriptor
}

// Property returns the descriptor for the named EdgeQL property, or
// false if the type has none by that name.
func (t *TypeDescriptor) Property(edgeDBName string) (*PropertyDescriptor, bool) {
	for _, p := range t.Properties {
		if p.EdgeDBName == edgeDBName {
			return p, true
		}
	}
	return nil, false
}

// IDProperty returns the type's id property, if one was described.
func (t *TypeDescriptor) IDProperty() (*PropertyDescriptor, bool) {
	for _, p := range t.Properties {
		if p.IsID {
			return p, true
		}
	}
	return nil, false
}

// ShapeProperties returns the properties the insert shape builder
// iterates over: every non-ignored, non-id property.
func (t *TypeDescriptor) ShapeProperties() []*PropertyDescriptor {
	out := make([]*PropertyDescriptor, 0, len(t.Properties))
	for _, p := range t.Properties {
		if p.Ignored || p.IsID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DeclaredExclusiveNames returns the EdgeQL names of properties the Go
// struct tag marked exclusive, in descriptor order. ToObjectInfo builds
// on it; the builder's conflict synthesis does not consult it.
func (t *TypeDescriptor) DeclaredExclusiveNames() []string {
	var names []string
	for _, p := range t.Properties {
		if p.IsExclusive {
			names = append(names, p.EdgeDBName)
		}
	}
	return names
}

// ToObjectInfo builds an ObjectInfo from the struct tag's declared
// exclusives. Test Server fakes use it to answer DescribeSchema without
// hand-rolling an ObjectInfo for every fixture type.
func (t *TypeDescriptor) ToObjectInfo() *ObjectInfo {
	names := t.DeclaredExclusiveNames()
	if len(names) == 0 {
		return &ObjectInfo{}
	}
	exclusives := make([][]string, len(names))
	for i, n := range names {
		exclusives[i] = []string{n}
	}
	return &ObjectInfo{Exclusives: exclusives}
}
