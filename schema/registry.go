package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/inflect"
)

// cache holds one TypeDescriptor per Go struct type, keyed by
// reflect.Type so repeated Describe calls for the same type are free
// after the first.
var cache sync.Map // reflect.Type -> *TypeDescriptor

// Describe returns the TypeDescriptor for v's type, building it by
// reflection on first use and caching it thereafter. v may be a struct,
// a pointer to a struct, or any value of either shape (including nil
// pointers — only the static type is inspected).
func Describe(v any) (*TypeDescriptor, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("edgedb/schema: cannot describe untyped nil")
	}
	return DescribeType(t)
}

// DescribeType is Describe for a known reflect.Type, useful when only
// the type (and not a value) is on hand, e.g. for a multi link's
// element type.
func DescribeType(t reflect.Type) (*TypeDescriptor, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("edgedb/schema: %s is not a struct", t)
	}
	if cached, ok := cache.Load(t); ok {
		return cached.(*TypeDescriptor), nil
	}

	// Register a placeholder before recursing into link targets, so a
	// type that links back to itself does not recurse forever.
	td := &TypeDescriptor{EdgeDBName: edgeDBTypeName(t), GoType: t}
	cache.Store(t, td)

	props, err := describeFields(t)
	if err != nil {
		cache.Delete(t)
		return nil, err
	}
	td.Properties = props
	return td, nil
}

// edgeDBTypeName derives the EdgeQL type name for a Go struct type: its
// Go name, unchanged. No module prefix is added, and there is no way to
// override the name per type.
func edgeDBTypeName(t reflect.Type) string {
	return t.Name()
}

// edgeDBPropertyName derives the canonical EdgeQL property name for a Go
// field name when no tag override is present: CamelCase to snake_case.
func edgeDBPropertyName(goName string) string {
	return inflect.Underscore(goName)
}

func describeFields(t reflect.Type) ([]*PropertyDescriptor, error) {
	props := make([]*PropertyDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tagName, opts, ignored := parseTag(f.Tag.Get("edgedb"))
		if ignored {
			continue
		}

		p := &PropertyDescriptor{
			SourceName: f.Name,
			ValueType:  f.Type,
		}
		if tagName != "" {
			p.EdgeDBName = tagName
		} else {
			p.EdgeDBName = edgeDBPropertyName(f.Name)
		}
		for _, opt := range opts {
			switch opt {
			case "id":
				p.IsID = true
			case "exclusive":
				p.IsExclusive = true
			}
		}
		if p.EdgeDBName == "id" || (f.Name == "ID" && tagName == "") {
			p.IsID = true
		}
		if p.EdgeDBName == "__type__" {
			return nil, fmt.Errorf("edgedb/schema: %s.%s: %q is a reserved identifier", t, f.Name, p.EdgeDBName)
		}

		if err := describeLink(p); err != nil {
			return nil, fmt.Errorf("edgedb/schema: %s.%s: %w", t, f.Name, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// describeLink classifies p as a scalar, a single link, or a multi
// link, and recursively describes the link target when it is a link.
func describeLink(p *PropertyDescriptor) error {
	vt := p.ValueType
	if IsScalarType(vt) {
		return nil
	}

	switch vt.Kind() {
	case reflect.Ptr:
		if vt.Elem().Kind() == reflect.Struct && !isBuiltinScalarStruct(vt.Elem()) {
			target, err := DescribeType(vt.Elem())
			if err != nil {
				return err
			}
			p.IsLink = true
			p.LinkTarget = target
			return nil
		}
	case reflect.Struct:
		if !isBuiltinScalarStruct(vt) {
			target, err := DescribeType(vt)
			if err != nil {
				return err
			}
			p.IsLink = true
			p.LinkTarget = target
			return nil
		}
	case reflect.Slice, reflect.Array:
		elem := vt.Elem()
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Struct && !isBuiltinScalarStruct(elem) {
			target, err := DescribeType(elem)
			if err != nil {
				return err
			}
			p.IsLink = true
			p.IsMultiLink = true
			p.LinkTarget = target
			return nil
		}
		if IsScalarType(vt.Elem()) {
			// A slice of scalars is an EdgeQL array, still a scalar property.
			return nil
		}
	}
	return fmt.Errorf("unserializable property of type %s: not a scalar and not a link", vt)
}

// isBuiltinScalarStruct reports whether t is a struct-shaped type this
// package already treats as a scalar (time.Time and the like), so it
// is never mistaken for a link target.
func isBuiltinScalarStruct(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) {
		return true
	}
	return IsScalarType(t)
}

// parseTag splits an `edgedb:"name,opt,opt"` tag into its name and
// option list. A bare "-" ignores the field entirely, matching the
// encoding/json convention the rest of the ecosystem already expects.
func parseTag(tag string) (name string, opts []string, ignored bool) {
	if tag == "-" {
		return "", nil, true
	}
	if tag == "" {
		return "", nil, false
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:], false
}
