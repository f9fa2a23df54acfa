package schema

import "fmt"

// ObjectInfo lists the concrete exclusive constraints the database
// knows about for one type: each entry is the list of property names
// covered by one constraint, single-property constraints being lists
// of length one.
type ObjectInfo struct {
	Exclusives [][]string
}

// ConflictTarget returns the constraint autogeneration should key the
// "unless conflict on" clause off of. When a type declares more than
// one exclusive constraint, this core picks the first one introspection
// returned (see DESIGN.md for why: EdgeQL's "unless conflict on" names
// exactly one target expression per insert, and there is no general
// rule for choosing among several).
func (o *ObjectInfo) ConflictTarget() ([]string, bool) {
	if o == nil || len(o.Exclusives) == 0 {
		return nil, false
	}
	return o.Exclusives[0], true
}

// SchemaInfo is the mapping from EdgeQL type name to ObjectInfo that
// Server.DescribeSchema returns.
type SchemaInfo struct {
	objects map[string]*ObjectInfo
}

// NewSchemaInfo returns an empty SchemaInfo, ready for Set.
func NewSchemaInfo() *SchemaInfo {
	return &SchemaInfo{objects: make(map[string]*ObjectInfo)}
}

// Set records the ObjectInfo for the given EdgeQL type name.
func (s *SchemaInfo) Set(typeName string, info *ObjectInfo) {
	if s.objects == nil {
		s.objects = make(map[string]*ObjectInfo)
	}
	s.objects[typeName] = info
}

// Get returns the ObjectInfo for the given EdgeQL type name.
func (s *SchemaInfo) Get(typeName string) (*ObjectInfo, bool) {
	if s == nil {
		return nil, false
	}
	info, ok := s.objects[typeName]
	return info, ok
}

// TypeNames returns every type name this SchemaInfo carries facts for,
// in no particular order.
func (s *SchemaInfo) TypeNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names
}

// Merge copies every entry of other into s, overwriting any existing
// entry for the same type name.
func (s *SchemaInfo) Merge(other *SchemaInfo) {
	if other == nil {
		return
	}
	for name, info := range other.objects {
		s.Set(name, info)
	}
}

// String implements fmt.Stringer for debug logging.
func (o *ObjectInfo) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("ObjectInfo{exclusives=%v}", o.Exclusives)
}
