package edgeql

import "github.com/google/uuid"

// Variables is the set of query arguments a builder has bound scalar
// values to. Every Add call allocates a fresh, unique name — the
// builder never reuses a name across nodes, so two nodes can each bind
// their own copy of the same Go value without colliding.
type Variables struct {
	order  []string
	values map[string]any
}

// NewVariables returns an empty Variables, ready for Add.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]any)}
}

// Add binds value to a newly generated variable name and returns that
// name, without the leading '$' EdgeQL argument references use.
func (v *Variables) Add(value any) string {
	name := generateVariableName()
	v.order = append(v.order, name)
	v.values[name] = value
	return name
}

// Map returns a copy of the name-to-value bindings, suitable for
// handing to Server.Execute alongside the built query text.
func (v *Variables) Map() map[string]any {
	out := make(map[string]any, len(v.values))
	for _, name := range v.order {
		out[name] = v.values[name]
	}
	return out
}

// Names returns the bound variable names in allocation order.
func (v *Variables) Names() []string {
	return append([]string(nil), v.order...)
}

func generateVariableName() string {
	id := uuid.New().String()
	return "v_" + id[:8] + id[9:13] + id[14:18] + id[19:23] + id[24:]
}
