package edgeql

import (
	"reflect"

	"github.com/quinchs/EdgeDBClient/schema"
)

// global is one entry a Builder will eventually render as a `with`
// binding: `with <name> := (<text>)`.
type global struct {
	name     string
	sq       SubQuery
	resolved bool
	text     string
}

// Globals is the set of named sub-queries a Build call promotes out of
// their inline position, either because a node's SubQueryMap already
// inlined that entity type once or because the fragment needs
// introspection and so cannot be known at Visit time. Two globals whose
// reference objects are the same Go value (by identity) collapse into one.
type Globals struct {
	order  []string
	byName map[string]*global
	byRef  map[uintptr]string
}

// NewGlobals returns an empty Globals, ready for GetOrAdd.
func NewGlobals() *Globals {
	return &Globals{byName: make(map[string]*global), byRef: make(map[uintptr]string)}
}

// GetOrAdd returns the global name bound to sq. If reference carries a
// stable Go identity (it is a pointer, map, channel, or func) and a
// global was already registered for that same identity, the existing
// name is returned and sq is discarded. Values without a stable
// identity — plain structs, scalars — always register a new global,
// since Go gives us no way to tell "the same struct value, passed
// twice" from "two equal struct values, passed once each".
func (g *Globals) GetOrAdd(reference any, sq SubQuery) string {
	if key, ok := identityKey(reference); ok {
		if name, exists := g.byRef[key]; exists {
			return name
		}
		name := generateVariableName()
		g.register(name, sq)
		g.byRef[key] = name
		return name
	}
	name := generateVariableName()
	g.register(name, sq)
	return name
}

// AddNamed registers sq under an explicit, caller-chosen name, used by
// the JSON bulk insert path for its fixed T_d1..T_dD depth globals.
// It bypasses identity dedup entirely.
func (g *Globals) AddNamed(name string, sq SubQuery) string {
	g.register(name, sq)
	return name
}

func (g *Globals) register(name string, sq SubQuery) {
	if _, exists := g.byName[name]; exists {
		g.byName[name] = &global{name: name, sq: sq}
		return
	}
	g.byName[name] = &global{name: name, sq: sq}
	g.order = append(g.order, name)
}

// MaterializeAll resolves every global's text against info, including
// globals registered by other globals' own resolution (a nested insert
// discovering a further nested insert). It makes one pass over the
// registration order, re-reading its length at every step, so globals
// appended during the pass are resolved in the same call.
func (g *Globals) MaterializeAll(info *schema.SchemaInfo) error {
	for i := 0; i < len(g.order); i++ {
		gl := g.byName[g.order[i]]
		if gl.resolved {
			continue
		}
		text, err := gl.sq.Resolve(info)
		if err != nil {
			return err
		}
		gl.text = text
		gl.resolved = true
	}
	return nil
}

// Entry is one resolved `with` binding.
type Entry struct {
	Name string
	Text string
}

// Entries returns every global's binding in registration order, for
// the `with` clause a Builder assembles around its node text. It must
// be called after MaterializeAll.
func (g *Globals) Entries() []Entry {
	out := make([]Entry, 0, len(g.order))
	for _, name := range g.order {
		gl := g.byName[name]
		out = append(out, Entry{Name: gl.name, Text: gl.text})
	}
	return out
}

// Len reports how many globals have been registered so far.
func (g *Globals) Len() int { return len(g.order) }

func identityKey(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
