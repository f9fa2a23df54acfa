package edgeql

import "github.com/quinchs/EdgeDBClient/schema"

// SubQuery is a fragment of EdgeQL text that is either already known
// (Ready) or can only be produced once SchemaInfo is available
// (Deferred) — a nested insert that still needs to synthesize its own
// "unless conflict on" clause, for example.
type SubQuery struct {
	ready      bool
	text       string
	deferredFn func(*schema.SchemaInfo) (string, error)
}

// ReadySubQuery wraps text that needs no further resolution: a select
// by id, a constant, an already-rendered shape.
func ReadySubQuery(text string) SubQuery {
	return SubQuery{ready: true, text: text}
}

// DeferredSubQuery wraps a function that produces the fragment's text
// once SchemaInfo is available. fn is invoked at most once, during
// Build's global-materialization step; a sub-query that Globals.GetOrAdd
// discards as a duplicate is never resolved.
func DeferredSubQuery(fn func(info *schema.SchemaInfo) (string, error)) SubQuery {
	return SubQuery{deferredFn: fn}
}

// RequiresIntrospection reports whether this sub-query cannot produce
// text without SchemaInfo.
func (s SubQuery) RequiresIntrospection() bool {
	return !s.ready
}

// Resolve returns the sub-query's text, invoking the deferred function
// with info if one was given.
func (s SubQuery) Resolve(info *schema.SchemaInfo) (string, error) {
	if s.ready {
		return s.text, nil
	}
	if s.deferredFn == nil {
		return "", NewMalformedArgumentCodecError("empty sub-query has neither ready text nor a deferred resolver")
	}
	return s.deferredFn(info)
}
