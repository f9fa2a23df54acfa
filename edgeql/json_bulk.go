package edgeql

import (
	"encoding/json"

	"github.com/quinchs/EdgeDBClient/schema"
)

// JSONLinkKind distinguishes a single link reference from a
// set-valued one inside a depth-map link.
type JSONLinkKind int

const (
	JSONLinkSingle JSONLinkKind = iota
	JSONLinkMulti
)

// JSONLinkRef tells the depth builder how one link property of a
// depth-d object reaches into the next deeper depth's array. The
// lookup key lives inside the JSON object itself — 'depth_index' for a
// single link, 'depth_from'/'depth_to' for a multi link range — since the actual
// position is only known once the document is deserialized.
type JSONLinkRef struct {
	Kind    JSONLinkKind
	JSONKey string
}

// JSONDepthSpec is one breadth level of a JSON bulk insert tree: every
// node at that depth serialized as one JSON array, plus how each
// node's link properties reach into the next depth's array.
type JSONDepthSpec struct {
	Type  *schema.TypeDescriptor
	Data  json.RawMessage
	Links map[string]JSONLinkRef
}

// JSONRootLinkRef is the literal-index counterpart of JSONLinkRef for
// the single root object: since the root is a single Go value rather
// than an element iterated out of a JSON array, its link fields carry
// an index or range directly instead of a lookup key.
type JSONRootLinkRef struct {
	Kind       JSONLinkKind
	Index      int
	From, To   int
}

// JSONBulkValue is a pre-serialized object tree for batch insertion.
// RootType/RootScalars/RootLinks describe the single root object the
// outermost insert statement builds; Depths lists every breadth level
// beneath the root, depth 1 (direct children) through depth
// len(Depths) (leaves, whose own link properties always render `{}`
// per the terminal invariant).
type JSONBulkValue struct {
	RootType    *schema.TypeDescriptor
	RootScalars map[string]any
	RootLinks   map[string]JSONRootLinkRef
	Depths      []*JSONDepthSpec
}
