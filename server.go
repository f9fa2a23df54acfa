package edgedb

import (
	"context"

	"github.com/quinchs/EdgeDBClient/schema"
)

// Cardinality describes how many rows a query is expected to return.
type Cardinality uint8

const (
	// CardinalityNoResult expects the server to return no rows.
	CardinalityNoResult Cardinality = iota
	// CardinalityAtMostOne expects zero or one row.
	CardinalityAtMostOne
	// CardinalityOne expects exactly one row.
	CardinalityOne
	// CardinalityMany expects zero or more rows.
	CardinalityMany
)

// String implements fmt.Stringer.
func (c Cardinality) String() string {
	switch c {
	case CardinalityNoResult:
		return "NoResult"
	case CardinalityAtMostOne:
		return "AtMostOne"
	case CardinalityOne:
		return "One"
	case CardinalityMany:
		return "Many"
	default:
		return "Unknown"
	}
}

// IOFormat describes the wire encoding the server should use for rows.
type IOFormat uint8

const (
	// IOFormatBinary requests the server's binary row encoding.
	IOFormatBinary IOFormat = iota
	// IOFormatJSON requests a single JSON document per row.
	IOFormatJSON
)

// Capabilities is a bit set of operations a query is allowed to perform.
// The query builder never inspects it. Client.Run checks only
// CapabilityModifications, to decide whether a result may be served
// from its ResultCache, and otherwise forwards the value to Execute.
type Capabilities uint64

const (
	// CapabilityModifications allows insert/update/delete statements.
	CapabilityModifications Capabilities = 1 << iota
	// CapabilityDDL allows schema-modifying statements.
	CapabilityDDL
	// CapabilityTransaction allows start/commit/rollback statements.
	CapabilityTransaction
	// CapabilitySessionConfig allows session-scoped configuration statements.
	CapabilitySessionConfig
)

// Has reports whether c includes all bits of other.
func (c Capabilities) Has(other Capabilities) bool {
	return c&other == other
}

// Token is an opaque cancellation/deadline handle threaded through to
// the Server. The core never constructs one; it only forwards whatever
// the caller attached to the context, mirroring the transport layer's
// per-connection command lock.
type Token = context.Context

// PreparedStatement is what Server.Parse returns: enough information
// for the caller to bind variables and decode rows, without the core
// needing to understand the codec wire format itself.
type PreparedStatement struct {
	// InCodec and OutCodec are opaque handles into the codec subsystem;
	// the core never dereferences them.
	InCodec, OutCodec any
	Cardinality       Cardinality
	Capabilities      Capabilities
}

// Server is the capability surface the query construction core consumes
// from the transport/connection-pool/codec subsystem. Implementations
// live outside this module; the core treats Server as an opaque
// collaborator and never assumes anything about how it reaches the
// database.
type Server interface {
	// Parse prepares query for execution and returns codec and
	// cardinality information. Nothing in this module calls it;
	// Client.Run goes straight to Execute.
	Parse(ctx context.Context, query string, cardinality Cardinality, ioFormat IOFormat, capabilities Capabilities) (*PreparedStatement, error)

	// Execute runs query with the given variables and returns decoded
	// rows. Result decoding itself belongs to the codec subsystem; the
	// core treats the return value as opaque.
	Execute(ctx context.Context, query string, variables map[string]any, cardinality Cardinality, ioFormat IOFormat, capabilities Capabilities) (any, error)

	// DescribeSchema returns schema facts — in particular exclusive
	// constraints — for the requested EdgeQL type names. It is the
	// only introspection surface the core relies on.
	DescribeSchema(ctx context.Context, typeNames []string) (*schema.SchemaInfo, error)
}
