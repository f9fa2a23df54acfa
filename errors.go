package edgedb

import (
	"github.com/quinchs/EdgeDBClient/edgeql"
	"github.com/quinchs/EdgeDBClient/expr"
)

// The error types a caller actually needs to match against are raised
// by the package that does the work: edgeql for schema/shape errors,
// expr for translation errors. These aliases let callers write
// edgedb.UnserializableTypeError instead of reaching into edgeql
// themselves, without edgeql or expr importing this package back.
type (
	UnserializableTypeError     = edgeql.UnserializableTypeError
	UnserializablePropertyError = edgeql.UnserializablePropertyError
	SchemaRequiredError         = edgeql.SchemaRequiredError
	NoExclusiveConstraintsError = edgeql.NoExclusiveConstraintsError
	MalformedArgumentCodecError = edgeql.MalformedArgumentCodecError
	UnsupportedExpressionError  = expr.UnsupportedExpressionError
)

var (
	ErrSchemaRequired         = edgeql.ErrSchemaRequired
	ErrNoExclusiveConstraints = edgeql.ErrNoExclusiveConstraints
	ErrCancelledOrTimedOut    = edgeql.ErrCancelledOrTimedOut
)

var (
	IsUnserializableType     = edgeql.IsUnserializableType
	IsSchemaRequired         = edgeql.IsSchemaRequired
	IsNoExclusiveConstraints = edgeql.IsNoExclusiveConstraints
	IsUnsupportedExpression  = expr.IsUnsupportedExpression
)

// AggregateError collects multiple construction errors found while
// visiting a builder's node graph, for callers that ask to see every
// failure at once instead of failing fast on the first.
type AggregateError = edgeql.AggregateError

// NewAggregateError returns a new AggregateError if errs contains more
// than one non-nil error, the single error if there is exactly one, or
// nil if errs is empty or every entry is nil.
var NewAggregateError = edgeql.NewAggregateError
