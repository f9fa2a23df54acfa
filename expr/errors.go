package expr

import (
	"errors"
	"fmt"
)

// UnsupportedExpressionError is returned when the translator encounters
// an expression-tree node or method call that neither registry knows
// how to render.
type UnsupportedExpressionError struct {
	Kind   string
	Detail string
}

func (e *UnsupportedExpressionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("edgedb/expr: unsupported expression: %s", e.Kind)
	}
	return fmt.Sprintf("edgedb/expr: unsupported expression: %s (%s)", e.Kind, e.Detail)
}

// NewUnsupportedExpressionError returns a new UnsupportedExpressionError.
func NewUnsupportedExpressionError(kind, detail string) *UnsupportedExpressionError {
	return &UnsupportedExpressionError{Kind: kind, Detail: detail}
}

// IsUnsupportedExpression reports whether err is an *UnsupportedExpressionError.
func IsUnsupportedExpression(err error) bool {
	var e *UnsupportedExpressionError
	return errors.As(err, &e)
}
