package edgeql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaRequired is wrapped by SchemaRequiredError. Callers that only
// care about the category can match with errors.Is.
var ErrSchemaRequired = errors.New("edgeql: operation requires schema introspection but no Server was configured")

// ErrNoExclusiveConstraints is wrapped by NoExclusiveConstraintsError.
var ErrNoExclusiveConstraints = errors.New("edgeql: type has no exclusive constraints to synthesize a conflict target from")

// ErrCancelledOrTimedOut is returned by the introspection consumer when
// ctx is already done before DescribeSchema is called. A cancellation
// during the call surfaces as whatever error DescribeSchema returns.
var ErrCancelledOrTimedOut = errors.New("edgeql: introspection cancelled or timed out")

// UnserializableTypeError is raised when the schema descriptor for a
// type carries a Go field type with no registered scalar mapping and
// no link classification (see schema.LookupScalar, schema.Describe).
type UnserializableTypeError struct {
	TypeName string
	GoType   string
}

func (e *UnserializableTypeError) Error() string {
	return fmt.Sprintf("edgeql: type %q has no EdgeQL scalar mapping for Go type %s", e.TypeName, e.GoType)
}

func NewUnserializableTypeError(typeName, goType string) error {
	return &UnserializableTypeError{TypeName: typeName, GoType: goType}
}

// UnserializablePropertyError is raised when a specific property, not
// the bare type, cannot be serialized — e.g. a JSON bulk root property
// for which RootScalars supplies no value.
type UnserializablePropertyError struct {
	TypeName     string
	PropertyName string
	Reason       string
}

func (e *UnserializablePropertyError) Error() string {
	return fmt.Sprintf("edgeql: cannot serialize %s.%s: %s", e.TypeName, e.PropertyName, e.Reason)
}

func NewUnserializablePropertyError(typeName, propertyName, reason string) error {
	return &UnserializablePropertyError{TypeName: typeName, PropertyName: propertyName, Reason: reason}
}

// SchemaRequiredError is raised when a node needs SchemaInfo (to
// autogenerate a conflict target, or to resolve a depth-map link) but
// the builder was never given a Server to introspect with.
type SchemaRequiredError struct {
	Operation string
}

func (e *SchemaRequiredError) Error() string {
	return fmt.Sprintf("edgeql: %s: %v", e.Operation, ErrSchemaRequired)
}

func (e *SchemaRequiredError) Unwrap() error { return ErrSchemaRequired }

func NewSchemaRequiredError(operation string) error {
	return &SchemaRequiredError{Operation: operation}
}

// NoExclusiveConstraintsError is raised when an autogenerated conflict
// clause is requested for a type that introspection reports has no
// exclusive constraints at all.
type NoExclusiveConstraintsError struct {
	TypeName string
}

func (e *NoExclusiveConstraintsError) Error() string {
	return fmt.Sprintf("edgeql: %s: %v", e.TypeName, ErrNoExclusiveConstraints)
}

func (e *NoExclusiveConstraintsError) Unwrap() error { return ErrNoExclusiveConstraints }

func NewNoExclusiveConstraintsError(typeName string) error {
	return &NoExclusiveConstraintsError{TypeName: typeName}
}

// MalformedArgumentCodecError is raised when a SubQuery is resolved
// that carries neither ready text nor a deferred resolver. The depth
// indices and ranges of a JSON bulk value are not checked against the
// sibling arrays they point at.
type MalformedArgumentCodecError struct {
	Detail string
}

func (e *MalformedArgumentCodecError) Error() string {
	return "edgeql: malformed argument codec: " + e.Detail
}

func NewMalformedArgumentCodecError(detail string) error {
	return &MalformedArgumentCodecError{Detail: detail}
}

func IsUnserializableType(err error) bool {
	var target *UnserializableTypeError
	return errors.As(err, &target)
}

func IsSchemaRequired(err error) bool {
	return errors.Is(err, ErrSchemaRequired)
}

func IsNoExclusiveConstraints(err error) bool {
	return errors.Is(err, ErrNoExclusiveConstraints)
}

// AggregateError collects multiple construction errors found while
// visiting a builder's node graph, for callers that ask to see every
// failure at once instead of failing fast on the first.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "edgeql: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("edgeql: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewAggregateError returns a new AggregateError if errs contains more
// than one non-nil error, the single error if there is exactly one, or
// nil if errs is empty or every entry is nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return &AggregateError{Errors: filtered}
	}
}
