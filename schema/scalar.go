package schema

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/sosodev/duration"
)

// scalarRegistry maps a Go type to the EdgeQL scalar type name used to
// render its variable cast, e.g. reflect.TypeOf("") -> "str" so that a
// string property renders `<str>$name`.
var scalarRegistry = map[reflect.Type]string{
	reflect.TypeOf(false):                "bool",
	reflect.TypeOf(int16(0)):             "int16",
	reflect.TypeOf(int32(0)):             "int32",
	reflect.TypeOf(int(0)):               "int64",
	reflect.TypeOf(int64(0)):             "int64",
	reflect.TypeOf(float32(0)):           "float32",
	reflect.TypeOf(float64(0)):           "float64",
	reflect.TypeOf(""):                   "str",
	reflect.TypeOf([]byte(nil)):          "bytes",
	reflect.TypeOf(uuid.UUID{}):          "uuid",
	reflect.TypeOf(time.Time{}):          "datetime",
	reflect.TypeOf(apd.Decimal{}):        "decimal",
	reflect.TypeOf(duration.Duration{}):  "duration",
	reflect.TypeOf(json.RawMessage(nil)): "json",
	reflect.TypeOf(LocalDate{}):          "cal::local_date",
	reflect.TypeOf(LocalTime{}):          "cal::local_time",
	reflect.TypeOf(LocalDateTime{}):      "cal::local_datetime",
}

// LocalDate is a wall-clock date without a time zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalTime is a wall-clock time of day without a time zone.
type LocalTime struct {
	Hour, Minute, Second, Microsecond int
}

// LocalDateTime is a wall-clock date and time without a time zone.
type LocalDateTime struct {
	LocalDate
	LocalTime
}

// RegisterScalar adds or overrides the EdgeQL scalar name used for
// values of goType. Callers extend the registry this way for custom
// scalar types (e.g. a type implementing a string-backed enum).
func RegisterScalar(goType reflect.Type, edgeqlName string) {
	scalarRegistry[goType] = edgeqlName
}

// LookupScalar returns the EdgeQL scalar type name for goType, and
// whether one is registered. The insert shape builder consults it to
// decide whether a field is a scalar property or a link.
func LookupScalar(goType reflect.Type) (string, bool) {
	if name, ok := scalarRegistry[goType]; ok {
		return name, true
	}
	// Unwrap named types with an underlying kind we recognize, e.g. a
	// `type Status int32` enum that was not explicitly registered.
	switch goType.Kind() {
	case reflect.Bool:
		return "bool", true
	case reflect.Int16:
		return "int16", true
	case reflect.Int32:
		return "int32", true
	case reflect.Int, reflect.Int64:
		return "int64", true
	case reflect.Float32:
		return "float32", true
	case reflect.Float64:
		return "float64", true
	case reflect.String:
		return "str", true
	case reflect.Slice, reflect.Array:
		// A homogeneous array of scalars (already excluded []byte and any
		// explicitly registered slice type above) renders as EdgeQL's
		// array<...>, e.g. []int64 -> array<int64>.
		elemName, ok := LookupScalar(goType.Elem())
		if !ok {
			return "", false
		}
		return "array<" + elemName + ">", true
	}
	return "", false
}

// IsScalarType reports whether goType has a scalar mapping, so callers
// can distinguish scalar properties from links without risking a
// partial match on struct-shaped scalars like time.Time or uuid.UUID.
func IsScalarType(goType reflect.Type) bool {
	_, ok := LookupScalar(goType)
	return ok
}
