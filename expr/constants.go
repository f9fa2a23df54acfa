package expr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/sosodev/duration"
)

// Enum is implemented by Go enum types that want string rendering; its
// absence falls back to the value's numeric form. Enums honor an
// annotation that selects lowercase-string or numeric serialization.
type Enum interface {
	EdgeQLEnumValue() string
}

// EdgeQLTyper is implemented by Go types that know their own EdgeQL
// type name, used when a ConstantExpr wraps a value of such a type. A
// wrapped reflect.Type does not consult it and renders as its Go type
// name.
type EdgeQLTyper interface {
	EdgeQLTypeName() string
}

// renderConstant renders v for a ConstantExpr: strings quoted, enums
// honor their annotation, types render as their EdgeQL type name, nil
// becomes `{}`, everything else uses its canonical textual form.
func renderConstant(v any) (string, error) {
	if v == nil {
		return "{}", nil
	}
	switch val := v.(type) {
	case string:
		return quoteString(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		// Also covers rune, a built-in alias for int32; EdgeQL has no
		// separate character type, so a rune renders as its code point.
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case []byte:
		return fmt.Sprintf("b\"%s\"", escapeBytesLiteral(val)), nil
	case uuid.UUID:
		return fmt.Sprintf("<uuid>%q", val.String()), nil
	case time.Time:
		return fmt.Sprintf("<datetime>%q", val.UTC().Format(time.RFC3339Nano)), nil
	case apd.Decimal:
		return fmt.Sprintf("<decimal>%q", val.String()), nil
	case *apd.Decimal:
		return fmt.Sprintf("<decimal>%q", val.String()), nil
	case duration.Duration:
		return fmt.Sprintf("<duration>%q", val.String()), nil
	case reflect.Type:
		return edgeQLTypeNameOf(val), nil
	}

	if enum, ok := v.(Enum); ok {
		return quoteString(strings.ToLower(enum.EdgeQLEnumValue())), nil
	}
	if typer, ok := v.(EdgeQLTyper); ok {
		return typer.EdgeQLTypeName(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.String:
		return quoteString(rv.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	}

	return fmt.Sprintf("%v", v), nil
}

func edgeQLTypeNameOf(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeBytesLiteral(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if c < 0x20 || c > 0x7e {
				fmt.Fprintf(&sb, `\x%02x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}
