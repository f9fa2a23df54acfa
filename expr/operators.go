package expr

import (
	"fmt"
	"regexp"
	"strconv"
)

// Operator is a flat registry descriptor: a rendering Template applied
// to a binary/unary operator or a method call.
// Template placeholders are `{0}`, `{1}`, …; a placeholder suffixed
// with `?`, e.g. `{1?}`, is optional — the renderer drops it, and the
// separator immediately preceding it, when the corresponding argument
// was not supplied.
type Operator struct {
	Template string
}

var (
	binaryOperators = map[BinaryOp]*Operator{
		OpAdd: {Template: "{0} + {1}"},
		OpSub: {Template: "{0} - {1}"},
		OpMul: {Template: "{0} * {1}"},
		OpDiv: {Template: "{0} / {1}"},
		OpMod: {Template: "{0} % {1}"},
		OpAnd: {Template: "{0} and {1}"},
		OpOr:  {Template: "{0} or {1}"},
		OpEq:  {Template: "{0} = {1}"},
		OpNeq: {Template: "{0} != {1}"},
		OpGt:  {Template: "{0} > {1}"},
		OpGte: {Template: "{0} >= {1}"},
		OpLt:  {Template: "{0} < {1}"},
		OpLte: {Template: "{0} <= {1}"},
	}

	unaryOperators = map[UnaryOp]*Operator{
		OpNot: {Template: "not {0}"},
		OpNeg: {Template: "-{0}"},
	}

	// callOperators maps method names used in CallExpr to EdgeQL
	// function/operator templates. {0} is the translated call target
	// (the method receiver); {1}, {2}, … are the translated arguments,
	// in order. A call with no target shifts every argument down by
	// one, so its first argument fills {0}.
	callOperators = map[string]*Operator{
		"Contains":    {Template: "contains({0}, {1})"},
		"StartsWith":  {Template: "str_starts_with({0}, {1})"},
		"EndsWith":    {Template: "str_ends_with({0}, {1})"},
		"ToLower":     {Template: "str_lower({0})"},
		"ToUpper":     {Template: "str_upper({0})"},
		"Trim":        {Template: "str_trim({0})"},
		"Len":         {Template: "len({0})"},
		"Count":       {Template: "count({0})"},
		"In":          {Template: "{0} in {1}"},
		"Like":        {Template: "{0} like {1}"},
		"ILike":       {Template: "{0} ilike {1}"},
		"IsEmpty":     {Template: "len({0}) = 0"},
		"ToBigint":    {Template: "to_bigint({0}, {1?})"},
		"ToDecimal":   {Template: "to_decimal({0}, {1?})"},
		"ToInt64":     {Template: "to_int64({0})"},
		"ToStr":       {Template: "to_str({0}, {1?})"},
		"Exists":      {Template: "exists {0}"},
	}
)

// RegisterBinaryOperator adds or overrides the template used to render
// a binary operator.
func RegisterBinaryOperator(op BinaryOp, template string) {
	binaryOperators[op] = &Operator{Template: template}
}

// RegisterUnaryOperator adds or overrides the template used to render
// a unary operator.
func RegisterUnaryOperator(op UnaryOp, template string) {
	unaryOperators[op] = &Operator{Template: template}
}

// RegisterCallOperator adds or overrides the template used to render a
// method call by name. Callers register one entry per EdgeQL function
// or operator they want CallExpr to reach.
func RegisterCallOperator(method, template string) {
	callOperators[method] = &Operator{Template: template}
}

// LookupCallOperator returns the Operator registered for method, if any.
func LookupCallOperator(method string) (*Operator, bool) {
	op, ok := callOperators[method]
	return op, ok
}

var templateTokenRe = regexp.MustCompile(`(,?\s*)\{(\d+)(\??)\}`)

// render applies op's template to args, where args[i] is the already
// translated text for placeholder {i}. A missing optional placeholder
// (index >= len(args)) is dropped along with its preceding separator;
// a missing required placeholder is an error.
func (op *Operator) render(args []string) (string, error) {
	var err error
	out := templateTokenRe.ReplaceAllStringFunc(op.Template, func(match string) string {
		if err != nil {
			return ""
		}
		sub := templateTokenRe.FindStringSubmatch(match)
		sep, idxStr, optional := sub[1], sub[2], sub[3]
		idx, convErr := strconv.Atoi(idxStr)
		if convErr != nil {
			err = convErr
			return ""
		}
		if idx >= len(args) {
			if optional == "?" {
				return ""
			}
			err = fmt.Errorf("edgedb/expr: missing required template argument {%d} in %q", idx, op.Template)
			return ""
		}
		return sep + args[idx]
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
