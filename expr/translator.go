package expr

import (
	"fmt"
	"reflect"
	"strings"
)

// HandlerFunc renders one expression-tree node to EdgeQL text. It
// receives the Translator so it can recurse into child expressions
// through the same registry and extension points.
type HandlerFunc func(t *Translator, scope *Scope, e Expr) (string, error)

// defaultHandlers is the type-keyed translator registry populated once
// at package init.
var defaultHandlers = map[reflect.Type]HandlerFunc{
	reflect.TypeOf(&BinaryExpr{}):      translateBinary,
	reflect.TypeOf(&UnaryExpr{}):       translateUnary,
	reflect.TypeOf(&MemberExpr{}):      translateMember,
	reflect.TypeOf(&ConstantExpr{}):    translateConstant,
	reflect.TypeOf(&ParamExpr{}):       translateParam,
	reflect.TypeOf(&CallExpr{}):        translateCall,
	reflect.TypeOf(&ConditionalExpr{}): translateConditional,
	reflect.TypeOf(&NewObjectExpr{}):   translateNewObject,
	reflect.TypeOf(&LambdaExpr{}):      translateLambda,
}

// Translator dispatches expression-tree nodes to EdgeQL text using a
// type-keyed handler registry. The zero value is not usable; construct
// one with NewTranslator.
type Translator struct {
	handlers map[reflect.Type]HandlerFunc
}

// NewTranslator returns a Translator seeded with the default handlers
// for every built-in expression kind.
func NewTranslator() *Translator {
	t := &Translator{handlers: make(map[reflect.Type]HandlerFunc, len(defaultHandlers))}
	for rt, h := range defaultHandlers {
		t.handlers[rt] = h
	}
	return t
}

// RegisterHandler installs a custom handler for every expression of
// the same concrete type as sample, overriding the default if one
// exists. Expr's marker method is unexported, so sample is always one
// of the expression kinds defined in this package.
func (t *Translator) RegisterHandler(sample Expr, h HandlerFunc) {
	t.handlers[reflect.TypeOf(sample)] = h
}

// Translate renders e to EdgeQL text, starting with an empty lambda
// scope.
func (t *Translator) Translate(e Expr) (string, error) {
	return t.translate(NewScope(), e)
}

func (t *Translator) translate(scope *Scope, e Expr) (string, error) {
	if e == nil {
		return "", NewUnsupportedExpressionError("nil", "expression is nil")
	}
	h, ok := t.handlers[reflect.TypeOf(e)]
	if !ok {
		return "", NewUnsupportedExpressionError(fmt.Sprintf("%T", e), "no translator registered for this expression kind")
	}
	return h(t, scope, e)
}

func translateBinary(t *Translator, scope *Scope, e Expr) (string, error) {
	be := e.(*BinaryExpr)
	left, err := t.translate(scope, be.Left)
	if err != nil {
		return "", err
	}
	right, err := t.translate(scope, be.Right)
	if err != nil {
		return "", err
	}
	op, ok := binaryOperators[be.Op]
	if !ok {
		return "", NewUnsupportedExpressionError("binary", fmt.Sprintf("operator %q is not registered", be.Op))
	}
	return op.render([]string{left, right})
}

func translateUnary(t *Translator, scope *Scope, e Expr) (string, error) {
	ue := e.(*UnaryExpr)
	operand, err := t.translate(scope, ue.Operand)
	if err != nil {
		return "", err
	}
	op, ok := unaryOperators[ue.Op]
	if !ok {
		return "", NewUnsupportedExpressionError("unary", fmt.Sprintf("operator %q is not registered", ue.Op))
	}
	return op.render([]string{operand})
}

func translateMember(t *Translator, scope *Scope, e Expr) (string, error) {
	me := e.(*MemberExpr)
	if pe, ok := me.Target.(*ParamExpr); ok && scope.IsBound(pe.Name) {
		return "." + me.Name, nil
	}
	target, err := t.translate(scope, me.Target)
	if err != nil {
		return "", err
	}
	return target + "." + me.Name, nil
}

func translateConstant(_ *Translator, _ *Scope, e Expr) (string, error) {
	ce := e.(*ConstantExpr)
	return renderConstant(ce.Value)
}

func translateParam(_ *Translator, scope *Scope, e Expr) (string, error) {
	pe := e.(*ParamExpr)
	if !scope.IsBound(pe.Name) {
		return "", NewUnsupportedExpressionError("param", fmt.Sprintf("%q is not bound by an enclosing lambda", pe.Name))
	}
	return "", nil
}

func translateCall(t *Translator, scope *Scope, e Expr) (string, error) {
	ce := e.(*CallExpr)
	op, ok := LookupCallOperator(ce.Method)
	if !ok {
		return "", NewUnsupportedExpressionError("call", fmt.Sprintf("method %q is not registered as an operator", ce.Method))
	}
	var args []string
	if ce.Target != nil {
		target, err := t.translate(scope, ce.Target)
		if err != nil {
			return "", err
		}
		args = append(args, target)
	}
	for _, a := range ce.Args {
		rendered, err := t.translate(scope, a)
		if err != nil {
			return "", err
		}
		args = append(args, rendered)
	}
	return op.render(args)
}

func translateConditional(t *Translator, scope *Scope, e Expr) (string, error) {
	ce := e.(*ConditionalExpr)
	cond, err := t.translate(scope, ce.Cond)
	if err != nil {
		return "", err
	}
	then, err := t.translate(scope, ce.Then)
	if err != nil {
		return "", err
	}
	els, err := t.translate(scope, ce.Else)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s if %s else %s", then, cond, els), nil
}

func translateNewObject(t *Translator, scope *Scope, e Expr) (string, error) {
	ne := e.(*NewObjectExpr)
	parts := make([]string, 0, len(ne.FieldOrder))
	for _, name := range ne.FieldOrder {
		value, err := t.translate(scope, ne.Fields[name])
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s := %s", name, value))
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func translateLambda(t *Translator, scope *Scope, e Expr) (string, error) {
	le := e.(*LambdaExpr)
	scope.Push(le.Param.name)
	defer scope.Pop()
	return t.translate(scope, le.Body)
}
