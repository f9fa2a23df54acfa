package expr

// Expr is the marker interface implemented by every expression-tree
// node. It is a closed set: the translator's type-keyed registry knows
// about exactly the variants defined in this file.
type Expr interface {
	exprNode()
}

// BinaryOp identifies a binary operator.
type BinaryOp string

// Binary operators recognized by the default operator registry.
const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
	OpEq  BinaryOp = "=="
	OpNeq BinaryOp = "!="
	OpGt  BinaryOp = ">"
	OpGte BinaryOp = ">="
	OpLt  BinaryOp = "<"
	OpLte BinaryOp = "<="
)

// UnaryOp identifies a unary operator.
type UnaryOp string

// Unary operators recognized by the default operator registry.
const (
	OpNot UnaryOp = "!"
	OpNeg UnaryOp = "-"
)

// BinaryExpr is a binary operator application, e.g. `it.Age > 18`.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a unary operator application, e.g. `!it.Active`.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// MemberExpr is property or link access against another expression,
// e.g. `it.Name`. A MemberExpr whose Target is a Param renders as a
// bare `.name`; any other target is translated and dotted.
type MemberExpr struct {
	Target Expr
	Name   string
}

func (*MemberExpr) exprNode() {}

// ConstantExpr wraps a literal Go value.
type ConstantExpr struct {
	Value any
}

func (*ConstantExpr) exprNode() {}

// Param is the "it" parameter a LambdaExpr introduces. Each lambda
// scope pushes its own Param name onto the translator's Scope so
// nested lambdas (sub-queries within a filter) do not collide.
type Param struct {
	name string
}

// Member builds a MemberExpr against p, the usual way to start a
// property-access chain inside a lambda body.
func (p Param) Member(name string) *MemberExpr {
	return &MemberExpr{Target: &ParamExpr{Name: p.name}, Name: name}
}

// Name returns the parameter's bound name, e.g. "it" or "x".
func (p Param) Name() string { return p.name }

// ParamExpr is the tree-node form of a Param reference.
type ParamExpr struct {
	Name string
}

func (*ParamExpr) exprNode() {}

// CallExpr is a method call, e.g. `it.Name.Contains("foo")` or a free
// function call with no target.
type CallExpr struct {
	// Target is the receiver the method is called on; nil for a free
	// function call.
	Target Expr
	Method string
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// ConditionalExpr is a ternary `cond ? then : else` surfaced as EdgeQL's
// `then if cond else else_`.
type ConditionalExpr struct {
	Cond, Then, Else Expr
}

func (*ConditionalExpr) exprNode() {}

// NewObjectExpr is an inline shape literal, the lambda-expression form
// of an insert shape.
type NewObjectExpr struct {
	// TypeName is the EdgeQL type name the shape constructs.
	TypeName string
	// Fields maps each shape key to the expression producing its value.
	Fields map[string]Expr
	// FieldOrder preserves the order fields were added, since Fields is
	// a map and EdgeQL shape rendering must be deterministic.
	FieldOrder []string
}

func (*NewObjectExpr) exprNode() {}

// LambdaExpr is a single-parameter lambda: `it => body`. Param is the
// name bound inside Body; translating a LambdaExpr pushes Param onto
// the active Scope for the duration of translating Body.
type LambdaExpr struct {
	Param Param
	Body  Expr
}

func (*LambdaExpr) exprNode() {}

// Lambda builds a LambdaExpr by calling build with a fresh Param. It is
// the entry point callers use to author filter/selector/shape
// expressions.
func Lambda(build func(it Param) Expr) *LambdaExpr {
	p := Param{name: "it"}
	return &LambdaExpr{Param: p, Body: build(p)}
}

// NamedLambda is Lambda with an explicit parameter name, used when
// nesting lambdas so the inner scope's member accesses are unambiguous
// even before translation assigns scope names.
func NamedLambda(name string, build func(it Param) Expr) *LambdaExpr {
	p := Param{name: name}
	return &LambdaExpr{Param: p, Body: build(p)}
}

// --- fluent constructors ---

// Const wraps v as a ConstantExpr.
func Const(v any) *ConstantExpr { return &ConstantExpr{Value: v} }

// Member builds a MemberExpr against an arbitrary target expression.
func Member(target Expr, name string) *MemberExpr {
	return &MemberExpr{Target: target, Name: name}
}

// Binary builds a BinaryExpr.
func Binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

// Unary builds a UnaryExpr.
func Unary(op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand}
}

// And, Or, Eq, Neq, Gt, Gte, Lt, Lte, Add, Sub, Mul, Div, Mod are
// shorthand binary-expression constructors.
func And(l, r Expr) *BinaryExpr { return Binary(OpAnd, l, r) }
func Or(l, r Expr) *BinaryExpr  { return Binary(OpOr, l, r) }
func Eq(l, r Expr) *BinaryExpr  { return Binary(OpEq, l, r) }
func Neq(l, r Expr) *BinaryExpr { return Binary(OpNeq, l, r) }
func Gt(l, r Expr) *BinaryExpr  { return Binary(OpGt, l, r) }
func Gte(l, r Expr) *BinaryExpr { return Binary(OpGte, l, r) }
func Lt(l, r Expr) *BinaryExpr  { return Binary(OpLt, l, r) }
func Lte(l, r Expr) *BinaryExpr { return Binary(OpLte, l, r) }
func Add(l, r Expr) *BinaryExpr { return Binary(OpAdd, l, r) }
func Sub(l, r Expr) *BinaryExpr { return Binary(OpSub, l, r) }
func Mul(l, r Expr) *BinaryExpr { return Binary(OpMul, l, r) }
func Div(l, r Expr) *BinaryExpr { return Binary(OpDiv, l, r) }
func Mod(l, r Expr) *BinaryExpr { return Binary(OpMod, l, r) }

// Not negates operand.
func Not(operand Expr) *UnaryExpr { return Unary(OpNot, operand) }

// Neg arithmetically negates operand.
func Neg(operand Expr) *UnaryExpr { return Unary(OpNeg, operand) }

// Call builds a CallExpr against target.
func Call(target Expr, method string, args ...Expr) *CallExpr {
	return &CallExpr{Target: target, Method: method, Args: args}
}

// If builds a ConditionalExpr.
func If(cond, then, els Expr) *ConditionalExpr {
	return &ConditionalExpr{Cond: cond, Then: then, Else: els}
}

// NewObject starts a shape literal for typeName. Use Set to add fields.
func NewObject(typeName string) *NewObjectExpr {
	return &NewObjectExpr{TypeName: typeName, Fields: map[string]Expr{}}
}

// Set adds a field to a NewObjectExpr and returns it for chaining.
func (n *NewObjectExpr) Set(name string, value Expr) *NewObjectExpr {
	if _, exists := n.Fields[name]; !exists {
		n.FieldOrder = append(n.FieldOrder, name)
	}
	n.Fields[name] = value
	return n
}
