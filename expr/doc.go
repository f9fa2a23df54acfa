// Package expr is the expression translator: it renders an abstract
// expression tree — binary/unary operators, member access, constants,
// method calls, conditionals, and lambdas — to EdgeQL text.
//
// The tree is built with the fluent constructors in this package
// because Go has no literal expression-tree syntax:
//
//	sel := expr.Lambda(func(it expr.Param) expr.Expr {
//	    return expr.And(
//	        expr.Gt(it.Member("age"), expr.Const(18)),
//	        expr.Eq(it.Member("name"), expr.Const("Alice")),
//	    )
//	})
//	text, err := expr.NewTranslator().Translate(sel)
//	// text == `.age > 18 and .name = "Alice"`
//
// Two registries are populated once at package init: a type-keyed
// dispatch table from concrete expression kind to a render function,
// and an operator registry mapping binary/unary operators and known
// method calls to EdgeQL templates.
package expr
