package types

// Expression represents a compiled sequence expression.
//
// An Expression can be evaluated many times against different variable
// bindings by passing it to the evaluator. It is immutable after
// compilation and safe for concurrent use by multiple goroutines.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates an Expression from a parsed AST and its source.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the parsed expression tree.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original source text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns the source text.
func (e *Expression) String() string {
	return e.source
}
