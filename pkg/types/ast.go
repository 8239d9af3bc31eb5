// Package types defines the shared types of the sequence expression
// language: AST nodes produced by the parser, the compiled Expression
// wrapper, and structured errors with stable codes.
//
// Only the text surface lives here. The lazy evaluation core (pkg/expr,
// pkg/seq) has no error channel at all and does not depend on this package.
package types

// NodeType identifies the kind of an AST node.
type NodeType string

const (
	// Literals
	NodeNumber   NodeType = "number"   // 42, broadcast scalar
	NodeSequence NodeType = "sequence" // [1,2,3]

	// Bindings
	NodeVariable NodeType = "variable" // $name, bound at eval time

	// Operators
	NodeBinary NodeType = "binary" // + - * / % & | ^ << >>
	NodeUnary  NodeType = "unary"  // - ~ +

	// Builtins
	NodePick NodeType = "pick" // pick(src, idx)
)

// ASTNode represents a node in the parsed expression tree.
type ASTNode struct {
	Type     NodeType
	Value    string  // Operator symbol or variable name
	NumValue int64   // Literal value for NodeNumber
	Elems    []int64 // Literal elements for NodeSequence
	Position int

	LHS *ASTNode // Left operand (binary), sole operand (unary), pick source
	RHS *ASTNode // Right operand (binary), pick index
}

// NewASTNode creates a new AST node of the given kind.
func NewASTNode(nodeType NodeType, position int) *ASTNode {
	return &ASTNode{
		Type:     nodeType,
		Position: position,
	}
}

// String returns the node kind.
func (n *ASTNode) String() string {
	return string(n.Type)
}
