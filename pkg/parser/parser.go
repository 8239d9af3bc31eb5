// Package parser implements the text surface of the sequence engine: a
// hand-written lexer and recursive descent (Pratt) parser for infix
// expressions over sequences.
//
// # Grammar
//
//	expr    := unary | expr binop expr
//	unary   := ("-" | "~" | "+") unary | primary
//	primary := number | "[" number ("," number)* "]" | "$" name
//	         | "pick" "(" expr "," expr ")" | "(" expr ")"
//
// The binary operators are + - * / % & | ^ << >>, left-associative, with
// the multiplicative group (* / % << >> &) binding tighter than the
// additive group (+ - | ^), the same two precedence levels Go gives these
// operators.
//
// Parsing produces a *types.Expression; evaluation against variable
// bindings happens in pkg/evaluator.
package parser

import (
	"github.com/maxjmartin/seqcontainer/pkg/types"
)

// Parse parses a sequence expression and returns the compiled Expression.
//
// Example:
//
//	expr, err := parser.Parse("($a + [1,2,3]) * 2")
func Parse(source string) (*types.Expression, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(source, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits expression nesting to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum parse nesting depth. Values <= 0 keep the
// default of 100.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
