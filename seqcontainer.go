// Package seqcontainer provides a growable integer sequence with lazy,
// expression-template style arithmetic.
//
// Arithmetic between sequences never computes eagerly: operators build a
// tree of deferred nodes, and elements are computed one index at a time
// only when the tree is materialized into a concrete sequence. A chain
// like a.Add(b).Mul(c) therefore makes a single pass over the operands
// with no intermediate sequences.
//
// # Quick Start
//
//	// Programmatic API: lazy trees over sequences
//	a := seqcontainer.New(1, 2, 3)
//	b := seqcontainer.New(10, 20)
//	sum := seqcontainer.Materialize(a.Add(b)) // (11,22,3)
//
//	// Text API: compile once, evaluate many times
//	expr, err := seqcontainer.Compile("$a + $b * 2")
//	result, _ := seqcontainer.EvalExpr(ctx, expr, seqcontainer.Vars{
//	    "a": a, "b": b,
//	})
//
//	// One-shot evaluation
//	result, err := seqcontainer.Eval("[1,2,3] << 1", nil)
//
// Operands of different lengths combine by index: positions past a
// shorter operand's end read as zero values, and plain numbers broadcast
// across every index. Arithmetic never fails: division and modulo by
// zero yield 0, as do negative shift counts.
//
// # More Information
//
// For detailed documentation, see:
//   - Core container: github.com/maxjmartin/seqcontainer/pkg/seq
//   - Lazy trees: github.com/maxjmartin/seqcontainer/pkg/expr
//   - Parser: github.com/maxjmartin/seqcontainer/pkg/parser
//   - Evaluator: github.com/maxjmartin/seqcontainer/pkg/evaluator
package seqcontainer

import (
	"context"
	"fmt"
	"time"

	"github.com/maxjmartin/seqcontainer/pkg/evaluator"
	"github.com/maxjmartin/seqcontainer/pkg/expr"
	"github.com/maxjmartin/seqcontainer/pkg/parser"
	"github.com/maxjmartin/seqcontainer/pkg/seq"
	"github.com/maxjmartin/seqcontainer/pkg/types"
)

// Version returns the current version of the module.
func Version() string {
	return "v0.1.0-dev"
}

// Sequence is the concrete growable container at the text-language
// element width.
type Sequence = seq.Sequence[int64]

// Vars binds variable names to sequences for evaluation.
type Vars = evaluator.Vars

// New creates a sequence holding the given values.
func New(values ...int64) *Sequence {
	return seq.New(values...)
}

// Materialize computes a lazy expression tree into a fresh sequence.
func Materialize(e expr.Expr[int64]) *Sequence {
	return seq.FromExpr(e)
}

// Compile compiles a sequence expression for repeated evaluation.
//
// The compiled expression is immutable and safe for concurrent use.
//
// Example:
//
//	expr, err := seqcontainer.Compile("($a + [1,2,3]) * 2")
func Compile(source string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(source, opts...)
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled. It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("seqcontainer: Compile(%q): %v", source, err))
	}
	return expr
}

// Eval is a convenience function that compiles and evaluates an expression
// in a single call.
//
// For repeated evaluations of the same expression, use Compile and
// EvalExpr instead.
func Eval(source string, vars Vars, opts ...evaluator.EvalOption) (*Sequence, error) {
	expr, err := Compile(source)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eval := evaluator.New(opts...)
	return eval.Eval(ctx, expr, vars)
}

// EvalWithContext evaluates an expression with a custom context.
func EvalWithContext(ctx context.Context, source string, vars Vars, opts ...evaluator.EvalOption) (*Sequence, error) {
	expr, err := Compile(source)
	if err != nil {
		return nil, err
	}

	eval := evaluator.New(opts...)
	return eval.Eval(ctx, expr, vars)
}

// EvalExpr evaluates a compiled expression against vars.
func EvalExpr(ctx context.Context, expression *types.Expression, vars Vars, opts ...evaluator.EvalOption) (*Sequence, error) {
	eval := evaluator.New(opts...)
	return eval.Eval(ctx, expression, vars)
}
