// Package expr implements the lazy expression tree at the core of the
// sequence engine.
//
// Arithmetic over sequences does not produce intermediate sequences. Each
// operator builds a Node wrapping its operands, and the whole chained
// expression stays a single unevaluated tree until it is materialized into a
// concrete sequence. Evaluation is per index: reading index i of a node
// recursively reads index i of both operands and combines the two values.
// Nothing is cached; re-reading an index recomputes the subtree.
//
// # Operand variants
//
// A node's operand slot holds one of three variants, all behind the Expr
// interface: a concrete sequence, a broadcast Scalar, or another node.
// A nested node is always a temporary produced in the same expression
// statement, so a tree must be materialized before any sequence it
// references is mutated or destroyed. That is the single-full-expression
// lifetime contract.
//
// # Length inference
//
// A node's declared length is its left operand's length, unless that is
// zero, in which case it is the right operand's length. Mismatched nonzero
// lengths are not an error: the shorter operand is simply read past its end,
// which for a sequence yields the zero value.
package expr

import (
	"golang.org/x/exp/constraints"

	"github.com/maxjmartin/seqcontainer/pkg/ops"
)

// Expr is the capability shared by every operand variant: a declared length
// and a lazy per-index read. Implementations must not allocate or mutate
// shared state inside At.
//
// At with an index at or beyond Len returns an unspecified (but safe) value;
// callers bound their loops to Len themselves.
type Expr[V constraints.Integer] interface {
	Len() int
	At(i int) V
}

// Scalar is the broadcast operand variant: the same value at every index.
//
// A Scalar has length zero so that the length-inference rule defers to the
// operand on the other side of the node. A node built from two scalars
// therefore has length zero and materializes to an empty sequence.
type Scalar[V constraints.Integer] struct {
	v V
}

// Constant wraps v as a broadcast operand.
func Constant[V constraints.Integer](v V) Scalar[V] {
	return Scalar[V]{v: v}
}

// Len returns 0. See the type comment for why.
func (Scalar[V]) Len() int { return 0 }

// At returns the wrapped value regardless of index.
func (s Scalar[V]) At(int) V { return s.v }

// Value returns the wrapped value.
func (s Scalar[V]) Value() V { return s.v }

// Node is a deferred binary operation over two operands. Building a node
// performs no computation and no allocation beyond the node itself; it is
// immutable once built.
type Node[V constraints.Integer] struct {
	left  Expr[V]
	right Expr[V]
	op    ops.Op
}

// NewNode builds a deferred op over left and right. The operands are not
// validated, copied, or read.
func NewNode[V constraints.Integer](left Expr[V], op ops.Op, right Expr[V]) *Node[V] {
	return &Node[V]{left: left, right: right, op: op}
}

// Left returns the left operand.
func (n *Node[V]) Left() Expr[V] { return n.left }

// Right returns the right operand.
func (n *Node[V]) Right() Expr[V] { return n.right }

// Op returns the bound operation tag.
func (n *Node[V]) Op() ops.Op { return n.op }

// Len returns the node's declared length: the left operand's length unless
// it is zero, otherwise the right operand's.
func (n *Node[V]) Len() int {
	if l := n.left.Len(); l != 0 {
		return l
	}
	return n.right.Len()
}

// At evaluates index i of both operands and combines them with the bound
// operation. The result for i >= Len() is unspecified.
func (n *Node[V]) At(i int) V {
	return ops.Combine(n.op, n.left.At(i), n.right.At(i))
}

// Chaining. Each method wraps the receiver as the left operand of a fresh
// node, producing the right-leaning tree that mirrors left-to-right
// evaluation order of the written expression.

// Add returns a deferred n + rhs.
func (n *Node[V]) Add(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Add, rhs) }

// Sub returns a deferred n - rhs.
func (n *Node[V]) Sub(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Sub, rhs) }

// Mul returns a deferred n * rhs.
func (n *Node[V]) Mul(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Mul, rhs) }

// Div returns a deferred n / rhs.
func (n *Node[V]) Div(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Div, rhs) }

// Mod returns a deferred n % rhs.
func (n *Node[V]) Mod(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Mod, rhs) }

// And returns a deferred n & rhs.
func (n *Node[V]) And(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.And, rhs) }

// Or returns a deferred n | rhs.
func (n *Node[V]) Or(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Or, rhs) }

// Xor returns a deferred n ^ rhs.
func (n *Node[V]) Xor(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Xor, rhs) }

// Shl returns a deferred n << rhs.
func (n *Node[V]) Shl(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Shl, rhs) }

// Shr returns a deferred n >> rhs.
func (n *Node[V]) Shr(rhs Expr[V]) *Node[V] { return NewNode[V](n, ops.Shr, rhs) }

// Pick is the indexed-subscript variant: index i reads an index value from
// idx and, when it is nonzero, picks that position out of src; a zero index
// value yields the zero value. Out-of-range picks follow the source's own
// out-of-range behavior (the zero value for a sequence operand).
type Pick[V constraints.Integer] struct {
	src Expr[V]
	idx Expr[V]
}

// NewPick builds a deferred pick of src positions selected by idx.
func NewPick[V constraints.Integer](src, idx Expr[V]) *Pick[V] {
	return &Pick[V]{src: src, idx: idx}
}

// Len follows the same inference rule as Node, with src on the left.
func (p *Pick[V]) Len() int {
	if l := p.src.Len(); l != 0 {
		return l
	}
	return p.idx.Len()
}

// At returns src at the position named by idx at i, or the zero value when
// that position is zero.
func (p *Pick[V]) At(i int) V {
	j := p.idx.At(i)
	if j == 0 {
		var zero V
		return zero
	}
	return p.src.At(int(j))
}

// Func is a deferred binary combine with a caller-supplied function instead
// of an operation tag. It follows the same length inference and lazy
// evaluation rules as Node. fn must be pure for materialization to be
// repeatable.
type Func[V constraints.Integer] struct {
	left  Expr[V]
	right Expr[V]
	fn    func(V, V) V
}

// NewFunc builds a deferred fn(left, right).
func NewFunc[V constraints.Integer](left, right Expr[V], fn func(V, V) V) *Func[V] {
	return &Func[V]{left: left, right: right, fn: fn}
}

// Len returns the left operand's length unless it is zero, otherwise the
// right operand's.
func (f *Func[V]) Len() int {
	if l := f.left.Len(); l != 0 {
		return l
	}
	return f.right.Len()
}

// At applies fn to index i of both operands.
func (f *Func[V]) At(i int) V {
	return f.fn(f.left.At(i), f.right.At(i))
}
