// Package seq implements the growable numeric sequence that anchors the
// lazy expression engine.
//
// A Sequence is both a source of lazy expressions (every arithmetic method
// on it returns an unevaluated tree node referencing it) and the sink that
// materializes such a tree into owned storage, either at construction
// (FromExpr) or by assignment into an existing sequence (Assign and the
// compound-assignment methods).
//
// # Never-fail policy
//
// No operation on a sequence returns an error or panics for a would-be
// fault. Out-of-range const reads yield the zero value; out-of-range writes
// grow the sequence first; Pop on an empty sequence is a no-op; division and
// modulo by zero inside an expression yield 0. Client code relies on these
// silent defaults.
//
// # Ownership
//
// A sequence exclusively owns its backing Store. Passing a sequence into an
// expression creates a non-owning reference held by the tree; the caller
// must materialize the tree before mutating or dropping any sequence it
// references.
package seq

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/maxjmartin/seqcontainer/pkg/expr"
	"github.com/maxjmartin/seqcontainer/pkg/ops"
)

// Sequence is a growable, order-preserving buffer of integer values with
// default-on-miss reads and grow-on-write mutation. The zero value is not
// usable; construct with New, WithStore, or FromExpr.
type Sequence[V constraints.Integer] struct {
	store Store[V]
}

// New returns a sequence over the default slice store holding vals. With no
// arguments it is empty; with one it is the length-1 scalar sequence; with
// more it copies the list in order.
func New[V constraints.Integer](vals ...V) *Sequence[V] {
	return &Sequence[V]{store: NewSliceStore(vals...)}
}

// WithStore returns an empty sequence over the provided backing store. The
// sequence takes ownership of st.
func WithStore[V constraints.Integer](st Store[V]) *Sequence[V] {
	return &Sequence[V]{store: st}
}

// FromExpr materializes a lazy expression tree into a fresh sequence. It
// allocates exactly e.Len() elements (no extra headroom) and evaluates each
// index of the tree once, in order. This is the single point where a tree
// built by the operator methods is forced into real storage at construction
// time; Assign is the in-place counterpart.
func FromExpr[V constraints.Integer](e expr.Expr[V]) *Sequence[V] {
	n := e.Len()
	st := NewSliceStore[V]()
	st.Reserve(n)
	for i := 0; i < n; i++ {
		st.Append(e.At(i))
	}
	return &Sequence[V]{store: st}
}

// Len returns the number of elements.
func (s *Sequence[V]) Len() int { return s.store.Len() }

// Cap returns the backing store's capacity when it reports one, otherwise
// the current length.
func (s *Sequence[V]) Cap() int {
	if c, ok := s.store.(Capper); ok {
		return c.Cap()
	}
	return s.store.Len()
}

// At returns the element at index i, or the zero value when i is out of
// range. It never grows the sequence. At satisfies the expression engine's
// operand interface, so a sequence can stand directly in an operand slot.
func (s *Sequence[V]) At(i int) V {
	if i < 0 || i >= s.store.Len() {
		var zero V
		return zero
	}
	return s.store.At(i)
}

// Set writes v at index i, growing the sequence to i+1 first (zero-filling
// the new slots) when i is at or beyond the current length. Write implies
// grow. A negative index is a no-op.
func (s *Sequence[V]) Set(i int, v V) *Sequence[V] {
	if i < 0 {
		return s
	}
	if i >= s.store.Len() {
		s.Resize(i + 1)
	}
	s.store.Set(i, v)
	return s
}

// Resize grows or shrinks the sequence to n elements, zero-filling on
// growth.
func (s *Sequence[V]) Resize(n int) *Sequence[V] {
	var zero V
	return s.ResizeFill(n, zero)
}

// ResizeFill grows or shrinks the sequence to n elements, filling new slots
// with fill. Growth pre-reserves capacity when the store supports it.
// Shrinking to a positive size truncates; shrinking to zero replaces the
// store with a fresh empty one.
func (s *Sequence[V]) ResizeFill(n int, fill V) *Sequence[V] {
	switch {
	case n >= s.store.Len():
		if r, ok := s.store.(Reserver); ok {
			r.Reserve(n)
		}
		for s.store.Len() < n {
			s.store.Append(fill)
		}
	case n > 0:
		s.store.Truncate(n)
	default:
		s.store = s.store.Fresh()
	}
	return s
}

// Reserve pre-allocates capacity for at least n elements, when n exceeds the
// current length and the store supports reservation. It never shrinks.
func (s *Sequence[V]) Reserve(n int) *Sequence[V] {
	if n > s.store.Len() {
		if r, ok := s.store.(Reserver); ok {
			r.Reserve(n)
		}
	}
	return s
}

// Push appends v.
func (s *Sequence[V]) Push(v V) *Sequence[V] {
	s.store.Append(v)
	return s
}

// Pop removes the last element. On an empty sequence it is a no-op.
func (s *Sequence[V]) Pop() *Sequence[V] {
	if n := s.store.Len(); n > 0 {
		s.store.Truncate(n - 1)
	}
	return s
}

// Insert splices other's elements in at position at. When at is beyond the
// current length the gap is zero-filled first.
func (s *Sequence[V]) Insert(at int, other *Sequence[V]) *Sequence[V] {
	if at < 0 {
		at = 0
	}
	if other == s {
		other = s.Clone()
	}
	if at > s.store.Len() {
		s.Resize(at)
	}
	m := other.Len()
	if m == 0 {
		return s
	}
	n := s.store.Len()
	var zero V
	for i := 0; i < m; i++ {
		s.store.Append(zero)
	}
	for i := n - 1; i >= at; i-- {
		s.store.Set(i+m, s.store.At(i))
	}
	for i := 0; i < m; i++ {
		s.store.Set(at+i, other.At(i))
	}
	return s
}

// CShift circularly rotates the sequence in place: k > 0 brings the last k
// elements to the front, k < 0 the first |k| elements to the back. The
// amount is taken modulo the length; an empty sequence is a no-op. No values
// are lost.
func (s *Sequence[V]) CShift(k int) *Sequence[V] {
	return s.rotate(k)
}

// Shift rotates like CShift, then zero-fills the |k| slots the rotation
// wrapped around, destroying the wrapped values. Shift(k) followed by
// Shift(-k) does not restore the original contents.
func (s *Sequence[V]) Shift(k int) *Sequence[V] {
	n := s.store.Len()
	if n == 0 {
		return s
	}
	s.rotate(k)
	// The wrapped slot count is |k| mod n, taken from k%n so that k never
	// needs negating (which overflows at the minimum int).
	var zero V
	if k > 0 {
		for i, m := 0, k%n; i < m; i++ {
			s.store.Set(i, zero)
		}
		return s
	}
	for i, m := 0, -(k%n); i < m; i++ {
		s.store.Set(n-1-i, zero)
	}
	return s
}

// Apply replaces every element with f(element).
func (s *Sequence[V]) Apply(f func(V) V) *Sequence[V] {
	for i, n := 0, s.store.Len(); i < n; i++ {
		s.store.Set(i, f(s.store.At(i)))
	}
	return s
}

// ApplyWith combines the sequence elementwise with other, in place. The loop
// runs to the longer of the two lengths; when the receiver is shorter it
// grows to that length plus one extra zero slot first (a growth width
// inherited from the original implementation and kept for compatibility),
// and other's missing tail reads as zero values.
func (s *Sequence[V]) ApplyWith(other *Sequence[V], f func(V, V) V) *Sequence[V] {
	return s.ApplyExpr(other, f)
}

// ApplyExpr is ApplyWith generalized to any expression operand.
func (s *Sequence[V]) ApplyExpr(e expr.Expr[V], f func(V, V) V) *Sequence[V] {
	limit := s.store.Len()
	if r := e.Len(); r > limit {
		limit = r
	}
	if s.store.Len() < limit {
		s.Resize(limit + 1)
	}
	for i := 0; i < limit; i++ {
		s.store.Set(i, f(s.store.At(i), e.At(i)))
	}
	return s
}

// Assign materializes rhs into the sequence in place. It follows the same
// growth rule as the compound assignments (grow to the longer length plus
// one when the receiver is shorter) and leaves any pre-existing tail beyond
// that untouched; unlike FromExpr it reuses existing storage.
func (s *Sequence[V]) Assign(rhs expr.Expr[V]) *Sequence[V] {
	limit := s.growForRHS(rhs)
	for i := 0; i < limit; i++ {
		s.store.Set(i, rhs.At(i))
	}
	return s
}

// assignOp is the shared compound-assignment path: grow to the longer
// length (+1 when growing), then fold rhs in elementwise under op. Writing
// each result directly into the destination slot is what stands in for the
// original's move-optimized operation variants; the observable values are
// identical.
func (s *Sequence[V]) assignOp(op ops.Op, rhs expr.Expr[V]) *Sequence[V] {
	limit := s.growForRHS(rhs)
	for i := 0; i < limit; i++ {
		s.store.Set(i, ops.Combine(op, s.store.At(i), rhs.At(i)))
	}
	return s
}

// growForRHS applies the in-place growth rule against rhs and returns the
// loop limit.
func (s *Sequence[V]) growForRHS(rhs expr.Expr[V]) int {
	limit := s.store.Len()
	if r := rhs.Len(); r > limit {
		limit = r
	}
	if s.store.Len() < limit {
		s.Resize(limit + 1)
	}
	return limit
}

// Lazy operator surface. Each method returns an unevaluated expression node
// whose left operand references the receiver; nothing is computed or copied
// until the node is materialized.

// Add returns the deferred elementwise s + rhs.
func (s *Sequence[V]) Add(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Add, rhs) }

// Sub returns the deferred elementwise s - rhs.
func (s *Sequence[V]) Sub(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Sub, rhs) }

// Mul returns the deferred elementwise s * rhs.
func (s *Sequence[V]) Mul(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Mul, rhs) }

// Div returns the deferred elementwise s / rhs.
func (s *Sequence[V]) Div(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Div, rhs) }

// Mod returns the deferred elementwise s % rhs.
func (s *Sequence[V]) Mod(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Mod, rhs) }

// And returns the deferred elementwise s & rhs.
func (s *Sequence[V]) And(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.And, rhs) }

// Or returns the deferred elementwise s | rhs.
func (s *Sequence[V]) Or(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Or, rhs) }

// Xor returns the deferred elementwise s ^ rhs.
func (s *Sequence[V]) Xor(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Xor, rhs) }

// Shl returns the deferred elementwise s << rhs.
func (s *Sequence[V]) Shl(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Shl, rhs) }

// Shr returns the deferred elementwise s >> rhs.
func (s *Sequence[V]) Shr(rhs expr.Expr[V]) *expr.Node[V] { return expr.NewNode[V](s, ops.Shr, rhs) }

// Lazy applies a caller-supplied combine lazily, the functional counterpart
// of the operator methods.
func (s *Sequence[V]) Lazy(rhs expr.Expr[V], f func(V, V) V) *expr.Func[V] {
	return expr.NewFunc[V](s, rhs, f)
}

// Pick returns the deferred pick of s positions selected by idx: index i of
// the result is s at position idx[i] when that is nonzero, else zero.
func (s *Sequence[V]) Pick(idx expr.Expr[V]) *expr.Pick[V] {
	return expr.NewPick[V](s, idx)
}

// In-place operator surface. Each folds rhs into the receiver under the
// matching operation with the shared growth rule.

// AddAssign is s += rhs, elementwise in place.
func (s *Sequence[V]) AddAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Add, rhs) }

// SubAssign is s -= rhs, elementwise in place.
func (s *Sequence[V]) SubAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Sub, rhs) }

// MulAssign is s *= rhs, elementwise in place.
func (s *Sequence[V]) MulAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Mul, rhs) }

// DivAssign is s /= rhs, elementwise in place (zero divisors yield 0).
func (s *Sequence[V]) DivAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Div, rhs) }

// ModAssign is s %= rhs, elementwise in place (zero divisors yield 0).
func (s *Sequence[V]) ModAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Mod, rhs) }

// AndAssign is s &= rhs, elementwise in place.
func (s *Sequence[V]) AndAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.And, rhs) }

// OrAssign is s |= rhs, elementwise in place.
func (s *Sequence[V]) OrAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Or, rhs) }

// XorAssign is s ^= rhs, elementwise in place.
func (s *Sequence[V]) XorAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Xor, rhs) }

// ShlAssign is s <<= rhs, elementwise in place.
func (s *Sequence[V]) ShlAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Shl, rhs) }

// ShrAssign is s >>= rhs, elementwise in place.
func (s *Sequence[V]) ShrAssign(rhs expr.Expr[V]) *Sequence[V] { return s.assignOp(ops.Shr, rhs) }

// Clone returns a deep copy over a fresh store of the same kind.
func (s *Sequence[V]) Clone() *Sequence[V] {
	st := s.store.Fresh()
	if r, ok := st.(Reserver); ok {
		r.Reserve(s.store.Len())
	}
	for i, n := 0, s.store.Len(); i < n; i++ {
		st.Append(s.store.At(i))
	}
	return &Sequence[V]{store: st}
}

// Pos returns a copy of the sequence (elementwise unary plus).
func (s *Sequence[V]) Pos() *Sequence[V] {
	return s.Clone()
}

// Neg returns a copy with every element negated. The receiver is untouched.
func (s *Sequence[V]) Neg() *Sequence[V] {
	return s.Clone().Apply(func(v V) V { return -v })
}

// Not returns a copy with every element bitwise-complemented. The receiver
// is untouched.
func (s *Sequence[V]) Not() *Sequence[V] {
	return s.Clone().Apply(func(v V) V { return ^v })
}

// Cmp orders two sequences by length alone: -1 when s is shorter than
// other, +1 when longer, 0 when the lengths match. Element values are not
// consulted.
func (s *Sequence[V]) Cmp(other *Sequence[V]) int {
	switch a, b := s.Len(), other.Len(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether the two sequences compare equal under Cmp, which
// means equal lengths; see EqualValues for element comparison.
func (s *Sequence[V]) Equal(other *Sequence[V]) bool {
	return s.Cmp(other) == 0
}

// EqualValues reports whether the two sequences have the same length and
// identical elements at every index.
func (s *Sequence[V]) EqualValues(other *Sequence[V]) bool {
	n := s.Len()
	if n != other.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if s.store.At(i) != other.store.At(i) {
			return false
		}
	}
	return true
}

// Any reports whether any element is nonzero.
func (s *Sequence[V]) Any() bool {
	for i, n := 0, s.store.Len(); i < n; i++ {
		if s.store.At(i) != 0 {
			return true
		}
	}
	return false
}

// ToSlice returns the elements as a new slice.
func (s *Sequence[V]) ToSlice() []V {
	out := make([]V, s.store.Len())
	for i := range out {
		out[i] = s.store.At(i)
	}
	return out
}

// String renders the sequence as a comma-separated, parenthesis-delimited
// list: (a,b,c). An empty sequence renders as the empty string.
func (s *Sequence[V]) String() string {
	n := s.store.Len()
	if n == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", s.store.At(i))
	}
	b.WriteByte(')')
	return b.String()
}

// rotate rotates the last (k mod len) elements to the front, with the
// modulo normalized into [0, len) so negative k rotates the other way.
// Normalizing the remainder instead of negating k keeps the minimum int
// value safe.
func (s *Sequence[V]) rotate(k int) *Sequence[V] {
	n := s.store.Len()
	if n == 0 {
		return s
	}
	m := k % n
	if m < 0 {
		m += n
	}
	if m == 0 {
		return s
	}
	s.reverse(0, n)
	s.reverse(0, m)
	s.reverse(m, n)
	return s
}

// reverse flips the elements in [i, j).
func (s *Sequence[V]) reverse(i, j int) {
	for j--; i < j; i, j = i+1, j-1 {
		a, b := s.store.At(i), s.store.At(j)
		s.store.Set(i, b)
		s.store.Set(j, a)
	}
}
