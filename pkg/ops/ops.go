// Package ops defines the closed catalog of binary operations used by the
// lazy expression engine.
//
// Each operation is identified by an Op tag and applied through the pure
// Combine function. Operations never fail: every would-be fault is mapped to
// a defined default result instead (division or modulo by zero yields 0, a
// negative shift count yields 0). The evaluation pipeline therefore carries
// no error channel.
package ops

import "golang.org/x/exp/constraints"

// Op identifies a binary operation. Ops are stateless tags; the behavior
// they select lives entirely in Combine.
type Op uint8

const (
	Add Op = iota // a + b
	Sub           // a - b
	Mul           // a * b
	Div           // a / b, 0 when b == 0
	Mod           // a % b, 0 when b == 0
	And           // a & b
	Or            // a | b
	Xor           // a ^ b
	Shl           // a << b, 0 when b < 0
	Shr           // a >> b, 0 when b < 0

	numOps
)

// Valid reports whether op is one of the defined operation tags.
func (op Op) Valid() bool {
	return op < numOps
}

// String returns the operator symbol for op.
func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case And:
		return "&"
	case Or:
		return "|"
	case Xor:
		return "^"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	default:
		return "(invalid)"
	}
}

// Combine applies op to a and b and returns the result.
//
// Combine is a pure function of its inputs: no side effects, no state, and
// calling it twice with the same arguments always produces the same value.
// Division and modulo treat a zero divisor as a defined case returning 0.
// Shifts treat a negative count as a defined case returning 0; counts at or
// beyond the bit width of V follow Go's shift semantics (0 for <<, 0 or
// sign-fill for >>).
//
// An invalid op tag returns 0.
func Combine[V constraints.Integer](op Op, a, b V) V {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		if b == 0 {
			return 0
		}
		return a / b
	case Mod:
		if b == 0 {
			return 0
		}
		return a % b
	case And:
		return a & b
	case Or:
		return a | b
	case Xor:
		return a ^ b
	case Shl:
		if negative(b) {
			return 0
		}
		return a << uint64(b)
	case Shr:
		if negative(b) {
			return 0
		}
		return a >> uint64(b)
	default:
		return 0
	}
}

// negative reports whether v is below zero. For unsigned instantiations the
// comparison is always false and compiles away.
func negative[V constraints.Integer](v V) bool {
	return v < 0
}
