package ops

import "testing"

func TestCombineArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		a, b int64
		want int64
	}{
		{"add", Add, 2, 3, 5},
		{"add negative", Add, 2, -3, -1},
		{"sub", Sub, 2, 3, -1},
		{"mul", Mul, 4, 5, 20},
		{"div", Div, 20, 4, 5},
		{"div truncates", Div, 7, 2, 3},
		{"div negative truncates toward zero", Div, -7, 2, -3},
		{"mod", Mod, 7, 3, 1},
		{"mod negative dividend", Mod, -7, 3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.op, tt.a, tt.b); got != tt.want {
				t.Errorf("Combine(%v, %d, %d) = %d, want %d", tt.op, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCombineBitwise(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		a, b int64
		want int64
	}{
		{"and", And, 0b1100, 0b1010, 0b1000},
		{"or", Or, 0b1100, 0b1010, 0b1110},
		{"xor", Xor, 0b1100, 0b1010, 0b0110},
		{"shl", Shl, 1, 4, 16},
		{"shr", Shr, 16, 4, 1},
		{"shr arithmetic", Shr, -16, 2, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.op, tt.a, tt.b); got != tt.want {
				t.Errorf("Combine(%v, %d, %d) = %d, want %d", tt.op, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Arithmetic never fails: zero divisors and negative shift counts yield 0
// instead of panicking.
func TestCombineNeverFails(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		a, b int64
	}{
		{"div by zero", Div, 42, 0},
		{"mod by zero", Mod, 42, 0},
		{"shl negative count", Shl, 42, -1},
		{"shr negative count", Shr, 42, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.op, tt.a, tt.b); got != 0 {
				t.Errorf("Combine(%v, %d, %d) = %d, want 0", tt.op, tt.a, tt.b, got)
			}
		})
	}
}

func TestCombineUnsigned(t *testing.T) {
	if got := Combine[uint16](Shr, 0x8000, 8); got != 0x80 {
		t.Errorf("Combine(Shr, 0x8000, 8) = %#x, want 0x80", got)
	}
	if got := Combine[uint8](Sub, 0, 1); got != 0xff {
		t.Errorf("Combine(Sub, 0, 1) = %#x, want 0xff", got)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Add, "+"},
		{Sub, "-"},
		{Mul, "*"},
		{Div, "/"},
		{Mod, "%"},
		{And, "&"},
		{Or, "|"},
		{Xor, "^"},
		{Shl, "<<"},
		{Shr, ">>"},
		{Op(200), "(invalid)"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOpValid(t *testing.T) {
	for op := Add; op <= Shr; op++ {
		if !op.Valid() {
			t.Errorf("Op(%d) should be valid", op)
		}
	}
	if numOps.Valid() {
		t.Error("numOps should not be valid")
	}
	if Op(200).Valid() {
		t.Error("Op(200) should not be valid")
	}
}
