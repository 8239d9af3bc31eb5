package seqcontainer_test

import (
	"context"
	"testing"

	"github.com/maxjmartin/seqcontainer"
)

func checkResult(t *testing.T, got *seqcontainer.Sequence, want ...int64) {
	t.Helper()
	s := got.ToSlice()
	if len(s) != len(want) {
		t.Fatalf("got %v, want %v", s, want)
	}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("got %v, want %v", s, want)
		}
	}
}

func TestEval(t *testing.T) {
	result, err := seqcontainer.Eval("[1,2,3] + [10,20]", nil)
	if err != nil {
		t.Fatal(err)
	}
	checkResult(t, result, 11, 22, 3)
}

func TestEvalWithVars(t *testing.T) {
	result, err := seqcontainer.Eval("$a * $a", seqcontainer.Vars{
		"a": seqcontainer.New(1, 2, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	checkResult(t, result, 1, 4, 9)
}

func TestCompileAndEvalExpr(t *testing.T) {
	expr, err := seqcontainer.Compile("$a + 1")
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for _, vals := range [][]int64{{1, 2}, {10, 20, 30}} {
		result, err := seqcontainer.EvalExpr(ctx, expr, seqcontainer.Vars{
			"a": seqcontainer.New(vals...),
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.Len() != len(vals) {
			t.Errorf("Len() = %d, want %d", result.Len(), len(vals))
		}
	}
}

func TestMustCompile(t *testing.T) {
	expr := seqcontainer.MustCompile("[1,2,3]")
	if expr.Source() != "[1,2,3]" {
		t.Errorf("Source() = %q", expr.Source())
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCompile on invalid input should panic")
		}
	}()
	seqcontainer.MustCompile("1 +")
}

func TestMaterialize(t *testing.T) {
	a := seqcontainer.New(1, 2, 3)
	b := seqcontainer.New(4, 5, 6)
	checkResult(t, seqcontainer.Materialize(a.Add(b).Mul(a)), 5, 14, 27)
}

func TestEvalError(t *testing.T) {
	if _, err := seqcontainer.Eval("$missing", nil); err == nil {
		t.Error("expected an undefined-variable error")
	}
	if _, err := seqcontainer.Eval("1 +", nil); err == nil {
		t.Error("expected a parse error")
	}
}

func TestVersion(t *testing.T) {
	if seqcontainer.Version() == "" {
		t.Error("Version() should not be empty")
	}
}
