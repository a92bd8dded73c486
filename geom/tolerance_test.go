package geom

import "testing"

func TestToleranceZeroAndSign(t *testing.T) {
	tol := NewTolerance(1e-6)

	if !tol.Zero(5e-7) {
		t.Errorf("expected 5e-7 to be treated as zero within epsilon 1e-6")
	}
	if tol.Zero(1e-3) {
		t.Errorf("expected 1e-3 to not be treated as zero")
	}

	cases := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{5e-7, 0},
		{1.0, 1},
		{-1.0, -1},
	}
	for _, c := range cases {
		if got := tol.Sign(c.v); got != c.want {
			t.Errorf("Sign(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestNewToleranceFallsBackOnNonPositiveEpsilon(t *testing.T) {
	tol := NewTolerance(-1)
	if tol.Epsilon != DefaultTolerance.Epsilon {
		t.Errorf("expected fallback to default epsilon, got %v", tol.Epsilon)
	}
}

func TestToleranceLessEqualGreaterEqual(t *testing.T) {
	tol := NewTolerance(1e-9)
	if !tol.LessEqual(1.0, 1.0) {
		t.Errorf("expected 1.0 <= 1.0")
	}
	if !tol.GreaterEqual(1.0, 1.0) {
		t.Errorf("expected 1.0 >= 1.0")
	}
	if tol.LessEqual(1.1, 1.0) {
		t.Errorf("expected 1.1 > 1.0 to fail LessEqual")
	}
}
