package geom

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

const delta = 1e-14

func assertQEquals(t *testing.T, expected, actual Quaternion, tolerance float64) {
	t.Helper()
	if !actual.ApproxEqual(expected, tolerance) {
		t.Fatalf("expected:<%s> but was:<%s>", expected, actual)
	}
}

func TestQuaternionBasisIdentities(t *testing.T) {
	minusOne := NewQuaternion(-1, 0, 0, 0)
	assertQEquals(t, minusOne, I.Multiply(I), delta)
	assertQEquals(t, minusOne, J.Multiply(J), delta)
	assertQEquals(t, minusOne, K.Multiply(K), delta)

	assertQEquals(t, NewQuaternion(0, 0, 0, 1), I.Multiply(J), delta)
	assertQEquals(t, NewQuaternion(0, 1, 0, 0), J.Multiply(K), delta)
	assertQEquals(t, NewQuaternion(0, 0, 1, 0), K.Multiply(I), delta)

	assertQEquals(t, NewQuaternion(0, 0, 0, -1), J.Multiply(I), delta)
	assertQEquals(t, NewQuaternion(0, -1, 0, 0), K.Multiply(J), delta)
	assertQEquals(t, NewQuaternion(0, 0, -1, 0), I.Multiply(K), delta)
}

func TestRotationQuaternion(t *testing.T) {
	q, err := RotationQuaternion(180, NewVector(1, 0, 0))
	if err != nil {
		t.Fatalf("rotation quaternion: %v", err)
	}
	assertQEquals(t, I, q, delta)

	// the axis is normalised before use
	q, err = RotationQuaternion(180, NewVector(5, 0, 0))
	if err != nil {
		t.Fatalf("rotation quaternion: %v", err)
	}
	assertQEquals(t, I, q, delta)

	if _, err := RotationQuaternion(90, Zero); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero for zero axis, got %v", err)
	}
}

func TestQuaternionRotate(t *testing.T) {
	q, _ := RotationQuaternion(90, NewVector(0, 1, 0))
	got := q.Rotate(NewVector(1, 0, 0))
	if !got.ApproxEqual(NewVector(0, 0, -1), 1e-12) {
		t.Fatalf("rotate (1,0,0) by 90 around Y: got %s", got)
	}
	viaMatrix := NewAffineTransform(q.Mat4()).Apply(NewVector(1, 2, 3))
	if !viaMatrix.ApproxEqual(q.Rotate(NewVector(1, 2, 3)), 1e-12) {
		t.Fatalf("matrix and quaternion rotation disagree: %s vs %s", viaMatrix, q.Rotate(NewVector(1, 2, 3)))
	}
}

func TestQuaternionInverse(t *testing.T) {
	q := NewQuaternion(1, 2, 3, 4)
	inv, err := q.Inverse()
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	assertQEquals(t, QuaternionOne, q.Multiply(inv), 1e-12)
	assertQEquals(t, QuaternionOne, inv.Multiply(q), 1e-12)

	if _, err := (Quaternion{}).Inverse(); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := q.Divide(Quaternion{}); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero from Divide, got %v", err)
	}
	if _, err := q.DivideScalar(0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero from DivideScalar, got %v", err)
	}
}

func TestQuaternionDivide(t *testing.T) {
	a := NewQuaternion(1, -2, 0.5, 3)
	b := NewQuaternion(0.25, 1, 2, -1)
	quotient, err := a.Divide(b)
	if err != nil {
		t.Fatalf("divide: %v", err)
	}
	assertQEquals(t, a, quotient.Multiply(b), 1e-12)
}

func TestQuaternionLogDegenerateCases(t *testing.T) {
	l := Quaternion{}.Log()
	if !math.IsInf(l.Real, -1) || l.Imaginary != Zero {
		t.Fatalf("log(0) = %s, want -Inf real part", l)
	}

	l = NewQuaternion(math.E, 0, 0, 0).Log()
	assertQEquals(t, NewQuaternion(1, 0, 0, 0), l, 1e-15)
}

func TestQuaternionExpLogRoundTrip(t *testing.T) {
	cases := []Quaternion{
		NewQuaternion(1, 2, 3, 4),
		NewQuaternion(0.5, -0.25, 0, 0.1),
		NewQuaternion(2, 0, 0, 0),
	}
	for _, q := range cases {
		assertQEquals(t, q, q.Log().Exp(), 1e-12)
	}
	assertQEquals(t, NewQuaternion(math.E, 0, 0, 0), QuaternionOne.Exp(), 1e-15)
}

func TestQuaternionPow(t *testing.T) {
	q := NewQuaternion(1, 2, 3, 4)
	assertQEquals(t, q.Multiply(q), q.Pow(2), 1e-12)
	assertQEquals(t, QuaternionOne, q.Pow(0), 1e-12)
}

func TestQuaternionSlerpEndpoints(t *testing.T) {
	from, _ := RotationQuaternion(10, NewVector(0, 1, 0))
	to, _ := RotationQuaternion(70, NewVector(0, 1, 0))

	start, err := from.Slerp(to, 0)
	if err != nil {
		t.Fatalf("slerp: %v", err)
	}
	assertQEquals(t, from, start, 1e-12)

	end, _ := from.Slerp(to, 1)
	assertQEquals(t, to, end, 1e-12)

	mid, _ := from.Slerp(to, 0.5)
	want, _ := RotationQuaternion(40, NewVector(0, 1, 0))
	assertQEquals(t, want, mid, 1e-12)

	if _, err := (Quaternion{}).Slerp(to, 0.5); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestQuaternionString(t *testing.T) {
	cases := []struct {
		q    Quaternion
		want string
	}{
		{Quaternion{}, "0"},
		{I, "i"},
		{J.Scale(-1), "-j"},
		{NewQuaternion(1, 2, -3, 4), "1 + 2i - 3j + 4k"},
		{NewQuaternion(0, -2, 1, 0), "-2i + j"},
		{NewQuaternion(1, 0, 0, -1), "1 - k"},
	}
	for _, c := range cases {
		if got := c.q.String(); got != c.want {
			t.Fatalf("String()=%q want %q", got, c.want)
		}
	}
}

func TestRotationQuaternionEuler(t *testing.T) {
	yawOnly := RotationQuaternionEuler(0, 90, 0)
	want, _ := RotationQuaternion(90, NewVector(0, 1, 0))
	assertQEquals(t, want, yawOnly, 1e-12)
}
