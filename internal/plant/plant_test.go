package plant

import (
	"errors"
	"math"
	"testing"
)

func TestFirstOrderCoefficients(t *testing.T) {
	tf, err := FirstOrder(2, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tf.Num) != 1 || tf.Num[0] != 2 {
		t.Errorf("expected numerator [2], got %v", tf.Num)
	}
	if len(tf.Den) != 2 || tf.Den[0] != 0.5 || tf.Den[1] != 1 {
		t.Errorf("expected denominator [0.5 1], got %v", tf.Den)
	}
}

func TestFirstOrderRejectsNonPositiveTau(t *testing.T) {
	for _, tau := range []float64{0, -1} {
		if _, err := FirstOrder(1, tau); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("tau=%v: expected ErrInvalidParam, got %v", tau, err)
		}
	}
}

func TestSecondOrderDCGain(t *testing.T) {
	tf, err := SecondOrder(2, 3, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tf.DCGain(); math.Abs(got-2) > 1e-12 {
		t.Errorf("expected DC gain 2, got %v", got)
	}
}

func TestSecondOrderRejectsBadParams(t *testing.T) {
	if _, err := SecondOrder(1, 0, 0.5); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("wn=0: expected ErrInvalidParam, got %v", err)
	}
	if _, err := SecondOrder(1, 1, -0.1); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("zeta<0: expected ErrInvalidParam, got %v", err)
	}
}

func TestDelayedCombinesLagAndPade(t *testing.T) {
	tf, err := Delayed(1, 1, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (1 - 0.25s) / ((s+1)(0.25s + 1))
	zeros, err := tf.Zeros()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zeros) != 1 || math.Abs(real(zeros[0])-4) > 1e-9 {
		t.Errorf("expected right-half-plane zero at +4, got %v", zeros)
	}
	poles, err := tf.Poles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poles) != 2 {
		t.Errorf("expected 2 poles, got %v", poles)
	}
}

func TestCatalogBuildsEverySystem(t *testing.T) {
	for _, s := range Systems() {
		t.Run(s.String(), func(t *testing.T) {
			tf, err := s.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tf.Den.IsZero() {
				t.Error("catalog plant has zero denominator")
			}
			if s.Description() == "unknown" {
				t.Error("catalog plant has no description")
			}
		})
	}
}

func TestHighOrderPoleSet(t *testing.T) {
	tf, err := HighOrder.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tf.Den.Degree(); got != 5 {
		t.Errorf("expected denominator degree 5, got %d", got)
	}
	if got := tf.Num.Degree(); got != 0 {
		t.Errorf("expected constant numerator, got %v", tf.Num)
	}
}

func TestParseSystemRoundTrip(t *testing.T) {
	for _, s := range Systems() {
		got, err := ParseSystem(s.String())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("expected %v, got %v", s, got)
		}
	}
	if _, err := ParseSystem("warp_drive"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestCatalogPlantsAreProper(t *testing.T) {
	for _, s := range Systems() {
		tf, err := s.Build()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
		if tf.Num.Degree() > tf.Den.Degree() {
			t.Errorf("%s: improper plant %v", s, tf)
		}
	}
}
