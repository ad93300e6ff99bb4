package lti

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestPolynomialMul(t *testing.T) {
	tests := []struct {
		name string
		p, q Polynomial
		want Polynomial
	}{
		{"linear times linear", Polynomial{1, 1}, Polynomial{1, 2}, Polynomial{1, 3, 2}},
		{"gain times quadratic", Polynomial{2}, Polynomial{1, 0, 4}, Polynomial{2, 0, 8}},
		{"integrator chain", Polynomial{1, 0}, Polynomial{1, 0}, Polynomial{1, 0, 0}},
		{"zero times anything", Polynomial{0}, Polynomial{3, 1}, Polynomial{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Mul(tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("coefficient %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPolynomialAdd(t *testing.T) {
	tests := []struct {
		name string
		p, q Polynomial
		want Polynomial
	}{
		{"same degree", Polynomial{1, 2}, Polynomial{3, 4}, Polynomial{4, 6}},
		{"degree mismatch aligns at constant", Polynomial{1, 0, 0}, Polynomial{1, 1}, Polynomial{1, 1, 1}},
		{"cancellation trims leading zero", Polynomial{1, 2}, Polynomial{-1, 0}, Polynomial{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Add(tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("coefficient %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPolynomialDegree(t *testing.T) {
	tests := []struct {
		name string
		p    Polynomial
		want int
	}{
		{"quadratic", Polynomial{1, 0, 4}, 2},
		{"leading zeros ignored", Polynomial{0, 0, 5, 1}, 1},
		{"constant", Polynomial{7}, 0},
		{"zero polynomial", Polynomial{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Degree(); got != tt.want {
				t.Errorf("expected degree %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPolynomialEval(t *testing.T) {
	p := Polynomial{1, 3, 2} // s^2 + 3s + 2

	got := p.Eval(complex(2, 0))
	if math.Abs(real(got)-12) > 1e-12 || math.Abs(imag(got)) > 1e-12 {
		t.Errorf("expected 12, got %v", got)
	}

	got = p.Eval(complex(0, 1)) // (i)^2 + 3i + 2 = 1 + 3i
	if math.Abs(real(got)-1) > 1e-12 || math.Abs(imag(got)-3) > 1e-12 {
		t.Errorf("expected 1+3i, got %v", got)
	}
}

func TestFromRoots(t *testing.T) {
	t.Run("real roots", func(t *testing.T) {
		p, err := FromRoots([]complex128{-1, -2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Polynomial{1, 3, 2}
		for i := range want {
			if math.Abs(p[i]-want[i]) > 1e-12 {
				t.Errorf("coefficient %d: expected %v, got %v", i, want[i], p[i])
			}
		}
	})

	t.Run("conjugate pair", func(t *testing.T) {
		p, err := FromRoots([]complex128{complex(-0.5, 1), complex(-0.5, -1)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Polynomial{1, 1, 1.25}
		for i := range want {
			if math.Abs(p[i]-want[i]) > 1e-12 {
				t.Errorf("coefficient %d: expected %v, got %v", i, want[i], p[i])
			}
		}
	})

	t.Run("missing conjugate fails", func(t *testing.T) {
		_, err := FromRoots([]complex128{complex(-0.5, 1), -2})
		if !errors.Is(err, ErrComplexConjugateMismatch) {
			t.Errorf("expected ErrComplexConjugateMismatch, got %v", err)
		}
	})

	t.Run("empty is unity", func(t *testing.T) {
		p, err := FromRoots(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(p) != 1 || p[0] != 1 {
			t.Errorf("expected [1], got %v", p)
		}
	})
}

func sortRoots(r []complex128) {
	sort.Slice(r, func(i, j int) bool {
		if real(r[i]) != real(r[j]) {
			return real(r[i]) < real(r[j])
		}
		return imag(r[i]) < imag(r[j])
	})
}

func TestPolynomialRoots(t *testing.T) {
	t.Run("distinct real roots", func(t *testing.T) {
		roots, err := Polynomial{1, 3, 2}.Roots()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sortRoots(roots)
		want := []complex128{-2, -1}
		for i := range want {
			if math.Abs(real(roots[i])-real(want[i])) > 1e-9 || math.Abs(imag(roots[i])) > 1e-9 {
				t.Errorf("root %d: expected %v, got %v", i, want[i], roots[i])
			}
		}
	})

	t.Run("complex pair", func(t *testing.T) {
		roots, err := Polynomial{1, 1, 1.25}.Roots()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sortRoots(roots)
		for i, want := range []complex128{complex(-0.5, -1), complex(-0.5, 1)} {
			if math.Abs(real(roots[i])-real(want)) > 1e-9 || math.Abs(imag(roots[i])-imag(want)) > 1e-9 {
				t.Errorf("root %d: expected %v, got %v", i, want, roots[i])
			}
		}
	})

	t.Run("non-monic cubic", func(t *testing.T) {
		roots, err := Polynomial{2, 12, 22, 12}.Roots() // 2(s+1)(s+2)(s+3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sortRoots(roots)
		want := []complex128{-3, -2, -1}
		for i := range want {
			if math.Abs(real(roots[i])-real(want[i])) > 1e-9 {
				t.Errorf("root %d: expected %v, got %v", i, want[i], roots[i])
			}
		}
	})

	t.Run("constant has no roots", func(t *testing.T) {
		roots, err := Polynomial{5}.Roots()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(roots) != 0 {
			t.Errorf("expected no roots, got %v", roots)
		}
	})
}

func TestPolynomialString(t *testing.T) {
	tests := []struct {
		name string
		p    Polynomial
		want string
	}{
		{"quadratic", Polynomial{1, 0.6, 1}, "s^2 + 0.6s + 1"},
		{"negative term", Polynomial{1, -2, 0.5}, "s^2 - 2s + 0.5"},
		{"integrator", Polynomial{1, 0}, "s"},
		{"zero", Polynomial{0}, "0"},
		{"constant", Polynomial{2.5}, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
