package lti

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// coeffTol is the magnitude below which a leading coefficient is
// considered zero when trimming
const coeffTol = 1e-12

// conjTol bounds the residual imaginary part tolerated when a root
// product is folded back to real coefficients
const conjTol = 1e-8

// Polynomial holds real coefficients ordered from the highest power of s
// down to the constant term, so Polynomial{1, 3, 2} is s^2 + 3s + 2.
type Polynomial []float64

// NewPolynomial copies the given coefficients and trims leading zeros
func NewPolynomial(coeffs ...float64) Polynomial {
	if len(coeffs) == 0 {
		return Polynomial{0}
	}
	p := make(Polynomial, len(coeffs))
	copy(p, coeffs)
	return p.Trim()
}

// Trim drops leading near-zero coefficients, keeping at least one.
// The result shares the receiver's backing array.
func (p Polynomial) Trim() Polynomial {
	i := 0
	for i < len(p)-1 && math.Abs(p[i]) <= coeffTol {
		i++
	}
	return p[i:]
}

// Degree returns the polynomial degree after trimming
func (p Polynomial) Degree() int {
	return len(p.Trim()) - 1
}

// IsZero reports whether every coefficient is negligible
func (p Polynomial) IsZero() bool {
	for _, c := range p {
		if math.Abs(c) > coeffTol {
			return false
		}
	}
	return true
}

// Add returns p + q, aligning coefficients at the constant term
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	if n == 0 {
		return Polynomial{0}
	}
	out := make(Polynomial, n)
	for i, c := range p {
		out[n-len(p)+i] += c
	}
	for i, c := range q {
		out[n-len(q)+i] += c
	}
	return out.Trim()
}

// Mul returns the product p·q by coefficient convolution
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{0}
	}
	out := make(Polynomial, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out.Trim()
}

// Scale returns k·p
func (p Polynomial) Scale(k float64) Polynomial {
	out := make(Polynomial, len(p))
	for i, c := range p {
		out[i] = k * c
	}
	return out.Trim()
}

// Eval evaluates the polynomial at a complex point by Horner's rule
func (p Polynomial) Eval(s complex128) complex128 {
	var acc complex128
	for _, c := range p {
		acc = acc*s + complex(c, 0)
	}
	return acc
}

// FromRoots expands the monic product of (s - r) over the given roots.
// The roots must be closed under conjugation so that the expanded
// coefficients are real; otherwise ErrComplexConjugateMismatch is
// returned. An empty root list yields the constant 1.
func FromRoots(roots []complex128) (Polynomial, error) {
	acc := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(acc)+1)
		for i, c := range acc {
			next[i] += c
			next[i+1] -= c * r
		}
		acc = next
	}
	out := make(Polynomial, len(acc))
	for i, c := range acc {
		limit := conjTol * math.Max(1, math.Abs(real(c)))
		if math.Abs(imag(c)) > limit {
			return nil, fmt.Errorf("lti: coefficient of s^%d has imaginary part %.3g: %w",
				len(acc)-1-i, imag(c), ErrComplexConjugateMismatch)
		}
		out[i] = real(c)
	}
	return out.Trim(), nil
}

// Roots returns the polynomial roots as eigenvalues of the companion
// matrix. Constant polynomials have no roots.
func (p Polynomial) Roots() ([]complex128, error) {
	q := p.Trim()
	n := len(q) - 1
	if n < 1 || q.IsZero() {
		return nil, nil
	}
	c := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		c.Set(0, j, -q[j+1]/q[0])
	}
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, fmt.Errorf("lti: degree %d polynomial: %w", n, ErrRootFinding)
	}
	return eig.Values(nil), nil
}

// String renders the polynomial in conventional form, e.g. "s^2 + 0.6s + 1"
func (p Polynomial) String() string {
	q := p.Trim()
	if q.IsZero() {
		return "0"
	}
	deg := len(q) - 1
	var sb strings.Builder
	first := true
	for i, c := range q {
		if c == 0 && len(q) > 1 {
			continue
		}
		switch {
		case first && c < 0:
			sb.WriteString("-")
		case !first && c < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		pow := deg - i
		if mag := math.Abs(c); pow == 0 || mag != 1 {
			sb.WriteString(strconv.FormatFloat(mag, 'g', 6, 64))
		}
		switch {
		case pow == 1:
			sb.WriteString("s")
		case pow > 1:
			sb.WriteString("s^" + strconv.Itoa(pow))
		}
		first = false
	}
	return sb.String()
}
