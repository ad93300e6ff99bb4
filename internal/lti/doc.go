// Package lti implements rational transfer functions of continuous
// linear time-invariant systems and the algebra used to compose them
// into closed loops.
//
// Core types:
//   - [Polynomial]: real coefficients in the Laplace variable s, highest
//     degree first
//   - [TransferFunction]: a ratio of two polynomials
//
// Composition:
//   - [Series]: cascade of two blocks by coefficient convolution
//   - [Feedback]: closed-loop reduction by cross-multiplication
//   - [FromPolesZeros]: construction from explicit root sets
//   - [PadeDelay]: first-order rational approximation of a dead time
//
// Composition never cancels matching pole/zero pairs; downstream pole
// analysis depends on seeing the full, unreduced root set. Cancellation
// is available only through the explicit [TransferFunction.Reduce] call.
//
// Roots are computed as eigenvalues of the companion matrix using
// gonum's dense eigendecomposition.
package lti
