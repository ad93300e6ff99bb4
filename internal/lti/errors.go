package lti

import "errors"

var (
	// ErrZeroDenominator rejects transfer functions whose denominator is
	// the zero polynomial
	ErrZeroDenominator = errors.New("lti: denominator is the zero polynomial")

	// ErrComplexConjugateMismatch reports a root set that is not closed
	// under complex conjugation
	ErrComplexConjugateMismatch = errors.New("lti: complex roots must appear in conjugate pairs")

	// ErrDegenerateFeedback reports a feedback reduction that cancelled
	// the denominator entirely
	ErrDegenerateFeedback = errors.New("lti: feedback reduction produced a zero denominator")

	// ErrNegativeDelay rejects dead times below zero
	ErrNegativeDelay = errors.New("lti: delay must be non-negative")

	// ErrRootFinding reports a failed companion-matrix eigendecomposition
	ErrRootFinding = errors.New("lti: companion matrix eigendecomposition failed")
)
