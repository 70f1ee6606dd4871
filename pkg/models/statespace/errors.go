package statespace

import "errors"

var (
	// ErrInsufficientData marks a (state, forecast date) pair with
	// fewer polls than the configured minimum. Callers skip the pair.
	ErrInsufficientData = errors.New("not enough polls")

	// ErrInvalidParameter marks malformed input from the data loading
	// side. It aborts the single forecast call it occurred in.
	ErrInvalidParameter = errors.New("invalid parameter")
)
