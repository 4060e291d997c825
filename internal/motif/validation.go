package motif

import "fmt"

// InvalidMatrixError is returned when a probability matrix has the wrong
// shape or non-finite cells.
type InvalidMatrixError struct {
	Reason string
}

func (e *InvalidMatrixError) Error() string {
	return "invalid matrix: " + e.Reason
}

func (e *InvalidMatrixError) IsValidationError() {}

// AmbiguousColumnError is returned by Consensus when a column has no
// unique maximum and force is not set.
type AmbiguousColumnError struct {
	Column int
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("ambiguous consensus at column %d", e.Column)
}

func (e *AmbiguousColumnError) IsValidationError() {}

// InvalidOptionError is returned when an options struct carries a value
// outside its legal range.
type InvalidOptionError struct {
	Option string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}

func (e *InvalidOptionError) IsValidationError() {}
