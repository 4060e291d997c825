package alphabet

import "fmt"

// InvalidBaseError is returned when a sequence contains a symbol that is
// neither an alphabet base nor the extension symbol.
type InvalidBaseError struct {
	Position int
	Found    rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsValidationError() {}
