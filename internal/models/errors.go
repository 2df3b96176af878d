package models

import "fmt"

// ValidationError reports an input that violates a constraint. Field names
// the offending input so front ends can point the user at it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
