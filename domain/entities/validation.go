package entities

import "strings"

// ValidationResult represents the outcome of an interface description check.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a specific validation error.
type ValidationError struct {
	// Field is the JSON pointer of the offending value, "" for the document root.
	Field   string
	Message string
}

// String joins every error as "field: message".
func (r *ValidationResult) String() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		field := e.Field
		if field == "" {
			field = "/"
		}
		parts = append(parts, field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}
