package domain

import "strings"

// FieldError describes a single rejected input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload fails schema rules. Fields is
// never empty and preserves the order in which the fields were declared.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Path+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
