package domain

import "strings"

// FieldViolation describes a single invalid field in a request.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field violations from input validation up to the
// API boundary, where it renders as a 400 with the violation list attached.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// MissingParamError marks a required or garbled query parameter. Distinct from
// ValidationError because it maps to a different error label.
type MissingParamError struct {
	Param   string
	Message string
}

func (e *MissingParamError) Error() string {
	return e.Param + ": " + e.Message
}
