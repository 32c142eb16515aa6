package spots

// ValidationError carries a per-field breakdown that handlers surface as the
// 422 error body.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string, details map[string]string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func fieldError(field, problem string) *ValidationError {
	return newValidationError("invalid "+field, map[string]string{field: problem})
}
