package service

// ValidationError reports a missing required text field. No side effects
// have occurred when it is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}
