package services

// Typed errors the handlers translate into HTTP status codes.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// ProviderError means the completion provider was unreachable or rejected
// the call. No history is ever appended once one of these is returned.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "completion provider error"
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedCompletionError means strict-mode extraction could not parse the
// completion. Raw carries the completion text for operator diagnostics; it
// is logged, never shown to the end user.
type MalformedCompletionError struct {
	Raw string
	Err error
}

func (e *MalformedCompletionError) Error() string { return "malformed completion" }

func (e *MalformedCompletionError) Unwrap() error { return e.Err }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }
