package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the generation boundary.
var (
	// ErrValidation indicates generation parameters failed a range check.
	ErrValidation = errors.New("validation error")

	// ErrMissingAPIKey indicates an invoker or provider was built without a key.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrNoResponse indicates the mock provider ran out of canned responses.
	ErrNoResponse = errors.New("no canned response")
)

// ValidationError reports the first generation parameter that is out of range.
// Error returns the bare message so callers can match it verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CredentialError indicates the API key was absent or empty. It is distinct
// from ValidationError and is raised at construction, never per call.
type CredentialError struct {
	Provider string
}

func (e *CredentialError) Error() string {
	if e.Provider == "" {
		return "API key is required"
	}
	return fmt.Sprintf("%s API key is required", e.Provider)
}

func (e *CredentialError) Unwrap() error { return ErrMissingAPIKey }
