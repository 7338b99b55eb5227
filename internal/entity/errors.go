package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("consultation session not found")
	ErrRequestInFlight  = errors.New("a model request is already in flight")
	ErrSessionTerminal  = errors.New("consultation already reached its final report")
	ErrNoFailedAction   = errors.New("no failed action to retry")
	ErrNoFinalReport    = errors.New("final report is not available yet")
	ErrMinorRestricted  = errors.New("questionnaire is not available to unaccompanied minors")
	ErrProfileRequired  = errors.New("session profile must be selected first")
	ErrProfileNotFound  = errors.New("session profile not found")
	ErrStaleResponse    = errors.New("model response arrived after session reset")

	// Attachment errors
	ErrInvalidImage     = errors.New("invalid image attachment")
	ErrImageTooLarge    = errors.New("image attachment too large")
	ErrTooManyImages    = errors.New("too many image attachments")
	ErrTotalSizeTooBig  = errors.New("total attachment size too large")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ValidationError is a local interception failure: the answer never
// reaches the model and the user simply re-enters it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProviderError is a typed failure of the generation collaborator.
// Transient failures were already retried by the connector; the flag only
// frames the message shown with the retry affordance.
type ProviderError struct {
	Transient bool
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Transient {
		return fmt.Sprintf("transient provider failure: %v", e.Err)
	}
	return fmt.Sprintf("provider failure: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTransientProvider reports whether err is a retried-and-exhausted
// transient provider failure.
func IsTransientProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient
}
