// Package errs contains the domain errors shared by models, services and
// controllers so every layer maps failures the same way.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels used across service/controller layers.
var (
	// ErrNotFound indicates the referenced submission/cycle/version/user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken indicates a consent or invitation token that does not
	// match, was already consumed, or is missing.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a consent or invitation token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrDecisionLimitExceeded indicates the editor decision count for a cycle
	// is exhausted.
	ErrDecisionLimitExceeded = errors.New("decision limit exceeded")

	// ErrConcurrentModification indicates an optimistic-concurrency conflict
	// on a submission or cycle write.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrAlreadyExists indicates a uniqueness conflict, e.g. a second feedback
	// entry from the same reviewer within one cycle.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError reports a status change that is not an edge of the
// submission lifecycle graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// IncompleteSubmissionError reports an unmet precondition for entering the
// submitted status. Missing names the item the author still has to provide.
type IncompleteSubmissionError struct {
	Missing string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("submission incomplete: %s", e.Missing)
}

// IllegalModificationError reports a write that touched a field outside the
// allow-list for the current operation.
type IllegalModificationError struct {
	Field string
}

func (e *IllegalModificationError) Error() string {
	return fmt.Sprintf("field %s is locked for this operation", e.Field)
}

// PermissionDeniedError reports an actor whose role or relationship to the
// submission does not authorize the attempted action.
type PermissionDeniedError struct {
	Action string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("not allowed to %s", e.Action)
}
