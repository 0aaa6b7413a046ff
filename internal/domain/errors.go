package domain

import "fmt"

// ValidationError rejects malformed input, e.g. an interval that ends before
// it starts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError rejects a booking that violates the safety interval around an
// existing one, or a resource whose creation lock is held elsewhere.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// StateError rejects an illegal lifecycle transition.
type StateError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }
