package rules

import (
	"context"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
)

type BookingSource interface {
	ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error)
}

// ConflictChecker decides whether a proposed interval is admissible on a
// resource. Every pair of bookings on the same resource must be separated by
// at least the safety buffer.
type ConflictChecker struct {
	bookings BookingSource
	buffer   time.Duration
}

func NewConflictChecker(bookings BookingSource, buffer time.Duration) *ConflictChecker {
	return &ConflictChecker{bookings: bookings, buffer: buffer}
}

// Validate checks the candidate interval against all bookings of the
// resource, excluding excludeID (0 means no exclusion, used on create).
// A candidate exactly one buffer away from an existing booking is admissible;
// the inequalities are strict.
func (c *ConflictChecker) Validate(ctx context.Context, resourceID *int64, start, end time.Time, excludeID int64) error {
	if !end.After(start) {
		return &domain.ValidationError{Reason: "end time must be after start time"}
	}
	if resourceID == nil {
		return nil
	}

	existing, err := c.bookings.ListByResource(ctx, *resourceID)
	if err != nil {
		return err
	}
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if start.Before(b.PlannedEnd.Add(c.buffer)) && end.After(b.PlannedStart.Add(-c.buffer)) {
			return &domain.ConflictError{Reason: "time slot conflicts with an existing booking (including the safety interval)"}
		}
	}
	return nil
}
