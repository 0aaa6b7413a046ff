package rules

import "github.com/Domenick1991/aerodrome/internal/domain"

// Lifecycle governs the booking state machine. REQUESTED is the only initial
// state; COMPLETED and CANCELLED are terminal.
type Lifecycle struct{}

var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusRequested:  {domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed:  {domain.BookingStatusAuthorized, domain.BookingStatusCancelled},
	domain.BookingStatusAuthorized: {domain.BookingStatusCompleted},
	domain.BookingStatusCompleted:  {},
	domain.BookingStatusCancelled:  {},
}

// ValidateTransition allows proposed == current as an idempotent no-op write.
func (Lifecycle) ValidateTransition(current, proposed domain.BookingStatus) error {
	if proposed == current {
		return nil
	}
	for _, next := range transitions[current] {
		if next == proposed {
			return nil
		}
	}
	return &domain.StateError{From: current, To: proposed}
}
