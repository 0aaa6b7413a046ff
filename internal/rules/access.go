package rules

import (
	"context"

	"github.com/Domenick1991/aerodrome/internal/domain"
)

type AircraftSource interface {
	GetByRegistration(ctx context.Context, registration string) (*domain.Aircraft, error)
}

type InvoiceSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
}

type MessageSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
}

type BookingAccessSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByInvoiceAndPilot(ctx context.Context, invoiceID, pilotID int64) ([]domain.Booking, error)
}

// AccessPolicy decides whether a caller may touch an entity. Existence is
// always checked before ownership, so a missing entity reports not found
// rather than forbidden. Staff roles (agent, admin) bypass ownership.
type AccessPolicy struct {
	aircraft AircraftSource
	bookings BookingAccessSource
	invoices InvoiceSource
	messages MessageSource
}

func NewAccessPolicy(aircraft AircraftSource, bookings BookingAccessSource, invoices InvoiceSource, messages MessageSource) *AccessPolicy {
	return &AccessPolicy{aircraft: aircraft, bookings: bookings, invoices: invoices, messages: messages}
}

func (p *AccessPolicy) AuthorizeAircraft(ctx context.Context, ident domain.Identity, registration string) error {
	aircraft, err := p.aircraft.GetByRegistration(ctx, registration)
	if err != nil {
		return err
	}
	return decide(ident, "not authorized to access this aircraft", aircraft.PilotID)
}

func (p *AccessPolicy) AuthorizeBooking(ctx context.Context, ident domain.Identity, id int64) error {
	booking, err := p.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return decide(ident, "not authorized to access this booking", &booking.PilotID)
}

// AuthorizeInvoice grants access to staff, or to a pilot owning at least one
// booking billed on the invoice.
func (p *AccessPolicy) AuthorizeInvoice(ctx context.Context, ident domain.Identity, id int64) error {
	if _, err := p.invoices.GetByID(ctx, id); err != nil {
		return err
	}
	if ident.Role.Staff() {
		return nil
	}
	bookings, err := p.bookings.ListByInvoiceAndPilot(ctx, id, ident.ID)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		return &domain.AuthorizationError{Reason: "not authorized to access this invoice"}
	}
	return nil
}

// AuthorizeMessage grants access to staff and to either end of the exchange.
func (p *AccessPolicy) AuthorizeMessage(ctx context.Context, ident domain.Identity, id int64) error {
	msg, err := p.messages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return decide(ident, "not authorized to access this message", msg.PilotID, msg.AgentID)
}

// decide is the single role/ownership comparison shared by every entity kind.
func decide(ident domain.Identity, reason string, owners ...*int64) error {
	if ident.Role.Staff() {
		return nil
	}
	for _, owner := range owners {
		if owner != nil && *owner == ident.ID {
			return nil
		}
	}
	return &domain.AuthorizationError{Reason: reason}
}
