package rules

import (
	"context"
	"testing"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAircraftSource struct {
	mock.Mock
}

func (m *MockAircraftSource) GetByRegistration(ctx context.Context, registration string) (*domain.Aircraft, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

type MockBookingAccessSource struct {
	mock.Mock
}

func (m *MockBookingAccessSource) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingAccessSource) ListByInvoiceAndPilot(ctx context.Context, invoiceID, pilotID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, invoiceID, pilotID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockInvoiceSource struct {
	mock.Mock
}

func (m *MockInvoiceSource) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

type MockMessageSource struct {
	mock.Mock
}

func (m *MockMessageSource) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func newTestPolicy() (*AccessPolicy, *MockAircraftSource, *MockBookingAccessSource, *MockInvoiceSource, *MockMessageSource) {
	aircraft := &MockAircraftSource{}
	bookings := &MockBookingAccessSource{}
	invoices := &MockInvoiceSource{}
	messages := &MockMessageSource{}
	return NewAccessPolicy(aircraft, bookings, invoices, messages), aircraft, bookings, invoices, messages
}

func TestAccessPolicy_AuthorizeBooking_Ownership(t *testing.T) {
	ctx := context.Background()
	booking := &domain.Booking{ID: 11, PilotID: 3}

	testCases := []struct {
		name   string
		ident  domain.Identity
		denied bool
	}{
		{name: "owning pilot is allowed", ident: domain.Identity{ID: 3, Role: domain.RolePilot}},
		{name: "another pilot is denied", ident: domain.Identity{ID: 7, Role: domain.RolePilot}, denied: true},
		{name: "agent bypasses ownership", ident: domain.Identity{ID: 7, Role: domain.RoleAgent}},
		{name: "admin bypasses ownership", ident: domain.Identity{ID: 7, Role: domain.RoleAdmin}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy, _, bookings, _, _ := newTestPolicy()
			bookings.On("GetByID", ctx, int64(11)).Return(booking, nil)

			err := policy.AuthorizeBooking(ctx, tc.ident, 11)
			if tc.denied {
				var denied *domain.AuthorizationError
				assert.ErrorAs(t, err, &denied)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// A missing entity reports not found, never forbidden, even for a caller who
// would have been denied.
func TestAccessPolicy_AuthorizeBooking_MissingReportsNotFound(t *testing.T) {
	ctx := context.Background()
	policy, _, bookings, _, _ := newTestPolicy()
	bookings.On("GetByID", ctx, int64(99)).Return(nil, &domain.NotFoundError{Entity: "booking"})

	err := policy.AuthorizeBooking(ctx, domain.Identity{ID: 7, Role: domain.RolePilot}, 99)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAccessPolicy_AuthorizeAircraft(t *testing.T) {
	ctx := context.Background()
	owner := int64(3)

	t.Run("owning pilot is allowed", func(t *testing.T) {
		policy, aircraft, _, _, _ := newTestPolicy()
		aircraft.On("GetByRegistration", ctx, "F-GKQA").Return(&domain.Aircraft{Registration: "F-GKQA", PilotID: &owner}, nil)
		assert.NoError(t, policy.AuthorizeAircraft(ctx, domain.Identity{ID: 3, Role: domain.RolePilot}, "F-GKQA"))
	})

	t.Run("unassigned aircraft is staff only", func(t *testing.T) {
		policy, aircraft, _, _, _ := newTestPolicy()
		aircraft.On("GetByRegistration", ctx, "F-GKQB").Return(&domain.Aircraft{Registration: "F-GKQB"}, nil)

		var denied *domain.AuthorizationError
		assert.ErrorAs(t, policy.AuthorizeAircraft(ctx, domain.Identity{ID: 3, Role: domain.RolePilot}, "F-GKQB"), &denied)
		assert.NoError(t, policy.AuthorizeAircraft(ctx, domain.Identity{ID: 8, Role: domain.RoleAgent}, "F-GKQB"))
	})
}

func TestAccessPolicy_AuthorizeInvoice(t *testing.T) {
	ctx := context.Background()
	invoice := &domain.Invoice{ID: 5}

	t.Run("pilot with a billed booking is allowed", func(t *testing.T) {
		policy, _, bookings, invoices, _ := newTestPolicy()
		invoices.On("GetByID", ctx, int64(5)).Return(invoice, nil)
		bookings.On("ListByInvoiceAndPilot", ctx, int64(5), int64(3)).Return([]domain.Booking{{ID: 11}}, nil)

		assert.NoError(t, policy.AuthorizeInvoice(ctx, domain.Identity{ID: 3, Role: domain.RolePilot}, 5))
	})

	t.Run("pilot without a billed booking is denied", func(t *testing.T) {
		policy, _, bookings, invoices, _ := newTestPolicy()
		invoices.On("GetByID", ctx, int64(5)).Return(invoice, nil)
		bookings.On("ListByInvoiceAndPilot", ctx, int64(5), int64(7)).Return([]domain.Booking{}, nil)

		var denied *domain.AuthorizationError
		assert.ErrorAs(t, policy.AuthorizeInvoice(ctx, domain.Identity{ID: 7, Role: domain.RolePilot}, 5), &denied)
	})

	t.Run("staff skips the booking lookup", func(t *testing.T) {
		policy, _, bookings, invoices, _ := newTestPolicy()
		invoices.On("GetByID", ctx, int64(5)).Return(invoice, nil)

		assert.NoError(t, policy.AuthorizeInvoice(ctx, domain.Identity{ID: 8, Role: domain.RoleAgent}, 5))
		bookings.AssertNotCalled(t, "ListByInvoiceAndPilot")
	})
}

func TestAccessPolicy_AuthorizeMessage(t *testing.T) {
	ctx := context.Background()
	pilotID, agentID := int64(3), int64(8)
	msg := &domain.Message{ID: 2, PilotID: &pilotID, AgentID: &agentID}

	testCases := []struct {
		name   string
		ident  domain.Identity
		denied bool
	}{
		{name: "pilot side of the exchange", ident: domain.Identity{ID: 3, Role: domain.RolePilot}},
		{name: "agent side of the exchange", ident: domain.Identity{ID: 8, Role: domain.RoleAgent}},
		{name: "unrelated pilot is denied", ident: domain.Identity{ID: 7, Role: domain.RolePilot}, denied: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy, _, _, _, messages := newTestPolicy()
			messages.On("GetByID", ctx, int64(2)).Return(msg, nil)

			err := policy.AuthorizeMessage(ctx, tc.ident, 2)
			if tc.denied {
				var denied *domain.AuthorizationError
				assert.ErrorAs(t, err, &denied)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
