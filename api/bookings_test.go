package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, ident domain.Identity, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, ident, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, ident domain.Identity, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, ident domain.Identity) ([]domain.Booking, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForPilot(ctx context.Context, pilotID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, pilotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Update(ctx context.Context, ident domain.Identity, id int64, input booking.UpdateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, ident, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Delete(ctx context.Context, ident domain.Identity, id int64) error {
	args := m.Called(ctx, ident, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) CancelStaleRequests(ctx context.Context, olderThan time.Duration) ([]domain.Booking, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

var pilotIdent = domain.Identity{ID: 3, Role: domain.RolePilot}
var agentIdent = domain.Identity{ID: 8, Role: domain.RoleAgent}

func newBookingContext(t *testing.T, ident domain.Identity, method, path string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityKey, ident)
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, pilotIdent, "POST", "/bookings/", createBookingRequest{
		ResourceID:   ptrInt64(1),
		PlannedStart: "2026-04-01T12:30:00Z",
		PlannedEnd:   "2026-04-01T14:30:00Z",
	})

	cost := 4.17
	created := &domain.Booking{
		ID:           42,
		Token:        "token123",
		PilotID:      3,
		ResourceID:   ptrInt64(1),
		PlannedStart: time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC),
		Status:       domain.BookingStatusRequested,
		TotalCost:    &cost,
	}
	mockService.On("Create", c.Request.Context(), pilotIdent, mock.AnythingOfType("booking.CreateBookingInput")).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "REQUESTED", resp.Status)
	assert.Equal(t, "2026-04-01T12:30:00Z", resp.PlannedStart)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_AgentForbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, agentIdent, "POST", "/bookings/", createBookingRequest{
		PlannedStart: "2026-04-01T12:30:00Z",
		PlannedEnd:   "2026-04-01T14:30:00Z",
	})

	handler.create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestBookingHandler_create_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "conflict", serviceErr: &domain.ConflictError{Reason: "overlaps an existing booking"}, wantStatus: http.StatusConflict},
		{name: "validation", serviceErr: &domain.ValidationError{Reason: "planned end must be after planned start"}, wantStatus: http.StatusBadRequest},
		{name: "not found reference", serviceErr: &domain.NotFoundError{Entity: "resource"}, wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			c, w := newBookingContext(t, pilotIdent, "POST", "/bookings/", createBookingRequest{
				PlannedStart: "2026-04-01T12:30:00Z",
				PlannedEnd:   "2026-04-01T14:30:00Z",
			})
			mockService.On("Create", c.Request.Context(), pilotIdent, mock.Anything).Return(nil, tc.serviceErr)

			handler.create(c)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestBookingHandler_create_InvalidTimestamp(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, pilotIdent, "POST", "/bookings/", createBookingRequest{
		PlannedStart: "yesterday",
		PlannedEnd:   "2026-04-01T14:30:00Z",
	})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestBookingHandler_get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		handler := NewBookingHandler(mockService)

		c, w := newBookingContext(t, pilotIdent, "GET", "/bookings/42", nil)
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		found := &domain.Booking{ID: 42, PilotID: 3, Status: domain.BookingStatusConfirmed}
		mockService.On("Get", c.Request.Context(), pilotIdent, int64(42)).Return(found, nil)

		handler.get(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing reports 404", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		handler := NewBookingHandler(mockService)

		c, w := newBookingContext(t, pilotIdent, "GET", "/bookings/99", nil)
		c.Params = gin.Params{{Key: "id", Value: "99"}}
		mockService.On("Get", c.Request.Context(), pilotIdent, int64(99)).Return(nil, &domain.NotFoundError{Entity: "booking"})

		handler.get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("foreign booking reports 403", func(t *testing.T) {
		mockService := &MockBookingUseCase{}
		handler := NewBookingHandler(mockService)

		c, w := newBookingContext(t, pilotIdent, "GET", "/bookings/7", nil)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		mockService.On("Get", c.Request.Context(), pilotIdent, int64(7)).Return(nil, &domain.AuthorizationError{Reason: "not authorized to access this booking"})

		handler.get(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestBookingHandler_update_IllegalTransition(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, agentIdent, "PUT", "/bookings/42", updateBookingRequest{
		PlannedStart: "2026-04-01T12:30:00Z",
		PlannedEnd:   "2026-04-01T14:30:00Z",
		Status:       "AUTHORIZED",
	})
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	mockService.On("Update", c.Request.Context(), agentIdent, int64(42), mock.Anything).
		Return(nil, &domain.StateError{From: domain.BookingStatusRequested, To: domain.BookingStatusAuthorized})

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_remove(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, agentIdent, "DELETE", "/bookings/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	mockService.On("Delete", c.Request.Context(), agentIdent, int64(42)).Return(nil)

	handler.remove(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_ListMine(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookingContext(t, pilotIdent, "GET", "/pilots/me/bookings", nil)
	mockService.On("ListForPilot", c.Request.Context(), int64(3)).Return([]domain.Booking{{ID: 1, PilotID: 3}}, nil)

	handler.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func ptrInt64(v int64) *int64 { return &v }
