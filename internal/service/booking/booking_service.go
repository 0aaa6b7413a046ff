package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/metrics"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Create(ctx context.Context, ident domain.Identity, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, ident domain.Identity, id int64) (*domain.Booking, error)
	List(ctx context.Context, ident domain.Identity) ([]domain.Booking, error)
	ListForPilot(ctx context.Context, pilotID int64) ([]domain.Booking, error)
	Update(ctx context.Context, ident domain.Identity, id int64, input UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, ident domain.Identity, id int64) error
	CancelStaleRequests(ctx context.Context, olderThan time.Duration) ([]domain.Booking, error)
}

type Cache interface {
	AcquireBookingLock(ctx context.Context, resourceID int64, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, resourceID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	conflicts          *rules.ConflictChecker
	costs              *rules.CostCalculator
	lifecycle          rules.Lifecycle
	access             *rules.AccessPolicy
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	lockTTL            time.Duration

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

type CreateBookingInput struct {
	ResourceID   *int64
	AircraftID   *string
	FuelingID    *int64
	PlannedStart time.Time
	PlannedEnd   time.Time
}

type UpdateBookingInput struct {
	ResourceID   *int64
	AircraftID   *string
	FuelingID    *int64
	InvoiceID    *int64
	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	Status       domain.BookingStatus
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	conflicts *rules.ConflictChecker,
	costs *rules.CostCalculator,
	access *rules.AccessPolicy,
	cache Cache,
	producer Producer,
	eventsTopic string,
	lockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		conflicts:   conflicts,
		costs:       costs,
		access:      access,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		lockTTL:     lockTTL,
		locks:       map[int64]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create runs the pilot booking flow: conflict check, cost calculation and the
// insert happen inside one per-resource critical section, so two concurrent
// requests cannot both pass the check and violate the safety interval.
func (s *BookingService) Create(ctx context.Context, ident domain.Identity, input CreateBookingInput) (*domain.Booking, error) {
	if input.PlannedStart.IsZero() || input.PlannedEnd.IsZero() {
		return nil, &domain.ValidationError{Reason: "planned start and end are required"}
	}

	if input.ResourceID != nil {
		unlock, err := s.lockResource(ctx, *input.ResourceID)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	if err := s.conflicts.Validate(ctx, input.ResourceID, input.PlannedStart, input.PlannedEnd, 0); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			metrics.ConflictsRejected.Inc()
		}
		return nil, err
	}

	cost, err := s.costs.Compute(ctx, input.ResourceID, input.FuelingID, input.PlannedStart, input.PlannedEnd)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Token:        uuid.NewString(),
		PilotID:      ident.ID,
		ResourceID:   input.ResourceID,
		AircraftID:   input.AircraftID,
		FuelingID:    input.FuelingID,
		PlannedStart: input.PlannedStart,
		PlannedEnd:   input.PlannedEnd,
		Status:       domain.BookingStatusRequested,
		TotalCost:    &cost,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.publish(ctx, "booking_requested", booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, ident domain.Identity, id int64) (*domain.Booking, error) {
	if err := s.access.AuthorizeBooking(ctx, ident, id); err != nil {
		var denied *domain.AuthorizationError
		if errors.As(err, &denied) {
			metrics.AccessDenied.Inc()
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, ident domain.Identity) ([]domain.Booking, error) {
	if !ident.Role.Staff() {
		metrics.AccessDenied.Inc()
		return nil, &domain.AuthorizationError{Reason: "requires agent or administrator privileges"}
	}
	return s.bookings.List(ctx)
}

func (s *BookingService) ListForPilot(ctx context.Context, pilotID int64) ([]domain.Booking, error) {
	return s.bookings.ListByPilot(ctx, pilotID)
}

// Update is the staff flow: existence, role, lifecycle, conflict (excluding
// the booking itself) and a cost recomputation, in that order.
func (s *BookingService) Update(ctx context.Context, ident domain.Identity, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.Role.Staff() {
		metrics.AccessDenied.Inc()
		return nil, &domain.AuthorizationError{Reason: "requires agent or administrator privileges"}
	}

	if err := s.lifecycle.ValidateTransition(current.Status, input.Status); err != nil {
		metrics.TransitionsDenied.Inc()
		return nil, err
	}

	if input.ResourceID != nil {
		unlock, err := s.lockResource(ctx, *input.ResourceID)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	if err := s.conflicts.Validate(ctx, input.ResourceID, input.PlannedStart, input.PlannedEnd, current.ID); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			metrics.ConflictsRejected.Inc()
		}
		return nil, err
	}

	cost, err := s.costs.Compute(ctx, input.ResourceID, input.FuelingID, input.PlannedStart, input.PlannedEnd)
	if err != nil {
		return nil, err
	}

	current.ResourceID = input.ResourceID
	current.AircraftID = input.AircraftID
	current.FuelingID = input.FuelingID
	current.InvoiceID = input.InvoiceID
	current.PlannedStart = input.PlannedStart
	current.PlannedEnd = input.PlannedEnd
	current.ActualStart = input.ActualStart
	current.ActualEnd = input.ActualEnd
	current.Status = input.Status
	current.TotalCost = &cost

	if err := s.bookings.Update(ctx, current); err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_updated", current)
	return current, nil
}

// Delete removes a booking. An invoiced booking may only be removed by an
// administrator.
func (s *BookingService) Delete(ctx context.Context, ident domain.Identity, id int64) error {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ident.Role.Staff() {
		metrics.AccessDenied.Inc()
		return &domain.AuthorizationError{Reason: "requires agent or administrator privileges"}
	}
	if current.InvoiceID != nil && ident.Role != domain.RoleAdmin {
		metrics.AccessDenied.Inc()
		return &domain.AuthorizationError{Reason: "invoiced bookings can only be deleted by an administrator"}
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "booking_deleted", current)
	return nil
}

// CancelStaleRequests cancels REQUESTED bookings older than olderThan through
// the regular Requested -> Cancelled transition. The worker calls it on a
// timer.
func (s *BookingService) CancelStaleRequests(ctx context.Context, olderThan time.Duration) ([]domain.Booking, error) {
	stale, err := s.bookings.ListStaleRequested(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return nil, err
	}

	cancelled := make([]domain.Booking, 0, len(stale))
	for i := range stale {
		b := stale[i]
		if err := s.lifecycle.ValidateTransition(b.Status, domain.BookingStatusCancelled); err != nil {
			continue
		}
		b.Status = domain.BookingStatusCancelled
		if err := s.bookings.Update(ctx, &b); err != nil {
			log.Printf("cancel stale booking %d: %v", b.ID, err)
			continue
		}
		s.publish(ctx, "booking_cancelled", &b)
		cancelled = append(cancelled, b)
	}
	return cancelled, nil
}

// lockResource takes the in-process mutex for the resource and, when a cache
// is configured, the shared redis lock on top of it.
func (s *BookingService) lockResource(ctx context.Context, resourceID int64) (func(), error) {
	s.mu.Lock()
	local, ok := s.locks[resourceID]
	if !ok {
		local = &sync.Mutex{}
		s.locks[resourceID] = local
	}
	s.mu.Unlock()

	local.Lock()
	if s.cache == nil {
		return local.Unlock, nil
	}

	ok, err := s.cache.AcquireBookingLock(ctx, resourceID, s.lockTTL)
	if err != nil {
		local.Unlock()
		return nil, err
	}
	if !ok {
		local.Unlock()
		metrics.ConflictsRejected.Inc()
		return nil, &domain.ConflictError{Reason: "resource is being booked by another request, try again"}
	}
	return func() {
		if err := s.cache.ReleaseBookingLock(ctx, resourceID); err != nil {
			log.Printf("release booking lock for resource %d: %v", resourceID, err)
		}
		local.Unlock()
	}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Token:      booking.Token,
		BookingID:  booking.ID,
		PilotID:    booking.PilotID,
		ResourceID: booking.ResourceID,
		Status:     string(booking.Status),
		Start:      booking.PlannedStart,
		End:        booking.PlannedEnd,
		TotalCost:  booking.TotalCost,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.Token, event); err != nil {
		fmt.Printf("WARNING: Failed to publish %s event for booking %s: %v\n", eventType, booking.Token, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Token, event); err != nil {
			fmt.Printf("WARNING: Failed to publish %s notification for booking %s: %v\n", eventType, booking.Token, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
