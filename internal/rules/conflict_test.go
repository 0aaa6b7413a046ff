package rules

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingSource struct {
	mock.Mock
}

func (m *MockBookingSource) ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestConflictChecker_Validate_RejectsReversedInterval(t *testing.T) {
	source := &MockBookingSource{}
	checker := NewConflictChecker(source, 90*time.Minute)

	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	err := checker.Validate(context.Background(), ptr(int64(1)), start, start.Add(-time.Hour), 0)

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	source.AssertNotCalled(t, "ListByResource")
}

func TestConflictChecker_Validate_NoResourceOnlyChecksInterval(t *testing.T) {
	source := &MockBookingSource{}
	checker := NewConflictChecker(source, 90*time.Minute)

	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	err := checker.Validate(context.Background(), nil, start, start.Add(time.Hour), 0)

	assert.NoError(t, err)
	source.AssertNotCalled(t, "ListByResource")
}

func TestConflictChecker_Validate_RejectsDirectOverlap(t *testing.T) {
	ctx := context.Background()
	source := &MockBookingSource{}
	checker := NewConflictChecker(source, 90*time.Minute)

	existing := domain.Booking{
		ID:           7,
		PlannedStart: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	source.On("ListByResource", ctx, int64(1)).Return([]domain.Booking{existing}, nil)

	err := checker.Validate(ctx, ptr(int64(1)),
		time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC), 0)

	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

// A gap of exactly the buffer length is admissible; one minute less is not.
func TestConflictChecker_Validate_ExactBufferBoundary(t *testing.T) {
	ctx := context.Background()

	existing := domain.Booking{
		ID:           7,
		PlannedStart: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{
			name:     "starts exactly 90 minutes after existing end",
			start:    time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC),
			end:      time.Date(2026, 1, 10, 13, 30, 0, 0, time.UTC),
			conflict: false,
		},
		{
			name:     "starts one minute inside the buffer",
			start:    time.Date(2026, 1, 10, 12, 29, 0, 0, time.UTC),
			end:      time.Date(2026, 1, 10, 13, 29, 0, 0, time.UTC),
			conflict: true,
		},
		{
			name:     "ends exactly 90 minutes before existing start",
			start:    time.Date(2026, 1, 10, 7, 30, 0, 0, time.UTC),
			end:      time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC),
			conflict: false,
		},
		{
			name:     "ends one minute inside the leading buffer",
			start:    time.Date(2026, 1, 10, 7, 31, 0, 0, time.UTC),
			end:      time.Date(2026, 1, 10, 8, 31, 0, 0, time.UTC),
			conflict: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := &MockBookingSource{}
			source.On("ListByResource", ctx, int64(1)).Return([]domain.Booking{existing}, nil)
			checker := NewConflictChecker(source, 90*time.Minute)

			err := checker.Validate(ctx, ptr(int64(1)), tc.start, tc.end, 0)
			if tc.conflict {
				var conflict *domain.ConflictError
				assert.ErrorAs(t, err, &conflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConflictChecker_Validate_ExcludesBookingUnderUpdate(t *testing.T) {
	ctx := context.Background()
	source := &MockBookingSource{}
	checker := NewConflictChecker(source, 90*time.Minute)

	existing := domain.Booking{
		ID:           7,
		PlannedStart: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	source.On("ListByResource", ctx, int64(1)).Return([]domain.Booking{existing}, nil)

	// Same interval, but the booking under update is excluded from the scan.
	err := checker.Validate(ctx, ptr(int64(1)), existing.PlannedStart, existing.PlannedEnd, 7)
	assert.NoError(t, err)
}
