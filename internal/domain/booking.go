package domain

import "time"

type BookingStatus string

const (
	BookingStatusRequested  BookingStatus = "REQUESTED"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusAuthorized BookingStatus = "AUTHORIZED"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

type Booking struct {
	ID           int64
	Token        string
	PilotID      int64
	ResourceID   *int64
	AircraftID   *string
	FuelingID    *int64
	InvoiceID    *int64
	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	Status       BookingStatus
	TotalCost    *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
