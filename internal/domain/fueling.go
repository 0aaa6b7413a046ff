package domain

import "time"

// Fueling is a refueling operation attached to an aircraft. Its cost is a
// fixed add-on when a booking references it.
type Fueling struct {
	ID             int64
	OccurredAt     time.Time
	QuantityLiters float64
	Cost           float64
	AircraftID     string
}
