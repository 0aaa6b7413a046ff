package domain

import "time"

type ResourceKind string

const (
	ResourceKindHangar      ResourceKind = "HANGAR"
	ResourceKindParking     ResourceKind = "PARKING"
	ResourceKindMaintenance ResourceKind = "MAINTENANCE"
)

// Resource is a bookable piece of aerodrome infrastructure. The three rates
// are the inputs of the tiered pricing and are edited by administrators only.
type Resource struct {
	ID        int64
	Name      string
	Kind      ResourceKind
	Capacity  int
	DayRate   float64
	WeekRate  float64
	MonthRate float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
