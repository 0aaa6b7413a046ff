package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aerodrome_bookings_created_total",
		Help: "Bookings accepted through the conflict check.",
	})
	ConflictsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aerodrome_booking_conflicts_total",
		Help: "Booking requests rejected by the 90-minute safety rule or a busy resource lock.",
	})
	TransitionsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aerodrome_state_transitions_denied_total",
		Help: "Booking updates rejected by the lifecycle state machine.",
	})
	AccessDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aerodrome_access_denied_total",
		Help: "Requests rejected by the access policy.",
	})
)
