package domain

import "time"

type Invoice struct {
	ID         int64
	PaymentRef string
	IssuedAt   time.Time
	AgentID    *int64
}
