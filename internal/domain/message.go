package domain

import "time"

const (
	MessageToPilot = 0
	MessageToAgent = 1
)

type Message struct {
	ID        int64
	SentAt    time.Time
	Content   string
	Direction int
	AgentID   *int64
	PilotID   *int64
}
