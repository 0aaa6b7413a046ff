package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/repository"
)

// Sender turns booking events into in-app messages addressed to the pilot.
type Sender struct {
	messages repository.MessageRepository
}

func NewSender(messages repository.MessageRepository) *Sender {
	return &Sender{messages: messages}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	pilotID := event.PilotID
	msg := &domain.Message{
		SentAt:    time.Now(),
		Content:   fmt.Sprintf("booking %s is now %s", event.Token, event.Status),
		Direction: domain.MessageToPilot,
		PilotID:   &pilotID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}
	log.Printf("notify pilot %d: booking %s %s", event.PilotID, event.Token, event.Type)
	return nil
}
