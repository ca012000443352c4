package service

import (
	"context"
	"time"

	apperrors "aviacao/internal/errors"
	"aviacao/internal/logger"
	"aviacao/internal/messaging"
	"aviacao/internal/models"
	"aviacao/internal/repository"
)

// CheckinService runs the seat-assignment transaction for a ticket.
type CheckinService struct {
	ticketRepo *repository.TicketRepository
	natsClient *messaging.NATSClient
}

func NewCheckinService(ticketRepo *repository.TicketRepository, natsClient *messaging.NATSClient) *CheckinService {
	return &CheckinService{ticketRepo: ticketRepo, natsClient: natsClient}
}

// CheckIn assigns the lowest-ordered free seat of the ticket's class.
// Idempotency is rejected, not absorbed: a second check-in for the same
// ticket is a conflict.
func (s *CheckinService) CheckIn(ctx context.Context, ticketID int64) (*models.CheckInResult, error) {
	if ticketID <= 0 {
		return nil, apperrors.Validation("Ticket ID must be a positive integer.")
	}

	result, err := s.ticketRepo.CheckIn(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if s.natsClient != nil {
		event := models.CheckinCompletedEvent{
			BilheteID: result.BilheteID,
			VooID:     result.VooID,
			NoSerie:   result.NoSerie,
			Lugar:     result.Lugar,
			Timestamp: time.Now(),
		}
		if err := s.natsClient.Publish(models.EventCheckinCompleted, event); err != nil {
			// Log error but don't fail the operation
			logger.WithContext(ctx).Error("Failed to publish checkin completed event",
				"error", err,
				"bilhete_id", result.BilheteID,
				"event_type", models.EventCheckinCompleted)
		}
	}

	return result, nil
}
