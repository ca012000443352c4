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

// BookingService validates purchase requests and delegates to the
// single-transaction purchase path in the repository.
type BookingService struct {
	saleRepo   *repository.SaleRepository
	natsClient *messaging.NATSClient
}

func NewBookingService(saleRepo *repository.SaleRepository, natsClient *messaging.NATSClient) *BookingService {
	return &BookingService{saleRepo: saleRepo, natsClient: natsClient}
}

// Purchase buys req.BilhetesAComprar tickets on flight flightID under a single
// reservation code. Prices are fixed per class; clients never send them.
func (s *BookingService) Purchase(ctx context.Context, flightID int64, req *models.PurchaseRequest) (*models.PurchaseResult, error) {
	if flightID <= 0 {
		return nil, apperrors.Validation("Flight ID must be a positive integer.")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]repository.PurchaseItem, 0, len(req.BilhetesAComprar))
	for _, t := range req.BilhetesAComprar {
		items = append(items, repository.PurchaseItem{
			PassengerName: t.NomePassageiro,
			FirstClass:    *t.PrimClasse,
			Price:         models.TicketPrice(*t.PrimClasse),
		})
	}

	result, err := s.saleRepo.Purchase(ctx, flightID, req.NIFCliente, items)
	if err != nil {
		return nil, err
	}

	if s.natsClient != nil {
		event := models.SaleCreatedEvent{
			CodigoReserva: result.CodigoReserva,
			VooID:         flightID,
			NIFCliente:    req.NIFCliente,
			Balcao:        result.Balcao,
			Tickets:       len(result.Bilhetes),
			Timestamp:     time.Now(),
		}
		if err := s.natsClient.Publish(models.EventSaleCreated, event); err != nil {
			// Log error but don't fail the operation
			logger.WithContext(ctx).Error("Failed to publish sale created event",
				"error", err,
				"codigo_reserva", result.CodigoReserva,
				"event_type", models.EventSaleCreated)
		}
	}

	return result, nil
}
