package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"aviacao/internal/models"
	"aviacao/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	esClient *search.ElasticsearchClient
}

func NewHandlers(esClient *search.ElasticsearchClient) *Handlers {
	return &Handlers{esClient: esClient}
}

// HandleSaleCreated indexes a committed purchase. The message is only
// acked after a successful write; manual ack mode redelivers otherwise.
func (h *Handlers) HandleSaleCreated(m *stan.Msg) {
	var event models.SaleCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal sale created event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing sale created event",
		"codigo_reserva", event.CodigoReserva,
		"voo_id", event.VooID,
		"tickets", event.Tickets)

	if err := h.esClient.IndexSale(context.Background(), &event); err != nil {
		slog.Error("Failed to index sale", "codigo_reserva", event.CodigoReserva, "error", err)
		return
	}

	m.Ack()
}

// HandleCheckinCompleted indexes a committed seat assignment
func (h *Handlers) HandleCheckinCompleted(m *stan.Msg) {
	var event models.CheckinCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal checkin completed event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing checkin completed event",
		"bilhete_id", event.BilheteID,
		"voo_id", event.VooID,
		"lugar", event.Lugar)

	if err := h.esClient.IndexCheckin(context.Background(), &event); err != nil {
		slog.Error("Failed to index checkin", "bilhete_id", event.BilheteID, "error", err)
		return
	}

	m.Ack()
}
