package consumers

import (
	"context"
	"log/slog"

	"aviacao/internal/config"
	"aviacao/internal/database"
	"aviacao/internal/messaging"
	"aviacao/internal/models"
	"aviacao/internal/repository"
	"aviacao/internal/search"
)

// ConsumerService drains domain events from NATS Streaming into the
// Elasticsearch audit indexes, with a periodic backfill from storage
// for anything the publish path dropped. It runs as its own process
// and shares nothing with the API beyond the event contract.
type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	handlers *Handlers
	backfill *AuditBackfillJob
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		db.Close()
		return nil, err
	}

	esClient, err := search.NewElasticsearchClient(cfg.Search)
	if err != nil {
		natsClient.Close()
		db.Close()
		return nil, err
	}

	repos := repository.NewRepositories(db)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		handlers: NewHandlers(esClient),
		backfill: NewAuditBackfillJob(repos.Audit, esClient),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue(models.EventSaleCreated, "consumers", cs.handlers.HandleSaleCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventCheckinCompleted, "consumers", cs.handlers.HandleCheckinCompleted)
	if err != nil {
		return err
	}

	cs.backfill.Start(context.Background())

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	cs.backfill.Stop()

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
