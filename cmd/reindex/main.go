package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"aviacao/internal/config"
	"aviacao/internal/database"
	"aviacao/internal/logger"
	"aviacao/internal/repository"
	"aviacao/internal/search"
)

// reindex rebuilds the Elasticsearch audit indexes from storage. Used
// after index loss or when the consumers were down for longer than the
// backfill lookback.
func main() {
	var sinceDays int
	flag.IntVar(&sinceDays, "since-days", 0, "Only reindex sales/check-ins from the last N days (0 = everything)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting audit reindex", "since_days", sinceDays)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	esClient, err := search.NewElasticsearchClient(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	auditRepo := repository.NewAuditRepository(db)

	since := time.Time{}
	if sinceDays > 0 {
		since = time.Now().UTC().AddDate(0, 0, -sinceDays)
	}

	if err := reindex(context.Background(), auditRepo, esClient, since); err != nil {
		logger.Fatal("Reindex failed", "error", err)
	}

	slog.Info("Audit reindex completed successfully")
}

func reindex(ctx context.Context, auditRepo *repository.AuditRepository, esClient *search.ElasticsearchClient, since time.Time) error {
	start := time.Now()

	sales, err := auditRepo.ListSales(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list sales: %w", err)
	}
	slog.Info("Indexing sales", "count", len(sales))
	for i := range sales {
		if err := esClient.IndexSale(ctx, &sales[i]); err != nil {
			return fmt.Errorf("failed to index sale %d: %w", sales[i].CodigoReserva, err)
		}
	}

	checkins, err := auditRepo.ListCheckins(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list checkins: %w", err)
	}
	slog.Info("Indexing checkins", "count", len(checkins))
	for i := range checkins {
		if err := esClient.IndexCheckin(ctx, &checkins[i]); err != nil {
			return fmt.Errorf("failed to index checkin %d: %w", checkins[i].BilheteID, err)
		}
	}

	slog.Info("Reindex finished",
		"sales", len(sales),
		"checkins", len(checkins),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
