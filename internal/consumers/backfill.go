package consumers

import (
	"context"
	"log/slog"
	"time"

	"aviacao/internal/repository"
	"aviacao/internal/search"
)

const backfillInterval = 5 * time.Minute

// backfillLookback overlaps consecutive runs so a write landing right
// at a window edge is never skipped. Indexing is idempotent by doc id.
const backfillLookback = 15 * time.Minute

// AuditBackfillJob periodically re-derives sale and check-in events
// from storage and re-indexes them, covering any events the publish
// path dropped.
type AuditBackfillJob struct {
	auditRepo *repository.AuditRepository
	esClient  *search.ElasticsearchClient
	ticker    *time.Ticker
	done      chan bool
}

func NewAuditBackfillJob(auditRepo *repository.AuditRepository, esClient *search.ElasticsearchClient) *AuditBackfillJob {
	return &AuditBackfillJob{
		auditRepo: auditRepo,
		esClient:  esClient,
		done:      make(chan bool),
	}
}

func (j *AuditBackfillJob) Start(ctx context.Context) {
	slog.Info("Starting audit backfill job", "interval", backfillInterval)

	j.ticker = time.NewTicker(backfillInterval)

	go j.run(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.run(ctx)
			case <-j.done:
				slog.Info("Audit backfill job stopped")
				return
			}
		}
	}()
}

func (j *AuditBackfillJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	j.done <- true
}

func (j *AuditBackfillJob) run(ctx context.Context) {
	since := time.Now().UTC().Add(-backfillLookback)

	sales, err := j.auditRepo.ListSales(ctx, since)
	if err != nil {
		slog.Error("Backfill: failed to list sales", "error", err)
	} else {
		for i := range sales {
			if err := j.esClient.IndexSale(ctx, &sales[i]); err != nil {
				slog.Error("Backfill: failed to index sale",
					"codigo_reserva", sales[i].CodigoReserva, "error", err)
			}
		}
	}

	checkins, err := j.auditRepo.ListCheckins(ctx, since)
	if err != nil {
		slog.Error("Backfill: failed to list checkins", "error", err)
		return
	}
	for i := range checkins {
		if err := j.esClient.IndexCheckin(ctx, &checkins[i]); err != nil {
			slog.Error("Backfill: failed to index checkin",
				"bilhete_id", checkins[i].BilheteID, "error", err)
		}
	}

	if len(sales) > 0 || len(checkins) > 0 {
		slog.Info("Backfill pass completed", "sales", len(sales), "checkins", len(checkins))
	}
}
