package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/intake-api/internal/repository"
	"github.com/jwalitptl/intake-api/pkg/logger"
)

// RetentionWorker prunes stale offered-slot records and processed outbox
// events. Offered slots age out so that a slot offered long ago becomes
// offerable again once the client's outreach has gone cold.
type RetentionWorker struct {
	offeredRepo    repository.OfferedSlotRepository
	outboxRepo     repository.OutboxRepository
	offerRetention time.Duration
	sweepInterval  time.Duration
	logger         *logger.Logger
}

func NewRetentionWorker(offeredRepo repository.OfferedSlotRepository, outboxRepo repository.OutboxRepository, offerRetention, sweepInterval time.Duration, logger *logger.Logger) *RetentionWorker {
	if offerRetention <= 0 {
		offerRetention = 30 * 24 * time.Hour
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	return &RetentionWorker{
		offeredRepo:    offeredRepo,
		outboxRepo:     outboxRepo,
		offerRetention: offerRetention,
		sweepInterval:  sweepInterval,
		logger:         logger,
	}
}

func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.logger.Info("starting retention worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down retention worker")
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error(err, "retention sweep failed")
			}
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-w.offerRetention)

	offers, err := w.offeredRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune offered slots: %w", err)
	}

	events, err := w.outboxRepo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune outbox events: %w", err)
	}

	if offers > 0 || events > 0 {
		w.logger.Info("retention sweep complete", "offers_pruned", offers, "events_pruned", events)
	}
	return nil
}
