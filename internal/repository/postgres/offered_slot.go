package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/internal/repository"
)

type offeredSlotRepository struct {
	BaseRepository
}

func NewOfferedSlotRepository(db *sqlx.DB) repository.OfferedSlotRepository {
	return &offeredSlotRepository{NewBaseRepository(db)}
}

func (r *offeredSlotRepository) CreateBatch(ctx context.Context, offers []model.OfferedSlot) error {
	if len(offers) == 0 {
		return nil
	}
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO offered_slots (id, client_id, slot_id, clinician, day, time, offered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for i := range offers {
			if offers[i].ID == uuid.Nil {
				offers[i].ID = uuid.New()
			}
			if offers[i].OfferedAt.IsZero() {
				offers[i].OfferedAt = time.Now()
			}
			if _, err := tx.ExecContext(ctx, query,
				offers[i].ID,
				offers[i].ClientID,
				offers[i].SlotID,
				offers[i].Clinician,
				offers[i].Day,
				offers[i].Time,
				offers[i].OfferedAt,
			); err != nil {
				return fmt.Errorf("failed to record offered slot: %w", err)
			}
		}
		return nil
	})
}

func (r *offeredSlotRepository) ListSlotIDs(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	query := `SELECT DISTINCT slot_id FROM offered_slots WHERE client_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list offered slot ids: %w", err)
	}
	return ids, nil
}

func (r *offeredSlotRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.OfferedSlot, error) {
	query := `SELECT * FROM offered_slots WHERE client_id = $1 ORDER BY offered_at DESC`
	var offers []model.OfferedSlot
	if err := r.db.SelectContext(ctx, &offers, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list offered slots: %w", err)
	}
	return offers, nil
}

func (r *offeredSlotRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM offered_slots WHERE offered_at < $1`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale offered slots: %w", err)
	}
	return res.RowsAffected()
}
