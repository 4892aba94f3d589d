package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/internal/repository"
)

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.BookedSlot) error {
	query := `
		INSERT INTO booked_slots (slot_id, clinician)
		VALUES ($1, $2)
		ON CONFLICT (slot_id, clinician) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, booking.SlotID, booking.Clinician)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, slotID, clinician string) error {
	query := `DELETE FROM booked_slots WHERE slot_id = $1 AND clinician = $2`
	_, err := r.db.ExecContext(ctx, query, slotID, clinician)
	return err
}

func (r *bookingRepository) List(ctx context.Context) ([]model.BookedSlot, error) {
	query := `SELECT slot_id, clinician FROM booked_slots`
	var bookings []model.BookedSlot
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
