package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/model"
)

// All repository interfaces in one file
type (
	// ClientRepository handles prospective-client records
	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error)
	}

	// BookingRepository handles committed (slot, clinician) bookings
	BookingRepository interface {
		Create(ctx context.Context, booking *model.BookedSlot) error
		Delete(ctx context.Context, slotID, clinician string) error
		List(ctx context.Context) ([]model.BookedSlot, error)
	}

	// OfferedSlotRepository records which slots were offered to which client
	OfferedSlotRepository interface {
		CreateBatch(ctx context.Context, offers []model.OfferedSlot) error
		ListSlotIDs(ctx context.Context, clientID uuid.UUID) ([]string, error)
		ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.OfferedSlot, error)
		DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
	}

	// UserRepository handles staff accounts
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	// OutboxRepository handles the transactional outbox
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
