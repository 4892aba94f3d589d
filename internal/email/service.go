package email

import (
	"context"

	"github.com/jwalitptl/intake-api/internal/model"
)

type Service interface {
	// SendOffer sends an outreach email offering the selected slots.
	SendOffer(ctx context.Context, to, clientName string, offers []model.SelectedSlotInfo) error
	SendCustom(ctx context.Context, to, subject, body string) error
}
