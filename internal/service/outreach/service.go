package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/email"
	"github.com/jwalitptl/intake-api/internal/matching"
	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/internal/repository"
	"github.com/jwalitptl/intake-api/internal/service/availability"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/logger"
	"github.com/jwalitptl/intake-api/pkg/metrics"
)

type OutreachService interface {
	SendOffers(ctx context.Context, clientID uuid.UUID, req OfferRequest) (*OfferResult, error)
	OfferHistory(ctx context.Context, clientID uuid.UUID) ([]model.OfferedSlot, error)
}

// OfferRequest tunes a single outreach run. Zero values fall back to the
// client's own preferences and the configured default count.
type OfferRequest struct {
	Count     int
	Mode      string
	Days      []string
	TimeRange string
}

type OfferResult struct {
	Client *model.Client            `json:"client"`
	Offers []model.SelectedSlotInfo `json:"offers"`
}

// outreachSentPayload is what the outbox event carries to subscribers.
type outreachSentPayload struct {
	ClientID uuid.UUID `json:"client_id"`
	Email    string    `json:"email"`
	SlotIDs  []string  `json:"slot_ids"`
	SentAt   time.Time `json:"sent_at"`
}

type Service struct {
	clients      repository.ClientRepository
	offeredRepo  repository.OfferedSlotRepository
	outboxRepo   repository.OutboxRepository
	availability availability.AvailabilityService
	email        email.Service
	defaultCount int
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(clients repository.ClientRepository, offeredRepo repository.OfferedSlotRepository, outboxRepo repository.OutboxRepository, availabilitySvc availability.AvailabilityService, emailSvc email.Service, defaultCount int, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	if defaultCount <= 0 {
		defaultCount = 3
	}
	return &Service{
		clients:      clients,
		offeredRepo:  offeredRepo,
		outboxRepo:   outboxRepo,
		availability: availabilitySvc,
		email:        emailSvc,
		defaultCount: defaultCount,
		logger:       logger,
		metrics:      metrics,
	}
}

// SendOffers picks slots for the client, emails them, and records what was
// offered so the next run never repeats a slot.
func (s *Service) SendOffers(ctx context.Context, clientID uuid.UUID, req OfferRequest) (*OfferResult, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, apperrors.NotFound("client", err)
	}
	if client.Status == model.ClientStatusClosed || client.Status == model.ClientStatusReferred {
		return nil, apperrors.BadRequest(fmt.Sprintf("client is %s and not eligible for outreach", client.Status), nil)
	}

	selectReq := s.buildSelectRequest(client, req)
	offers, err := s.availability.Select(ctx, selectReq)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, apperrors.NotFound("matching availability", nil)
	}

	if err := s.email.SendOffer(ctx, client.Email, client.Name, offers); err != nil {
		if s.metrics != nil {
			s.metrics.OutreachEmailsFailed.Inc()
		}
		return nil, fmt.Errorf("failed to send offer email to client %s: %w", client.ID, err)
	}
	if s.metrics != nil {
		s.metrics.OutreachEmailsSent.Inc()
	}

	if err := s.recordOffers(ctx, client, offers); err != nil {
		// The email is already out; surfacing the write failure would make
		// the caller retry and double-send. Log and report success.
		s.logger.Error(err, "failed to record sent offers", "client_id", client.ID.String())
	}

	if client.Status == model.ClientStatusNew || client.Status == model.ClientStatusEvaluating {
		client.Status = model.ClientStatusOutreach
		client.UpdatedAt = time.Now()
		if err := s.clients.Update(ctx, client); err != nil {
			s.logger.Error(err, "failed to advance client to outreach", "client_id", client.ID.String())
		}
	}

	return &OfferResult{Client: client, Offers: offers}, nil
}

func (s *Service) OfferHistory(ctx context.Context, clientID uuid.UUID) ([]model.OfferedSlot, error) {
	offers, err := s.offeredRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offered slots: %w", err)
	}
	return offers, nil
}

func (s *Service) buildSelectRequest(client *model.Client, req OfferRequest) availability.SelectRequest {
	count := req.Count
	if count <= 0 {
		count = s.defaultCount
	}

	out := availability.SelectRequest{
		Mode:        req.Mode,
		Count:       count,
		Days:        req.Days,
		ForClientID: &client.ID,
		Criteria: matching.FilterCriteria{
			TimeRange: matching.TimeRange(req.TimeRange),
		},
	}

	if client.InsuranceProvider != "" {
		out.Criteria.RequireInsuranceMatch = true
		out.Criteria.ClientInsurance = client.InsuranceProvider
	}
	if req.Mode == "" && client.RequestedClinician != "" {
		out.Mode = string(matching.SelectByClinician)
		out.Clinician = client.RequestedClinician
	}
	if out.Mode == string(matching.SelectByClinician) && out.Clinician == "" {
		out.Clinician = client.RequestedClinician
	}

	return out
}

func (s *Service) recordOffers(ctx context.Context, client *model.Client, offers []model.SelectedSlotInfo) error {
	now := time.Now()
	records := make([]model.OfferedSlot, 0, len(offers))
	slotIDs := make([]string, 0, len(offers))
	for _, o := range offers {
		clinician := ""
		if len(o.Clinicians) > 0 {
			clinician = o.Clinicians[0]
		}
		records = append(records, model.OfferedSlot{
			ID:        uuid.New(),
			ClientID:  client.ID,
			SlotID:    o.SlotID,
			Clinician: clinician,
			Day:       o.Day,
			Time:      o.Time,
			OfferedAt: now,
		})
		slotIDs = append(slotIDs, o.SlotID)
	}

	if err := s.offeredRepo.CreateBatch(ctx, records); err != nil {
		return fmt.Errorf("failed to record offered slots: %w", err)
	}
	if s.metrics != nil {
		s.metrics.OfferedSlotsRecorded.Add(float64(len(records)))
	}

	payload, err := json.Marshal(outreachSentPayload{
		ClientID: client.ID,
		Email:    client.Email,
		SlotIDs:  slotIDs,
		SentAt:   now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal outreach payload: %w", err)
	}

	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventOutreachSent,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue outreach event: %w", err)
	}
	return nil
}
