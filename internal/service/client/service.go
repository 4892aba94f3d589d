package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/internal/repository"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/logger"
)

type ClientService interface {
	CreateClient(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, req *model.UpdateClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error)
}

// allowedTransitions encodes the intake workflow. Terminal states have no
// outgoing edges; outreach can fall back to evaluating when a client goes
// quiet and is re-triaged.
var allowedTransitions = map[model.ClientStatus][]model.ClientStatus{
	model.ClientStatusNew:        {model.ClientStatusEvaluating, model.ClientStatusReferred, model.ClientStatusClosed},
	model.ClientStatusEvaluating: {model.ClientStatusOutreach, model.ClientStatusReferred, model.ClientStatusClosed},
	model.ClientStatusOutreach:   {model.ClientStatusScheduled, model.ClientStatusEvaluating, model.ClientStatusReferred, model.ClientStatusClosed},
	model.ClientStatusScheduled:  {model.ClientStatusClosed},
}

type Service struct {
	repo       repository.ClientRepository
	outboxRepo repository.OutboxRepository
	logger     *logger.Logger
}

func NewService(repo repository.ClientRepository, outboxRepo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

func (s *Service) CreateClient(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	now := time.Now()
	client := &model.Client{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		InsuranceProvider:  req.InsuranceProvider,
		RequestedClinician: req.RequestedClinician,
		Status:             model.ClientStatusNew,
		Notes:              req.Notes,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.enqueueEvent(ctx, model.EventClientCreated, client)
	return client, nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("client", err)
	}
	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, req *model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("client", err)
	}

	if req.Status != nil && *req.Status != client.Status {
		if !transitionAllowed(client.Status, *req.Status) {
			return nil, apperrors.BadRequest(
				fmt.Sprintf("cannot move client from %s to %s", client.Status, *req.Status), nil)
		}
		client.Status = *req.Status
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.InsuranceProvider != nil {
		client.InsuranceProvider = *req.InsuranceProvider
	}
	if req.RequestedClinician != nil {
		client.RequestedClinician = *req.RequestedClinician
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	client.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.enqueueEvent(ctx, model.EventClientUpdated, client)
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return apperrors.NotFound("client", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *Service) ListClients(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func transitionAllowed(from, to model.ClientStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// enqueueEvent is best-effort; a stuck outbox must not fail the write that
// already committed.
func (s *Service) enqueueEvent(ctx context.Context, eventType string, client *model.Client) {
	payload, err := json.Marshal(client)
	if err != nil {
		s.logger.Error(err, "failed to marshal client event", "event_type", eventType)
		return
	}

	now := time.Now()
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to enqueue client event", "event_type", eventType, "client_id", client.ID.String())
	}
}
