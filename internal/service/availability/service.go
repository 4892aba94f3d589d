package availability

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/matching"
	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/internal/repository"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/logger"
	"github.com/jwalitptl/intake-api/pkg/metrics"
)

// SlotSource yields the current availability snapshot.
type SlotSource interface {
	Slots(ctx context.Context) ([]model.AvailabilitySlot, error)
}

type AvailabilityService interface {
	ClinicianStats(ctx context.Context, query StatsQuery) ([]model.ClinicianStats, error)
	Distribution(ctx context.Context) (*model.SlotDistribution, error)
	Search(ctx context.Context, criteria matching.FilterCriteria) ([]matching.FilteredSlot, error)
	Select(ctx context.Context, req SelectRequest) ([]model.SelectedSlotInfo, error)
	Book(ctx context.Context, slotID, clinician string) error
	CancelBooking(ctx context.Context, slotID, clinician string) error
}

// StatsQuery shapes the clinician statistics view.
type StatsQuery struct {
	Sort               string
	RequestedClinician string
	ClientInsurance    string
}

// SelectRequest shapes a selection call. ForClientID, when set, excludes
// slots already offered to that client.
type SelectRequest struct {
	Mode        string
	Count       int
	Clinician   string
	Days        []string
	Criteria    matching.FilterCriteria
	ForClientID *uuid.UUID
	Rand        *rand.Rand
}

type Service struct {
	source      SlotSource
	bookingRepo repository.BookingRepository
	offeredRepo repository.OfferedSlotRepository
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewService(source SlotSource, bookingRepo repository.BookingRepository, offeredRepo repository.OfferedSlotRepository, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		source:      source,
		bookingRepo: bookingRepo,
		offeredRepo: offeredRepo,
		logger:      logger,
		metrics:     metrics,
	}
}

// snapshot reads slots and bookings together so every engine call works
// from one consistent view.
func (s *Service) snapshot(ctx context.Context) ([]model.AvailabilitySlot, []model.BookedSlot, error) {
	slots, err := s.source.Slots(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load availability slots: %w", err)
	}

	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	return slots, bookings, nil
}

func (s *Service) ClinicianStats(ctx context.Context, query StatsQuery) ([]model.ClinicianStats, error) {
	slots, bookings, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := matching.ComputeClinicianStats(slots, bookings, matching.StatsParams{
		RequestedClinician: query.RequestedClinician,
		ClientInsurance:    query.ClientInsurance,
	})
	matching.SortClinicianStats(stats, matching.ParseSortStrategy(query.Sort))
	return stats, nil
}

func (s *Service) Distribution(ctx context.Context) (*model.SlotDistribution, error) {
	slots, bookings, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	dist := matching.ComputeDistribution(slots, bookings)
	return &dist, nil
}

func (s *Service) Search(ctx context.Context, criteria matching.FilterCriteria) ([]matching.FilteredSlot, error) {
	slots, bookings, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return matching.FilterSlots(slots, bookings, criteria), nil
}

func (s *Service) Select(ctx context.Context, req SelectRequest) ([]model.SelectedSlotInfo, error) {
	slots, bookings, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	criteria := req.Criteria
	if req.ForClientID != nil {
		offered, err := s.offeredRepo.ListSlotIDs(ctx, *req.ForClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to load offered slots for client %s: %w", req.ForClientID, err)
		}
		criteria.ExcludeSlotIDs = append(criteria.ExcludeSlotIDs, offered...)
	}

	selected, err := matching.SelectSlots(slots, bookings, matching.SelectionOptions{
		Mode:      matching.SelectionMode(req.Mode),
		Count:     req.Count,
		Clinician: req.Clinician,
		Days:      req.Days,
		Criteria:  criteria,
		Rand:      req.Rand,
	})
	if err != nil {
		// Misconfiguration is the caller's bug, not a transient failure.
		// Logged here, once, so handlers and retries don't repeat it.
		if errors.Is(err, matching.ErrClinicianRequired) ||
			errors.Is(err, matching.ErrDaysRequired) ||
			errors.Is(err, matching.ErrUnknownMode) {
			s.logger.Warn("slot selection misconfigured", "mode", req.Mode, "error", err.Error())
			if s.metrics != nil {
				s.metrics.SelectionMisconfig.Inc()
			}
			return nil, apperrors.Config("invalid selection parameters", err)
		}
		return nil, fmt.Errorf("failed to select slots: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SlotSelections.WithLabelValues(string(normalizeMode(req.Mode))).Inc()
		s.metrics.SelectionPoolSize.Observe(float64(len(selected)))
	}
	return selected, nil
}

func (s *Service) Book(ctx context.Context, slotID, clinician string) error {
	if slotID == "" || clinician == "" {
		return apperrors.BadRequest("slot id and clinician are required", nil)
	}

	booking := &model.BookedSlot{SlotID: slotID, Clinician: clinician}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return fmt.Errorf("failed to book slot %s for %s: %w", slotID, clinician, err)
	}
	return nil
}

func (s *Service) CancelBooking(ctx context.Context, slotID, clinician string) error {
	if err := s.bookingRepo.Delete(ctx, slotID, clinician); err != nil {
		return fmt.Errorf("failed to cancel booking %s for %s: %w", slotID, clinician, err)
	}
	return nil
}

func normalizeMode(mode string) matching.SelectionMode {
	if mode == "" {
		return matching.SelectFull
	}
	return matching.SelectionMode(mode)
}
