package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/matching"
	"github.com/jwalitptl/intake-api/internal/model"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/logger"
)

type stubSource struct {
	slots []model.AvailabilitySlot
	err   error
}

func (s *stubSource) Slots(ctx context.Context) ([]model.AvailabilitySlot, error) {
	return s.slots, s.err
}

type stubBookingRepo struct {
	bookings []model.BookedSlot
	created  []model.BookedSlot
	deleted  [][2]string
}

func (r *stubBookingRepo) Create(ctx context.Context, b *model.BookedSlot) error {
	r.created = append(r.created, *b)
	return nil
}

func (r *stubBookingRepo) Delete(ctx context.Context, slotID, clinician string) error {
	r.deleted = append(r.deleted, [2]string{slotID, clinician})
	return nil
}

func (r *stubBookingRepo) List(ctx context.Context) ([]model.BookedSlot, error) {
	return r.bookings, nil
}

type stubOfferedRepo struct {
	slotIDs map[uuid.UUID][]string
}

func (r *stubOfferedRepo) CreateBatch(ctx context.Context, offers []model.OfferedSlot) error {
	return nil
}

func (r *stubOfferedRepo) ListSlotIDs(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	return r.slotIDs[clientID], nil
}

func (r *stubOfferedRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.OfferedSlot, error) {
	return nil, nil
}

func (r *stubOfferedRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func fixtureSlots() []model.AvailabilitySlot {
	return []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"Avery", "Blake"}, Insurance: "Aetna"},
		{ID: "tue-10", Day: "Tuesday", Time: "10:00 AM", Clinicians: []string{"Avery"}, Insurance: ""},
		{ID: "wed-1", Day: "Wednesday", Time: "1:00 PM", Clinicians: []string{"Blake"}, Insurance: "Cigna"},
	}
}

func newTestService(src *stubSource, bookings *stubBookingRepo, offered *stubOfferedRepo) *Service {
	return NewService(src, bookings, offered, logger.NewLogger(nil), nil)
}

func TestClinicianStats(t *testing.T) {
	svc := newTestService(
		&stubSource{slots: fixtureSlots()},
		&stubBookingRepo{bookings: []model.BookedSlot{{SlotID: "mon-9", Clinician: "Avery"}}},
		&stubOfferedRepo{},
	)

	stats, err := svc.ClinicianStats(context.Background(), StatsQuery{Sort: "availability"})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Blake has two open instances, Avery one open and one booked.
	assert.Equal(t, "Blake", stats[0].Name)
	assert.Equal(t, 2, stats[0].AvailableSlots)
	assert.Equal(t, "Avery", stats[1].Name)
	assert.Equal(t, 1, stats[1].AvailableSlots)
	assert.Equal(t, 1, stats[1].BookedSlots)
}

func TestClinicianStats_RequestedFirst(t *testing.T) {
	svc := newTestService(&stubSource{slots: fixtureSlots()}, &stubBookingRepo{}, &stubOfferedRepo{})

	stats, err := svc.ClinicianStats(context.Background(), StatsQuery{RequestedClinician: "blake"})
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	assert.Equal(t, "Blake", stats[0].Name)
	assert.True(t, stats[0].IsRequestedClinician)
}

func TestDistribution(t *testing.T) {
	svc := newTestService(&stubSource{slots: fixtureSlots()}, &stubBookingRepo{}, &stubOfferedRepo{})

	dist, err := svc.Distribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dist.ByDay["Monday"])
	assert.Equal(t, 2, dist.ByTime[string(matching.TimeRangeMorning)])
	assert.Equal(t, 2, dist.ByClinician["Avery"])
}

func TestSelect_ExcludesOfferedSlotsForClient(t *testing.T) {
	clientID := uuid.New()
	svc := newTestService(
		&stubSource{slots: fixtureSlots()},
		&stubBookingRepo{},
		&stubOfferedRepo{slotIDs: map[uuid.UUID][]string{clientID: {"mon-9", "tue-10"}}},
	)

	got, err := svc.Select(context.Background(), SelectRequest{Count: 3, ForClientID: &clientID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "wed-1", got[0].SlotID)
}

func TestSelect_MisconfigurationIsConfigError(t *testing.T) {
	svc := newTestService(&stubSource{slots: fixtureSlots()}, &stubBookingRepo{}, &stubOfferedRepo{})

	_, err := svc.Select(context.Background(), SelectRequest{Mode: "by-clinician", Count: 2})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrConfig, appErr.Code)
	assert.ErrorIs(t, err, matching.ErrClinicianRequired)
}

func TestSelect_SourceErrorPropagates(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("sheet unreachable")}, &stubBookingRepo{}, &stubOfferedRepo{})

	_, err := svc.Select(context.Background(), SelectRequest{Count: 2})
	assert.ErrorContains(t, err, "sheet unreachable")
}

func TestBookAndCancel(t *testing.T) {
	bookings := &stubBookingRepo{}
	svc := newTestService(&stubSource{slots: fixtureSlots()}, bookings, &stubOfferedRepo{})

	require.NoError(t, svc.Book(context.Background(), "mon-9", "Avery"))
	require.Len(t, bookings.created, 1)
	assert.Equal(t, model.BookedSlot{SlotID: "mon-9", Clinician: "Avery"}, bookings.created[0])

	require.NoError(t, svc.CancelBooking(context.Background(), "mon-9", "Avery"))
	require.Len(t, bookings.deleted, 1)

	err := svc.Book(context.Background(), "", "Avery")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}
