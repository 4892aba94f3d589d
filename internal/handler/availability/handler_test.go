package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/matching"
	"github.com/jwalitptl/intake-api/internal/model"
	availabilitysvc "github.com/jwalitptl/intake-api/internal/service/availability"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
)

type stubService struct {
	stats     []model.ClinicianStats
	selected  []model.SelectedSlotInfo
	selectErr error
	lastQuery availabilitysvc.StatsQuery
	lastReq   availabilitysvc.SelectRequest
}

func (s *stubService) ClinicianStats(ctx context.Context, q availabilitysvc.StatsQuery) ([]model.ClinicianStats, error) {
	s.lastQuery = q
	return s.stats, nil
}

func (s *stubService) Distribution(ctx context.Context) (*model.SlotDistribution, error) {
	return &model.SlotDistribution{ByDay: map[string]int{"Monday": 2}}, nil
}

func (s *stubService) Search(ctx context.Context, c matching.FilterCriteria) ([]matching.FilteredSlot, error) {
	return nil, nil
}

func (s *stubService) Select(ctx context.Context, req availabilitysvc.SelectRequest) ([]model.SelectedSlotInfo, error) {
	s.lastReq = req
	return s.selected, s.selectErr
}

func (s *stubService) Book(ctx context.Context, slotID, clinician string) error { return nil }

func (s *stubService) CancelBooking(ctx context.Context, slotID, clinician string) error {
	return nil
}

func setupRouter(svc availabilitysvc.AvailabilityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestClinicianStatsEndpoint(t *testing.T) {
	svc := &stubService{stats: []model.ClinicianStats{{Name: "Avery", TotalSlots: 3, AvailableSlots: 2, BookedSlots: 1}}}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/clinicians?sort=insurance&clinician=Avery&insurance=Aetna", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, availabilitysvc.StatsQuery{
		Sort:               "insurance",
		RequestedClinician: "Avery",
		ClientInsurance:    "Aetna",
	}, svc.lastQuery)

	var resp struct {
		Success bool                   `json:"success"`
		Data    []model.ClinicianStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Avery", resp.Data[0].Name)
}

func TestSelectEndpoint(t *testing.T) {
	svc := &stubService{selected: []model.SelectedSlotInfo{{SlotID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"Avery"}}}}
	router := setupRouter(svc)

	body := `{"mode":"by-day","count":2,"days":["Monday"],"time_range":"morning","insurance":"Aetna"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/select", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "by-day", svc.lastReq.Mode)
	assert.Equal(t, 2, svc.lastReq.Count)
	assert.Equal(t, []string{"Monday"}, svc.lastReq.Days)
	assert.Equal(t, matching.TimeRangeMorning, svc.lastReq.Criteria.TimeRange)
	assert.True(t, svc.lastReq.Criteria.RequireInsuranceMatch)
}

func TestSelectEndpoint_MisconfigurationIs400(t *testing.T) {
	svc := &stubService{selectErr: apperrors.Config("invalid selection parameters", matching.ErrClinicianRequired)}
	router := setupRouter(svc)

	body := `{"mode":"by-clinician","count":2}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/select", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectEndpoint_RejectsBadCount(t *testing.T) {
	router := setupRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/select", strings.NewReader(`{"count":0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBooking_RequiresParams(t *testing.T) {
	router := setupRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/availability/bookings?slot_id=mon-9", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
