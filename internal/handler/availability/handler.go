package availability

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/matching"
	"github.com/jwalitptl/intake-api/internal/service/availability"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/httputil"
)

type Handler struct {
	service availability.AvailabilityService
}

func NewHandler(service availability.AvailabilityService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	avail := r.Group("/availability")
	{
		avail.GET("/clinicians", h.ClinicianStats)
		avail.GET("/distribution", h.Distribution)
		avail.GET("/slots", h.SearchSlots)
		avail.POST("/select", h.SelectSlots)
		avail.POST("/bookings", h.Book)
		avail.DELETE("/bookings", h.CancelBooking)
	}
}

func (h *Handler) ClinicianStats(c *gin.Context) {
	stats, err := h.service.ClinicianStats(c.Request.Context(), availability.StatsQuery{
		Sort:               c.Query("sort"),
		RequestedClinician: c.Query("clinician"),
		ClientInsurance:    c.Query("insurance"),
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}

func (h *Handler) Distribution(c *gin.Context) {
	dist, err := h.service.Distribution(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dist)
}

func (h *Handler) SearchSlots(c *gin.Context) {
	criteria := matching.FilterCriteria{
		Days:            splitParam(c.Query("days")),
		Clinicians:      splitParam(c.Query("clinicians")),
		TimeRange:       matching.TimeRange(c.Query("time_range")),
		ExactTime:       c.Query("time"),
		ClientInsurance: c.Query("insurance"),
	}
	criteria.RequireInsuranceMatch = criteria.ClientInsurance != ""

	slots, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

type selectRequest struct {
	Mode           string   `json:"mode"`
	Count          int      `json:"count" binding:"required,min=1,max=50"`
	Clinician      string   `json:"clinician"`
	Days           []string `json:"days"`
	TimeRange      string   `json:"time_range" binding:"omitempty,oneof=morning afternoon evening"`
	Insurance      string   `json:"insurance"`
	ClientID       string   `json:"client_id"`
	ExcludeSlotIDs []string `json:"exclude_slot_ids"`
}

func (h *Handler) SelectSlots(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	serviceReq := availability.SelectRequest{
		Mode:      req.Mode,
		Count:     req.Count,
		Clinician: req.Clinician,
		Days:      req.Days,
		Criteria: matching.FilterCriteria{
			TimeRange:             matching.TimeRange(req.TimeRange),
			RequireInsuranceMatch: req.Insurance != "",
			ClientInsurance:       req.Insurance,
			ExcludeSlotIDs:        req.ExcludeSlotIDs,
		},
	}
	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid client id", err))
			return
		}
		serviceReq.ForClientID = &clientID
	}

	selected, err := h.service.Select(c.Request.Context(), serviceReq)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, selected)
}

type bookingRequest struct {
	SlotID    string `json:"slot_id" binding:"required"`
	Clinician string `json:"clinician" binding:"required"`
}

func (h *Handler) Book(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.Book(c.Request.Context(), req.SlotID, req.Clinician); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"slot_id": req.SlotID, "clinician": req.Clinician})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	slotID := c.Query("slot_id")
	clinician := c.Query("clinician")
	if slotID == "" || clinician == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("slot_id and clinician are required", nil))
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), slotID, clinician); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"slot_id": slotID, "clinician": clinician})
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
