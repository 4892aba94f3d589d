package outreach

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/intake-api/internal/service/outreach"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/httputil"
)

type Handler struct {
	service outreach.OutreachService
}

func NewHandler(service outreach.OutreachService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/clients/:id/outreach")
	{
		group.POST("", h.SendOffers)
		group.GET("", h.OfferHistory)
	}
}

type offerRequest struct {
	Count     int      `json:"count" binding:"omitempty,min=1,max=10"`
	Mode      string   `json:"mode" binding:"omitempty,oneof=full by-clinician by-day"`
	Days      []string `json:"days"`
	TimeRange string   `json:"time_range" binding:"omitempty,oneof=morning afternoon evening"`
}

func (h *Handler) SendOffers(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid client id", err))
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.service.SendOffers(c.Request.Context(), clientID, outreach.OfferRequest{
		Count:     req.Count,
		Mode:      req.Mode,
		Days:      req.Days,
		TimeRange: req.TimeRange,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) OfferHistory(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid client id", err))
		return
	}

	offers, err := h.service.OfferHistory(c.Request.Context(), clientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, offers)
}
