package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techserve_ng/backend/internal/db"
	"github.com/techserve_ng/backend/internal/models"
	"github.com/techserve_ng/backend/internal/service"
)

type LeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type UpdateLeadRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=new contacted quoted closed"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

// @Summary Submit a contact form lead
// @Description Public intake for the quote request form. Honeypot submissions are accepted and dropped.
// @Tags leads
// @Accept json
// @Produce json
// @Param payload body service.LeadRequest true "Lead"
// @Success 200 {object} LeadResponse
// @Failure 400 {object} LeadResponse
// @Failure 429 {object} LeadResponse
// @Failure 500 {object} LeadResponse
// @Router /api/leads [post]
func (h *Handler) CreateLead(c *gin.Context) {
	var req service.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Still counted by the limiter; validation rejects the empty request.
		h.Logger.Debug().Err(err).Msg("lead body rejected")
		req = service.LeadRequest{}
	}

	fp := service.Fingerprint(c.GetHeader("X-Forwarded-For"), c.RemoteIP(), c.Request.UserAgent())
	res, err := h.Intake.Submit(c.Request.Context(), req, fp)
	if err != nil {
		var se *service.Error
		if errors.As(err, &se) {
			c.JSON(se.HTTPStatus(), LeadResponse{Error: se.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, LeadResponse{Error: "Something went wrong. Please call us on " + h.CompanyPhone + "."})
		return
	}
	if res.Discarded {
		c.JSON(http.StatusOK, LeadResponse{Success: true})
		return
	}
	c.JSON(http.StatusOK, LeadResponse{Success: true, ID: res.Lead.ID})
}

// @Summary List leads
// @Tags admin
// @Produce json
// @Param status query string false "new, contacted, quoted or closed"
// @Param q query string false "Search name, phone, location and message"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} models.LeadPage
// @Router /api/admin/leads [get]
func (h *Handler) LeadsList(c *gin.Context) {
	status := models.LeadStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown status", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.Store.ListLeads(c.Request.Context(), models.LeadFilter{
		Status: status,
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.Logger.Error().Err(err).Msg("list leads failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list leads", nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Lead details
// @Tags admin
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 404 {object} map[string]any
// @Router /api/admin/leads/{id} [get]
func (h *Handler) LeadDetails(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", nil)
		return
	}
	lead, err := h.Store.GetLead(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", nil)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("lead_id", id).Msg("get lead failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load lead", nil)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary Update lead status or note
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param payload body UpdateLeadRequest true "Changes"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/leads/{id} [patch]
func (h *Handler) UpdateLead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", nil)
		return
	}
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.Status == nil && req.Note == nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Nothing to update", nil)
		return
	}

	u := models.LeadUpdate{AdminNote: req.Note}
	if req.Status != nil {
		st := models.LeadStatus(*req.Status)
		u.Status = &st
	}
	lead, err := h.Store.UpdateLead(c.Request.Context(), id, u)
	if errors.Is(err, db.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", nil)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("lead_id", id).Msg("update lead failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update lead", nil)
		return
	}
	h.Logger.Info().Str("lead_id", id).Str("status", string(lead.Status)).Msg("lead_updated")
	c.JSON(http.StatusOK, lead)
}
