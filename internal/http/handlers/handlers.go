package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/techserve_ng/backend/internal/chatbot"
	"github.com/techserve_ng/backend/internal/models"
	"github.com/techserve_ng/backend/internal/service"
)

// LeadRepository is the part of db.Store the admin and health routes use.
type LeadRepository interface {
	Ping(ctx context.Context) error
	GetLead(ctx context.Context, id string) (models.Lead, error)
	ListLeads(ctx context.Context, f models.LeadFilter) (models.LeadPage, error)
	UpdateLead(ctx context.Context, id string, u models.LeadUpdate) (models.Lead, error)
}

type Handler struct {
	Store          LeadRepository
	Intake         *service.IntakeService
	Chat           *chatbot.Engine
	Validator      *validator.Validate
	Logger         zerolog.Logger
	CompanyPhone   string
	ContactPageURL string
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
