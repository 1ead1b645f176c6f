package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techserve_ng/backend/internal/metrics"
	"github.com/techserve_ng/backend/internal/models"
)

const (
	msgRateLimited  = "Too many requests. Please wait a minute and try again."
	msgMissingField = "Please fill in all required fields."
	msgInvalidPhone = "Please enter a valid Nigerian phone number, for example 0803 123 4567."
	msgInvalidEmail = "Please enter a valid email address."

	defaultNotifyTimeout = 15 * time.Second
)

var defaultValidator = validator.New()

// LeadRequest is the body of POST /api/leads.
type LeadRequest struct {
	Name                 string `json:"name" validate:"required,max=100"`
	Phone                string `json:"phone" validate:"required,max=20"`
	Email                string `json:"email" validate:"omitempty,email,max=255"`
	Service              string `json:"service" validate:"required,max=100"`
	Location             string `json:"location" validate:"required,max=200"`
	Message              string `json:"message" validate:"required,max=1000"`
	SourcePage           string `json:"source_page" validate:"required,max=500"`
	PreferredContactTime string `json:"preferred_contact_time" validate:"max=100"`
	Honeypot             string `json:"honeypot"`
}

func (r *LeadRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.Service = strings.TrimSpace(r.Service)
	r.Location = strings.TrimSpace(r.Location)
	r.Message = strings.TrimSpace(r.Message)
	r.SourcePage = strings.TrimSpace(r.SourcePage)
	r.PreferredContactTime = strings.TrimSpace(r.PreferredContactTime)
}

type LeadStore interface {
	CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error)
}

type Notifier interface {
	NotifyNewLead(ctx context.Context, lead models.Lead) error
}

// Result is the outcome of a successful submission. Discarded submissions
// look successful to the caller but were never stored.
type Result struct {
	Lead      *models.Lead
	Discarded bool
}

type IntakeService struct {
	Store         LeadStore
	Limiter       Limiter
	Notifier      Notifier
	Validator     *validator.Validate
	Logger        zerolog.Logger
	CompanyPhone  string
	NotifyTimeout time.Duration

	// NewID and Now are replaced in tests.
	NewID func() string
	Now   func() time.Time

	pending sync.WaitGroup
}

// Submit runs one contact-form submission through rate limiting, the
// honeypot check, validation and persistence, then notifies in the
// background.
func (s *IntakeService) Submit(ctx context.Context, req LeadRequest, fingerprint string) (Result, error) {
	if s.Limiter != nil {
		allowed, err := s.Limiter.Allow(ctx, fingerprint)
		if err != nil {
			s.Logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			allowed = true
		}
		if !allowed {
			s.Logger.Info().Str("fingerprint", fingerprint).Msg("lead_rate_limited")
			metrics.RecordLeadSubmission(metrics.OutcomeRateLimited)
			return Result{}, newError(KindRateLimited, msgRateLimited, nil)
		}
	}

	if req.Honeypot != "" {
		s.Logger.Info().Str("fingerprint", fingerprint).Msg("lead_honeypot_discarded")
		metrics.RecordLeadSubmission(metrics.OutcomeHoneypot)
		return Result{Discarded: true}, nil
	}

	req.trim()
	if err := s.validator().Struct(req); err != nil {
		metrics.RecordLeadSubmission(metrics.OutcomeInvalid)
		if req.Email != "" && isFieldError(err, "Email") {
			return Result{}, newError(KindValidation, msgInvalidEmail, err)
		}
		return Result{}, newError(KindValidation, msgMissingField, err)
	}
	if !ValidPhone(req.Phone) {
		metrics.RecordLeadSubmission(metrics.OutcomeInvalid)
		return Result{}, newError(KindValidation, msgInvalidPhone, nil)
	}

	now := s.now()
	lead := models.Lead{
		ID:                   s.newID(),
		Name:                 req.Name,
		Phone:                stripSpaces(req.Phone),
		PhoneE164:            NormalizePhone(req.Phone),
		Email:                optional(req.Email),
		Service:              req.Service,
		Location:             req.Location,
		Message:              req.Message,
		SourcePage:           req.SourcePage,
		PreferredContactTime: optional(req.PreferredContactTime),
		Status:               models.LeadStatusNew,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.Store.CreateLead(ctx, lead)
	if err != nil {
		s.Logger.Error().Err(err).Msg("lead insert failed")
		metrics.RecordLeadSubmission(metrics.OutcomeFailed)
		return Result{}, newError(KindUnavailable, s.unavailableMessage(), err)
	}

	s.Logger.Info().Str("lead_id", created.ID).Str("service", created.Service).Msg("lead_created")
	metrics.RecordLeadSubmission(metrics.OutcomeCreated)

	s.notify(created)
	return Result{Lead: &created}, nil
}

// Wait blocks until every background notification has finished.
func (s *IntakeService) Wait() {
	s.pending.Wait()
}

func (s *IntakeService) notify(lead models.Lead) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := s.Notifier.NotifyNewLead(ctx, lead)
		metrics.RecordLeadNotification(err)
		if err != nil {
			s.Logger.Warn().Err(err).Str("lead_id", lead.ID).Msg("lead_notify_failed")
		}
	}()
}

func (s *IntakeService) unavailableMessage() string {
	if s.CompanyPhone == "" {
		return "We couldn't submit your request right now. Please try again or call us directly."
	}
	return fmt.Sprintf("We couldn't submit your request right now. Please try again or call us on %s.", s.CompanyPhone)
}

func (s *IntakeService) validator() *validator.Validate {
	if s.Validator == nil {
		return defaultValidator
	}
	return s.Validator
}

func (s *IntakeService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *IntakeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isFieldError(err error, field string) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
