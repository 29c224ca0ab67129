package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

// RegistrationService handles intake form submission and the registration
// query engine.
type RegistrationService interface {
	Submit(ctx context.Context, req *dto.SubmitRegistrationRequest) (*models.Registration, error)
	Search(ctx context.Context, filter models.RegistrationFilter) ([]*models.Registration, error)
	GetByID(ctx context.Context, id int64) (*models.Registration, error)
}

type registrationServiceImpl struct {
	registrationRepo RegistrationStore
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(registrationRepo RegistrationStore, logger zerolog.Logger) RegistrationService {
	return &registrationServiceImpl{
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// Submit validates and persists one intake form submission. Full name,
// email and contact number are the only mandatory fields; nothing is
// persisted when they are missing.
func (s *registrationServiceImpl) Submit(ctx context.Context, req *dto.SubmitRegistrationRequest) (*models.Registration, error) {
	reg := req.ToModel()

	if reg.FullName == "" || reg.Email == "" || reg.ContactNumber == "" {
		return nil, apperrors.NewValidationError("Full Name, Email ID, and Contact Number are required.")
	}

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("error saving registration: %w", err)
	}

	s.logger.Info().Int64("registrationID", reg.ID).Str("email", reg.Email).Msg("Registration submitted")
	return reg, nil
}

// Search runs the registration query engine: free-text, status and batch
// predicates ANDed together, newest submission first. Read-only.
func (s *registrationServiceImpl) Search(ctx context.Context, filter models.RegistrationFilter) ([]*models.Registration, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Status = strings.TrimSpace(filter.Status)
	filter.Batch = strings.TrimSpace(filter.Batch)

	regs, err := s.registrationRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching registrations: %w", err)
	}
	return regs, nil
}

// GetByID retrieves one registration in full
func (s *registrationServiceImpl) GetByID(ctx context.Context, id int64) (*models.Registration, error) {
	if id <= 0 {
		return nil, apperrors.ErrRegistrationNotFound
	}
	return s.registrationRepo.GetByID(ctx, id)
}
