package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	appauth "github.com/coursehub/regportal/internal/app/auth"
	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
	"github.com/coursehub/regportal/internal/pkg/auth"
)

// StudentService handles the provisioning workflow and staff management of
// student accounts. Admin-only operations require a StaffActor from the
// authorization service.
type StudentService interface {
	// Provision converts a registration into an account and profile,
	// exactly once. The bool reports the idempotent already-provisioned
	// outcome: true means the returned account existed before the call and
	// nothing was created.
	Provision(ctx context.Context, actor appauth.StaffActor, registrationID int64, req *dto.ProvisionCredentialsRequest) (*models.User, bool, error)
	CreateStudent(ctx context.Context, actor appauth.StaffActor, req *dto.CreateStudentRequest) (*models.User, error)
	UpdateStudent(ctx context.Context, actor appauth.StaffActor, userID int64, req *dto.UpdateStudentRequest) (*models.User, error)
	ListStudents(ctx context.Context, actor appauth.StaffActor) ([]*models.User, error)
	// GetOwnProfile returns the caller's profile, creating an empty one on
	// first access.
	GetOwnProfile(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

// ProvisioningDefaults are the profile values a freshly provisioned account
// starts with.
type ProvisioningDefaults struct {
	CourseName     string
	CourseDuration string
}

type studentServiceImpl struct {
	userRepo         UserStore
	profileRepo      ProfileStore
	registrationRepo RegistrationStore
	defaults         ProvisioningDefaults
	logger           zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	userRepo UserStore,
	profileRepo ProfileStore,
	registrationRepo RegistrationStore,
	defaults ProvisioningDefaults,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		registrationRepo: registrationRepo,
		defaults:         defaults,
		logger:           logger,
	}
}

// Provision runs the registration-to-account workflow. Checks run in order
// and the first failure wins: missing registration, already provisioned
// (success, not failure), empty credentials, taken username. The store's
// unique constraint backs the username check under concurrency.
func (s *studentServiceImpl) Provision(ctx context.Context, _ appauth.StaffActor, registrationID int64, req *dto.ProvisionCredentialsRequest) (*models.User, bool, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, false, err
	}

	if reg.AccountCreated && reg.CreatedUserID != nil {
		existing, err := s.userRepo.GetByID(ctx, *reg.CreatedUserID)
		if err != nil {
			return nil, false, fmt.Errorf("error loading provisioned account: %w", err)
		}
		return existing, true, nil
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, false, apperrors.NewValidationError("Username and password are required.")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, false, apperrors.ErrUsernameAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("error hashing password: %w", err)
	}

	firstName, lastName := splitFullName(reg.FullName)
	user := &models.User{
		Username:  username,
		Password:  hashed,
		Email:     reg.Email,
		FirstName: firstName,
		LastName:  lastName,
		RoleType:  models.RoleStudent,
	}
	profile := &models.StudentProfile{
		CourseName:     s.defaults.CourseName,
		CourseDuration: s.defaults.CourseDuration,
		Notes:          fmt.Sprintf("Registration ID: %d", reg.ID),
	}

	if err := s.registrationRepo.Provision(ctx, reg.ID, user, profile); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyProvisioned) {
			// Lost a race with another provision of the same registration;
			// resolve to the account that won.
			return s.provisionedAccount(ctx, reg.ID)
		}
		return nil, false, err
	}

	s.logger.Info().
		Int64("registrationID", reg.ID).
		Int64("userID", user.ID).
		Str("username", user.Username).
		Msg("Registration provisioned")

	return user, false, nil
}

// provisionedAccount re-reads a registration and returns its account as the
// idempotent outcome.
func (s *studentServiceImpl) provisionedAccount(ctx context.Context, registrationID int64) (*models.User, bool, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, false, err
	}
	if reg.CreatedUserID == nil {
		return nil, false, fmt.Errorf("registration %d marked provisioned without an account", registrationID)
	}
	user, err := s.userRepo.GetByID(ctx, *reg.CreatedUserID)
	if err != nil {
		return nil, false, fmt.Errorf("error loading provisioned account: %w", err)
	}
	return user, true, nil
}

// CreateStudent creates an account and profile directly, with no
// registration involved. Shares the uniqueness and validation rules of
// provisioning but not its idempotence.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, _ appauth.StaffActor, req *dto.CreateStudentRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required.")
	}

	if !models.ValidProgress(req.ProgressPercent) {
		return nil, apperrors.NewValidationError("Progress must be a number between 0 and 100.")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Password:  hashed,
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  models.RoleStudent,
	}
	profile := &models.StudentProfile{
		CourseName:      strings.TrimSpace(req.CourseName),
		CourseDuration:  strings.TrimSpace(req.CourseDuration),
		ProgressPercent: req.ProgressPercent,
		Notes:           strings.TrimSpace(req.Notes),
	}

	if err := s.userRepo.CreateStudentWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	user.Profile = profile
	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Student created")
	return user, nil
}

// UpdateStudent mutates an account's contact fields, optionally its
// password, and its profile. The progress bound is checked before anything
// is written, so an out-of-range value rejects the whole request.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, _ appauth.StaffActor, userID int64, req *dto.UpdateStudentRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.ErrUserNotFound
	}

	if !models.ValidProgress(req.ProgressPercent) {
		return nil, apperrors.NewValidationError("Progress must be a number between 0 and 100.")
	}

	profile, err := s.profileRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = strings.TrimSpace(req.Email)
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	updatePassword := false
	if newPassword := strings.TrimSpace(req.Password); newPassword != "" {
		hashed, err := auth.HashPassword(newPassword)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
		updatePassword = true
	}

	profile.CourseName = strings.TrimSpace(req.CourseName)
	profile.CourseDuration = strings.TrimSpace(req.CourseDuration)
	profile.ProgressPercent = req.ProgressPercent
	profile.Notes = strings.TrimSpace(req.Notes)

	if err := s.userRepo.UpdateStudentWithProfile(ctx, user, updatePassword, profile); err != nil {
		return nil, err
	}

	user.Profile = profile
	s.logger.Info().Int64("userID", user.ID).Msg("Student updated")
	return user, nil
}

// ListStudents retrieves all student accounts with profiles
func (s *studentServiceImpl) ListStudents(ctx context.Context, _ appauth.StaffActor) ([]*models.User, error) {
	return s.userRepo.ListStudents(ctx)
}

// GetOwnProfile returns the caller's profile, creating it on first access
// if provisioning predates profiles or the row went missing.
func (s *studentServiceImpl) GetOwnProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.profileRepo.GetOrCreateByUserID(ctx, userID)
}

// splitFullName derives first and last name from a full name: the first
// whitespace run separates the two, and a single-token name has an empty
// last name.
func splitFullName(fullName string) (firstName, lastName string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}

	i := strings.IndexFunc(fullName, unicode.IsSpace)
	if i < 0 {
		return fullName, ""
	}

	return fullName[:i], strings.TrimLeftFunc(fullName[i:], unicode.IsSpace)
}
