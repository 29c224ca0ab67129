package services

import (
	"context"

	"github.com/coursehub/regportal/internal/app/models"
)

// Persistence interfaces the services depend on. The pgx repositories in the
// repositories package are the production implementations; tests use
// in-memory fakes.

// UserStore is the account persistence interface
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateStudentWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error
	UpdateStudentWithProfile(ctx context.Context, user *models.User, updatePassword bool, profile *models.StudentProfile) error
	ListStudents(ctx context.Context) ([]*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ProfileStore is the student profile persistence interface
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetOrCreateByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

// RegistrationStore is the intake submission persistence interface
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id int64) (*models.Registration, error)
	Search(ctx context.Context, filter models.RegistrationFilter) ([]*models.Registration, error)
	Provision(ctx context.Context, registrationID int64, user *models.User, profile *models.StudentProfile) error
}
