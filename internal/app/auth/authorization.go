package auth

import (
	"context"
	"errors"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

// UserLookup is the account lookup the authorization check needs.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// StaffActor is proof of a staff authorization check. Admin-only operations
// take one as a parameter, and the only way to obtain one is through
// AuthorizationService.AuthorizeStaff, so the check cannot be skipped at a
// call site.
type StaffActor struct {
	userID   int64
	username string
}

// UserID returns the authorized staff account's id.
func (a StaffActor) UserID() int64 {
	return a.userID
}

// Username returns the authorized staff account's username.
func (a StaffActor) Username() string {
	return a.username
}

// AuthorizationService performs role checks at the workflow boundary.
type AuthorizationService struct {
	users UserLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserLookup) *AuthorizationService {
	return &AuthorizationService{users: users}
}

// AuthorizeStaff verifies the user holds the staff role and mints the actor
// required by admin-only operations.
func (s *AuthorizationService) AuthorizeStaff(ctx context.Context, userID int64) (StaffActor, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return StaffActor{}, apperrors.ErrPermissionDenied
		}
		return StaffActor{}, err
	}

	if !user.IsStaff() {
		return StaffActor{}, apperrors.ErrPermissionDenied
	}

	return StaffActor{userID: user.ID, username: user.Username}, nil
}
