package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

type fakeUserLookup map[int64]*models.User

func (f fakeUserLookup) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func TestAuthorizeStaff(t *testing.T) {
	lookup := fakeUserLookup{
		1: {ID: 1, Username: "admin", RoleType: models.RoleStaff},
		2: {ID: 2, Username: "student", RoleType: models.RoleStudent},
	}
	svc := NewAuthorizationService(lookup)
	ctx := context.Background()

	actor, err := svc.AuthorizeStaff(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), actor.UserID())
	assert.Equal(t, "admin", actor.Username())

	_, err = svc.AuthorizeStaff(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.AuthorizeStaff(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
