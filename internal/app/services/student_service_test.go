package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/coursehub/regportal/internal/app/auth"
	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
	"github.com/coursehub/regportal/internal/pkg/auth"
)

var testDefaults = ProvisioningDefaults{
	CourseName:     "Cloud Computing",
	CourseDuration: "TBD",
}

func newStudentService(store *fakeStore) StudentService {
	return NewStudentService(store, store, store.regStore(), testDefaults, zerolog.Nop())
}

func pendingRegistration(store *fakeStore, fullName, email, contact string) *models.Registration {
	reg := &models.Registration{}
	reg.FullName = fullName
	reg.Email = email
	reg.ContactNumber = contact
	return store.addRegistration(reg)
}

func TestProvisionCreatesAccount(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	reg := pendingRegistration(store, "Asha Rao", "asha@example.com", "9876543210")

	user, already, err := svc.Provision(context.Background(), appauth.StaffActor{}, reg.ID, &dto.ProvisionCredentialsRequest{
		Username: "asha.rao",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.False(t, already)

	assert.Equal(t, "asha.rao", user.Username)
	assert.Equal(t, "Asha", user.FirstName)
	assert.Equal(t, "Rao", user.LastName)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.RoleType)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))

	profile, err := store.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Computing", profile.CourseName)
	assert.Equal(t, "TBD", profile.CourseDuration)
	assert.Equal(t, 0, profile.ProgressPercent)
	assert.Equal(t, fmt.Sprintf("Registration ID: %d", reg.ID), profile.Notes)

	stored := store.registrations[reg.ID]
	assert.True(t, stored.AccountCreated)
	require.NotNil(t, stored.CreatedUserID)
	assert.Equal(t, user.ID, *stored.CreatedUserID)
}

func TestProvisionIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	reg := pendingRegistration(store, "Asha Rao", "asha@example.com", "9876543210")
	ctx := context.Background()

	first, already, err := svc.Provision(ctx, appauth.StaffActor{}, reg.ID, &dto.ProvisionCredentialsRequest{
		Username: "asha.rao",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.False(t, already)

	// Second attempt with different credentials must not create anything.
	second, already, err := svc.Provision(ctx, appauth.StaffActor{}, reg.ID, &dto.ProvisionCredentialsRequest{
		Username: "other.name",
		Password: "otherpass",
	})
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "asha.rao", second.Username)
	assert.Len(t, store.users, 1)
}

func TestProvisionRegistrationNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)

	// The missing registration wins over the invalid credentials.
	_, _, err := svc.Provision(context.Background(), appauth.StaffActor{}, 42, &dto.ProvisionCredentialsRequest{})
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}

func TestProvisionRequiresCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	reg := pendingRegistration(store, "Asha Rao", "asha@example.com", "9876543210")

	cases := []dto.ProvisionCredentialsRequest{
		{Username: "", Password: "secret123"},
		{Username: "asha.rao", Password: ""},
		{Username: "   ", Password: "   "},
	}
	for _, req := range cases {
		_, _, err := svc.Provision(context.Background(), appauth.StaffActor{}, reg.ID, &req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
	assert.Empty(t, store.users)
	assert.False(t, store.registrations[reg.ID].AccountCreated)
}

func TestProvisionUsernameConflict(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	store.addUser(&models.User{Username: "asha.rao", RoleType: models.RoleStudent})
	reg := pendingRegistration(store, "Asha Rao", "asha@example.com", "9876543210")

	_, _, err := svc.Provision(context.Background(), appauth.StaffActor{}, reg.ID, &dto.ProvisionCredentialsRequest{
		Username: "asha.rao",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	assert.False(t, store.registrations[reg.ID].AccountCreated)
}

// racingRegistrationStore simulates losing the provisioning race: the store
// reports the registration as taken by another request that committed first.
type racingRegistrationStore struct {
	fakeRegistrationStore
	winner *models.User
}

func (r racingRegistrationStore) Provision(ctx context.Context, registrationID int64, user *models.User, profile *models.StudentProfile) error {
	reg := r.registrations[registrationID]
	if !reg.AccountCreated {
		reg.AccountCreated = true
		id := r.winner.ID
		reg.CreatedUserID = &id
	}
	return apperrors.ErrAlreadyProvisioned
}

func TestProvisionRaceLoserGetsExistingAccount(t *testing.T) {
	store := newFakeStore()
	winner := store.addUser(&models.User{Username: "asha.rao", RoleType: models.RoleStudent})
	reg := pendingRegistration(store, "Asha Rao", "asha@example.com", "9876543210")

	racing := racingRegistrationStore{fakeRegistrationStore: store.regStore(), winner: winner}
	svc := NewStudentService(store, store, racing, testDefaults, zerolog.Nop())

	user, already, err := svc.Provision(context.Background(), appauth.StaffActor{}, reg.ID, &dto.ProvisionCredentialsRequest{
		Username: "someone.else",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, winner.ID, user.ID)
	assert.Equal(t, "asha.rao", user.Username)
}

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"Asha Rao", "Asha", "Rao"},
		{"Asha", "Asha", ""},
		{"Asha Kumari Rao", "Asha", "Kumari Rao"},
		{"  Asha   Rao  ", "Asha", "Rao"},
		{"", "", ""},
		{"   ", "", ""},
	}
	for _, c := range cases {
		first, last := splitFullName(c.in)
		assert.Equal(t, c.first, first, "input %q", c.in)
		assert.Equal(t, c.last, last, "input %q", c.in)
	}
}

func TestCreateStudentProgressBounds(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	ctx := context.Background()

	for _, progress := range []int{-1, 101} {
		_, err := svc.CreateStudent(ctx, appauth.StaffActor{}, &dto.CreateStudentRequest{
			Username:        fmt.Sprintf("student%d", progress),
			Password:        "secret123",
			ProgressPercent: progress,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "progress %d", progress)
	}
	assert.Empty(t, store.users)

	for _, progress := range []int{0, 100} {
		user, err := svc.CreateStudent(ctx, appauth.StaffActor{}, &dto.CreateStudentRequest{
			Username:        fmt.Sprintf("student%d", progress),
			Password:        "secret123",
			ProgressPercent: progress,
		})
		require.NoError(t, err, "progress %d", progress)
		assert.Equal(t, progress, user.Profile.ProgressPercent)
	}
}

func TestCreateStudentDuplicateUsername(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	store.addUser(&models.User{Username: "taken", RoleType: models.RoleStudent})

	_, err := svc.CreateStudent(context.Background(), appauth.StaffActor{}, &dto.CreateStudentRequest{
		Username: "taken",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestUpdateStudentRejectsOutOfRangeProgressEntirely(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	ctx := context.Background()

	user, err := svc.CreateStudent(ctx, appauth.StaffActor{}, &dto.CreateStudentRequest{
		Username:        "asha.rao",
		Password:        "secret123",
		Email:           "asha@example.com",
		ProgressPercent: 40,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStudent(ctx, appauth.StaffActor{}, user.ID, &dto.UpdateStudentRequest{
		Email:           "new@example.com",
		ProgressPercent: 150,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Nothing was applied, not even the valid fields.
	stored, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", stored.Email)
	profile, err := store.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, profile.ProgressPercent)
}

func TestUpdateStudentPasswordOnlyWhenProvided(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	ctx := context.Background()

	user, err := svc.CreateStudent(ctx, appauth.StaffActor{}, &dto.CreateStudentRequest{
		Username: "asha.rao",
		Password: "secret123",
	})
	require.NoError(t, err)
	originalHash := store.users[user.ID].Password

	_, err = svc.UpdateStudent(ctx, appauth.StaffActor{}, user.ID, &dto.UpdateStudentRequest{
		Email:           "asha@example.com",
		ProgressPercent: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, originalHash, store.users[user.ID].Password)

	_, err = svc.UpdateStudent(ctx, appauth.StaffActor{}, user.ID, &dto.UpdateStudentRequest{
		Password:        "newpass456",
		ProgressPercent: 10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, store.users[user.ID].Password)
	assert.True(t, auth.CheckPassword(store.users[user.ID].Password, "newpass456"))
}

func TestUpdateStudentTargetMustBeStudent(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	staff := store.addUser(&models.User{Username: "admin", RoleType: models.RoleStaff})

	_, err := svc.UpdateStudent(context.Background(), appauth.StaffActor{}, staff.ID, &dto.UpdateStudentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetOwnProfileCreatesOnFirstAccess(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	user := store.addUser(&models.User{Username: "asha.rao", RoleType: models.RoleStudent})

	profile, err := svc.GetOwnProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, 0, profile.ProgressPercent)

	again, err := svc.GetOwnProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestListStudentsExcludesStaff(t *testing.T) {
	store := newFakeStore()
	svc := newStudentService(store)
	store.addUser(&models.User{Username: "admin", RoleType: models.RoleStaff})
	store.addUser(&models.User{Username: "s1", RoleType: models.RoleStudent})
	store.addUser(&models.User{Username: "s2", RoleType: models.RoleStudent})

	students, err := svc.ListStudents(context.Background(), appauth.StaffActor{})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "s1", students[0].Username)
	assert.Equal(t, "s2", students[1].Username)
}
