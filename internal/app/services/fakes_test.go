package services

import (
	"context"
	"sort"
	"time"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

// fakeStore is an in-memory implementation of UserStore, ProfileStore and
// RegistrationStore sharing one state, so provisioning can be exercised end
// to end without a database.
type fakeStore struct {
	users         map[int64]*models.User
	profiles      map[int64]*models.StudentProfile // keyed by user id
	registrations map[int64]*models.Registration

	nextUserID    int64
	nextProfileID int64
	nextRegID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[int64]*models.User),
		profiles:      make(map[int64]*models.StudentProfile),
		registrations: make(map[int64]*models.Registration),
	}
}

func (f *fakeStore) addRegistration(reg *models.Registration) *models.Registration {
	f.nextRegID++
	reg.ID = f.nextRegID
	if reg.SubmittedAt.IsZero() {
		reg.SubmittedAt = time.Now()
	}
	f.registrations[reg.ID] = reg
	return reg
}

func (f *fakeStore) addUser(user *models.User) *models.User {
	f.nextUserID++
	user.ID = f.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user
}

// UserStore

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateStudentWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	if taken, _ := f.UsernameExists(ctx, user.Username); taken {
		return apperrors.ErrUsernameAlreadyExists
	}
	f.addUser(user)
	f.nextProfileID++
	profile.ID = f.nextProfileID
	profile.UserID = user.ID
	f.profiles[user.ID] = profile
	return nil
}

func (f *fakeStore) UpdateStudentWithProfile(_ context.Context, user *models.User, updatePassword bool, profile *models.StudentProfile) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	if updatePassword {
		stored.Password = user.Password
	}
	copied := *profile
	f.profiles[user.ID] = &copied
	return nil
}

func (f *fakeStore) ListStudents(_ context.Context) ([]*models.User, error) {
	var students []*models.User
	for _, user := range f.users {
		if user.RoleType != models.RoleStudent {
			continue
		}
		copied := *user
		if profile, ok := f.profiles[user.ID]; ok {
			p := *profile
			copied.Profile = &p
		}
		students = append(students, &copied)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (f *fakeStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

// ProfileStore

func (f *fakeStore) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeStore) GetOrCreateByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	if profile, ok := f.profiles[userID]; ok {
		copied := *profile
		return &copied, nil
	}
	f.nextProfileID++
	profile := &models.StudentProfile{ID: f.nextProfileID, UserID: userID}
	f.profiles[userID] = profile
	copied := *profile
	return &copied, nil
}

// RegistrationStore. GetByID clashes with the user lookup, so the
// registration view is a thin wrapper with its own GetByID over the shared
// state.
type fakeRegistrationStore struct {
	*fakeStore
}

func (f *fakeStore) regStore() fakeRegistrationStore {
	return fakeRegistrationStore{f}
}

func (f fakeRegistrationStore) GetByID(_ context.Context, id int64) (*models.Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (f *fakeStore) Create(_ context.Context, reg *models.Registration) error {
	f.addRegistration(reg)
	return nil
}

func (f *fakeStore) Search(_ context.Context, filter models.RegistrationFilter) ([]*models.Registration, error) {
	var matched []*models.Registration
	for _, reg := range f.registrations {
		if !filter.Matches(reg) {
			continue
		}
		copied := *reg
		if reg.CreatedUserID != nil {
			if user, ok := f.users[*reg.CreatedUserID]; ok {
				copied.CreatedUser = &models.User{ID: user.ID, Username: user.Username}
			}
		}
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].SubmittedAt.Equal(matched[j].SubmittedAt) {
			return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}

func (f *fakeStore) Provision(ctx context.Context, registrationID int64, user *models.User, profile *models.StudentProfile) error {
	reg, ok := f.registrations[registrationID]
	if !ok {
		return apperrors.ErrRegistrationNotFound
	}
	if reg.AccountCreated {
		return apperrors.ErrAlreadyProvisioned
	}
	if taken, _ := f.UsernameExists(ctx, user.Username); taken {
		return apperrors.ErrUsernameAlreadyExists
	}
	f.addUser(user)
	f.nextProfileID++
	profile.ID = f.nextProfileID
	profile.UserID = user.ID
	f.profiles[user.ID] = profile
	reg.AccountCreated = true
	id := user.ID
	reg.CreatedUserID = &id
	return nil
}
