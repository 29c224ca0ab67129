package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

func newRegistrationService(store *fakeStore) RegistrationService {
	return NewRegistrationService(store.regStore(), zerolog.Nop())
}

func TestSubmitPersistsRegistration(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store)

	reg, err := svc.Submit(context.Background(), &dto.SubmitRegistrationRequest{
		FullName:      "  Asha Rao  ",
		Email:         " asha@example.com ",
		ContactNumber: "9876543210",
		BatchNo:       "B-42",
	})
	require.NoError(t, err)

	assert.NotZero(t, reg.ID)
	assert.Equal(t, "Asha Rao", reg.FullName)
	assert.Equal(t, "asha@example.com", reg.Email)
	assert.Equal(t, "B-42", reg.BatchNo)
	assert.False(t, reg.AccountCreated)
	assert.False(t, reg.SubmittedAt.IsZero())
}

func TestSubmitRequiresIdentifiers(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store)

	cases := []dto.SubmitRegistrationRequest{
		{Email: "asha@example.com", ContactNumber: "9876543210"},
		{FullName: "Asha Rao", ContactNumber: "9876543210"},
		{FullName: "Asha Rao", Email: "asha@example.com"},
		{FullName: "   ", Email: "   ", ContactNumber: "   "},
	}
	for _, req := range cases {
		_, err := svc.Submit(context.Background(), &req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
	assert.Empty(t, store.registrations)
}

func TestSearchReturnsNewestFirst(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	names := []string{"First Person", "Second Person", "Third Person"}
	for i, name := range names {
		reg := &models.Registration{SubmittedAt: base.Add(time.Duration(i) * time.Hour)}
		reg.FullName = name
		reg.Email = "p@example.com"
		reg.ContactNumber = "123"
		store.addRegistration(reg)
	}

	regs, err := svc.Search(context.Background(), models.RegistrationFilter{})
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, "Third Person", regs[0].FullName)
	assert.Equal(t, "Second Person", regs[1].FullName)
	assert.Equal(t, "First Person", regs[2].FullName)
}

func TestSearchAppliesCombinedFilter(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store)

	matching := &models.Registration{}
	matching.FullName = "Asha Rao"
	matching.BatchNo = "B-42"
	store.addRegistration(matching)

	wrongBatch := &models.Registration{}
	wrongBatch.FullName = "Asha Kumari"
	wrongBatch.BatchNo = "B-7"
	store.addRegistration(wrongBatch)

	provisioned := &models.Registration{AccountCreated: true}
	provisioned.FullName = "Asha Devi"
	provisioned.BatchNo = "B-42"
	store.addRegistration(provisioned)

	regs, err := svc.Search(context.Background(), models.RegistrationFilter{
		Query:  "  asha  ",
		Status: "pending",
		Batch:  "42",
	})
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Asha Rao", regs[0].FullName)
}

func TestGetByIDNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}
