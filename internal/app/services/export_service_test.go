package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/regportal/internal/app/models"
)

func TestWriteRegistrationsCSV(t *testing.T) {
	store := newFakeStore()
	svc := NewExportService(store.regStore())

	user := store.addUser(&models.User{Username: "asha.rao", RoleType: models.RoleStudent})

	provisioned := &models.Registration{
		SubmittedAt:    time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		AccountCreated: true,
		CreatedUserID:  &user.ID,
	}
	provisioned.FullName = "Asha Rao"
	provisioned.Email = "asha@example.com"
	provisioned.ContactNumber = "9876543210"
	provisioned.BatchNo = "B-42"
	provisioned.ReferralSource = "Friend"
	store.addRegistration(provisioned)

	pending := &models.Registration{
		SubmittedAt: time.Date(2026, 3, 3, 9, 30, 0, 0, time.UTC),
	}
	pending.FullName = "Ravi Kumar"
	pending.Email = "ravi@example.com"
	pending.ContactNumber = "9123456780"
	store.addRegistration(pending)

	var buf bytes.Buffer
	err := svc.WriteRegistrationsCSV(context.Background(), &buf, models.RegistrationFilter{})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"registration_id", "submitted_at", "full_name", "email", "contact_number",
		"batch_no", "batch_timings", "faculty_name", "graduation_status",
		"preferred_job_location", "application_status", "referral_source",
		"account_created", "created_user_id", "created_username",
	}, records[0])

	// Newest submission first.
	pendingRow := records[1]
	assert.Equal(t, "Ravi Kumar", pendingRow[2])
	assert.Equal(t, "2026-03-03T09:30:00Z", pendingRow[1])
	assert.Equal(t, "No", pendingRow[12])
	assert.Equal(t, "", pendingRow[13])
	assert.Equal(t, "", pendingRow[14])

	provisionedRow := records[2]
	assert.Equal(t, "Asha Rao", provisionedRow[2])
	assert.Equal(t, "Friend", provisionedRow[11])
	assert.Equal(t, "Yes", provisionedRow[12])
	assert.Equal(t, strconv.FormatInt(user.ID, 10), provisionedRow[13])
	assert.Equal(t, "asha.rao", provisionedRow[14])
}

func TestWriteRegistrationsCSVHeaderOnlyWhenEmpty(t *testing.T) {
	store := newFakeStore()
	svc := NewExportService(store.regStore())

	var buf bytes.Buffer
	err := svc.WriteRegistrationsCSV(context.Background(), &buf, models.RegistrationFilter{})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteRegistrationsCSVRespectsFilter(t *testing.T) {
	store := newFakeStore()
	svc := NewExportService(store.regStore())

	pending := &models.Registration{}
	pending.FullName = "Pending Person"
	store.addRegistration(pending)

	done := &models.Registration{AccountCreated: true}
	done.FullName = "Done Person"
	store.addRegistration(done)

	var buf bytes.Buffer
	err := svc.WriteRegistrationsCSV(context.Background(), &buf, models.RegistrationFilter{Status: "created"})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Done Person", records[1][2])
}
