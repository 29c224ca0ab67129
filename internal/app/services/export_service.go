package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/coursehub/regportal/internal/app/models"
)

// ExportFilename is the attachment filename for registration exports.
const ExportFilename = "student_registrations.csv"

var exportHeader = []string{
	"registration_id",
	"submitted_at",
	"full_name",
	"email",
	"contact_number",
	"batch_no",
	"batch_timings",
	"faculty_name",
	"graduation_status",
	"preferred_job_location",
	"application_status",
	"referral_source",
	"account_created",
	"created_user_id",
	"created_username",
}

// ExportService writes registration data in portable formats for staff.
type ExportService interface {
	// WriteRegistrationsCSV streams the registrations matching the filter
	// as CSV, header row first, ordered newest first.
	WriteRegistrationsCSV(ctx context.Context, w io.Writer, filter models.RegistrationFilter) error
}

type exportServiceImpl struct {
	registrationRepo RegistrationStore
}

// NewExportService creates a new ExportService
func NewExportService(registrationRepo RegistrationStore) ExportService {
	return &exportServiceImpl{registrationRepo: registrationRepo}
}

func (s *exportServiceImpl) WriteRegistrationsCSV(ctx context.Context, w io.Writer, filter models.RegistrationFilter) error {
	registrations, err := s.registrationRepo.Search(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("error writing export header: %w", err)
	}
	for _, reg := range registrations {
		if err := cw.Write(exportRow(reg)); err != nil {
			return fmt.Errorf("error writing export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(reg *models.Registration) []string {
	accountCreated := "No"
	if reg.AccountCreated {
		accountCreated = "Yes"
	}

	createdUserID := ""
	if reg.CreatedUserID != nil {
		createdUserID = strconv.FormatInt(*reg.CreatedUserID, 10)
	}
	createdUsername := ""
	if reg.CreatedUser != nil {
		createdUsername = reg.CreatedUser.Username
	}

	return []string{
		strconv.FormatInt(reg.ID, 10),
		reg.SubmittedAt.Format(time.RFC3339),
		reg.FullName,
		reg.Email,
		reg.ContactNumber,
		reg.BatchNo,
		reg.BatchTimings,
		reg.FacultyName,
		reg.GraduationStatus,
		reg.PreferredJobLocation,
		reg.ApplicationStatus,
		reg.ReferralSource,
		accountCreated,
		createdUserID,
		createdUsername,
	}
}
