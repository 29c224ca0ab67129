package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/db"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

// registrationColumns lists the student_registrations columns in the order
// used by every select and by registrationScanDest. Keep the two in sync.
var registrationColumns = []string{
	"id",
	"batch_no", "batch_timings", "faculty_name",
	"full_name", "email", "unique_id_proof_type", "unique_id_number",
	"date_of_birth", "contact_number", "whatsapp_number", "gender",
	"graduation_status", "current_education_qualification", "ug_discipline",
	"studied_college_in", "applied_for_pg", "ug_pg_completion_timeline",
	"last_or_current_college_name", "college_address",
	"currently_studying_or_working", "work_office_designation_salary",
	"internships_currently", "preparing_competitive_exams", "course_help_in_competitive_exams",
	"wants_job_immediately", "plans_higher_education", "preferred_job_location", "comfortable_shift_jobs",
	"can_spend_4_hours_daily", "can_submit_assignments_on_time",
	"course_importance_and_need", "can_attend_webinars",
	"has_computer_or_laptop", "has_smartphone",
	"residential_address", "pin_code", "currently_staying_in",
	"single_parent", "parents_details", "father_or_guardian_name", "father_or_guardian_contact",
	"current_working_member", "breadwinner_profession", "annual_family_income",
	"family_members_count", "highest_family_education", "social_category",
	"application_status", "referral_source",
	"submitted_at", "account_created", "created_user_id",
}

// registrationScanDest returns scan destinations matching registrationColumns.
func registrationScanDest(r *models.Registration) []any {
	return []any{
		&r.ID,
		&r.BatchNo, &r.BatchTimings, &r.FacultyName,
		&r.FullName, &r.Email, &r.UniqueIDProofType, &r.UniqueIDNumber,
		&r.DateOfBirth, &r.ContactNumber, &r.WhatsappNumber, &r.Gender,
		&r.GraduationStatus, &r.CurrentEducationQualification, &r.UGDiscipline,
		&r.StudiedCollegeIn, &r.AppliedForPG, &r.UGPGCompletionTimeline,
		&r.LastOrCurrentCollegeName, &r.CollegeAddress,
		&r.CurrentlyStudyingOrWorking, &r.WorkOfficeDesignationSalary,
		&r.InternshipsCurrently, &r.PreparingCompetitiveExams, &r.CourseHelpInCompetitiveExams,
		&r.WantsJobImmediately, &r.PlansHigherEducation, &r.PreferredJobLocation, &r.ComfortableShiftJobs,
		&r.CanSpendFourHoursDaily, &r.CanSubmitAssignmentsOnTime,
		&r.CourseImportanceAndNeed, &r.CanAttendWebinars,
		&r.HasComputerOrLaptop, &r.HasSmartphone,
		&r.ResidentialAddress, &r.PinCode, &r.CurrentlyStayingIn,
		&r.SingleParent, &r.ParentsDetails, &r.FatherOrGuardianName, &r.FatherOrGuardianContact,
		&r.CurrentWorkingMember, &r.BreadwinnerProfession, &r.AnnualFamilyIncome,
		&r.FamilyMembersCount, &r.HighestFamilyEducation, &r.SocialCategory,
		&r.ApplicationStatus, &r.ReferralSource,
		&r.SubmittedAt, &r.AccountCreated, &r.CreatedUserID,
	}
}

// RegistrationRepository handles database operations for intake form
// submissions.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a submitted registration. submitted_at and the
// administrative fields come from column defaults.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	descriptive := registrationColumns[1 : len(registrationColumns)-3]

	placeholders := make([]string, len(descriptive))
	for i := range descriptive {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	args := []any{
		reg.BatchNo, reg.BatchTimings, reg.FacultyName,
		reg.FullName, reg.Email, reg.UniqueIDProofType, reg.UniqueIDNumber,
		reg.DateOfBirth, reg.ContactNumber, reg.WhatsappNumber, reg.Gender,
		reg.GraduationStatus, reg.CurrentEducationQualification, reg.UGDiscipline,
		reg.StudiedCollegeIn, reg.AppliedForPG, reg.UGPGCompletionTimeline,
		reg.LastOrCurrentCollegeName, reg.CollegeAddress,
		reg.CurrentlyStudyingOrWorking, reg.WorkOfficeDesignationSalary,
		reg.InternshipsCurrently, reg.PreparingCompetitiveExams, reg.CourseHelpInCompetitiveExams,
		reg.WantsJobImmediately, reg.PlansHigherEducation, reg.PreferredJobLocation, reg.ComfortableShiftJobs,
		reg.CanSpendFourHoursDaily, reg.CanSubmitAssignmentsOnTime,
		reg.CourseImportanceAndNeed, reg.CanAttendWebinars,
		reg.HasComputerOrLaptop, reg.HasSmartphone,
		reg.ResidentialAddress, reg.PinCode, reg.CurrentlyStayingIn,
		reg.SingleParent, reg.ParentsDetails, reg.FatherOrGuardianName, reg.FatherOrGuardianContact,
		reg.CurrentWorkingMember, reg.BreadwinnerProfession, reg.AnnualFamilyIncome,
		reg.FamilyMembersCount, reg.HighestFamilyEducation, reg.SocialCategory,
		reg.ApplicationStatus, reg.ReferralSource,
	}

	query := fmt.Sprintf(`
		INSERT INTO student_registrations (%s)
		VALUES (%s)
		RETURNING id, submitted_at, account_created`,
		strings.Join(descriptive, ", "), strings.Join(placeholders, ", "))

	err := r.db.QueryRow(ctx, query, args...).Scan(&reg.ID, &reg.SubmittedAt, &reg.AccountCreated)
	if err != nil {
		return fmt.Errorf("error creating registration: %w", err)
	}

	return nil
}

// GetByID retrieves a registration by ID, including the created account
// reference when one exists.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.username
		FROM student_registrations r
		LEFT JOIN users u ON u.id = r.created_user_id
		WHERE r.id = $1`,
		prefixedColumns("r"))

	reg := &models.Registration{}
	var createdUsername *string
	dest := append(registrationScanDest(reg), &createdUsername)

	if err := r.db.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}

	attachCreatedUser(reg, createdUsername)
	return reg, nil
}

// Search retrieves registrations matching the filter, newest submission
// first. The predicates mirror models.RegistrationFilter.Matches.
func (r *RegistrationRepository) Search(ctx context.Context, filter models.RegistrationFilter) ([]*models.Registration, error) {
	builder := squirrel.Select(strings.Split(prefixedColumns("r"), ", ")...).
		Column("u.username").
		From("student_registrations r").
		LeftJoin("users u ON u.id = r.created_user_id").
		OrderBy("r.submitted_at DESC", "r.id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"r.full_name": pattern},
			squirrel.ILike{"r.email": pattern},
			squirrel.ILike{"r.contact_number": pattern},
			squirrel.ILike{"r.referral_source": pattern},
		})
	}

	switch filter.Status {
	case models.RegistrationStatusPending:
		builder = builder.Where(squirrel.Eq{"r.account_created": false})
	case models.RegistrationStatusCreated:
		builder = builder.Where(squirrel.Eq{"r.account_created": true})
	}

	if b := strings.TrimSpace(filter.Batch); b != "" {
		builder = builder.Where(squirrel.ILike{"r.batch_no": "%" + escapeLike(b) + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg := &models.Registration{}
		var createdUsername *string
		dest := append(registrationScanDest(reg), &createdUsername)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		attachCreatedUser(reg, createdUsername)
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regs, nil
}

// Provision creates the account and profile for a registration and marks it
// provisioned, as one transaction. The guarded UPDATE is the line of defense
// against two concurrent provisions of the same registration: the loser sees
// zero affected rows, the whole transaction rolls back, and the caller
// resolves the race as an idempotent no-op.
func (r *RegistrationRepository) Provision(ctx context.Context, registrationID int64, user *models.User, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		if err := insertProfile(ctx, tx, profile); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE student_registrations
			SET account_created = TRUE, created_user_id = $1
			WHERE id = $2 AND account_created = FALSE`,
			user.ID, registrationID)
		if err != nil {
			return fmt.Errorf("error marking registration provisioned: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAlreadyProvisioned
		}

		return nil
	})
}

// prefixedColumns renders registrationColumns qualified with a table alias.
func prefixedColumns(alias string) string {
	cols := make([]string, len(registrationColumns))
	for i, c := range registrationColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// attachCreatedUser populates the created-account relation from joined
// columns.
func attachCreatedUser(reg *models.Registration, username *string) {
	if reg.CreatedUserID != nil && username != nil {
		reg.CreatedUser = &models.User{ID: *reg.CreatedUserID, Username: *username}
	}
}

// escapeLike escapes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
