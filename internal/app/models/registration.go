package models

import (
	"strings"
	"time"
)

// Registration defines one submitted intake form based on the
// 'student_registrations' table. The descriptive fields are grouped by the
// sections of the form; apart from the personal identifiers every field may
// be blank. The record is immutable after submission except for the two
// administrative fields, which the provisioning workflow sets exactly once.
type Registration struct {
	ID int64 `json:"id" db:"id"`

	BasicInfo
	PersonalDetails
	EducationDetails
	CurrentStatus
	CareerPlans
	CourseCommitment
	TechReadiness
	ResidenceDetails
	FamilyDetails
	ApplicationMeta

	SubmittedAt    time.Time `json:"submittedAt" db:"submitted_at"`       // Set once at creation
	AccountCreated bool      `json:"accountCreated" db:"account_created"` // True iff CreatedUserID is set
	CreatedUserID  *int64    `json:"createdUserId,omitempty" db:"created_user_id"`

	CreatedUser *User `json:"createdUser,omitempty"` // Relation, populated on listing
}

// BasicInfo is section 1 of the intake form.
type BasicInfo struct {
	BatchNo      string `json:"batchNo" db:"batch_no"`
	BatchTimings string `json:"batchTimings" db:"batch_timings"`
	FacultyName  string `json:"facultyName" db:"faculty_name"`
}

// PersonalDetails is section 2 of the intake form. FullName, Email and
// ContactNumber are the only mandatory fields of the whole form.
type PersonalDetails struct {
	FullName          string     `json:"fullName" db:"full_name"`
	Email             string     `json:"email" db:"email"`
	UniqueIDProofType string     `json:"uniqueIdProofType" db:"unique_id_proof_type"`
	UniqueIDNumber    string     `json:"uniqueIdNumber" db:"unique_id_number"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ContactNumber     string     `json:"contactNumber" db:"contact_number"`
	WhatsappNumber    string     `json:"whatsappNumber" db:"whatsapp_number"`
	Gender            string     `json:"gender" db:"gender"`
}

// EducationDetails is section 3 of the intake form.
type EducationDetails struct {
	GraduationStatus              string `json:"graduationStatus" db:"graduation_status"`
	CurrentEducationQualification string `json:"currentEducationQualification" db:"current_education_qualification"`
	UGDiscipline                  string `json:"ugDiscipline" db:"ug_discipline"`
	StudiedCollegeIn              string `json:"studiedCollegeIn" db:"studied_college_in"`
	AppliedForPG                  string `json:"appliedForPg" db:"applied_for_pg"`
	UGPGCompletionTimeline        string `json:"ugPgCompletionTimeline" db:"ug_pg_completion_timeline"`
	LastOrCurrentCollegeName      string `json:"lastOrCurrentCollegeName" db:"last_or_current_college_name"`
	CollegeAddress                string `json:"collegeAddress" db:"college_address"`
}

// CurrentStatus is section 4 of the intake form (study / work status).
type CurrentStatus struct {
	CurrentlyStudyingOrWorking   string `json:"currentlyStudyingOrWorking" db:"currently_studying_or_working"`
	WorkOfficeDesignationSalary  string `json:"workOfficeDesignationSalary" db:"work_office_designation_salary"`
	InternshipsCurrently         string `json:"internshipsCurrently" db:"internships_currently"`
	PreparingCompetitiveExams    string `json:"preparingCompetitiveExams" db:"preparing_competitive_exams"`
	CourseHelpInCompetitiveExams string `json:"courseHelpInCompetitiveExams" db:"course_help_in_competitive_exams"`
}

// CareerPlans is section 5 of the intake form.
type CareerPlans struct {
	WantsJobImmediately  string `json:"wantsJobImmediately" db:"wants_job_immediately"`
	PlansHigherEducation string `json:"plansHigherEducation" db:"plans_higher_education"`
	PreferredJobLocation string `json:"preferredJobLocation" db:"preferred_job_location"`
	ComfortableShiftJobs string `json:"comfortableShiftJobs" db:"comfortable_shift_jobs"`
}

// CourseCommitment is section 6 of the intake form.
type CourseCommitment struct {
	CanSpendFourHoursDaily     string `json:"canSpendFourHoursDaily" db:"can_spend_4_hours_daily"`
	CanSubmitAssignmentsOnTime string `json:"canSubmitAssignmentsOnTime" db:"can_submit_assignments_on_time"`
	CourseImportanceAndNeed    string `json:"courseImportanceAndNeed" db:"course_importance_and_need"`
	CanAttendWebinars          string `json:"canAttendWebinars" db:"can_attend_webinars"`
}

// TechReadiness is section 7 of the intake form.
type TechReadiness struct {
	HasComputerOrLaptop string `json:"hasComputerOrLaptop" db:"has_computer_or_laptop"`
	HasSmartphone       string `json:"hasSmartphone" db:"has_smartphone"`
}

// ResidenceDetails is section 8 of the intake form.
type ResidenceDetails struct {
	ResidentialAddress string `json:"residentialAddress" db:"residential_address"`
	PinCode            string `json:"pinCode" db:"pin_code"`
	CurrentlyStayingIn string `json:"currentlyStayingIn" db:"currently_staying_in"`
}

// FamilyDetails is section 9 of the intake form.
type FamilyDetails struct {
	SingleParent            string `json:"singleParent" db:"single_parent"`
	ParentsDetails          string `json:"parentsDetails" db:"parents_details"`
	FatherOrGuardianName    string `json:"fatherOrGuardianName" db:"father_or_guardian_name"`
	FatherOrGuardianContact string `json:"fatherOrGuardianContact" db:"father_or_guardian_contact"`
	CurrentWorkingMember    string `json:"currentWorkingMember" db:"current_working_member"`
	BreadwinnerProfession   string `json:"breadwinnerProfession" db:"breadwinner_profession"`
	AnnualFamilyIncome      string `json:"annualFamilyIncome" db:"annual_family_income"`
	FamilyMembersCount      string `json:"familyMembersCount" db:"family_members_count"`
	HighestFamilyEducation  string `json:"highestFamilyEducation" db:"highest_family_education"`
	SocialCategory          string `json:"socialCategory" db:"social_category"`
}

// ApplicationMeta is section 10 of the intake form.
type ApplicationMeta struct {
	ApplicationStatus string `json:"applicationStatus" db:"application_status"`
	ReferralSource    string `json:"referralSource" db:"referral_source"`
}

// Registration status filter values.
const (
	RegistrationStatusAll     = "all"
	RegistrationStatusPending = "pending"
	RegistrationStatusCreated = "created"
)

// RegistrationFilter holds the search predicates for registrations. All
// predicates are ANDed; empty text predicates match everything, and any
// status other than "pending" or "created" applies no status predicate.
type RegistrationFilter struct {
	Query  string // case-insensitive substring over name, email, contact, referral source
	Status string // all | pending | created
	Batch  string // case-insensitive substring over batch number
}

// Matches reports whether the registration satisfies every predicate of the
// filter. The SQL search in the repository mirrors these semantics.
func (f RegistrationFilter) Matches(r *Registration) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		if !containsFold(r.FullName, q) &&
			!containsFold(r.Email, q) &&
			!containsFold(r.ContactNumber, q) &&
			!containsFold(r.ReferralSource, q) {
			return false
		}
	}

	switch f.Status {
	case RegistrationStatusPending:
		if r.AccountCreated {
			return false
		}
	case RegistrationStatusCreated:
		if !r.AccountCreated {
			return false
		}
	}

	if b := strings.TrimSpace(f.Batch); b != "" {
		if !containsFold(r.BatchNo, strings.ToLower(b)) {
			return false
		}
	}

	return true
}

// containsFold checks a case-insensitive substring match; needle must
// already be lowercased.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
