package dto

import (
	"strings"
	"time"

	"github.com/coursehub/regportal/internal/app/models"
)

// SubmitRegistrationRequest carries one intake form submission. Only the
// personal identifiers are mandatory; every other field may be blank.
type SubmitRegistrationRequest struct {
	// 1. Basic information
	BatchNo      string `json:"batchNo"`
	BatchTimings string `json:"batchTimings"`
	FacultyName  string `json:"facultyName"`

	// 2. Personal details
	FullName          string `json:"fullName" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	UniqueIDProofType string `json:"uniqueIdProofType"`
	UniqueIDNumber    string `json:"uniqueIdNumber"`
	DateOfBirth       string `json:"dateOfBirth"` // YYYY-MM-DD, unparseable values are dropped
	ContactNumber     string `json:"contactNumber" binding:"required"`
	WhatsappNumber    string `json:"whatsappNumber"`
	Gender            string `json:"gender"`

	// 3. Educational details
	GraduationStatus              string `json:"graduationStatus"`
	CurrentEducationQualification string `json:"currentEducationQualification"`
	UGDiscipline                  string `json:"ugDiscipline"`
	StudiedCollegeIn              string `json:"studiedCollegeIn"`
	AppliedForPG                  string `json:"appliedForPg"`
	UGPGCompletionTimeline        string `json:"ugPgCompletionTimeline"`
	LastOrCurrentCollegeName      string `json:"lastOrCurrentCollegeName"`
	CollegeAddress                string `json:"collegeAddress"`

	// 4. Current status (study / work)
	CurrentlyStudyingOrWorking   string `json:"currentlyStudyingOrWorking"`
	WorkOfficeDesignationSalary  string `json:"workOfficeDesignationSalary"`
	InternshipsCurrently         string `json:"internshipsCurrently"`
	PreparingCompetitiveExams    string `json:"preparingCompetitiveExams"`
	CourseHelpInCompetitiveExams string `json:"courseHelpInCompetitiveExams"`

	// 5. Career plans and preferences
	WantsJobImmediately  string `json:"wantsJobImmediately"`
	PlansHigherEducation string `json:"plansHigherEducation"`
	PreferredJobLocation string `json:"preferredJobLocation"`
	ComfortableShiftJobs string `json:"comfortableShiftJobs"`

	// 6. Course commitment and availability
	CanSpendFourHoursDaily     string `json:"canSpendFourHoursDaily"`
	CanSubmitAssignmentsOnTime string `json:"canSubmitAssignmentsOnTime"`
	CourseImportanceAndNeed    string `json:"courseImportanceAndNeed"`
	CanAttendWebinars          string `json:"canAttendWebinars"`

	// 7. Technical readiness
	HasComputerOrLaptop string `json:"hasComputerOrLaptop"`
	HasSmartphone       string `json:"hasSmartphone"`

	// 8. Residential details
	ResidentialAddress string `json:"residentialAddress"`
	PinCode            string `json:"pinCode"`
	CurrentlyStayingIn string `json:"currentlyStayingIn"`

	// 9. Family details
	SingleParent            string `json:"singleParent"`
	ParentsDetails          string `json:"parentsDetails"`
	FatherOrGuardianName    string `json:"fatherOrGuardianName"`
	FatherOrGuardianContact string `json:"fatherOrGuardianContact"`
	CurrentWorkingMember    string `json:"currentWorkingMember"`
	BreadwinnerProfession   string `json:"breadwinnerProfession"`
	AnnualFamilyIncome      string `json:"annualFamilyIncome"`
	FamilyMembersCount      string `json:"familyMembersCount"`
	HighestFamilyEducation  string `json:"highestFamilyEducation"`
	SocialCategory          string `json:"socialCategory"`

	// 10. Course application status
	ApplicationStatus string `json:"applicationStatus"`
	ReferralSource    string `json:"referralSource"`
}

// ToModel trims every field and builds the registration aggregate. SubmittedAt
// and the administrative fields are left to the store.
func (r *SubmitRegistrationRequest) ToModel() *models.Registration {
	return &models.Registration{
		BasicInfo: models.BasicInfo{
			BatchNo:      strings.TrimSpace(r.BatchNo),
			BatchTimings: strings.TrimSpace(r.BatchTimings),
			FacultyName:  strings.TrimSpace(r.FacultyName),
		},
		PersonalDetails: models.PersonalDetails{
			FullName:          strings.TrimSpace(r.FullName),
			Email:             strings.TrimSpace(r.Email),
			UniqueIDProofType: strings.TrimSpace(r.UniqueIDProofType),
			UniqueIDNumber:    strings.TrimSpace(r.UniqueIDNumber),
			DateOfBirth:       parseOptionalDate(r.DateOfBirth),
			ContactNumber:     strings.TrimSpace(r.ContactNumber),
			WhatsappNumber:    strings.TrimSpace(r.WhatsappNumber),
			Gender:            strings.TrimSpace(r.Gender),
		},
		EducationDetails: models.EducationDetails{
			GraduationStatus:              strings.TrimSpace(r.GraduationStatus),
			CurrentEducationQualification: strings.TrimSpace(r.CurrentEducationQualification),
			UGDiscipline:                  strings.TrimSpace(r.UGDiscipline),
			StudiedCollegeIn:              strings.TrimSpace(r.StudiedCollegeIn),
			AppliedForPG:                  strings.TrimSpace(r.AppliedForPG),
			UGPGCompletionTimeline:        strings.TrimSpace(r.UGPGCompletionTimeline),
			LastOrCurrentCollegeName:      strings.TrimSpace(r.LastOrCurrentCollegeName),
			CollegeAddress:                strings.TrimSpace(r.CollegeAddress),
		},
		CurrentStatus: models.CurrentStatus{
			CurrentlyStudyingOrWorking:   strings.TrimSpace(r.CurrentlyStudyingOrWorking),
			WorkOfficeDesignationSalary:  strings.TrimSpace(r.WorkOfficeDesignationSalary),
			InternshipsCurrently:         strings.TrimSpace(r.InternshipsCurrently),
			PreparingCompetitiveExams:    strings.TrimSpace(r.PreparingCompetitiveExams),
			CourseHelpInCompetitiveExams: strings.TrimSpace(r.CourseHelpInCompetitiveExams),
		},
		CareerPlans: models.CareerPlans{
			WantsJobImmediately:  strings.TrimSpace(r.WantsJobImmediately),
			PlansHigherEducation: strings.TrimSpace(r.PlansHigherEducation),
			PreferredJobLocation: strings.TrimSpace(r.PreferredJobLocation),
			ComfortableShiftJobs: strings.TrimSpace(r.ComfortableShiftJobs),
		},
		CourseCommitment: models.CourseCommitment{
			CanSpendFourHoursDaily:     strings.TrimSpace(r.CanSpendFourHoursDaily),
			CanSubmitAssignmentsOnTime: strings.TrimSpace(r.CanSubmitAssignmentsOnTime),
			CourseImportanceAndNeed:    strings.TrimSpace(r.CourseImportanceAndNeed),
			CanAttendWebinars:          strings.TrimSpace(r.CanAttendWebinars),
		},
		TechReadiness: models.TechReadiness{
			HasComputerOrLaptop: strings.TrimSpace(r.HasComputerOrLaptop),
			HasSmartphone:       strings.TrimSpace(r.HasSmartphone),
		},
		ResidenceDetails: models.ResidenceDetails{
			ResidentialAddress: strings.TrimSpace(r.ResidentialAddress),
			PinCode:            strings.TrimSpace(r.PinCode),
			CurrentlyStayingIn: strings.TrimSpace(r.CurrentlyStayingIn),
		},
		FamilyDetails: models.FamilyDetails{
			SingleParent:            strings.TrimSpace(r.SingleParent),
			ParentsDetails:          strings.TrimSpace(r.ParentsDetails),
			FatherOrGuardianName:    strings.TrimSpace(r.FatherOrGuardianName),
			FatherOrGuardianContact: strings.TrimSpace(r.FatherOrGuardianContact),
			CurrentWorkingMember:    strings.TrimSpace(r.CurrentWorkingMember),
			BreadwinnerProfession:   strings.TrimSpace(r.BreadwinnerProfession),
			AnnualFamilyIncome:      strings.TrimSpace(r.AnnualFamilyIncome),
			FamilyMembersCount:      strings.TrimSpace(r.FamilyMembersCount),
			HighestFamilyEducation:  strings.TrimSpace(r.HighestFamilyEducation),
			SocialCategory:          strings.TrimSpace(r.SocialCategory),
		},
		ApplicationMeta: models.ApplicationMeta{
			ApplicationStatus: strings.TrimSpace(r.ApplicationStatus),
			ReferralSource:    strings.TrimSpace(r.ReferralSource),
		},
	}
}

// parseOptionalDate parses a YYYY-MM-DD value, returning nil for blank or
// malformed input in the same lenient way the intake form treats it.
func parseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ProvisionCredentialsRequest carries the desired login credentials for a
// registration. Validation is ordered inside the workflow, so neither field
// is rejected at the binding layer.
type ProvisionCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistrationListResponse wraps a filtered registration listing
type RegistrationListResponse struct {
	Registrations []*models.Registration `json:"registrations"`
	Total         int                    `json:"total"`
}
